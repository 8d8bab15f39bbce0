/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package cache is a small TTL cache for byte slices keyed by string.
// It is safe for concurrent use.
package cache

import (
	"sync"
	"time"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

var _ interfaces.Cache = (*Instance)(nil)

type Instance struct {
	mu    sync.Mutex
	cache map[string]cacheItem
	ttl   time.Duration
	now   func() time.Time
}

type cacheItem struct {
	bytes   []byte
	created time.Time
}

func New(ttl time.Duration) *Instance {
	return &Instance{
		cache: make(map[string]cacheItem),
		ttl:   ttl,
		now:   time.Now}
}

func (c *Instance) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheItem)
}

func (c *Instance) TTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

// Set stores data. A zero or negative TTL disables caching entirely.
func (c *Instance) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 {
		return
	}
	c.cache[key] = cacheItem{bytes: data, created: c.now()}
}

func (c *Instance) Get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache[key]
	if !ok {
		return nil
	}

	if c.now().Sub(v.created) > c.ttl {
		delete(c.cache, key)
		return nil
	}
	return v.bytes
}

func (c *Instance) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}
