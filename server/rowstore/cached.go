/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package rowstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/FieldForms/FieldForms/common/cache"
	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Cached wraps a Store with a per-table read cache. Writes through this
// wrapper invalidate the table; writes by other processes are only seen
// after the TTL expires.
type Cached struct {
	store Store
	cache interfaces.Cache

	// gens counts completed writes per table. A read only fills the cache
	// when no write finished while it was in flight.
	mu   sync.Mutex
	gens map[string]uint64
}

// Ensure Cached implements the interfaces
var _ Store = (*Cached)(nil)
var _ Rewriter = (*Cached)(nil)
var _ Pinger = (*Cached)(nil)

// NewCached returns store wrapped in a cache. A ttl of zero disables caching.
func NewCached(store Store, ttl time.Duration) *Cached {
	return &Cached{store: store, cache: cache.New(ttl), gens: make(map[string]uint64)}
}

func (c *Cached) generation(table string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[table]
}

// invalidate drops the cached table and bumps its generation
func (c *Cached) invalidate(table string) {
	c.mu.Lock()
	c.gens[table]++
	c.mu.Unlock()
	c.cache.Delete(table)
}

func (c *Cached) Read(ctx context.Context, table string) ([][]string, error) {
	if !bypassCache(ctx) {
		if data := c.cache.Get(table); data != nil {
			var rows [][]string
			if err := json.Unmarshal(data, &rows); err == nil {
				return rows, nil
			}
		}
	}

	gen := c.generation(table)
	rows, err := c.store.Read(ctx, table)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		c.mu.Lock()
		if c.gens[table] == gen {
			c.cache.Set(table, data)
		}
		c.mu.Unlock()
	}
	return rows, nil
}

func (c *Cached) Append(ctx context.Context, table string, rows [][]string) error {
	defer c.invalidate(table)
	return c.store.Append(ctx, table, rows)
}

func (c *Cached) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	defer c.invalidate(table)
	return c.store.UpdateCell(ctx, table, row, col, value)
}

func (c *Cached) Replace(ctx context.Context, table string, rows [][]string) error {
	defer c.invalidate(table)
	if r, ok := c.store.(Rewriter); ok {
		return r.Replace(ctx, table, rows)
	}
	return ErrNotSupported
}

func (c *Cached) Ping(ctx context.Context) (string, error) {
	if p, ok := c.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return "", nil
}

func (c *Cached) Close() error {
	c.cache.Clear()
	return c.store.Close()
}
