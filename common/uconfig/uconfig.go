/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package uconfig stores named parameter sets in a single JSON file
package uconfig

import (
	"errors"
	"sync"

	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/uconfig/params"
)

// Ensure UConfig implements the Config interface
var _ interfaces.Config = (*UConfig)(nil)

// UConfig holds all configuration data
type UConfig struct {
	mu   sync.Mutex
	file string
	Sets map[string]*params.Params `json:"sets"`
}

// Null returns an empty, file-less UConfig for tests
//
//goland:noinspection GoUnusedExportedFunction
func Null() *UConfig {
	return &UConfig{Sets: make(map[string]*params.Params)}
}

// New returns an UConfig instance
//
//goland:noinspection GoUnusedExportedFunction
func New(options ...func(*UConfig) error) (*UConfig, error) {
	c := Null()

	// Process options (see options.go)
	for _, op := range options {
		if err := op(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Save the configuration to the specified file, or the last file used
func (c *UConfig) Save(filename string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if filename != "" {
		c.file = filename
	}
	if c.file == "" {
		return errors.New("a filename is required")
	}
	return c.saveFile()
}

// Load the configuration from the specified file
func (c *UConfig) Load(filename string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if filename != "" {
		c.file = filename
	}
	if c.file == "" {
		return errors.New("a filename is required")
	}
	return c.loadFile()
}

// Checkpoint saves the configuration to the last loaded file.
// A file-less configuration is silently kept in memory.
func (c *UConfig) Checkpoint() error {
	if c.file == "" {
		return nil
	}
	return c.Save("")
}

// File returns the path of the backing file, if any
func (c *UConfig) File() string {
	return c.file
}

// GetSet returns an existing set or nil
func (c *UConfig) GetSet(set string) interfaces.Parameters {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.Sets[set]; ok {
		return value
	}
	return nil
}

// NewSet returns the named set, creating it if needed
func (c *UConfig) NewSet(key string) interfaces.Parameters {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Sets[key]; !ok {
		c.Sets[key] = params.New()
	}
	return c.Sets[key]
}
