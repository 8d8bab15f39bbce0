/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package params implements a key/value set with min/max/default
// constraints that can be serialized to JSON.
package params

import (
	"fmt"
	"sort"
	"sync"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Ensure Params implements the Parameters interface
var _ interfaces.Parameters = (*Params)(nil)

type Element struct {
	Value   Value `json:"value"`
	Default Value `json:"default"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
}

type Params struct {
	mu   sync.Mutex
	Data map[string]Element `json:"data"`
}

// New returns an initialized Params object
func New() *Params {
	return &Params{Data: make(map[string]Element)}
}

// Exists checks if a key exists in the Params object
func (p *Params) Exists(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.Data[key]
	return ok
}

// Set a key/value pair. Empty strings and out of range integers fall back to the default.
func (p *Params) Set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	element := p.Data[key]
	element.Value = enforceAny(value, element.Min, element.Max, element.Default)
	p.Data[key] = element
}

// SetConstraint sets a min and max constraint and a default for a key
func (p *Params) SetConstraint(key string, min, max int, def any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	element := p.Data[key]
	element.Default = Value(fmt.Sprintf("%v", def))
	element.Min = min
	element.Max = max
	p.Data[key] = element
}

// Get a Value with constraints enforced
func (p *Params) Get(key string) interfaces.ParameterValue {
	p.mu.Lock()
	defer p.mu.Unlock()

	element, ok := p.Data[key]
	if !ok {
		return Value("")
	}
	return enforce(element)
}

// GetMap converts the set to a map[string]string with constraints enforced
func (p *Params) GetMap() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := make(map[string]string, len(p.Data))
	for key, element := range p.Data {
		r[key] = enforce(element).String()
	}
	return r
}

// Keys returns the sorted key names
func (p *Params) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.Data))
	for k := range p.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies stored values from other without touching local constraints
func (p *Params) Merge(other *Params) {
	other.mu.Lock()
	values := make(map[string]Value, len(other.Data))
	for k, e := range other.Data {
		values[k] = e.Value
	}
	other.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	for k, v := range values {
		element := p.Data[k]
		element.Value = v
		p.Data[k] = element
	}
}
