/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package interfaces

import "time"

// Config is a file backed collection of named parameter sets
type Config interface {
	Load(string) error
	Save(string) error
	Checkpoint() error
	File() string
	NewSet(string) Parameters
	GetSet(s string) Parameters
	Dump() (string, error)
}

// Parameters is a single named set of constrained key/value pairs
type Parameters interface {
	Exists(key string) bool
	Set(key string, value any)
	SetConstraint(key string, min, max int, def any)
	Get(key string) ParameterValue
	GetMap() map[string]string
	Keys() []string
}

// ParameterValue converts a stored value to the type required by the caller
type ParameterValue interface {
	String() string
	Bytes() []byte
	Int() int
	Bool() bool
	Seconds() time.Duration
	Minutes() time.Duration
	SplitList() []string
	SplitMap() map[string]any
}
