//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package params

import (
	"strconv"
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Ensure Value implements the ParameterValue interface
var _ interfaces.ParameterValue = (*Value)(nil)

type Value string

func (v Value) String() string {
	return string(v)
}

func (v Value) Bytes() []byte {
	return []byte(v)
}

// Int returns 0 for anything that is not an integer
func (v Value) Int() int {
	i, err := strconv.Atoi(strings.TrimSpace(v.String()))
	if err != nil {
		return 0
	}
	return i
}

func (v Value) Bool() bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v.String()))
	if err != nil {
		return false
	}
	return b
}

// Seconds interprets the value as a number of seconds
func (v Value) Seconds() time.Duration {
	return time.Duration(v.Int()) * time.Second
}

// Minutes interprets the value as a number of minutes
func (v Value) Minutes() time.Duration {
	return time.Duration(v.Int()) * time.Minute
}

// SplitList converts a comma-separated Value to a trimmed []string without empties
func (v Value) SplitList() []string {
	var out []string
	for _, part := range strings.Split(v.String(), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitMap converts a comma-separated Value to a set for quick lookup
func (v Value) SplitMap() map[string]any {
	m := make(map[string]any)
	for _, part := range v.SplitList() {
		m[part] = struct{}{}
	}
	return m
}
