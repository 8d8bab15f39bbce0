//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewNVPairs verifies parsing, case folding and chaining
func TestNewNVPairs(t *testing.T) {
	p := NewNVPairs([]string{"Name=Dana Levi", "phone = 050", "bare", "ref=a=b"})

	assert.Equal(t, "Dana Levi", p.Get("name"))
	assert.Equal(t, "050", p.Get("PHONE"))
	assert.Equal(t, "a=b", p.Get("ref"))
	assert.Len(t, p.Pairs, 3)

	assert.Equal(t, "true", p.Set("All", "true").Get("all"))
}
