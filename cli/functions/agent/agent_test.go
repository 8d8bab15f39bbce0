//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateRequest verifies only changed flags are sent
func TestUpdateRequest(t *testing.T) {
	set := map[string]string{"status": "inactive", "name": ""}
	r, err := UpdateRequest(func(name string) (string, bool) {
		v, ok := set[name]
		return v, ok
	})
	require.NoError(t, err)

	require.NotNil(t, r.Status)
	assert.Equal(t, "inactive", *r.Status)
	require.NotNil(t, r.Name)
	assert.Empty(t, *r.Name)
	assert.Nil(t, r.Code)
	assert.Nil(t, r.Secret)

	_, err = UpdateRequest(func(string) (string, bool) { return "", false })
	assert.Error(t, err)
}
