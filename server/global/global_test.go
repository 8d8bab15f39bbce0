//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryDefaults checks that an in-memory configuration has defaults and a JWT key
func TestMemoryDefaults(t *testing.T) {
	conf := Memory()
	assert.Equal(t, BackendSheets, conf.SC.Get(ConfigStoreBackend).String())
	assert.Equal(t, "Sheet2", conf.SC.Get(ConfigFormsSheet).String())
	assert.Equal(t, DefaultDetectionSeconds, conf.SC.Get(ConfigDetectionTTL).Int())
	assert.NotEmpty(t, conf.SP.Get(ConfigJWTKey).String())
	assert.Equal(t, []string{"docs.google.com", "forms.gle"}, conf.SC.Get(ConfigAllowedOrigins).SplitList())
}

// TestApplyEnv checks that FIELDFORMS_ variables override stored values
func TestApplyEnv(t *testing.T) {
	t.Setenv("FIELDFORMS_LISTEN", "0.0.0.0:9000")
	t.Setenv("FIELDFORMS_STORE_BACKEND", BackendBolt)
	t.Setenv("FIELDFORMS_CACHE_TTL", "0")

	conf := Memory()
	require.NoError(t, ApplyEnv(conf.SC))
	assert.Equal(t, "0.0.0.0:9000", conf.SC.Get(ConfigListen).String())
	assert.Equal(t, BackendBolt, conf.SC.Get(ConfigStoreBackend).String())
	assert.Equal(t, 0, conf.SC.Get(ConfigCacheTTL).Int())

	// Unset variables leave defaults alone
	assert.Equal(t, "Sheet1", conf.SC.Get(ConfigAgentsSheet).String())
}

// TestApplyEnvInvalid checks that a malformed number is reported
func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("FIELDFORMS_DETECTION_TTL", "soon")
	require.Error(t, ApplyEnv(Memory().SC))
}
