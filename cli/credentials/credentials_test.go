/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// TestFromEnv verifies values are trimmed and the secret is taken as is
func TestFromEnv(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"FF_CODE":   " 1042 ",
		"FF_SECRET": "4821",
		"FF_SERVER": "https://forms.example.com/",
	}), nil)
	require.NoError(t, err)
	assert.Equal(t, Credentials{Code: "1042", Secret: "4821", Server: "https://forms.example.com"}, c)
}

// TestFromEnvMissing verifies each required value is reported
func TestFromEnvMissing(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"FF_CODE": "1042", "FF_SECRET": "x"}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FF_SERVER")

	_, err = FromEnv(env(map[string]string{"FF_SERVER": "http://h", "FF_SECRET": "x"}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FF_CODE")

	_, err = FromEnv(env(map[string]string{"FF_SERVER": "http://h", "FF_CODE": "1"}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FF_SECRET")
}

// TestFromEnvPrompt verifies the prompt is used only when the secret is missing
func TestFromEnvPrompt(t *testing.T) {
	calls := 0
	prompt := func() (string, error) {
		calls++
		return "typed", nil
	}

	c, err := FromEnv(env(map[string]string{"FF_SERVER": "http://h", "FF_CODE": "1"}), prompt)
	require.NoError(t, err)
	assert.Equal(t, "typed", c.Secret)
	assert.Equal(t, 1, calls)

	_, err = FromEnv(env(map[string]string{"FF_SERVER": "http://h", "FF_CODE": "1", "FF_SECRET": "s"}), prompt)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = FromEnv(env(map[string]string{"FF_SERVER": "http://h", "FF_CODE": "1"}),
		func() (string, error) { return "", errors.New("no tty") })
	assert.EqualError(t, err, "no tty")
}

// TestTokens verifies the expiry helpers clear only their own token
func TestTokens(t *testing.T) {
	SetAccessToken("a")
	SetRefreshToken("r")
	AccessExpired()
	assert.Empty(t, GetAccessToken())
	assert.Equal(t, "r", GetRefreshToken())
	RefreshExpired()
	assert.Empty(t, GetRefreshToken())
}
