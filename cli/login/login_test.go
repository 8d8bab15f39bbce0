/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/credentials"
	"github.com/FieldForms/FieldForms/common/schema"
)

func newAuthServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case schema.EndpointLogin:
			var req schema.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if status != http.StatusOK {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"status":"retry"}`))
				return
			}
			if req.Secret != "4821" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status":"error"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(schema.APILoginResponse{
				Status: "ok", Code: 200, AccessToken: "acc", RefreshToken: "ref",
				Identity: schema.Identity{ID: "A1", Code: req.Code}})
		case schema.EndpointRefresh:
			var req schema.RefreshRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.RefreshToken != "ref" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status":"expired"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(schema.APITokenRefreshResponse{Status: "ok", Code: 200, AccessToken: "acc2"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestAuthenticate verifies a successful login returns both tokens
func TestAuthenticate(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK)

	resp, err := Authenticate(communications.NewWithURL(srv.URL), credentials.Credentials{Code: "1042", Secret: "4821"})
	require.NoError(t, err)
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "ref", resp.RefreshToken)
	assert.Equal(t, "1042", resp.Identity.Code)
}

// TestAuthenticateFailures verifies wrong secrets and store outages are reported differently
func TestAuthenticateFailures(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK)
	_, err := Authenticate(communications.NewWithURL(srv.URL), credentials.Credentials{Code: "1042", Secret: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	down := newAuthServer(t, http.StatusServiceUnavailable)
	_, err = Authenticate(communications.NewWithURL(down.URL), credentials.Credentials{Code: "1042", Secret: "4821"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try again")
}

// TestRefreshToken verifies a rejected refresh token yields an empty access token
func TestRefreshToken(t *testing.T) {
	srv := newAuthServer(t, http.StatusOK)
	c := communications.NewWithURL(srv.URL)

	assert.Equal(t, "acc2", RefreshToken(c, "ref"))
	assert.Empty(t, RefreshToken(c, "stale"))
}
