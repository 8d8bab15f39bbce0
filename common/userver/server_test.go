/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/common/null"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	s, err := New(
		WithLogger(null.Logger()),
		WithCORSOrigins([]string{"https://app.example.com/"}))
	require.NoError(t, err)

	deny := func(string, string) (bool, []byte, any) { return false, []byte(`{"status":"error"}`), nil }
	allow := func(ip, _ string) (bool, []byte, any) { return true, nil, ip }

	s.AddRoute(Route{
		Name:    "echo",
		Methods: []string{http.MethodGet},
		Pattern: "/echo/{id}",
		JHandler: func(req *http.Request) JResponse {
			return JResponse{HTTPCode: http.StatusOK, JSONData: Response{Status: "ok", Details: GetParam(req, "id"), Data: AuthDetails(req)}}
		},
		AuthFunc: allow})

	s.AddRoute(Route{
		Name:     "secret",
		Methods:  []string{http.MethodGet},
		Pattern:  "/secret",
		JHandler: func(*http.Request) JResponse { return JResponse{HTTPCode: http.StatusOK} },
		AuthFunc: deny})

	h, err := s.Router()
	require.NoError(t, err)
	return h
}

// TestJHandlerRoute verifies path variables and auth details reach the handler
func TestJHandlerRoute(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/echo/abc", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.Details)
	assert.Equal(t, "10.0.0.1", resp.Data)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

// TestAuthFailure verifies the failure body and status from a rejecting AuthFunc
func TestAuthFailure(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secret", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":"error"}`, rec.Body.String())
}

// TestCORS verifies allowed origins are echoed and preflight is answered
func TestCORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/echo/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/echo/1", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/echo/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

// TestNotFound verifies the catch-all JSON 404
func TestNotFound(t *testing.T) {
	h := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
