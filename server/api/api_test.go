//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/common/null"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/detect"
	"github.com/FieldForms/FieldForms/server/global"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

const formURL = "https://docs.google.com/forms/d/e/1FAIpQLSc/viewform"

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	data     *data.Data
	detector *detect.Detector
	admin    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	conf := global.Memory()
	conf.SC.Set(global.ConfigPenaltyBoxMin, 0)
	conf.SC.Set(global.ConfigPenaltyBoxMax, 0)
	conf.SC.Set(global.ConfigStoreBackend, global.BackendBolt)

	store, err := rowstore.OpenBolt(filepath.Join(t.TempDir(), "api.db"), null.Logger())
	require.NoError(t, err)

	d, err := data.New(conf, store, null.Logger())
	require.NoError(t, err)
	t.Cleanup(d.Close)
	require.NoError(t, d.Init(ctx))

	detector, err := detect.New(
		detect.WithCompletionFunc(d.RecordCompletion),
		detect.WithEndpoint("https://fieldforms.example.com"))
	require.NoError(t, err)

	handler, err := New(conf, d, detector, null.Logger()).Handler()
	require.NoError(t, err)

	_, err = d.SetAdmin(ctx, "admin", "admin-secret")
	require.NoError(t, err)

	ta := &testAPI{t: t, handler: handler, data: d, detector: detector}
	ta.admin = ta.login("admin", "admin-secret")
	return ta
}

// do sends a request and returns the recorder
func (ta *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ta.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ta.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ta *testAPI) login(code, secret string) string {
	ta.t.Helper()
	rec := ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest(code, secret))
	require.Equal(ta.t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[schema.APILoginResponse](ta.t, rec).AccessToken
}

// agent creates an agent through the API and returns it with a token
func (ta *testAPI) agent(code, name string) (schema.Agent, string) {
	ta.t.Helper()
	rec := ta.do(http.MethodPost, schema.EndpointAgents, ta.admin, schema.AgentCreateRequest{
		Code: code, Name: name, Phone: "050-0000000", Secret: "pw-" + code})
	require.Equal(ta.t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decodeBody[schema.APIAgentResponse](ta.t, rec).Data
	return a, ta.login(code, "pw-"+code)
}

func (ta *testAPI) form(agentIDs ...string) schema.Form {
	ta.t.Helper()
	rec := ta.do(http.MethodPost, schema.EndpointForms, ta.admin, schema.FormCreateRequest{
		Title: "Home visit", ExternalURL: formURL, AgentIDs: agentIDs})
	require.Equal(ta.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[schema.APIFormResponse](ta.t, rec).Data
}

func statusOf(f schema.Form, agentID string) string {
	for _, as := range f.Assignments {
		if as.AgentID == agentID {
			return as.Status
		}
	}
	return ""
}

// TestLogin covers successful and failed logins and token verification
func TestLogin(t *testing.T) {
	ta := newTestAPI(t)

	rec := ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest("admin", "admin-secret"))
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[schema.APILoginResponse](t, rec)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, schema.RoleNameAdmin, login.Identity.Role)

	rec = ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest("admin", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication failed", decodeBody[schema.API401](t, rec).Details)

	rec = ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest("", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(http.MethodGet, schema.EndpointVerify, login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decodeBody[schema.APIIdentityResponse](t, rec).Data.Code)

	// A refresh token is not an access token
	rec = ta.do(http.MethodGet, schema.EndpointVerify, login.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(http.MethodPost, schema.EndpointRefresh, "", schema.RefreshRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decodeBody[schema.APITokenRefreshResponse](t, rec)
	rec = ta.do(http.MethodGet, schema.EndpointVerify, refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRoleGate checks that agents cannot reach admin routes
func TestRoleGate(t *testing.T) {
	ta := newTestAPI(t)
	_, token := ta.agent("1001", "Dana")

	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodGet, schema.EndpointAgents, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodGet, schema.EndpointAgents, "junk", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodGet, schema.EndpointAgents, token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodPost, schema.EndpointForms, token,
		schema.FormCreateRequest{Title: "x", ExternalURL: formURL, SendToAll: true}).Code)
	assert.Equal(t, http.StatusOK, ta.do(http.MethodGet, schema.EndpointForms, token, nil).Code)
}

// TestAgentLifecycle creates, updates and deletes an agent
func TestAgentLifecycle(t *testing.T) {
	ta := newTestAPI(t)

	rec := ta.do(http.MethodPost, schema.EndpointAgents, ta.admin, schema.AgentCreateRequest{Code: "2001", Name: "Noa", Phone: "050-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[schema.APIAgentResponse](t, rec)
	assert.Len(t, created.Secret, 6)
	assert.Equal(t, schema.AgentActive, created.Data.Status)

	// The generated secret works once returned
	ta.login("2001", created.Secret)

	rec = ta.do(http.MethodPost, schema.EndpointAgents, ta.admin, schema.AgentCreateRequest{Code: "2001", Name: "Other", Phone: "050-2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ta.do(http.MethodPost, schema.EndpointAgents, ta.admin, schema.AgentCreateRequest{Code: "2002", Phone: "050-2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	name := "Noa Cohen"
	rec = ta.do(http.MethodPut, schema.EndpointAgents+"/"+created.Data.ID, ta.admin, schema.AgentUpdateRequest{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, name, decodeBody[schema.APIAgentResponse](t, rec).Data.Name)

	rec = ta.do(http.MethodGet, schema.EndpointAgents, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[schema.APIAgentListResponse](t, rec).Data.Agents
	require.Len(t, list, 1)
	assert.Equal(t, name, list[0].Name)

	// Admins are only listed on request
	rec = ta.do(http.MethodGet, schema.EndpointAgents+"?all=true", ta.admin, nil)
	assert.Len(t, decodeBody[schema.APIAgentListResponse](t, rec).Data.Agents, 2)

	rec = ta.do(http.MethodDelete, schema.EndpointAgents+"/"+created.Data.ID, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(http.MethodGet, schema.EndpointAgents, ta.admin, nil)
	assert.Empty(t, decodeBody[schema.APIAgentListResponse](t, rec).Data.Agents)

	rec = ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest("2001", created.Secret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(http.MethodDelete, schema.EndpointAgents+"/AGT-missing", ta.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestFormCompletionFlow follows a form from creation to completion by two agents
func TestFormCompletionFlow(t *testing.T) {
	ta := newTestAPI(t)
	a1, t1 := ta.agent("1001", "Dana")
	a2, t2 := ta.agent("1002", "Yael")
	f := ta.form(a1.ID, a2.ID)
	assert.Equal(t, schema.AggregateNew, f.Status)

	rec := ta.do(http.MethodGet, schema.EndpointForms, t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[schema.APIFormListResponse](t, rec).Data.Forms, 1)

	// Agent 1 opens the form and the external page reports completion
	rec = ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/open", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opened := decodeBody[schema.APIOpenResponse](t, rec)
	assert.Equal(t, schema.StatusOpened, statusOf(opened.Form, a1.ID))
	assert.Equal(t, schema.AggregateInProgress, opened.Form.Status)
	assert.Equal(t, schema.DetectArmed, opened.Session.State)

	session := schema.EndpointDetect + "/" + opened.Session.ID

	rec = ta.do(http.MethodGet, session+"/script", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/javascript")
	assert.Contains(t, rec.Body.String(), opened.Session.StorageKey)

	// Only the owner may act on a session
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodPost, session+"/watch", t2, nil).Code)

	rec = ta.do(http.MethodPost, session+"/watch", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.DetectWatching, decodeBody[schema.APIDetectResponse](t, rec).Data.Session.State)

	rec = ta.do(http.MethodPost, session+"/message", t1, schema.DetectMessageRequest{
		Origin: "https://evil.example.com", Type: schema.CompletionMessageType})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A message without a completion signal changes nothing
	rec = ta.do(http.MethodPost, session+"/message", t1, schema.DetectMessageRequest{
		Origin: "https://docs.google.com", URL: formURL})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[schema.APIDetectResponse](t, rec).Data.Completed)

	rec = ta.do(http.MethodPost, session+"/message", t1, schema.DetectMessageRequest{
		Origin: "https://docs.google.com", Type: schema.CompletionMessageType, Payload: json.RawMessage(`{"ok":true}`)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[schema.APIDetectResponse](t, rec).Data.Completed)

	rec = ta.do(http.MethodGet, schema.EndpointForms+"/"+f.ID, t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[schema.APIFormResponse](t, rec).Data
	assert.Equal(t, schema.StatusCompleted, statusOf(got, a1.ID))
	assert.Equal(t, schema.StatusNotOpened, statusOf(got, a2.ID))
	assert.Equal(t, schema.AggregateInProgress, got.Status)

	// Agent 2 confirms manually without ever opening
	rec = ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/submit", t2, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decodeBody[schema.APIFormResponse](t, rec).Data
	assert.Equal(t, schema.StatusCompleted, statusOf(got, a2.ID))
	assert.Equal(t, schema.AggregateCompleted, got.Status)

	rec = ta.do(http.MethodGet, schema.EndpointFormsAgent+"/"+a2.ID, t2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[schema.APIFormListResponse](t, rec).Data.Forms)
}

// TestFormAccess checks that agents only see and act on their own forms
func TestFormAccess(t *testing.T) {
	ta := newTestAPI(t)
	a1, t1 := ta.agent("1001", "Dana")
	_, t2 := ta.agent("1002", "Yael")
	f := ta.form(a1.ID)

	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodGet, schema.EndpointForms+"/"+f.ID, t2, nil).Code)
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/open", t2, nil).Code)
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/submit", t2, nil).Code)
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodGet, schema.EndpointFormsAgent+"/"+a1.ID, t2, nil).Code)
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, schema.EndpointForms+"/FRM-missing", t1, nil).Code)

	rec := ta.do(http.MethodGet, schema.EndpointForms, t2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[schema.APIFormListResponse](t, rec).Data.Forms)

	// Pending forms may be requested by code as well as by id
	rec = ta.do(http.MethodGet, schema.EndpointFormsAgent+"/1001", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[schema.APIFormListResponse](t, rec).Data.Forms, 1)
}

// TestFormAdmin covers validation, updates, the status report and soft delete
func TestFormAdmin(t *testing.T) {
	ta := newTestAPI(t)
	a1, _ := ta.agent("1001", "Dana")
	a2, _ := ta.agent("1002", "Yael")

	rec := ta.do(http.MethodPost, schema.EndpointForms, ta.admin, schema.FormCreateRequest{Title: "Bad", ExternalURL: "ftp://x", AgentIDs: []string{a1.ID}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ta.do(http.MethodPost, schema.EndpointForms, ta.admin, schema.FormCreateRequest{Title: "All", ExternalURL: formURL, SendToAll: true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	all := decodeBody[schema.APIFormResponse](t, rec).Data
	assert.Len(t, all.Assignments, 2)

	title := "Follow-up visit"
	rec = ta.do(http.MethodPut, schema.EndpointForms+"/"+all.ID, ta.admin, schema.FormUpdateRequest{Title: &title, AgentIDs: []string{a2.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[schema.APIFormResponse](t, rec).Data
	assert.Equal(t, title, updated.Title)
	require.Len(t, updated.Assignments, 1)
	assert.Equal(t, a2.ID, updated.Assignments[0].AgentID)

	rec = ta.do(http.MethodGet, schema.EndpointFormsStatus, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[schema.APIStatusReportResponse](t, rec).Data
	require.Len(t, report.Rows, 1)
	assert.Equal(t, schema.StatusNotOpened, report.Rows[0].Status)

	rec = ta.do(http.MethodDelete, schema.EndpointForms+"/"+all.ID, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, schema.EndpointForms+"/"+all.ID, ta.admin, nil).Code)

	rec = ta.do(http.MethodGet, schema.EndpointForms, ta.admin, nil)
	assert.Empty(t, decodeBody[schema.APIFormListResponse](t, rec).Data.Forms)
}

// TestStorageSignal completes a form through a storage key change
func TestStorageSignal(t *testing.T) {
	ta := newTestAPI(t)
	a1, t1 := ta.agent("1001", "Dana")
	f := ta.form(a1.ID)

	rec := ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/open", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opened := decodeBody[schema.APIOpenResponse](t, rec)

	// Unknown keys and removals are not errors
	rec = ta.do(http.MethodPost, schema.EndpointDetectStorage, t1, schema.DetectStorageRequest{Key: "form_completion_other", Value: "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[schema.APIDetectResponse](t, rec).Data.Completed)

	rec = ta.do(http.MethodPost, schema.EndpointDetectStorage, t1, schema.DetectStorageRequest{Key: opened.Session.StorageKey})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[schema.APIDetectResponse](t, rec).Data.Completed)

	rec = ta.do(http.MethodPost, schema.EndpointDetectStorage, t1, schema.DetectStorageRequest{Key: opened.Session.StorageKey, Value: `{"done":true}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[schema.APIDetectResponse](t, rec).Data.Completed)

	rec = ta.do(http.MethodGet, schema.EndpointForms+"/"+f.ID, t1, nil)
	assert.Equal(t, schema.StatusCompleted, statusOf(decodeBody[schema.APIFormResponse](t, rec).Data, a1.ID))
}

// TestLogoutCancelsSessions checks that logout closes the caller's sessions
func TestLogoutCancelsSessions(t *testing.T) {
	ta := newTestAPI(t)
	a1, t1 := ta.agent("1001", "Dana")
	f := ta.form(a1.ID)

	rec := ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/open", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opened := decodeBody[schema.APIOpenResponse](t, rec)
	assert.Equal(t, 1, ta.detector.Live())

	require.Equal(t, http.StatusOK, ta.do(http.MethodPost, schema.EndpointLogout, t1, nil).Code)
	assert.Equal(t, 0, ta.detector.Live())

	rec = ta.do(http.MethodPost, schema.EndpointDetect+"/"+opened.Session.ID+"/watch", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.DetectCancelled, decodeBody[schema.APIDetectResponse](t, rec).Data.Session.State)

	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodDelete, schema.EndpointDetect+"/DS-missing", t1, nil).Code)
}

// TestStoreUnavailable checks that reads degrade to empty data and writes ask for a retry
func TestStoreUnavailable(t *testing.T) {
	ta := newTestAPI(t)
	a1, t1 := ta.agent("1001", "Dana")
	f := ta.form(a1.ID)
	ta.data.Close()

	rec := ta.do(http.MethodGet, schema.EndpointForms, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[schema.APIFormListResponse](t, rec)
	assert.Empty(t, list.Data.Forms)
	assert.Equal(t, unavailableDetails, list.Details)

	rec = ta.do(http.MethodGet, schema.EndpointFormsStatus, ta.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[schema.APIStatusReportResponse](t, rec).Data.Rows)

	rec = ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/open", t1, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, schema.APIStatusRetry, decodeBody[schema.API503](t, rec).Status)

	rec = ta.do(http.MethodPost, schema.EndpointForms+"/"+f.ID+"/submit", t1, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ta.do(http.MethodPost, schema.EndpointLogin, "", schema.NewLoginRequest("1001", "pw-1001"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ta.do(http.MethodGet, schema.EndpointHealth, "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, StoreMissing, decodeBody[schema.APIHealthResponse](t, rec).Data.Store)
}

// TestHealthAndSwagger covers the unauthenticated service endpoints
func TestHealthAndSwagger(t *testing.T) {
	ta := newTestAPI(t)

	rec := ta.do(http.MethodGet, schema.EndpointHealth, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[schema.APIHealthResponse](t, rec)
	assert.Equal(t, StoreHealthy, health.Data.Store)
	assert.Equal(t, global.BackendBolt, health.Data.Backend)

	rec = ta.do(http.MethodGet, schema.EndpointSwagger, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/forms/{id}/open")

	rec = ta.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
