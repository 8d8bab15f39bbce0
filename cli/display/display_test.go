/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/cli/credentials"
	"github.com/FieldForms/FieldForms/common/schema"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	color.NoColor = true
	buf := &bytes.Buffer{}
	old := Out
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// TestFormsResp verifies one line per form and the degraded store note
func TestFormsResp(t *testing.T) {
	buf := capture(t)

	body := mustJSON(t, schema.APIFormListResponse{
		Status:  "ok",
		Code:    200,
		Details: "store unavailable, showing no data",
		Data: schema.FormList{Forms: []schema.Form{
			{ID: "F1", Title: "Home visit", Status: schema.AggregateInProgress, CreatedAt: time.Now(),
				Assignments: []schema.Assignment{{AgentID: "A1"}, {AgentID: "A2"}}},
		}},
	})

	require.NoError(t, FormsResp(http.StatusOK, body, nil))
	out := buf.String()
	assert.Contains(t, out, "Note: store unavailable")
	assert.Contains(t, out, "F1")
	assert.Contains(t, out, "Home visit")
	assert.Contains(t, out, "in-progress")
}

// TestStatusReportResp verifies rows and sorted totals
func TestStatusReportResp(t *testing.T) {
	buf := capture(t)
	opened := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	body := mustJSON(t, schema.APIStatusReportResponse{
		Status: "ok",
		Code:   200,
		Data: schema.StatusReport{
			Rows: []schema.StatusReportRow{
				{FormID: "F1", Title: "Visit", AgentCode: "1042", AgentName: "Dana", Status: schema.StatusOpened, OpenedAt: &opened},
			},
			Totals: map[string]int{schema.StatusOpened: 1, schema.StatusCompleted: 0},
		},
	})

	require.NoError(t, StatusReportResp(http.StatusOK, body, nil))
	out := buf.String()
	assert.Contains(t, out, "1042")
	assert.Contains(t, out, opened.Local().Format(timeFormat))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("completed: 0")), bytes.Index(buf.Bytes(), []byte("opened: 1")))
}

// TestServerErrors verifies error statuses become ServerError and expired tokens are cleared
func TestServerErrors(t *testing.T) {
	capture(t)

	err := FormResp(http.StatusServiceUnavailable, []byte(`{"status":"retry","code":503,"details":"store unavailable, try again"}`), nil)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.HTTPCode)
	assert.Contains(t, err.Error(), "try again shortly")

	credentials.SetAccessToken("old")
	err = AgentsResp(http.StatusUnauthorized, []byte(`{"status":"expired","code":401,"details":"authentication failed"}`), nil)
	require.ErrorAs(t, err, &se)
	assert.Empty(t, credentials.GetAccessToken())

	err = AgentResp(0, nil, errors.New("connection refused"))
	assert.ErrorContains(t, err, "connection refused")

	err = GenericResp(http.StatusOK, []byte("not json"), nil)
	assert.ErrorContains(t, err, "unmarshal")
}

// TestAgentResp verifies the generated secret is shown once
func TestAgentResp(t *testing.T) {
	buf := capture(t)

	body := mustJSON(t, schema.APIAgentResponse{
		Status: "ok",
		Code:   201,
		Data:   schema.Agent{ID: "A1", Code: "1042", Name: "Dana", Role: "agent", Status: schema.AgentActive},
		Secret: "482913",
	})
	require.NoError(t, AgentResp(http.StatusCreated, body, nil))
	assert.Contains(t, buf.String(), "Secret:  482913")
}

// TestStatusColours verifies known statuses are coloured and unknown ones pass through
func TestStatusColours(t *testing.T) {
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = true })

	assert.NotEqual(t, schema.StatusCompleted, Status(schema.StatusCompleted))
	assert.Contains(t, Status(schema.StatusCompleted), schema.StatusCompleted)
	assert.Equal(t, "something", Status("something"))
}
