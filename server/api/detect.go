//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"errors"
	"net/http"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/detect"
)

// ownSession returns the session named in the path if the caller owns it.
// Admins may act on any session.
func (a *API) ownSession(req *http.Request) (schema.DetectionSession, error) {
	auth := GetAuthDetails(req)
	session, err := a.detector.Get(userver.GetParam(req, "session"))
	if err != nil {
		return session, err
	}
	if session.AgentID != auth.ID && !auth.IsAdmin() {
		return schema.DetectionSession{}, data.ErrForbidden
	}
	return session, nil
}

func detectResponse(result schema.DetectResult, details string) userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIDetectResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Details: details, Data: result}}
}

// @Summary Start watching
// @Description Moves an armed session to watching once the external form is displayed
// @Tags Detection
// @Security BearerAuth
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} schema.APIDetectResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Router /detect/{session}/watch [post]
func (a *API) postWatch(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	session, err := a.ownSession(req)
	if err != nil {
		return a.failure(err, "watch", logFields)
	}

	session, err = a.detector.Watch(session.ID)
	if errors.Is(err, detect.ErrClosed) {
		return detectResponse(schema.DetectResult{Session: session}, "session is no longer watching")
	}
	if err != nil {
		return a.failure(err, "watch", logFields)
	}
	return detectResponse(schema.DetectResult{Session: session}, "")
}

// @Summary Relay a message
// @Description Relays a cross-context message from the external form. Messages from
// @Description origins that are not allowed are rejected. Messages that do not signal
// @Description completion leave the session unchanged.
// @Tags Detection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param message body schema.DetectMessageRequest true "Message"
// @Success 200 {object} schema.APIDetectResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /detect/{session}/message [post]
func (a *API) postMessage(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	var request schema.DetectMessageRequest
	if err := decode(req, &request); err != nil {
		return badRequest("invalid message")
	}

	session, err := a.ownSession(req)
	if err != nil {
		return a.failure(err, "detection message", logFields)
	}

	result, err := a.detector.Message(req.Context(), session.ID, request.Origin, detect.Message{
		Type:    request.Type,
		URL:     request.URL,
		Payload: request.Payload,
	})
	if errors.Is(err, detect.ErrClosed) {
		return detectResponse(result, "session is no longer watching")
	}
	if err != nil {
		return a.failure(err, "detection message", logFields.Append(fields.NewField("session", session.ID)))
	}
	return detectResponse(result, "")
}

// @Summary Relay a storage change
// @Description Relays a change of a completion storage key. A key that matches
// @Description none of the caller's sessions is not an error.
// @Tags Detection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param change body schema.DetectStorageRequest true "Storage change"
// @Success 200 {object} schema.APIDetectResponse
// @Failure 503 {object} schema.API503
// @Router /detect/storage [post]
func (a *API) postStorage(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	var request schema.DetectStorageRequest
	if err := decode(req, &request); err != nil || request.Key == "" {
		return badRequest("invalid storage change")
	}

	result, err := a.detector.StorageEvent(req.Context(), GetAuthDetails(req).ID, request.Key, request.Value)
	if errors.Is(err, detect.ErrNoSession) || errors.Is(err, detect.ErrClosed) {
		return detectResponse(result, "no session is watching this key")
	}
	if err != nil {
		return a.failure(err, "storage event", logFields.Append(fields.NewField("key", request.Key)))
	}
	return detectResponse(result, "")
}

// @Summary Cancel detection
// @Description Stops watching without recording anything
// @Tags Detection
// @Security BearerAuth
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Router /detect/{session} [delete]
func (a *API) deleteSession(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	session, err := a.ownSession(req)
	if err != nil {
		return a.failure(err, "cancel detection", logFields)
	}
	if err = a.detector.Cancel(session.ID); err != nil {
		return a.failure(err, "cancel detection", logFields)
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIGenericResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Details: "detection cancelled"}}
}

// @Summary Detection script
// @Description Script to inject into the external form context. It reports
// @Description completion through cross-context messages and local storage.
// @Tags Detection
// @Security BearerAuth
// @Produce application/javascript
// @Param session path string true "Session ID"
// @Success 200 {string} string "script"
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Router /detect/{session}/script [get]
func (a *API) getScript(w http.ResponseWriter, req *http.Request) {
	logFields := requestFields(req)

	session, err := a.ownSession(req)
	if err != nil {
		writeJSON(w, a.failure(err, "detection script", logFields))
		return
	}

	script, err := a.detector.Script(session.ID)
	if err != nil {
		writeJSON(w, a.failure(err, "detection script", logFields))
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(script))
}
