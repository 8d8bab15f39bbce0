//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
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
	"github.com/FieldForms/FieldForms/server/reconcile"
)

func assignedTo(f schema.Form, agentID string) bool {
	for _, as := range f.Assignments {
		if as.AgentID == agentID {
			return true
		}
	}
	return false
}

// formList answers a form listing, turning an unavailable store into an empty list
func (a *API) formList(forms []schema.Form, err error, what string, logFields *fields.Fields) userver.JResponse {
	response := schema.APIFormListResponse{Status: schema.APIStatusOK, Code: http.StatusOK}
	if err != nil {
		if !a.unavailable(err, what, logFields) {
			return a.failure(err, what, logFields)
		}
		response.Details = unavailableDetails
	}
	if forms == nil {
		forms = []schema.Form{}
	}
	response.Data = schema.FormList{Forms: forms}
	return userver.JResponse{HTTPCode: http.StatusOK, JSONData: response}
}

// @Summary List forms
// @Description Admins receive every active form. Agents receive the forms assigned to them.
// @Description Each form carries per-agent statuses and the aggregate status.
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.APIFormListResponse
// @Failure 401 {object} schema.API401
// @Router /forms [get]
func (a *API) getForms(req *http.Request) userver.JResponse {
	auth := GetAuthDetails(req)
	logFields := requestFields(req)

	if auth.IsAdmin() {
		forms, err := a.data.ListForms(req.Context())
		return a.formList(forms, err, "list forms", logFields)
	}
	forms, err := a.data.FormsForAgent(req.Context(), auth.ID, false)
	return a.formList(forms, err, "list agent forms", logFields)
}

// @Summary Pending forms of an agent
// @Description Forms assigned to the agent that the agent has not completed.
// @Description Agents may only ask about themselves.
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Param agentId path string true "Agent ID or code"
// @Success 200 {object} schema.APIFormListResponse
// @Failure 403 {object} schema.API403
// @Router /forms/agent/{agentId} [get]
func (a *API) getFormsAgent(req *http.Request) userver.JResponse {
	auth := GetAuthDetails(req)
	logFields := requestFields(req)
	agentID := userver.GetParam(req, "agentId")

	if !auth.IsAdmin() && agentID != auth.ID && agentID != auth.Identity.Code {
		a.logger.Warning(2201, "pending forms of another agent requested", logFields.Append(fields.NewField("agent", agentID)))
		return forbidden()
	}

	forms, err := a.data.FormsForAgent(req.Context(), agentID, true)
	return a.formList(forms, err, "pending forms", logFields)
}

// @Summary Status report
// @Description One row per form and active assigned agent with the effective status
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.APIStatusReportResponse
// @Failure 401 {object} schema.API401
// @Router /forms/status [get]
func (a *API) getFormsStatus(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	response := schema.APIStatusReportResponse{Status: schema.APIStatusOK, Code: http.StatusOK}

	report, err := a.data.StatusReport(req.Context())
	if err != nil {
		if !a.unavailable(err, "status report", logFields) {
			return a.failure(err, "status report", logFields)
		}
		response.Details = unavailableDetails
		report = schema.StatusReport{Rows: []schema.StatusReportRow{}, Totals: map[string]int{}}
	}

	response.Data = report
	return userver.JResponse{HTTPCode: http.StatusOK, JSONData: response}
}

// @Summary Get a form
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} schema.APIFormResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Router /forms/{id} [get]
func (a *API) getForm(req *http.Request) userver.JResponse {
	auth := GetAuthDetails(req)
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")

	form, err := a.data.GetForm(req.Context(), id)
	if err != nil {
		return a.failure(err, "get form", logFields.Append(fields.NewField("form", id)))
	}
	if !auth.IsAdmin() && !assignedTo(form, auth.ID) {
		return a.failure(data.ErrForbidden, "get form", logFields.Append(fields.NewField("form", id)))
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIFormResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: form}}
}

// @Summary Create a form
// @Description Creates a form assigned to the listed agents, or to every active
// @Description non-admin agent when sendToAll is set
// @Tags Forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param form body schema.FormCreateRequest true "New form"
// @Success 201 {object} schema.APIFormResponse
// @Failure 400 {object} schema.API400
// @Failure 503 {object} schema.API503
// @Router /forms [post]
func (a *API) postForm(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	var request schema.FormCreateRequest
	if err := decode(req, &request); err != nil {
		return badRequest("invalid form request")
	}

	form, err := a.data.CreateForm(req.Context(), request, GetAuthDetails(req).Identity.Code)
	if err != nil {
		return a.failure(err, "create form", logFields)
	}

	a.logger.Info(2202, "form created", logFields.Append(
		fields.NewField("form", form.ID),
		fields.NewField("assignees", len(form.Assignments))))

	return userver.JResponse{
		HTTPCode: http.StatusCreated,
		JSONData: schema.APIFormResponse{Status: schema.APIStatusOK, Code: http.StatusCreated, Data: form}}
}

// @Summary Update a form
// @Description Updates title, URL, client details and assignees. Statuses of
// @Description agents that remain assigned are kept.
// @Tags Forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param form body schema.FormUpdateRequest true "Fields to change"
// @Success 200 {object} schema.APIFormResponse
// @Failure 400 {object} schema.API400
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /forms/{id} [put]
func (a *API) putForm(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")
	logFields.Append(fields.NewField("form", id))

	var request schema.FormUpdateRequest
	if err := decode(req, &request); err != nil {
		return badRequest("invalid form request")
	}

	form, err := a.data.UpdateForm(req.Context(), id, request)
	if err != nil {
		return a.failure(err, "update form", logFields)
	}

	a.logger.Info(2203, "form updated", logFields)
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIFormResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: form}}
}

// @Summary Delete a form
// @Description Soft deletes a form. Its row and events are kept.
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /forms/{id} [delete]
func (a *API) deleteForm(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")
	logFields.Append(fields.NewField("form", id))

	if err := a.data.DeleteForm(req.Context(), id); err != nil {
		return a.failure(err, "delete form", logFields)
	}

	a.logger.Info(2204, "form deleted", logFields)
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIGenericResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Details: "form deleted"}}
}

// @Summary Open a form
// @Description Records that the caller opened the form and arms completion detection
// @Tags Forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} schema.APIOpenResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /forms/{id}/open [post]
func (a *API) postOpen(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")
	logFields.Append(fields.NewField("form", id))

	auth, err := identityOf(req)
	if err != nil {
		return failureResponse
	}

	form, err := a.data.RecordStatus(req.Context(), id, auth.ID, reconcile.Opened, nil)
	if err != nil {
		return a.failure(err, "open form", logFields)
	}

	session, err := a.detector.Arm(form.ID, auth.ID, form.ExternalURL)
	if err != nil {
		return a.failure(err, "open form", logFields)
	}

	a.logger.Info(2205, "form opened", logFields.Append(fields.NewField("session", session.ID)))
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIOpenResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Form: form, Session: session}}
}

// @Summary Confirm a submission
// @Description Manual confirmation. Records completed for the caller only and
// @Description closes the caller's detection sessions for the form.
// @Tags Forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param submission body schema.SubmitRequest false "Optional response payload"
// @Success 200 {object} schema.APIFormResponse
// @Failure 403 {object} schema.API403
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /forms/{id}/submit [post]
func (a *API) postSubmit(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")
	logFields.Append(fields.NewField("form", id))

	auth, err := identityOf(req)
	if err != nil {
		return failureResponse
	}

	// The payload is optional
	var request schema.SubmitRequest
	if err = decode(req, &request); err != nil && req.ContentLength > 0 {
		return badRequest("invalid submission")
	}

	if _, err = a.detector.Confirm(req.Context(), id, auth.ID, request.Payload); err != nil {
		return a.failure(err, "submit form", logFields)
	}

	a.logger.Info(2206, "form submission confirmed", logFields)

	form, err := a.data.GetForm(req.Context(), id)
	if err != nil {
		// The completion is stored, only the refreshed view is missing
		if errors.Is(err, data.ErrNotFound) {
			return a.failure(err, "submit form", logFields)
		}
		return userver.JResponse{
			HTTPCode: http.StatusOK,
			JSONData: schema.APIGenericResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Details: "submission recorded"}}
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIFormResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: form}}
}
