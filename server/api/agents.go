//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"net/http"
	"strconv"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
)

// @Summary List agents
// @Description Lists agents that are not deleted. Admin accounts are only listed with all=true.
// @Tags Agent management
// @Security BearerAuth
// @Produce json
// @Param all query bool false "Include admin accounts"
// @Success 200 {object} schema.APIAgentListResponse
// @Failure 401 {object} schema.API401
// @Failure 500 {object} schema.API500
// @Router /agents [get]
func (a *API) getAgents(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	all, _ := strconv.ParseBool(req.URL.Query().Get("all"))

	response := schema.APIAgentListResponse{Status: schema.APIStatusOK, Code: http.StatusOK}

	agents, err := a.data.ListAgents(req.Context(), all)
	if err != nil {
		if !a.unavailable(err, "list agents", logFields) {
			return a.failure(err, "list agents", logFields)
		}
		response.Details = unavailableDetails
	}

	response.Data = schema.AgentList{Agents: agents}
	if response.Data.Agents == nil {
		response.Data.Agents = []schema.Agent{}
	}
	return userver.JResponse{HTTPCode: http.StatusOK, JSONData: response}
}

// @Summary Get an agent
// @Tags Agent management
// @Security BearerAuth
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} schema.APIAgentResponse
// @Failure 401 {object} schema.API401
// @Failure 404 {object} schema.API404
// @Router /agents/{id} [get]
func (a *API) getAgent(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	agent, err := a.data.GetAgent(req.Context(), userver.GetParam(req, "id"))
	if err != nil {
		return a.failure(err, "get agent", logFields)
	}

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIAgentResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: agent}}
}

// @Summary Create an agent
// @Description Creates an active agent. When no secret is supplied one is
// @Description generated and returned once in the response.
// @Tags Agent management
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param agent body schema.AgentCreateRequest true "New agent"
// @Success 201 {object} schema.APIAgentResponse
// @Failure 400 {object} schema.API400
// @Failure 409 {object} schema.API409
// @Failure 503 {object} schema.API503
// @Router /agents [post]
func (a *API) postAgent(req *http.Request) userver.JResponse {
	logFields := requestFields(req)

	var request schema.AgentCreateRequest
	if err := decode(req, &request); err != nil {
		return badRequest("invalid agent request")
	}

	agent, secret, err := a.data.CreateAgent(req.Context(), request, GetAuthDetails(req).Identity.Code)
	if err != nil {
		return a.failure(err, "create agent", logFields)
	}

	a.logger.Info(2101, "agent created", logFields.Append(
		fields.NewField("agent", agent.ID),
		fields.NewField("agent_code", agent.Code)))

	return userver.JResponse{
		HTTPCode: http.StatusCreated,
		JSONData: schema.APIAgentResponse{
			Status: schema.APIStatusOK,
			Code:   http.StatusCreated,
			Data:   agent,
			Secret: secret}}
}

// @Summary Update an agent
// @Description Updates the supplied fields. Code uniqueness is enforced.
// @Tags Agent management
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param agent body schema.AgentUpdateRequest true "Fields to change"
// @Success 200 {object} schema.APIAgentResponse
// @Failure 400 {object} schema.API400
// @Failure 404 {object} schema.API404
// @Failure 409 {object} schema.API409
// @Failure 503 {object} schema.API503
// @Router /agents/{id} [put]
func (a *API) putAgent(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")

	var request schema.AgentUpdateRequest
	if err := decode(req, &request); err != nil {
		return badRequest("invalid agent request")
	}

	agent, err := a.data.UpdateAgent(req.Context(), id, request)
	if err != nil {
		return a.failure(err, "update agent", logFields.Append(fields.NewField("agent", id)))
	}

	// An agent that can no longer log in stops watching forms
	if agent.Status != schema.AgentActive {
		a.detector.CancelAgent(agent.ID)
	}

	a.logger.Info(2102, "agent updated", logFields.Append(fields.NewField("agent", id)))
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIAgentResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: agent}}
}

// @Summary Delete an agent
// @Description Soft deletes an agent by setting its status to deleted
// @Tags Agent management
// @Security BearerAuth
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} schema.APIGenericResponse
// @Failure 404 {object} schema.API404
// @Failure 503 {object} schema.API503
// @Router /agents/{id} [delete]
func (a *API) deleteAgent(req *http.Request) userver.JResponse {
	logFields := requestFields(req)
	id := userver.GetParam(req, "id")
	logFields.Append(fields.NewField("agent", id))

	if id == GetAuthDetails(req).ID {
		return badRequest("an admin cannot delete their own account")
	}

	if err := a.data.DeleteAgent(req.Context(), id); err != nil {
		return a.failure(err, "delete agent", logFields)
	}
	a.detector.CancelAgent(id)

	a.logger.Info(2103, "agent deleted", logFields)
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIGenericResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Details: "agent deleted"}}
}
