//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"net/http"

	"github.com/swaggo/swag/v2"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
	"github.com/FieldForms/FieldForms/server/docs"
	"github.com/FieldForms/FieldForms/server/global"
)

// Store health values
const (
	StoreHealthy = "healthy"
	StoreMissing = "no-store"
)

// writeJSON writes a JResponse from a plain http.Handler
func writeJSON(w http.ResponseWriter, r userver.JResponse) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(r.HTTPCode)
	_ = json.NewEncoder(w).Encode(r.JSONData)
}

// @Summary Store health
// @Description Reports whether the backing store is reachable
// @Tags Service
// @Produce json
// @Success 200 {object} schema.APIHealthResponse
// @Failure 503 {object} schema.APIHealthResponse
// @Router /health [get]
func (a *API) getHealth(req *http.Request) userver.JResponse {
	info := schema.HealthInfo{
		Store:    StoreHealthy,
		Backend:  a.conf.SC.Get(global.ConfigStoreBackend).String(),
		Sessions: a.detector.Live(),
	}
	if info.Backend == global.BackendSheets {
		info.SpreadsheetID = a.conf.SC.Get(global.ConfigSpreadsheetID).String()
	}

	code := http.StatusOK
	status := schema.APIStatusOK
	if _, err := a.data.Health(req.Context()); err != nil {
		a.logger.Warning(2020, "store health check failed", requestFields(req).Append(fields.Error(err)))
		info.Store = StoreMissing
		code = http.StatusServiceUnavailable
		status = schema.APIStatusRetry
	}

	return userver.JResponse{
		HTTPCode: code,
		JSONData: schema.APIHealthResponse{Status: status, Code: code, Data: info}}
}

// getSwagger serves the OpenAPI document
func (a *API) getSwagger(w http.ResponseWriter, req *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		a.logger.Error(2021, "unable to read API document", requestFields(req).Append(fields.Error(err)))
		writeJSON(w, userver.JResponse{
			HTTPCode: http.StatusInternalServerError,
			JSONData: schema.API500{Status: schema.APIStatusError, Code: http.StatusInternalServerError, Details: "API document unavailable"}})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
