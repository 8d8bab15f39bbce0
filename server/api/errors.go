//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/detect"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

// maxBody caps request bodies; form payloads are small
const maxBody = 1 << 20

// failureResponse provides a consistent response to failed authentication attempts
var failureResponse = userver.JResponse{
	HTTPCode: http.StatusUnauthorized,
	JSONData: authFailResponse}

var authFailResponse = schema.API401{
	Status:  schema.APIStatusError,
	Code:    http.StatusUnauthorized,
	Details: "authentication failed"}

// unavailableDetails is returned with empty read results
const unavailableDetails = "store unavailable, showing no data"

// decode reads a JSON request body into v
func decode(req *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// requestFields returns the standard log fields for a request
func requestFields(req *http.Request) *fields.Fields {
	auth := GetAuthDetails(req)
	return fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("id", auth.ID),
		fields.NewField("role", schema.RoleName(auth.Role)))
}

func badRequest(details string) userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusBadRequest,
		JSONData: schema.API400{Status: schema.APIStatusError, Code: http.StatusBadRequest, Details: details}}
}

func forbidden() userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusForbidden,
		JSONData: schema.API403{Status: schema.APIStatusError, Code: http.StatusForbidden, Details: data.ErrForbidden.Error()}}
}

// unavailable reports whether a read failed only because the store is down.
// Such reads are answered with empty data rather than an error.
func (a *API) unavailable(err error, what string, logFields *fields.Fields) bool {
	if !errors.Is(err, rowstore.ErrStoreUnavailable) {
		return false
	}
	a.logger.Warning(2010, fmt.Sprintf("%s: store unavailable, returning empty result", what), logFields.Append(fields.Error(err)))
	return true
}

// failure maps an error from the data or detection layer to a response.
// Classification only uses errors.Is and errors.As.
func (a *API) failure(err error, what string, logFields *fields.Fields) userver.JResponse {
	var code int
	var details string
	var body any

	var validation *data.ValidationError
	switch {
	case errors.Is(err, rowstore.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
		body = schema.API503{Status: schema.APIStatusRetry, Code: code, Details: "store unavailable, try again"}
	case errors.Is(err, data.ErrInvalidCredentials), errors.Is(err, data.ErrInvalidToken):
		return failureResponse
	case errors.Is(err, data.ErrForbidden), errors.Is(err, detect.ErrOriginRejected):
		code = http.StatusForbidden
		details = err.Error()
		body = schema.API403{Status: schema.APIStatusError, Code: code, Details: details}
	case errors.Is(err, data.ErrNotFound), errors.Is(err, detect.ErrNoSession):
		code = http.StatusNotFound
		details = err.Error()
		body = schema.API404{Status: schema.APIStatusError, Code: code, Details: details}
	case errors.Is(err, data.ErrDuplicateCode):
		code = http.StatusConflict
		details = err.Error()
		body = schema.API409{Status: schema.APIStatusError, Code: code, Details: details}
	case errors.As(err, &validation), errors.Is(err, detect.ErrInvalid):
		code = http.StatusBadRequest
		details = err.Error()
		body = schema.API400{Status: schema.APIStatusError, Code: code, Details: details}
	default:
		code = http.StatusInternalServerError
		body = schema.API500{Status: schema.APIStatusError, Code: code, Details: "internal server error"}
	}

	logFields.Append(fields.NewField("code", code), fields.Error(err))
	if code >= http.StatusInternalServerError {
		a.logger.Error(2011, what+" failed", logFields)
	} else {
		a.logger.Info(2012, what+" rejected", logFields)
	}
	return userver.JResponse{HTTPCode: code, JSONData: body}
}
