/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

// @Summary Agent authentication
// @Description Authenticate an agent code and secret and return access and refresh tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body schema.LoginRequest true "Agent credentials"
// @Success 200 {object} schema.APILoginResponse "Authentication successful"
// @Failure 401 {object} schema.API401 "Authentication failed"
// @Failure 503 {object} schema.API503 "Store unavailable"
// @Router /auth/login [post]
func (a *API) postLogin(req *http.Request) userver.JResponse {

	var loginRequest schema.LoginRequest
	if err := decode(req, &loginRequest); err != nil {
		return failureResponse
	}

	// Information to be logged as fields
	logInfo := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("code", loginRequest.Code))

	// Check for missing required fields
	if loginRequest.Code == "" || loginRequest.Secret == "" {
		a.logger.Error(2861, "login missing required fields", logInfo)
		return failureResponse
	}

	result, err := a.gate.Login(req.Context(), loginRequest.Code, loginRequest.Secret)
	if err != nil {
		if errors.Is(err, rowstore.ErrStoreUnavailable) {
			return a.failure(err, "login", logInfo)
		}
		logInfo.Append(fields.NewField("auth-result", "failed"), fields.Error(err))
		a.logger.Warning(2862, fmt.Sprintf("login failed: %s", err.Error()), logInfo)
		return failureResponse
	}

	logInfo.Append(fields.NewField("auth-result", "success"), fields.NewField("id", result.Identity.ID))
	a.logger.Info(2863, "successful login", logInfo)

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APILoginResponse{
			Status:       schema.APIStatusOK,
			Code:         http.StatusOK,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			Identity:     result.Identity}}
}

// @Summary Refresh token
// @Description Exchanges a refresh token for a new access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param refreshRequest body schema.RefreshRequest true "Refresh request"
// @Success 200 {object} schema.APITokenRefreshResponse
// @Failure 401 {object} schema.API401
// @Router /auth/refresh [post]
func (a *API) postRefresh(req *http.Request) userver.JResponse {

	var refreshRequest schema.RefreshRequest
	if err := decode(req, &refreshRequest); err != nil || refreshRequest.RefreshToken == "" {
		return failureResponse
	}

	logInfo := fields.NewFields(fields.NewField("src_ip", userver.RemoteIP(req)))

	accessToken, err := a.gate.Refresh(req.Context(), refreshRequest.RefreshToken)
	if err != nil {
		if errors.Is(err, rowstore.ErrStoreUnavailable) {
			return a.failure(err, "token refresh", logInfo)
		}
		logInfo.Append(fields.NewField("refresh-result", "failed"), fields.Error(err))
		a.logger.Warning(2865, "access token refresh failed", logInfo)
		return failureResponse
	}

	logInfo.Append(fields.NewField("refresh-result", "success"))
	a.logger.Info(2866, "successful access token refresh", logInfo)

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APITokenRefreshResponse{
			Status:      schema.APIStatusOK,
			Code:        http.StatusOK,
			AccessToken: accessToken}}
}

// @Summary Verify token
// @Description Returns the identity carried by the bearer token
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.APIIdentityResponse
// @Failure 401 {object} schema.API401
// @Router /auth/verify [get]
func (a *API) getVerify(req *http.Request) userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIIdentityResponse{
			Status: schema.APIStatusOK,
			Code:   http.StatusOK,
			Data:   GetAuthDetails(req).Identity}}
}

// @Summary Log out
// @Description Cancels the caller's open detection sessions. Tokens are
// @Description stateless and simply discarded by the client.
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} schema.APIGenericResponse
// @Router /auth/logout [post]
func (a *API) postLogout(req *http.Request) userver.JResponse {
	auth := GetAuthDetails(req)
	n := a.detector.CancelAgent(auth.ID)

	a.logger.Info(2867, "logout", requestFields(req).Append(fields.NewField("sessions_cancelled", n)))

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIGenericResponse{
			Status:  schema.APIStatusOK,
			Code:    http.StatusOK,
			Details: fmt.Sprintf("logged out, %d detection sessions cancelled", n)}}
}

// identityOf is shared by handlers that act for the caller
func identityOf(req *http.Request) (AuthInfo, error) {
	auth := GetAuthDetails(req)
	if !auth.IsAuthenticated() || auth.ID == "" {
		return auth, data.ErrInvalidToken
	}
	return auth, nil
}
