/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package login

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/FieldForms/FieldForms/cli/communications"
	"github.com/FieldForms/FieldForms/cli/credentials"
	"github.com/FieldForms/FieldForms/cli/global"
	"github.com/FieldForms/FieldForms/common/schema"
)

// Login does its own error handling to avoid a lot of duplication
func Login() string {

	// If we already have an access token, return it
	accessToken := credentials.GetAccessToken()
	if accessToken != "" {
		return accessToken
	}

	// If we have a refresh token, try to refresh the access token
	refreshToken := credentials.GetRefreshToken()
	if refreshToken != "" {
		token := RefreshToken(communications.New(), refreshToken)
		if token != "" {
			credentials.SetAccessToken(token)
			return token
		}
		// Refresh failed, so we need to log in again
		credentials.RefreshExpired()
	}

	creds, err := credentials.Load()
	if err != nil {
		fatal(err)
	}
	global.ServerURL = creds.Server

	loginResp, err := Authenticate(communications.New(), creds)
	if err != nil {
		fatal(err)
	}

	// Save the tokens
	credentials.SetAccessToken(loginResp.AccessToken)
	credentials.SetRefreshToken(loginResp.RefreshToken)
	return loginResp.AccessToken
}

// Authenticate exchanges a code and secret for a token pair
func Authenticate(c global.Comms, creds credentials.Credentials) (schema.APILoginResponse, error) {
	var loginResp schema.APILoginResponse

	code, data, err := c.Post(schema.EndpointLogin, schema.NewLoginRequest(creds.Code, creds.Secret))
	if err != nil {
		return loginResp, err
	}

	switch code {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		return loginResp, errors.New("the server cannot reach its store, try again shortly")
	default:
		return loginResp, fmt.Errorf("login failed with HTTP status %d", code)
	}

	if err = json.Unmarshal(data, &loginResp); err != nil {
		return loginResp, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if loginResp.AccessToken == "" || loginResp.RefreshToken == "" {
		return loginResp, errors.New("server returned an empty token")
	}
	return loginResp, nil
}

func fatal(err error) {
	fmt.Printf("Error: %s\n\n", err.Error())
	os.Exit(1)
}

// RefreshToken returns a new access token or "" if the refresh token is
// no longer accepted
func RefreshToken(c global.Comms, rToken string) string {

	// Post the refresh request to the server
	code, data, err := c.Post(schema.EndpointRefresh, schema.RefreshRequest{RefreshToken: rToken})
	if err != nil {
		fmt.Printf("Token refresh failed: %s\n", err.Error())
		return ""
	}

	if code != http.StatusOK {
		// The refresh token was invalid or the agent was deactivated
		return ""
	}

	var refreshResp schema.APITokenRefreshResponse
	if err = json.Unmarshal(data, &refreshResp); err != nil {
		fmt.Printf("Token refresh failed: %s\n", err.Error())
		return ""
	}

	return refreshResp.AccessToken
}
