/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// LoginRequest is sent by a user to authenticate
type LoginRequest struct {
	Code   string `json:"code" example:"1042"`
	Secret string `json:"secret" example:"4821"`
}

func NewLoginRequest(code, secret string) LoginRequest {
	return LoginRequest{Code: code, Secret: secret}
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Identity is the authenticated principal carried by a token
type Identity struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Role string `json:"role" example:"agent"`
}
