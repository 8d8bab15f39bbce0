//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
)

// AuthInfo contains information about the authenticated agent
// and their role. Handlers read it with GetAuthDetails.
type AuthInfo struct {
	ID            string          // authenticated agent id or ""
	Role          int             // authenticated role or RoleNone
	Identity      schema.Identity // claims carried by the token
	Authenticated bool            // flag set if the caller is authenticated
}

func (a AuthInfo) IsAuthenticated() bool {
	return a.Authenticated
}

func (a AuthInfo) IsAdmin() bool {
	return a.Authenticated && a.Role == schema.RoleAdmin
}

// GetAuthDetails returns the AuthInfo attached by NewAuthFunc. Requests
// that were not authenticated return an empty AuthInfo.
func GetAuthDetails(req *http.Request) AuthInfo {
	if info, ok := userver.AuthDetails(req).(AuthInfo); ok {
		return info
	}
	return AuthInfo{}
}

// NewAuthFunc returns an AuthFunc with acceptable roles set
func (a *API) NewAuthFunc(acceptableRoles []int) userver.AuthFunc {
	return func(ip, authHeader string) (bool, []byte, any) {

		authFail := AuthInfo{}

		// Set up log fields of interest
		logFields := fields.NewFields(fields.NewField("src_ip", ip))

		// Fail if either IP or Authorization header is missing
		if ip == "" || authHeader == "" {
			a.logger.Warning(2831, "authentication failure: missing IP or Authorization header", logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			a.logger.Warning(2832, "authentication failure: invalid Authorization header format", logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		// Validate the access token
		identity, err := a.gate.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {

			// Check if the token is expired
			if errors.Is(err, jwt.ErrTokenExpired) {
				a.logger.Info(2833, fmt.Sprintf("authentication expired: %s", err.Error()), logFields)
				return false, a.AuthFailMessage(true), authFail
			}
			a.logger.Warning(2833, fmt.Sprintf("authentication failure: %s", err.Error()), logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		role := schema.ParseRole(identity.Role)
		logFields.Append(fields.NewField("id", identity.ID), fields.NewField("role", identity.Role))

		// Check if the caller's role is in the list of acceptable roles
		for _, acceptableRole := range acceptableRoles {
			if role == acceptableRole {
				a.logger.Debug(2835, "authentication success", logFields)
				return true, nil, AuthInfo{ID: identity.ID, Role: role, Identity: identity, Authenticated: true}
			}
		}

		a.logger.Warning(2836, "authentication failure: role not authorized", logFields)
		return false, a.AuthFailMessage(false), authFail
	}
}

// AuthAdmins is a helper function that returns a list of admin roles
func (a *API) AuthAdmins() []int {
	return []int{schema.RoleAdmin}
}

// AuthAnyRole returns a list of all roles
func (a *API) AuthAnyRole() []int {
	return schema.RolesAll
}

// AuthFailMessage returns a generic response for authentication failures.
// The only variation is for expired tokens.
func (a *API) AuthFailMessage(expired bool) []byte {

	// Start with a standard auth failure response
	msg := authFailResponse

	// If expired, update the response
	if expired {
		msg.Details = "token expired"
		msg.Status = schema.APIStatusExpired
	}

	response, err := json.Marshal(msg)
	if err != nil {
		a.logger.Error(2839, fmt.Sprintf("error marshalling failure response: %s", err.Error()), nil)
		return nil
	}
	return response
}
