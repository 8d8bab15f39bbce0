//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

//goland:noinspection ALL
const (
	EndpointLogin         = "/api/v1/auth/login"
	EndpointRefresh       = "/api/v1/auth/refresh"
	EndpointVerify        = "/api/v1/auth/verify"
	EndpointLogout        = "/api/v1/auth/logout"
	EndpointAgents        = "/api/v1/agents"
	EndpointForms         = "/api/v1/forms"
	EndpointFormsStatus   = "/api/v1/forms/status"
	EndpointFormsAgent    = "/api/v1/forms/agent"
	EndpointDetect        = "/api/v1/detect"
	EndpointDetectStorage = "/api/v1/detect/storage"
	EndpointHealth        = "/api/v1/health"
	EndpointSwagger       = "/api/v1/swagger.json"
)

//goland:noinspection ALL
const (
	APIStatusOK      = "ok"
	APIStatusError   = "error"
	APIStatusExpired = "expired"
	APIStatusRetry   = "retry" // the backing store is unavailable, the request may be repeated
)

//goland:noinspection ALL
const (
	TokenPurposeAccess  = "access"
	TokenPurposeRefresh = "refresh"
)
