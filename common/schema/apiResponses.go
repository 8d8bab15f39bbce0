/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// There is deliberate redundancy in these structures: specific types give
// swaggo concrete examples. All responses include Status and Code.

// APIAnyResponse can be used by a client to deserialize any API response
type APIAnyResponse struct {
	Status       string `json:"status"`
	Code         int    `json:"code"`
	Details      string `json:"details,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// All 4xx and 5xx responses have the same structure

type API400 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details" example:"external_url: must be an http or https URL"`
}

type API401 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"401"`
	Details string `json:"details" example:"authentication failed"`
}

type API403 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"403"`
	Details string `json:"details" example:"not permitted"`
}

type API404 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"404"`
	Details string `json:"details" example:"object not found"`
}

type API409 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"409"`
	Details string `json:"details" example:"code already in use by an active agent"`
}

type API500 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"500"`
	Details string `json:"details" example:"internal server error"`
}

type API503 struct {
	Status  string `json:"status" example:"retry"`
	Code    int    `json:"code" example:"503"`
	Details string `json:"details" example:"store unavailable, try again"`
}

// APIGenericResponse is used for successful responses without data
type APIGenericResponse struct {
	Status  string `json:"status" example:"ok"`
	Code    int    `json:"code" example:"200"`
	Details string `json:"details,omitempty" example:"request processed"`
}

type APILoginResponse struct {
	Status       string   `json:"status" example:"ok"`
	Code         int      `json:"code" example:"200"`
	AccessToken  string   `json:"access_token,omitempty" example:"jwt"`
	RefreshToken string   `json:"refresh_token,omitempty" example:"jwt"`
	Identity     Identity `json:"identity"`
}

type APITokenRefreshResponse struct {
	Status      string `json:"status" example:"ok"`
	Code        int    `json:"code" example:"200"`
	AccessToken string `json:"access_token,omitempty" example:"jwt"`
}

type APIIdentityResponse struct {
	Status string   `json:"status" example:"ok"`
	Code   int      `json:"code" example:"200"`
	Data   Identity `json:"data"`
}

type APIAgentListResponse struct {
	Status  string    `json:"status" example:"ok"`
	Code    int       `json:"code" example:"200"`
	Details string    `json:"details,omitempty"`
	Data    AgentList `json:"data"`
}

// APIAgentResponse returns one agent. Secret is only set when the server
// generated it, and only in the create response.
type APIAgentResponse struct {
	Status  string `json:"status" example:"ok"`
	Code    int    `json:"code" example:"200"`
	Details string `json:"details,omitempty"`
	Data    Agent  `json:"data"`
	Secret  string `json:"secret,omitempty" example:"482913"`
}

type APIFormResponse struct {
	Status  string `json:"status" example:"ok"`
	Code    int    `json:"code" example:"200"`
	Details string `json:"details,omitempty"`
	Data    Form   `json:"data"`
}

type APIFormListResponse struct {
	Status  string   `json:"status" example:"ok"`
	Code    int      `json:"code" example:"200"`
	Details string   `json:"details,omitempty" example:"store unavailable, showing no data"`
	Data    FormList `json:"data"`
}

type APIStatusReportResponse struct {
	Status  string       `json:"status" example:"ok"`
	Code    int          `json:"code" example:"200"`
	Details string       `json:"details,omitempty"`
	Data    StatusReport `json:"data"`
}

type APIDetectResponse struct {
	Status  string       `json:"status" example:"ok"`
	Code    int          `json:"code" example:"200"`
	Details string       `json:"details,omitempty"`
	Data    DetectResult `json:"data"`
}

// APIOpenResponse is returned when an agent opens a form
type APIOpenResponse struct {
	Status  string           `json:"status" example:"ok"`
	Code    int              `json:"code" example:"200"`
	Form    Form             `json:"form"`
	Session DetectionSession `json:"session"`
}

type HealthInfo struct {
	Store         string `json:"store" example:"healthy"`
	Backend       string `json:"backend" example:"sheets"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
	Sessions      int    `json:"detection_sessions"`
}

type APIHealthResponse struct {
	Status string     `json:"status" example:"ok"`
	Code   int        `json:"code" example:"200"`
	Data   HealthInfo `json:"data"`
}
