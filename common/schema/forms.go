/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

import (
	"encoding/json"
	"time"
)

// ClientMeta is optional free text describing who the form is about
type ClientMeta struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Ref   string `json:"ref,omitempty"`
}

// Assignment is one agent's effective status on a form
type Assignment struct {
	AgentID     string     `json:"agent_id"`
	AgentCode   string     `json:"agent_code,omitempty"`
	AgentName   string     `json:"agent_name,omitempty"`
	Status      string     `json:"status" example:"opened"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Form struct {
	ID          string       `json:"id" example:"FRM-01927f3c-5d7a-7b1e-9a2d-3c4b5a6d7e8f"`
	Title       string       `json:"title" example:"Home visit"`
	ExternalURL string       `json:"external_url" example:"https://docs.google.com/forms/d/e/abc/viewform"`
	Client      ClientMeta   `json:"client"`
	Assignments []Assignment `json:"assignments"`
	State       string       `json:"state" example:"active"`
	Status      string       `json:"status" example:"in-progress"`
	CreatedAt   time.Time    `json:"created_at"`
	CreatedBy   string       `json:"created_by,omitempty"`
}

type FormList struct {
	Forms []Form `json:"forms"`
}

// FormCreateRequest creates a form. FormType is accepted as an alias for Title.
type FormCreateRequest struct {
	Title       string     `json:"title" example:"Home visit"`
	FormType    string     `json:"form_type,omitempty"`
	ExternalURL string     `json:"external_url"`
	Client      ClientMeta `json:"client"`
	AgentIDs    []string   `json:"agent_ids,omitempty"`
	SendToAll   bool       `json:"send_to_all,omitempty"`
}

// FormUpdateRequest changes only the fields that are present.
// AgentIDs replaces the assignee list; existing statuses of kept agents survive.
type FormUpdateRequest struct {
	Title       *string     `json:"title,omitempty"`
	ExternalURL *string     `json:"external_url,omitempty"`
	Client      *ClientMeta `json:"client,omitempty"`
	AgentIDs    []string    `json:"agent_ids,omitempty"`
	SendToAll   bool        `json:"send_to_all,omitempty"`
}

// SubmitRequest is a manual completion confirmation with an optional payload
type SubmitRequest struct {
	Payload json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

// StatusReportRow is one (form, active agent) pair
type StatusReportRow struct {
	FormID      string     `json:"form_id"`
	Title       string     `json:"title"`
	AgentID     string     `json:"agent_id"`
	AgentCode   string     `json:"agent_code"`
	AgentName   string     `json:"agent_name"`
	Status      string     `json:"status"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type StatusReport struct {
	Rows   []StatusReportRow `json:"rows"`
	Totals map[string]int    `json:"totals"`
}
