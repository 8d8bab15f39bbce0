/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

import "time"

// Agent is the public view of an agent row. The credential secret is never included.
type Agent struct {
	ID        string    `json:"id" example:"AGT-0b6d6d0e-3d0e-4a51-9d55-8a8f3b7e5c10"`
	Code      string    `json:"code" example:"1042"`
	Name      string    `json:"name" example:"Dana Levi"`
	Phone     string    `json:"phone" example:"050-1234567"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role" example:"agent"`
	Status    string    `json:"status" example:"active"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// AgentList is used for lists of agents
// swagger:model AgentList
type AgentList struct {
	Agents []Agent `json:"agents"`
}

// AgentCreateRequest creates an agent. Secret is generated when omitted.
type AgentCreateRequest struct {
	Code   string `json:"code" example:"1042"`
	Name   string `json:"name" example:"Dana Levi"`
	Phone  string `json:"phone" example:"050-1234567"`
	Email  string `json:"email,omitempty"`
	Secret string `json:"secret,omitempty"`
	Role   string `json:"role,omitempty" example:"agent"`
}

// AgentUpdateRequest changes only the fields that are present
type AgentUpdateRequest struct {
	Code   *string `json:"code,omitempty"`
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Secret *string `json:"secret,omitempty"`
	Status *string `json:"status,omitempty" example:"inactive"`
}
