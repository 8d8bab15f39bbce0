/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

import (
	"encoding/json"
	"time"
)

// Detection session states
const (
	DetectArmed             = "armed"
	DetectWatching          = "watching"
	DetectCompleted         = "completed-detected"
	DetectTimedOut          = "timed-out"
	DetectManuallyConfirmed = "manually-confirmed"
	DetectCancelled         = "cancelled"
)

// CompletionMessageType is the message type posted by the injected script
const CompletionMessageType = "form_submission_complete"

// DetectionSession describes one open attempt of an external form
type DetectionSession struct {
	ID             string    `json:"id" example:"DS-4a1e..."`
	FormID         string    `json:"form_id"`
	AgentID        string    `json:"agent_id"`
	ExternalFormID string    `json:"external_form_id"`
	StorageKey     string    `json:"storage_key" example:"form_completion_1FAIpQLSc"`
	State          string    `json:"state" example:"armed"`
	ArmedAt        time.Time `json:"armed_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	ScriptURL      string    `json:"script_url,omitempty"`
}

// DetectMessageRequest relays a cross-context message observed by the client
type DetectMessageRequest struct {
	Origin  string          `json:"origin" example:"https://docs.google.com"`
	Type    string          `json:"type,omitempty" example:"form_submission_complete"`
	URL     string          `json:"url,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

// DetectStorageRequest relays a storage key change observed by the client
type DetectStorageRequest struct {
	Key   string `json:"key" example:"form_completion_1FAIpQLSc"`
	Value string `json:"value,omitempty"`
}

// DetectResult reports what a signal did to a session
type DetectResult struct {
	Session   DetectionSession `json:"session"`
	Completed bool             `json:"completed"`
}
