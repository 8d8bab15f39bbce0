/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// Per (form, agent) status, ordered by rank
const (
	StatusNotOpened = "not-opened"
	StatusOpened    = "opened"
	StatusCompleted = "completed"
)

// Form level aggregate status
const (
	AggregateNew        = "new"
	AggregateInProgress = "in-progress"
	AggregateCompleted  = "completed"
)

// Agent lifecycle
const (
	AgentActive   = "active"
	AgentInactive = "inactive"
	AgentDeleted  = "deleted"
)

// Form lifecycle
const (
	FormActive  = "active"
	FormDeleted = "deleted"
)
