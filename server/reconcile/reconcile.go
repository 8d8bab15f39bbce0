/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package reconcile derives effective per-agent and aggregate form status
// from an append-only event log. Everything here is pure.
package reconcile

import (
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common/schema"
)

// Status is a per (form, agent) status
type Status string

const (
	NotOpened Status = schema.StatusNotOpened
	Opened    Status = schema.StatusOpened
	Completed Status = schema.StatusCompleted
)

// AggregateStatus summarises all assignees of a form
type AggregateStatus string

const (
	New        AggregateStatus = schema.AggregateNew
	InProgress AggregateStatus = schema.AggregateInProgress
	Done       AggregateStatus = schema.AggregateCompleted
)

// Rank orders statuses. Unknown values rank as not opened.
func Rank(s Status) int {
	switch s {
	case Completed:
		return 2
	case Opened:
		return 1
	default:
		return 0
	}
}

// Max returns the higher ranked status
func Max(a, b Status) Status {
	if Rank(b) > Rank(a) {
		return b
	}
	if Rank(a) == 0 {
		return NotOpened
	}
	return a
}

// ParseStatus maps stored literals, including those written by earlier
// producers, onto a Status. Anything unrecognised is not opened.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "complete", "done", "submitted", "הושלם":
		return Completed
	case "opened", "open", "in-progress", "in_progress", "נפתח":
		return Opened
	default:
		return NotOpened
	}
}

// Event is one stored status event
type Event struct {
	ID          string
	AgentID     string
	Status      Status
	OpenedAt    time.Time
	CompletedAt time.Time
}

// AgentStatus is the effective status of one agent on one form.
// Timestamps are the earliest seen and are for display only.
type AgentStatus struct {
	Status      Status
	OpenedAt    time.Time
	CompletedAt time.Time
	Events      int
}

type Result struct {
	PerAgent  map[string]AgentStatus
	Aggregate AggregateStatus
}

// Reconcile folds events into the effective status of every assigned agent.
// Events for agents that are not assigned are ignored. Rank always wins
// over arrival order so a late "opened" never downgrades "completed".
func Reconcile(assignments []string, events []Event) Result {
	r := Result{PerAgent: make(map[string]AgentStatus, len(assignments))}
	for _, id := range assignments {
		r.PerAgent[id] = AgentStatus{Status: NotOpened}
	}

	for _, e := range events {
		current, ok := r.PerAgent[e.AgentID]
		if !ok {
			continue
		}
		current.Status = Max(current.Status, e.Status)
		current.OpenedAt = earliest(current.OpenedAt, e.OpenedAt)
		current.CompletedAt = earliest(current.CompletedAt, e.CompletedAt)
		current.Events++
		r.PerAgent[e.AgentID] = current
	}

	statuses := make([]Status, 0, len(assignments))
	for _, id := range assignments {
		statuses = append(statuses, r.PerAgent[id].Status)
	}
	r.Aggregate = Aggregate(statuses)
	return r
}

// Aggregate is completed when every status is completed, in progress when
// any has been opened, and new otherwise. An empty list is new.
func Aggregate(statuses []Status) AggregateStatus {
	if len(statuses) == 0 {
		return New
	}

	all := true
	started := false
	for _, s := range statuses {
		rank := Rank(s)
		if rank < 2 {
			all = false
		}
		if rank >= 1 {
			started = true
		}
	}

	switch {
	case all:
		return Done
	case started:
		return InProgress
	default:
		return New
	}
}

// ParseAggregate maps stored aggregate literals, including legacy ones
func ParseAggregate(s string) AggregateStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "הושלם":
		return Done
	case "in-progress", "in_progress", "opened", "נפתח":
		return InProgress
	default:
		return New
	}
}

func earliest(a, b time.Time) time.Time {
	if b.IsZero() {
		return a
	}
	if a.IsZero() || b.Before(a) {
		return b
	}
	return a
}
