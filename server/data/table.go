/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"fmt"
	"strings"
	"time"
)

// Column is a named column. Aliases are names used by earlier
// layouts and are only recognised by migration.
type Column struct {
	Name    string
	Aliases []string
}

// Table is the canonical layout of one sheet. Column order is part of
// the stored format and is never inferred at runtime.
type Table struct {
	Name    string
	Columns []Column
}

// Column indexes of the agents table
const (
	agentColID = iota
	agentColRole
	agentColCode
	agentColName
	agentColSecret
	agentColPhone
	agentColEmail
	agentColStatus
	agentColCreatedAt
	agentColCreatedBy
	agentWidth
)

// Column indexes of the forms table
const (
	formColID = iota
	formColAgentID
	formColTitle
	formColClientName
	formColClientPhone
	formColClientRef
	formColStatus
	formColURL
	formColCreatedAt
	formColCreatedBy
	formColAssigned
	formColStatuses
	formWidth
)

// Column indexes of the events table
const (
	eventColID = iota
	eventColFormID
	eventColAgentID
	eventColStatus
	eventColOpenedAt
	eventColCompletedAt
	eventColEmail
	eventColPayload
	eventWidth
)

func agentsTable(name string) Table {
	return Table{Name: name, Columns: []Column{
		{Name: "ID"},
		{Name: "Role"},
		{Name: "AgentCode", Aliases: []string{"Code"}},
		{Name: "Name", Aliases: []string{"AgentName"}},
		{Name: "Password", Aliases: []string{"Secret", "PIN"}},
		{Name: "Phone"},
		{Name: "Email"},
		{Name: "Status"},
		{Name: "CreatedAt", Aliases: []string{"Created"}},
		{Name: "CreatedBy"},
	}}
}

func formsTable(name string) Table {
	return Table{Name: name, Columns: []Column{
		{Name: "ID", Aliases: []string{"FormID"}},
		{Name: "AgentID"},
		{Name: "FormType", Aliases: []string{"Title"}},
		{Name: "ClientName"},
		{Name: "ClientPhone"},
		{Name: "ClientID", Aliases: []string{"ClientRef"}},
		{Name: "Status"},
		{Name: "FormURL", Aliases: []string{"URL", "FormLink"}},
		{Name: "CreatedAt", Aliases: []string{"Created"}},
		{Name: "CreatedBy"},
		{Name: "AssignedAgents"},
		{Name: "AgentStatuses"},
	}}
}

func eventsTable(name string) Table {
	return Table{Name: name, Columns: []Column{
		{Name: "ResponseID", Aliases: []string{"ID"}},
		{Name: "FormID"},
		{Name: "AgentID"},
		{Name: "Status"},
		{Name: "StartedAt", Aliases: []string{"OpenedAt"}},
		{Name: "CompletedAt"},
		{Name: "AgentEmail", Aliases: []string{"Email"}},
		{Name: "ResponseData", Aliases: []string{"Payload", "Responses"}},
	}}
}

// Header returns the canonical header row
func (t Table) Header() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Name
	}
	return h
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// Check returns nil if header is the canonical header. Anything else,
// including a reordered or partial header, is ErrSchemaMismatch.
func (t Table) Check(header []string) error {
	h := trimHeader(header)
	canonical := t.Header()
	if len(h) != len(canonical) {
		return fmt.Errorf("%w: table %s has %d columns, expected %d", ErrSchemaMismatch, t.Name, len(h), len(canonical))
	}
	for i := range canonical {
		if h[i] != canonical[i] {
			return fmt.Errorf("%w: table %s column %d is %q, expected %q", ErrSchemaMismatch, t.Name, i, h[i], canonical[i])
		}
	}
	return nil
}

// mapping returns, for every canonical column, its index in header or -1.
// Unknown or repeated header names are an error.
func (t Table) mapping(header []string) ([]int, error) {
	lookup := make(map[string]int)
	for i, c := range t.Columns {
		lookup[strings.ToLower(c.Name)] = i
		for _, a := range c.Aliases {
			lookup[strings.ToLower(a)] = i
		}
	}

	m := make([]int, len(t.Columns))
	for i := range m {
		m[i] = -1
	}

	for pos, name := range trimHeader(header) {
		if name == "" {
			continue
		}
		i, ok := lookup[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: table %s has unknown column %q", ErrSchemaMismatch, t.Name, name)
		}
		if m[i] != -1 {
			return nil, fmt.Errorf("%w: table %s has column %q twice", ErrSchemaMismatch, t.Name, t.Columns[i].Name)
		}
		m[i] = pos
	}
	return m, nil
}

// cell returns a trimmed cell or an empty string past the end of the row
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// splitList splits a comma list, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"2006-01-02",
}

// parseTime accepts the formats written by this and earlier producers.
// Anything else is the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
