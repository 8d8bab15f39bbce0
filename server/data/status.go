/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/global"
	"github.com/FieldForms/FieldForms/server/reconcile"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

// RecordStatus appends a status event for an assigned agent and brings
// the stored status list and aggregate of the form up to date. The
// stored value only ever moves up in rank.
func (d *Data) RecordStatus(ctx context.Context, formID, agentID string, status reconcile.Status, payload []byte) (schema.Form, error) {
	if status != reconcile.Opened && status != reconcile.Completed {
		return schema.Form{}, invalid("status", "must be opened or completed")
	}

	unlock := d.lockForm(formID)
	defer unlock()

	fresh := rowstore.NoCache(ctx)
	s, err := d.load(fresh)
	if err != nil {
		return schema.Form{}, err
	}
	f, ok := s.form(formID)
	if !ok || f.deleted {
		return schema.Form{}, ErrNotFound
	}
	agentID = s.resolve(agentID)
	// Tokens outlive deactivation, so the agent record is checked on every write
	if !f.assigned(agentID) || !s.activeAgent(agentID) {
		return schema.Form{}, ErrForbidden
	}

	now := d.now().UTC()
	current := s.effective(f).PerAgent[agentID]
	event := reconcile.Event{
		ID:       "RESP-" + uuid.Must(uuid.NewV7()).String(),
		AgentID:  agentID,
		Status:   status,
		OpenedAt: now,
	}
	if !current.OpenedAt.IsZero() {
		event.OpenedAt = current.OpenedAt
	}
	if status == reconcile.Completed {
		event.CompletedAt = now
	}

	row := make([]string, eventWidth)
	row[eventColID] = event.ID
	row[eventColFormID] = formID
	row[eventColAgentID] = agentID
	row[eventColStatus] = string(status)
	row[eventColOpenedAt] = formatTime(event.OpenedAt)
	row[eventColCompletedAt] = formatTime(event.CompletedAt)
	row[eventColEmail] = d.agentEmail(s.byID[agentID])
	row[eventColPayload] = payloadCell(payload)

	if err = d.store.Append(ctx, d.events.Name, [][]string{row}); err != nil {
		return schema.Form{}, err
	}
	s.events[formID] = append(s.events[formID], event)

	// Re-read the row immediately before writing so that a value stored
	// by another writer since the first read is not lowered
	rows, err := d.readTable(fresh, d.forms)
	if err != nil {
		return schema.Form{}, err
	}
	if f.row-1 >= len(rows) || cell(rows[f.row-1], formColID) != formID {
		return schema.Form{}, ErrNotFound
	}
	f = decodeForm(rows[f.row-1], f.row-1)
	s.resolveForm(&f)

	updates := make(map[int]string)
	changed := f.legacy
	for i, id := range f.agents {
		if id != agentID {
			continue
		}
		next := reconcile.Max(f.stored[i], status)
		if next != f.stored[i] {
			f.stored[i] = next
			changed = true
		}
	}
	if changed {
		updates[formColAssigned] = strings.Join(f.refs, ",")
		updates[formColStatuses] = joinStatuses(f.stored)
	}

	if !f.deleted {
		aggregate := string(s.aggregate(f, s.effective(f)))
		if aggregate != f.aggregate || f.legacy {
			f.aggregate = aggregate
			updates[formColStatus] = aggregate
		}
	}
	f.legacy = false

	if err = d.writeCells(ctx, d.forms.Name, f.row, updates); err != nil {
		return schema.Form{}, err
	}

	d.logger.Info(3301, "status recorded",
		fields.NewFields(
			fields.NewField("form", formID),
			fields.NewField("agent", agentID),
			fields.NewField("status", status),
			fields.NewField("aggregate", f.aggregate)))
	return s.view(f), nil
}

// RecordCompletion records a completed status for a detection session.
// It has the signature the detector expects of its completion callback.
func (d *Data) RecordCompletion(ctx context.Context, s schema.DetectionSession, payload []byte) error {
	_, err := d.RecordStatus(ctx, s.FormID, s.AgentID, reconcile.Completed, payload)
	return err
}

func (d *Data) agentEmail(a agentRecord) string {
	if a.Email != "" {
		return a.Email
	}
	if a.Code == "" {
		return ""
	}
	return a.Code + "@" + d.conf.SC.Get(global.ConfigDefaultEmailHost).String()
}

// payloadCell stores a payload as compact JSON. Anything that is not
// JSON is stored as a JSON string so that the cell is always valid JSON.
func payloadCell(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	if json.Valid(payload) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, payload); err == nil {
			return buf.String()
		}
	}
	quoted, _ := json.Marshal(string(payload))
	return string(quoted)
}
