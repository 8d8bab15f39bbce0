/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"context"
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/reconcile"
)

// formRecord is one form row. refs are the assignee references as
// stored, agents the same entries resolved to agent ids and stored the
// parallel per-agent status list.
type formRecord struct {
	id        string
	title     string
	url       string
	client    schema.ClientMeta
	createdAt time.Time
	createdBy string
	aggregate string
	deleted   bool
	legacy    bool
	refs      []string
	agents    []string
	stored    []reconcile.Status
	row       int
}

// snapshot is a consistent-enough view of all three tables
type snapshot struct {
	agents []agentRecord
	byID   map[string]agentRecord
	byCode map[string]agentRecord
	forms  []formRecord
	events map[string][]reconcile.Event
}

func isDeletedState(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case schema.FormDeleted, "נמחק":
		return true
	}
	return false
}

// splitParallel splits a comma list keeping empty entries in place
func splitParallel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// decodeForm reads both stored shapes: a list row with parallel
// assignee and status lists, or a legacy row for a single agent
func decodeForm(row []string, index int) formRecord {
	f := formRecord{
		id:    cell(row, formColID),
		title: cell(row, formColTitle),
		url:   cell(row, formColURL),
		client: schema.ClientMeta{
			Name:  cell(row, formColClientName),
			Phone: cell(row, formColClientPhone),
			Ref:   cell(row, formColClientRef),
		},
		createdAt: parseTime(cell(row, formColCreatedAt)),
		createdBy: cell(row, formColCreatedBy),
		aggregate: cell(row, formColStatus),
		deleted:   isDeletedState(cell(row, formColStatus)),
		row:       index + 1,
	}

	f.refs = splitList(cell(row, formColAssigned))
	statuses := splitParallel(cell(row, formColStatuses))

	if len(f.refs) == 0 && cell(row, formColAgentID) != "" {
		f.legacy = true
		f.refs = []string{cell(row, formColAgentID)}
		statuses = []string{cell(row, formColStatus)}
	}

	f.stored = make([]reconcile.Status, len(f.refs))
	for i := range f.refs {
		f.stored[i] = reconcile.NotOpened
		if i < len(statuses) {
			f.stored[i] = reconcile.ParseStatus(statuses[i])
		}
	}
	return f
}

func encodeForm(f formRecord) []string {
	row := make([]string, formWidth)
	row[formColID] = f.id
	row[formColTitle] = f.title
	row[formColClientName] = f.client.Name
	row[formColClientPhone] = f.client.Phone
	row[formColClientRef] = f.client.Ref
	row[formColStatus] = f.aggregate
	row[formColURL] = f.url
	row[formColCreatedAt] = formatTime(f.createdAt)
	row[formColCreatedBy] = f.createdBy
	row[formColAssigned] = strings.Join(f.refs, ",")
	row[formColStatuses] = joinStatuses(f.stored)
	return row
}

func joinStatuses(s []reconcile.Status) string {
	parts := make([]string, len(s))
	for i, st := range s {
		parts[i] = string(st)
	}
	return strings.Join(parts, ",")
}

func decodeEvent(row []string) (string, reconcile.Event) {
	return cell(row, eventColFormID), reconcile.Event{
		ID:          cell(row, eventColID),
		AgentID:     cell(row, eventColAgentID),
		Status:      reconcile.ParseStatus(cell(row, eventColStatus)),
		OpenedAt:    parseTime(cell(row, eventColOpenedAt)),
		CompletedAt: parseTime(cell(row, eventColCompletedAt)),
	}
}

// load reads all three tables
func (d *Data) load(ctx context.Context) (*snapshot, error) {
	agents, err := d.loadAgents(ctx)
	if err != nil {
		return nil, err
	}
	formRows, err := d.readTable(ctx, d.forms)
	if err != nil {
		return nil, err
	}
	eventRows, err := d.readTable(ctx, d.events)
	if err != nil {
		return nil, err
	}

	s := &snapshot{
		agents: agents,
		byID:   make(map[string]agentRecord, len(agents)),
		byCode: make(map[string]agentRecord, len(agents)),
		events: make(map[string][]reconcile.Event),
	}
	for _, a := range agents {
		s.byID[a.ID] = a
		if prev, ok := s.byCode[a.Code]; !ok || (!prev.active() && a.active()) {
			s.byCode[a.Code] = a
		}
	}

	for i, row := range formRows {
		f := decodeForm(row, i)
		if f.id == "" {
			continue
		}
		s.resolveForm(&f)
		s.forms = append(s.forms, f)
	}

	for _, row := range eventRows {
		formID, e := decodeEvent(row)
		if formID == "" {
			continue
		}
		e.AgentID = s.resolve(e.AgentID)
		s.events[formID] = append(s.events[formID], e)
	}
	return s, nil
}

// resolve maps an agent reference to an agent id. Earlier producers
// stored agent codes where ids belong.
func (s *snapshot) resolve(ref string) string {
	if _, ok := s.byID[ref]; ok {
		return ref
	}
	if a, ok := s.byCode[NormalizeCode(ref)]; ok {
		return a.ID
	}
	return ref
}

func (s *snapshot) resolveForm(f *formRecord) {
	f.agents = make([]string, len(f.refs))
	for i, ref := range f.refs {
		f.agents[i] = s.resolve(ref)
	}
}

func (s *snapshot) activeAgent(id string) bool {
	a, ok := s.byID[id]
	return ok && a.active()
}

func (s *snapshot) form(id string) (formRecord, bool) {
	for _, f := range s.forms {
		if f.id == id {
			return f, true
		}
	}
	return formRecord{}, false
}

// uniqueAgents returns the resolved assignees without repeats
func (f formRecord) uniqueAgents() []string {
	seen := make(map[string]bool, len(f.agents))
	out := make([]string, 0, len(f.agents))
	for _, id := range f.agents {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (f formRecord) assigned(agentID string) bool {
	for _, id := range f.agents {
		if id == agentID {
			return true
		}
	}
	return false
}

// effective folds the event log and the stored status list. The stored
// list counts as events so that a status written by another producer
// is never lost.
func (s *snapshot) effective(f formRecord) reconcile.Result {
	events := make([]reconcile.Event, 0, len(s.events[f.id])+len(f.stored))
	events = append(events, s.events[f.id]...)
	for i, st := range f.stored {
		events = append(events, reconcile.Event{AgentID: f.agents[i], Status: st})
	}
	return reconcile.Reconcile(f.uniqueAgents(), events)
}

// aggregate only considers assignees that are currently active
func (s *snapshot) aggregate(f formRecord, r reconcile.Result) reconcile.AggregateStatus {
	var statuses []reconcile.Status
	for _, id := range f.uniqueAgents() {
		if s.activeAgent(id) {
			statuses = append(statuses, r.PerAgent[id].Status)
		}
	}
	return reconcile.Aggregate(statuses)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// view converts a form record to its API representation
func (s *snapshot) view(f formRecord) schema.Form {
	r := s.effective(f)
	out := schema.Form{
		ID:          f.id,
		Title:       f.title,
		ExternalURL: f.url,
		Client:      f.client,
		Assignments: make([]schema.Assignment, 0, len(f.agents)),
		State:       schema.FormActive,
		Status:      string(s.aggregate(f, r)),
		CreatedAt:   f.createdAt,
		CreatedBy:   f.createdBy,
	}
	if f.deleted {
		out.State = schema.FormDeleted
	}

	for _, id := range f.uniqueAgents() {
		st := r.PerAgent[id]
		a := schema.Assignment{
			AgentID:     id,
			Status:      string(st.Status),
			OpenedAt:    timePtr(st.OpenedAt),
			CompletedAt: timePtr(st.CompletedAt),
		}
		if agent, ok := s.byID[id]; ok {
			a.AgentCode = agent.Code
			a.AgentName = agent.Name
		}
		out.Assignments = append(out.Assignments, a)
	}
	return out
}
