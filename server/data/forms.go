/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/reconcile"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

// validateURL requires an absolute http or https URL
func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("external_url", "is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid("external_url", "must be an absolute http or https URL")
	}
	return raw, nil
}

// assignees resolves requested agent references. sendToAll adds every
// active agent that is not an admin.
func (s *snapshot) assignees(refs []string, sendToAll bool) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		id := s.resolve(ref)
		a, ok := s.byID[id]
		if !ok || a.Status == schema.AgentDeleted {
			return nil, invalid("agent_ids", fmt.Sprintf("unknown agent %s", ref))
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	if sendToAll {
		for _, a := range s.agents {
			if a.active() && !a.admin() && !seen[a.ID] {
				seen[a.ID] = true
				out = append(out, a.ID)
			}
		}
	}
	return out, nil
}

func sortForms(forms []schema.Form) {
	sort.SliceStable(forms, func(i, j int) bool {
		if !forms[i].CreatedAt.Equal(forms[j].CreatedAt) {
			return forms[i].CreatedAt.After(forms[j].CreatedAt)
		}
		return forms[i].ID > forms[j].ID
	})
}

// ListForms returns every form that is not deleted, newest first
func (d *Data) ListForms(ctx context.Context) ([]schema.Form, error) {
	s, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Form, 0, len(s.forms))
	for _, f := range s.forms {
		if !f.deleted {
			out = append(out, s.view(f))
		}
	}
	sortForms(out)
	return out, nil
}

// FormsForAgent returns the forms assigned to one agent. With pendingOnly
// the forms the agent has completed are left out.
func (d *Data) FormsForAgent(ctx context.Context, agentID string, pendingOnly bool) ([]schema.Form, error) {
	s, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	agentID = s.resolve(agentID)

	var out []schema.Form
	for _, f := range s.forms {
		if f.deleted || !f.assigned(agentID) {
			continue
		}
		if pendingOnly && s.effective(f).PerAgent[agentID].Status == reconcile.Completed {
			continue
		}
		out = append(out, s.view(f))
	}
	sortForms(out)
	return out, nil
}

// GetForm returns one form that is not deleted
func (d *Data) GetForm(ctx context.Context, id string) (schema.Form, error) {
	s, err := d.load(ctx)
	if err != nil {
		return schema.Form{}, err
	}
	f, ok := s.form(id)
	if !ok || f.deleted {
		return schema.Form{}, ErrNotFound
	}
	return s.view(f), nil
}

// CreateForm validates and appends a form row in list shape
func (d *Data) CreateForm(ctx context.Context, req schema.FormCreateRequest, createdBy string) (schema.Form, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSpace(req.FormType)
	}
	if title == "" {
		return schema.Form{}, invalid("title", "is required")
	}

	link, err := validateURL(req.ExternalURL)
	if err != nil {
		return schema.Form{}, err
	}

	s, err := d.load(rowstore.NoCache(ctx))
	if err != nil {
		return schema.Form{}, err
	}
	agents, err := s.assignees(req.AgentIDs, req.SendToAll)
	if err != nil {
		return schema.Form{}, err
	}

	f := formRecord{
		id:    "FRM-" + uuid.Must(uuid.NewV7()).String(),
		title: title,
		url:   link,
		client: schema.ClientMeta{
			Name:  strings.TrimSpace(req.Client.Name),
			Phone: strings.TrimSpace(req.Client.Phone),
			Ref:   strings.TrimSpace(req.Client.Ref),
		},
		createdAt: d.now().UTC().Truncate(time.Second),
		createdBy: createdBy,
		aggregate: string(reconcile.New),
		refs:      agents,
		agents:    agents,
		stored:    make([]reconcile.Status, len(agents)),
	}
	for i := range f.stored {
		f.stored[i] = reconcile.NotOpened
	}

	if err = d.store.Append(ctx, d.forms.Name, [][]string{encodeForm(f)}); err != nil {
		return schema.Form{}, err
	}

	d.logger.Info(3201, "form created",
		fields.NewFields(
			fields.NewField("id", f.id),
			fields.NewField("agents", len(agents)),
			fields.NewField("by", createdBy)))
	return s.view(f), nil
}

// UpdateForm applies the fields present in req. A new assignee list
// keeps the stored status of agents that remain assigned.
func (d *Data) UpdateForm(ctx context.Context, id string, req schema.FormUpdateRequest) (schema.Form, error) {
	unlock := d.lockForm(id)
	defer unlock()

	s, err := d.load(rowstore.NoCache(ctx))
	if err != nil {
		return schema.Form{}, err
	}
	f, ok := s.form(id)
	if !ok || f.deleted {
		return schema.Form{}, ErrNotFound
	}

	updates := make(map[int]string)

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return schema.Form{}, invalid("title", "must not be empty")
		}
		f.title = title
		updates[formColTitle] = title
	}
	if req.ExternalURL != nil {
		link, err := validateURL(*req.ExternalURL)
		if err != nil {
			return schema.Form{}, err
		}
		f.url = link
		updates[formColURL] = link
	}
	if req.Client != nil {
		f.client = schema.ClientMeta{
			Name:  strings.TrimSpace(req.Client.Name),
			Phone: strings.TrimSpace(req.Client.Phone),
			Ref:   strings.TrimSpace(req.Client.Ref),
		}
		updates[formColClientName] = f.client.Name
		updates[formColClientPhone] = f.client.Phone
		updates[formColClientRef] = f.client.Ref
	}
	if req.AgentIDs != nil || req.SendToAll {
		agents, err := s.assignees(req.AgentIDs, req.SendToAll)
		if err != nil {
			return schema.Form{}, err
		}

		previous := make(map[string]reconcile.Status)
		for i, a := range f.agents {
			previous[a] = reconcile.Max(previous[a], f.stored[i])
		}

		f.refs = agents
		f.agents = agents
		f.stored = make([]reconcile.Status, len(agents))
		for i, a := range agents {
			f.stored[i] = reconcile.Max(previous[a], reconcile.NotOpened)
		}
		updates[formColAssigned] = strings.Join(f.refs, ",")
		updates[formColStatuses] = joinStatuses(f.stored)
	}

	// A legacy row keeps its only status in the aggregate column, so move
	// it to the list columns before the aggregate is overwritten
	if f.legacy {
		updates[formColAssigned] = strings.Join(f.refs, ",")
		updates[formColStatuses] = joinStatuses(f.stored)
		f.legacy = false
	}

	aggregate := string(s.aggregate(f, s.effective(f)))
	if aggregate != f.aggregate {
		f.aggregate = aggregate
		updates[formColStatus] = aggregate
	}

	if err = d.writeCells(ctx, d.forms.Name, f.row, updates); err != nil {
		return schema.Form{}, err
	}

	d.logger.Info(3202, "form updated", fields.NewFields(fields.NewField("id", id), fields.NewField("fields", len(updates))))
	return s.view(f), nil
}

// DeleteForm marks a form deleted. Its events stay in the log.
func (d *Data) DeleteForm(ctx context.Context, id string) error {
	unlock := d.lockForm(id)
	defer unlock()

	s, err := d.load(rowstore.NoCache(ctx))
	if err != nil {
		return err
	}
	f, ok := s.form(id)
	if !ok || f.deleted {
		return ErrNotFound
	}

	updates := map[int]string{formColStatus: schema.FormDeleted}

	// A legacy row keeps its only status in the aggregate column
	if f.legacy {
		updates[formColAssigned] = strings.Join(f.refs, ",")
		updates[formColStatuses] = joinStatuses(f.stored)
	}

	if err = d.writeCells(ctx, d.forms.Name, f.row, updates); err != nil {
		return err
	}
	d.logger.Info(3203, "form deleted", fields.NewFields(fields.NewField("id", id)))
	return nil
}

// StatusReport returns one row per form and active assigned agent
func (d *Data) StatusReport(ctx context.Context) (schema.StatusReport, error) {
	s, err := d.load(ctx)
	if err != nil {
		return schema.StatusReport{}, err
	}

	report := schema.StatusReport{
		Rows: []schema.StatusReportRow{},
		Totals: map[string]int{
			schema.StatusNotOpened: 0,
			schema.StatusOpened:    0,
			schema.StatusCompleted: 0,
		},
	}

	forms := make([]schema.Form, 0, len(s.forms))
	for _, f := range s.forms {
		if !f.deleted {
			forms = append(forms, s.view(f))
		}
	}
	sortForms(forms)

	for _, f := range forms {
		for _, a := range f.Assignments {
			if !s.activeAgent(a.AgentID) {
				continue
			}
			report.Rows = append(report.Rows, schema.StatusReportRow{
				FormID:      f.ID,
				Title:       f.Title,
				AgentID:     a.AgentID,
				AgentCode:   a.AgentCode,
				AgentName:   a.AgentName,
				Status:      a.Status,
				OpenedAt:    a.OpenedAt,
				CompletedAt: a.CompletedAt,
			})
			report.Totals[a.Status]++
		}
	}
	return report, nil
}
