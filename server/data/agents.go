/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/global"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

type agentRecord struct {
	schema.Agent
	secret string
	row    int
}

func (a agentRecord) active() bool {
	return a.Status == schema.AgentActive
}

func (a agentRecord) admin() bool {
	return schema.ParseRole(a.Role) == schema.RoleAdmin
}

// NormalizeCode canonicalises an agent code for comparison
func NormalizeCode(code string) string {
	return norm.NFC.String(strings.TrimSpace(code))
}

// parseAgentStatus maps stored literals. Empty means active, which is
// what rows written before the status column existed were.
func parseAgentStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case schema.AgentInactive, "disabled":
		return schema.AgentInactive
	case schema.AgentDeleted, "נמחק":
		return schema.AgentDeleted
	default:
		return schema.AgentActive
	}
}

func decodeAgent(row []string, index int) agentRecord {
	role := schema.RoleName(schema.ParseRole(cell(row, agentColRole)))
	if role == "" {
		role = schema.RoleNameAgent
	}
	return agentRecord{
		Agent: schema.Agent{
			ID:        cell(row, agentColID),
			Code:      NormalizeCode(cell(row, agentColCode)),
			Name:      cell(row, agentColName),
			Phone:     cell(row, agentColPhone),
			Email:     cell(row, agentColEmail),
			Role:      role,
			Status:    parseAgentStatus(cell(row, agentColStatus)),
			CreatedAt: parseTime(cell(row, agentColCreatedAt)),
			CreatedBy: cell(row, agentColCreatedBy),
		},
		secret: cell(row, agentColSecret),
		row:    index + 1,
	}
}

func encodeAgent(a agentRecord) []string {
	row := make([]string, agentWidth)
	row[agentColID] = a.ID
	row[agentColRole] = a.Role
	row[agentColCode] = a.Code
	row[agentColName] = a.Name
	row[agentColSecret] = a.secret
	row[agentColPhone] = a.Phone
	row[agentColEmail] = a.Email
	row[agentColStatus] = a.Status
	row[agentColCreatedAt] = formatTime(a.CreatedAt)
	row[agentColCreatedBy] = a.CreatedBy
	return row
}

// loadAgents reads every agent row, skipping rows without an id
func (d *Data) loadAgents(ctx context.Context) ([]agentRecord, error) {
	rows, err := d.readTable(ctx, d.agents)
	if err != nil {
		return nil, err
	}
	agents := make([]agentRecord, 0, len(rows))
	for i, row := range rows {
		a := decodeAgent(row, i)
		if a.ID == "" {
			continue
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func findAgent(agents []agentRecord, id string) (agentRecord, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}
	return agentRecord{}, false
}

// codeTaken reports whether an active agent other than exceptID uses code
func codeTaken(agents []agentRecord, code, exceptID string) bool {
	code = NormalizeCode(code)
	for _, a := range agents {
		if a.active() && a.ID != exceptID && a.Code == code {
			return true
		}
	}
	return false
}

// ListAgents returns agents that are not deleted. Admins are only
// included when requested.
func (d *Data) ListAgents(ctx context.Context, includeAdmins bool) ([]schema.Agent, error) {
	agents, err := d.loadAgents(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]schema.Agent, 0, len(agents))
	for _, a := range agents {
		if a.Status == schema.AgentDeleted || (a.admin() && !includeAdmins) {
			continue
		}
		out = append(out, a.Agent)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetAgent returns one agent, including deleted ones
func (d *Data) GetAgent(ctx context.Context, id string) (schema.Agent, error) {
	agents, err := d.loadAgents(ctx)
	if err != nil {
		return schema.Agent{}, err
	}
	a, ok := findAgent(agents, id)
	if !ok {
		return schema.Agent{}, ErrNotFound
	}
	return a.Agent, nil
}

// CreateAgent validates and appends a new active agent. If no secret is
// supplied one is generated and returned; it cannot be retrieved later.
func (d *Data) CreateAgent(ctx context.Context, req schema.AgentCreateRequest, createdBy string) (schema.Agent, string, error) {
	code := NormalizeCode(req.Code)
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	switch {
	case code == "":
		return schema.Agent{}, "", invalid("code", "is required")
	case strings.Contains(code, ","):
		return schema.Agent{}, "", invalid("code", "must not contain a comma")
	case name == "":
		return schema.Agent{}, "", invalid("name", "is required")
	case phone == "":
		return schema.Agent{}, "", invalid("phone", "is required")
	}

	role := schema.RoleAgent
	if strings.TrimSpace(req.Role) != "" {
		role = schema.ParseRole(req.Role)
		if role == schema.RoleNone {
			return schema.Agent{}, "", invalid("role", "must be agent or admin")
		}
	}

	generated := ""
	secret := strings.TrimSpace(req.Secret)
	if secret == "" {
		var err error
		secret, err = GenerateSecret(d.conf.SC.Get(global.ConfigGeneratedPINLen).Int())
		if err != nil {
			return schema.Agent{}, "", err
		}
		generated = secret
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return schema.Agent{}, "", err
	}

	// Uniqueness is checked against a fresh read
	agents, err := d.loadAgents(rowstore.NoCache(ctx))
	if err != nil {
		return schema.Agent{}, "", err
	}
	if codeTaken(agents, code, "") {
		return schema.Agent{}, "", ErrDuplicateCode
	}

	a := agentRecord{
		Agent: schema.Agent{
			ID:        "AGT-" + uuid.NewString(),
			Code:      code,
			Name:      name,
			Phone:     phone,
			Email:     strings.TrimSpace(req.Email),
			Role:      schema.RoleName(role),
			Status:    schema.AgentActive,
			CreatedAt: d.now().UTC().Truncate(time.Second),
			CreatedBy: createdBy,
		},
		secret: hash,
	}

	if err = d.store.Append(ctx, d.agents.Name, [][]string{encodeAgent(a)}); err != nil {
		return schema.Agent{}, "", err
	}

	d.logger.Info(3101, "agent created",
		fields.NewFields(
			fields.NewField("id", a.ID),
			fields.NewField("code", a.Code),
			fields.NewField("role", a.Role),
			fields.NewField("by", createdBy)))
	return a.Agent, generated, nil
}

// UpdateAgent applies the fields present in req
func (d *Data) UpdateAgent(ctx context.Context, id string, req schema.AgentUpdateRequest) (schema.Agent, error) {
	agents, err := d.loadAgents(rowstore.NoCache(ctx))
	if err != nil {
		return schema.Agent{}, err
	}
	a, ok := findAgent(agents, id)
	if !ok {
		return schema.Agent{}, ErrNotFound
	}

	updates := make(map[int]string)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return schema.Agent{}, invalid("name", "must not be empty")
		}
		a.Name = name
		updates[agentColName] = name
	}
	if req.Phone != nil {
		a.Phone = strings.TrimSpace(*req.Phone)
		updates[agentColPhone] = a.Phone
	}
	if req.Email != nil {
		a.Email = strings.TrimSpace(*req.Email)
		updates[agentColEmail] = a.Email
	}
	if req.Code != nil {
		code := NormalizeCode(*req.Code)
		if code == "" || strings.Contains(code, ",") {
			return schema.Agent{}, invalid("code", "must be a non-empty value without commas")
		}
		a.Code = code
		updates[agentColCode] = code
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		switch status {
		case schema.AgentActive, schema.AgentInactive, schema.AgentDeleted:
		default:
			return schema.Agent{}, invalid("status", "must be active, inactive or deleted")
		}
		a.Status = status
		updates[agentColStatus] = status
	}
	if req.Secret != nil {
		if strings.TrimSpace(*req.Secret) == "" {
			return schema.Agent{}, invalid("secret", "must not be empty")
		}
		hash, err := HashSecret(*req.Secret)
		if err != nil {
			return schema.Agent{}, err
		}
		updates[agentColSecret] = hash
	}

	// An agent that ends up active must hold a unique code
	if (req.Code != nil || req.Status != nil) && a.active() && codeTaken(agents, a.Code, a.ID) {
		return schema.Agent{}, ErrDuplicateCode
	}

	if err = d.writeCells(ctx, d.agents.Name, a.row, updates); err != nil {
		return schema.Agent{}, err
	}

	d.logger.Info(3102, "agent updated", fields.NewFields(fields.NewField("id", id), fields.NewField("fields", len(updates))))
	return a.Agent, nil
}

// DeleteAgent marks an agent deleted. Rows are never removed.
func (d *Data) DeleteAgent(ctx context.Context, id string) error {
	status := schema.AgentDeleted
	_, err := d.UpdateAgent(ctx, id, schema.AgentUpdateRequest{Status: &status})
	if err == nil {
		d.logger.Info(3103, "agent deleted", fields.NewFields(fields.NewField("id", id)))
	}
	return err
}

// SetAdmin makes the active agent with code an admin with the given
// secret, creating it if needed. Used to bootstrap a new deployment.
func (d *Data) SetAdmin(ctx context.Context, code, secret string) (schema.Agent, error) {
	if strings.TrimSpace(secret) == "" {
		return schema.Agent{}, invalid("secret", "is required")
	}

	agents, err := d.loadAgents(rowstore.NoCache(ctx))
	if err != nil {
		return schema.Agent{}, err
	}

	code = NormalizeCode(code)
	for _, a := range agents {
		if !a.active() || a.Code != code {
			continue
		}
		hash, err := HashSecret(secret)
		if err != nil {
			return schema.Agent{}, err
		}
		err = d.writeCells(ctx, d.agents.Name, a.row, map[int]string{
			agentColRole:   schema.RoleNameAdmin,
			agentColSecret: hash,
		})
		a.Role = schema.RoleNameAdmin
		return a.Agent, err
	}

	a, _, err := d.CreateAgent(ctx, schema.AgentCreateRequest{
		Code:   code,
		Name:   "Administrator",
		Phone:  "-",
		Secret: secret,
		Role:   schema.RoleNameAdmin,
	}, "console")
	return a, err
}

// writeCells updates cells of one row in column order
func (d *Data) writeCells(ctx context.Context, table string, row int, updates map[int]string) error {
	cols := make([]int, 0, len(updates))
	for c := range updates {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	for _, c := range cols {
		if err := d.store.UpdateCell(ctx, table, row, c, updates[c]); err != nil {
			return err
		}
	}
	return nil
}
