//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

// MigrationResult describes what Migrate did to one table
type MigrationResult struct {
	Table   string
	Action  string
	Rows    int
	Missing []string
}

// Migrate rewrites tables whose header is a known but non-canonical
// layout into canonical column order. Missing columns are added empty.
// Unknown columns stop the migration before anything is written.
func (d *Data) Migrate(ctx context.Context) ([]MigrationResult, error) {
	rw, ok := d.store.(rowstore.Rewriter)
	if !ok {
		return nil, rowstore.ErrNotSupported
	}

	fresh := rowstore.NoCache(ctx)
	type plan struct {
		table Table
		rows  [][]string
		res   MigrationResult
	}
	var plans []plan

	for _, t := range d.tables() {
		rows, err := d.store.Read(fresh, t.Name)
		if err != nil {
			return nil, fmt.Errorf("unable to read table %s: %w", t.Name, err)
		}

		res := MigrationResult{Table: t.Name}
		switch {
		case len(rows) == 0:
			res.Action = "created"
			plans = append(plans, plan{table: t, rows: [][]string{t.Header()}, res: res})
			continue
		case t.Check(rows[0]) == nil:
			res.Action = "unchanged"
			res.Rows = len(rows) - 1
			plans = append(plans, plan{table: t, res: res})
			continue
		}

		m, err := t.mapping(rows[0])
		if err != nil {
			return nil, err
		}

		out := make([][]string, 0, len(rows))
		out = append(out, t.Header())
		for _, row := range rows[1:] {
			n := make([]string, len(t.Columns))
			for i, src := range m {
				n[i] = cell(row, src)
			}
			out = append(out, n)
		}
		for i, src := range m {
			if src == -1 {
				res.Missing = append(res.Missing, t.Columns[i].Name)
			}
		}

		res.Action = "rewritten"
		res.Rows = len(out) - 1
		plans = append(plans, plan{table: t, rows: out, res: res})
	}

	results := make([]MigrationResult, 0, len(plans))
	for _, p := range plans {
		if p.rows != nil {
			if err := rw.Replace(ctx, p.table.Name, p.rows); err != nil {
				return results, fmt.Errorf("unable to rewrite table %s: %w", p.table.Name, err)
			}
			d.logger.Info(3401, "table migrated",
				fields.NewFields(
					fields.NewField("table", p.table.Name),
					fields.NewField("action", p.res.Action),
					fields.NewField("rows", p.res.Rows)))
		}
		results = append(results, p.res)
	}
	return results, nil
}

// HashSecrets replaces legacy plaintext secrets with hashes
func (d *Data) HashSecrets(ctx context.Context) (int, error) {
	if err := d.agents.checkStored(ctx, d.store); err != nil {
		return 0, err
	}

	agents, err := d.loadAgents(rowstore.NoCache(ctx))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, a := range agents {
		if a.secret == "" || IsHashed(a.secret) {
			continue
		}
		hash, err := HashSecret(a.secret)
		if err != nil {
			return count, err
		}
		if err = d.store.UpdateCell(ctx, d.agents.Name, a.row, agentColSecret, hash); err != nil {
			return count, err
		}
		count++
	}

	d.logger.Info(3402, "legacy secrets hashed", fields.NewFields(fields.NewField("count", count)))
	return count, nil
}

// checkStored verifies the stored header before positional writes
func (t Table) checkStored(ctx context.Context, store rowstore.Store) error {
	rows, err := store.Read(rowstore.NoCache(ctx), t.Name)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("table " + t.Name + " is empty")
	}
	return t.Check(rows[0])
}
