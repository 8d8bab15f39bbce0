//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package data maps agents, forms and status events onto row store
// tables and implements the operations the API exposes.
package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/server/global"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

type Data struct {
	logger interfaces.Logger
	conf   *global.ServerConfig
	store  rowstore.Store
	jwtKey []byte
	agents Table
	forms  Table
	events Table
	lockMu sync.Mutex
	locks  map[string]*formLock
	now    func() time.Time

	noDelay bool // tests only
}

// New creates a Data instance over an open store
func New(conf *global.ServerConfig, store rowstore.Store, logger interfaces.Logger) (*Data, error) {
	jwtKey := conf.SP.Get(global.ConfigJWTKey).Bytes()
	if len(jwtKey) == 0 {
		return nil, errors.New("JWT key missing from configuration")
	}

	return &Data{
		logger: logger,
		conf:   conf,
		store:  store,
		jwtKey: jwtKey,
		agents: agentsTable(conf.SC.Get(global.ConfigAgentsSheet).String()),
		forms:  formsTable(conf.SC.Get(global.ConfigFormsSheet).String()),
		events: eventsTable(conf.SC.Get(global.ConfigEventsSheet).String()),
		locks:  make(map[string]*formLock),
		now:    time.Now,
	}, nil
}

// OpenStore opens the configured backend and wraps it in the read cache
func OpenStore(ctx context.Context, conf *global.ServerConfig, logger interfaces.Logger) (rowstore.Store, error) {
	var store rowstore.Store
	var err error

	backend := conf.SC.Get(global.ConfigStoreBackend).String()
	switch backend {
	case global.BackendSheets:
		store, err = rowstore.NewSheets(ctx,
			conf.SC.Get(global.ConfigSpreadsheetID).String(),
			logger,
			rowstore.WithCredentialsFile(conf.SC.Get(global.ConfigCredentialsFile).String()))
	case global.BackendBolt:
		store, err = rowstore.OpenBolt(conf.SC.Get(global.ConfigBoltPath).String(), logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info(3001, "store opened", fields.NewFields(fields.NewField("backend", backend)))
	return rowstore.NewCached(store, conf.SC.Get(global.ConfigCacheTTL).Seconds()), nil
}

// Init verifies the layout of every table and writes headers to empty ones
func (d *Data) Init(ctx context.Context) error {
	for _, t := range d.tables() {
		rows, err := d.store.Read(rowstore.NoCache(ctx), t.Name)
		if err != nil {
			return fmt.Errorf("unable to read table %s: %w", t.Name, err)
		}

		if len(rows) == 0 {
			if err = d.store.Append(ctx, t.Name, [][]string{t.Header()}); err != nil {
				return fmt.Errorf("unable to write header of %s: %w", t.Name, err)
			}
			d.logger.Info(3002, "table initialised", fields.NewFields(fields.NewField("table", t.Name)))
			continue
		}

		if err = t.Check(rows[0]); err != nil {
			return err
		}
	}
	return nil
}

// Health checks store connectivity
func (d *Data) Health(ctx context.Context) (string, error) {
	if p, ok := d.store.(rowstore.Pinger); ok {
		return p.Ping(ctx)
	}
	_, err := d.store.Read(ctx, d.agents.Name)
	return "", err
}

// Close anything data-related that requires it
func (d *Data) Close() {
	if d == nil || d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		d.logger.Warning(3003, "error closing store", fields.NewFields(fields.Error(err)))
	}
}

func (d *Data) tables() []Table {
	return []Table{d.agents, d.forms, d.events}
}

// formLock is held by every caller waiting on or writing one form
type formLock struct {
	mu   sync.Mutex
	refs int
}

// lockForm serialises writes to one form row within this process. The
// entry is dropped when its last holder unlocks.
func (d *Data) lockForm(id string) func() {
	d.lockMu.Lock()
	l, ok := d.locks[id]
	if !ok {
		l = &formLock{}
		d.locks[id] = l
	}
	l.refs++
	d.lockMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		d.lockMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(d.locks, id)
		}
		d.lockMu.Unlock()
	}
}

// readTable returns the data rows of a table, without the header
func (d *Data) readTable(ctx context.Context, t Table) ([][]string, error) {
	rows, err := d.store.Read(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}
