/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldForms/FieldForms/common/null"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/global"
	"github.com/FieldForms/FieldForms/server/reconcile"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

const formURL = "https://docs.google.com/forms/d/e/1FAIpQLSc/viewform"

// newTestData returns an initialised Data over a cached bolt store and the raw store
func newTestData(t *testing.T) (*Data, *rowstore.Bolt) {
	t.Helper()
	bolt, err := rowstore.OpenBolt(filepath.Join(t.TempDir(), "data.db"), null.Logger())
	require.NoError(t, err)

	d, err := New(global.Memory(), rowstore.NewCached(bolt, time.Minute), null.Logger())
	require.NoError(t, err)
	d.noDelay = true
	t.Cleanup(d.Close)

	require.NoError(t, d.Init(context.Background()))
	return d, bolt
}

func mustAgent(t *testing.T, d *Data, code, name string) schema.Agent {
	t.Helper()
	a, _, err := d.CreateAgent(context.Background(), schema.AgentCreateRequest{Code: code, Name: name, Phone: "050-0000000", Secret: "pw-" + code}, "test")
	require.NoError(t, err)
	return a
}

// TestInitWritesHeaders checks that empty tables receive canonical headers
func TestInitWritesHeaders(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()

	for _, table := range d.tables() {
		rows, err := bolt.Read(ctx, table.Name)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, table.Header(), rows[0])
	}

	// Running again is harmless
	require.NoError(t, d.Init(ctx))
	rows, _ := bolt.Read(ctx, "Sheet2")
	assert.Len(t, rows, 1)
	assert.Equal(t, "AgentStatuses", rows[0][formColStatuses])
}

// TestSchemaMismatchAndMigrate checks that a reordered header blocks startup until migrated
func TestSchemaMismatchAndMigrate(t *testing.T) {
	ctx := context.Background()
	bolt, err := rowstore.OpenBolt(filepath.Join(t.TempDir(), "m.db"), null.Logger())
	require.NoError(t, err)
	d, err := New(global.Memory(), bolt, null.Logger())
	require.NoError(t, err)
	t.Cleanup(d.Close)

	// An earlier agents layout with aliases, a different order and no Email column
	require.NoError(t, bolt.Append(ctx, "Sheet1", [][]string{
		{"ID", "Code", "Name", "PIN", "Role", "Phone", "Status", "Created", "CreatedBy"},
		{"AGT-1", "1042", "Dana", "1234", "agent", "050", "active", "2025-01-02 10:00:00", "admin"},
	}))

	err = d.Init(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	results, err := d.Migrate(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "rewritten", results[0].Action)
	assert.Equal(t, []string{"Email"}, results[0].Missing)
	assert.Equal(t, "created", results[1].Action)

	require.NoError(t, d.Init(ctx))

	a, err := d.GetAgent(ctx, "AGT-1")
	require.NoError(t, err)
	assert.Equal(t, "1042", a.Code)
	assert.Equal(t, "Dana", a.Name)
	assert.Equal(t, time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC), a.CreatedAt)

	d.noDelay = true
	_, err = d.Login(ctx, "1042", "1234")
	require.NoError(t, err)
}

// TestMigrateUnknownColumn checks that unknown columns are never guessed
func TestMigrateUnknownColumn(t *testing.T) {
	ctx := context.Background()
	bolt, err := rowstore.OpenBolt(filepath.Join(t.TempDir(), "u.db"), null.Logger())
	require.NoError(t, err)
	d, err := New(global.Memory(), bolt, null.Logger())
	require.NoError(t, err)
	t.Cleanup(d.Close)

	require.NoError(t, bolt.Append(ctx, "Sheet3", [][]string{{"ResponseID", "Mystery"}}))
	_, err = d.Migrate(ctx)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	// Nothing was written
	rows, _ := bolt.Read(ctx, "Sheet1")
	assert.Empty(t, rows)
}

// TestAgentCodeUniqueness checks that codes are unique among active agents only
func TestAgentCodeUniqueness(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	first := mustAgent(t, d, "1042", "Dana")

	_, _, err := d.CreateAgent(ctx, schema.AgentCreateRequest{Code: " 1042 ", Name: "Other", Phone: "1"}, "test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateCode))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "code", ve.Field)

	require.NoError(t, d.DeleteAgent(ctx, first.ID))
	second := mustAgent(t, d, "1042", "Other")

	// Reactivating the deleted agent would duplicate the code
	active := schema.AgentActive
	_, err = d.UpdateAgent(ctx, first.ID, schema.AgentUpdateRequest{Status: &active})
	assert.True(t, errors.Is(err, ErrDuplicateCode))

	// Inactive agents do not hold their code either
	inactive := schema.AgentInactive
	_, err = d.UpdateAgent(ctx, second.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)
	mustAgent(t, d, "1042", "Third")
}

// TestCreateAgentValidation checks the required fields
func TestCreateAgentValidation(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()

	for _, req := range []schema.AgentCreateRequest{
		{Name: "x", Phone: "1"},
		{Code: "1", Phone: "1"},
		{Code: "1", Name: "x"},
		{Code: "1,2", Name: "x", Phone: "1"},
		{Code: "1", Name: "x", Phone: "1", Role: "root"},
	} {
		_, _, err := d.CreateAgent(ctx, req, "test")
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "%+v", req)
	}
}

// TestGeneratedSecret checks that an omitted secret is generated, returned once and usable
func TestGeneratedSecret(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()

	a, secret, err := d.CreateAgent(ctx, schema.AgentCreateRequest{Code: "7", Name: "Gal", Phone: "1"}, "test")
	require.NoError(t, err)
	assert.Len(t, secret, 6)
	assert.Equal(t, schema.AgentActive, a.Status)
	assert.Equal(t, schema.RoleNameAgent, a.Role)

	res, err := d.Login(ctx, "7", "  "+secret+" ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.Identity.ID)
}

// TestLoginFailuresAreUniform checks that every failure is ErrInvalidCredentials
func TestLoginFailuresAreUniform(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "55", "Noa")

	_, err := d.Login(ctx, "55", "pw-5")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = d.Login(ctx, "56", "pw-55")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = d.Login(ctx, "55", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := schema.AgentInactive
	_, err = d.UpdateAgent(ctx, a.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)
	_, err = d.Login(ctx, "55", "pw-55")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestLegacyPlaintextSecret checks exact trimmed comparison and migration to hashes
func TestLegacyPlaintextSecret(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()

	row := make([]string, agentWidth)
	row[agentColID] = "AGT-legacy"
	row[agentColCode] = "900"
	row[agentColName] = "Legacy"
	row[agentColSecret] = "1234"
	require.NoError(t, d.store.Append(ctx, "Sheet1", [][]string{row}))

	_, err := d.Login(ctx, "900", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = d.Login(ctx, "900", "12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	res, err := d.Login(ctx, "900", " 1234 ")
	require.NoError(t, err)
	assert.Equal(t, schema.RoleNameAgent, res.Identity.Role)

	n, err := d.HashSecrets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, _ := bolt.Read(ctx, "Sheet1")
	assert.True(t, IsHashed(rows[1][agentColSecret]))
	_, err = d.Login(ctx, "900", "1234")
	require.NoError(t, err)
}

// TestTokens checks verify, purpose separation and refresh
func TestTokens(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	admin, err := d.SetAdmin(ctx, "admin", "s3cret")
	require.NoError(t, err)

	res, err := d.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, schema.RoleNameAdmin, res.Identity.Role)

	id, err := d.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, id.ID)
	assert.Equal(t, "admin", id.Code)
	assert.Equal(t, schema.RoleNameAdmin, id.Role)

	_, err = d.Verify(res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = d.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := d.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	_, err = d.Verify(access)
	require.NoError(t, err)

	require.NoError(t, d.DeleteAgent(ctx, admin.ID))
	_, err = d.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestExpiredToken checks that tokens are rejected after their lifetime
func TestExpiredToken(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	mustAgent(t, d, "1", "One")

	res, err := d.Login(ctx, "1", "pw-1")
	require.NoError(t, err)

	d.now = func() time.Time { return time.Now().Add(13 * time.Hour) }
	_, err = d.Verify(res.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestSetAdminPromotes checks that bootstrapping an existing code promotes it
func TestSetAdminPromotes(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "boss", "Boss")

	b, err := d.SetAdmin(ctx, "boss", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, schema.RoleNameAdmin, b.Role)

	list, err := d.ListAgents(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = d.ListAgents(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = d.Login(ctx, "boss", "pw-boss")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = d.Login(ctx, "boss", "new-secret")
	require.NoError(t, err)
}

// TestFormRoundTrip checks that a created form reads back intact with status new
func TestFormRoundTrip(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")

	created, err := d.CreateForm(ctx, schema.FormCreateRequest{
		Title:       "Home visit",
		ExternalURL: formURL,
		Client:      schema.ClientMeta{Name: "Avi", Phone: "03-555", Ref: "C-9"},
		AgentIDs:    []string{a.ID, b.ID, a.ID},
	}, "admin-id")
	require.NoError(t, err)

	list, err := d.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Home visit", got.Title)
	assert.Equal(t, formURL, got.ExternalURL)
	assert.Equal(t, schema.ClientMeta{Name: "Avi", Phone: "03-555", Ref: "C-9"}, got.Client)
	assert.Equal(t, "admin-id", got.CreatedBy)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, schema.AggregateNew, got.Status)
	assert.Equal(t, schema.FormActive, got.State)
	require.Len(t, got.Assignments, 2)
	assert.Equal(t, a.ID, got.Assignments[0].AgentID)
	assert.Equal(t, "One", got.Assignments[0].AgentName)
	assert.Equal(t, schema.StatusNotOpened, got.Assignments[1].Status)
}

// TestCreateFormValidation checks title, URL and assignee validation
func TestCreateFormValidation(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()

	cases := []schema.FormCreateRequest{
		{ExternalURL: formURL},
		{Title: "x"},
		{Title: "x", ExternalURL: "ftp://example.com/form"},
		{Title: "x", ExternalURL: "docs.google.com/forms"},
		{Title: "x", ExternalURL: formURL, AgentIDs: []string{"AGT-nobody"}},
	}
	for _, req := range cases {
		_, err := d.CreateForm(ctx, req, "admin")
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "%+v", req)
	}

	// The form type is accepted as the title
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{FormType: "Survey", ExternalURL: formURL}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Survey", f.Title)
	assert.Equal(t, schema.AggregateNew, f.Status)
	assert.Empty(t, f.Assignments)
}

// TestSendToAll checks fan out to active non-admin agents
func TestSendToAll(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	mustAgent(t, d, "3", "Three")
	_, err := d.SetAdmin(ctx, "admin", "pw")
	require.NoError(t, err)

	inactive := schema.AgentInactive
	_, err = d.UpdateAgent(ctx, b.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)

	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "All", ExternalURL: formURL, SendToAll: true}, "admin")
	require.NoError(t, err)
	assert.Len(t, f.Assignments, 2)
}

// TestStatusFlow walks a form through new, in-progress and completed
func TestStatusFlow(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID, b.ID}}, "admin")
	require.NoError(t, err)

	got, err := d.RecordStatus(ctx, f.ID, a.ID, reconcile.Opened, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateInProgress, got.Status)
	require.NotNil(t, got.Assignments[0].OpenedAt)

	_, err = d.RecordStatus(ctx, f.ID, a.ID, reconcile.Completed, []byte(`{"answers": {"q1": "yes"}}`))
	require.NoError(t, err)
	got, err = d.RecordStatus(ctx, f.ID, b.ID, reconcile.Opened, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateInProgress, got.Status)

	// A late opened event does not downgrade a completion
	got, err = d.RecordStatus(ctx, f.ID, a.ID, reconcile.Opened, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusCompleted, got.Assignments[0].Status)

	got, err = d.RecordStatus(ctx, f.ID, b.ID, reconcile.Completed, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateCompleted, got.Status)

	// Stored cells carry the status list and aggregate
	rows, err := bolt.Read(ctx, "Sheet2")
	require.NoError(t, err)
	assert.Equal(t, "completed,completed", rows[1][formColStatuses])
	assert.Equal(t, "completed", rows[1][formColStatus])

	events, err := bolt.Read(ctx, "Sheet3")
	require.NoError(t, err)
	require.Len(t, events, 6)
	assert.Equal(t, `{"answers":{"q1":"yes"}}`, events[2][eventColPayload])
	assert.Equal(t, "1@fieldforms.local", events[1][eventColEmail])
}

// TestRecordStatusForbidden checks that only assignees can record status
func TestRecordStatusForbidden(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID}}, "admin")
	require.NoError(t, err)

	_, err = d.RecordStatus(ctx, f.ID, b.ID, reconcile.Completed, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = d.RecordStatus(ctx, "FRM-missing", a.ID, reconcile.Completed, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestRecordStatusInactiveAgent checks that a deactivated assignee holding a
// still valid token cannot record status
func TestRecordStatusInactiveAgent(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID}}, "admin")
	require.NoError(t, err)

	inactive := schema.AgentInactive
	_, err = d.UpdateAgent(ctx, a.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)

	_, err = d.RecordStatus(ctx, f.ID, a.ID, reconcile.Completed, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	events, err := bolt.Read(ctx, "Sheet3")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

// TestFormLocksReleased checks that per-form locks are dropped once no
// writer holds them
func TestFormLocksReleased(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID}}, "admin")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.RecordStatus(ctx, f.ID, a.ID, reconcile.Opened, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err = d.RecordStatus(ctx, "FRM-missing", a.ID, reconcile.Opened, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	d.lockMu.Lock()
	defer d.lockMu.Unlock()
	assert.Empty(t, d.locks)
}

// TestPendingExcludesCompleted checks that completed forms are not pending
func TestPendingExcludesCompleted(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	f1, _ := d.CreateForm(ctx, schema.FormCreateRequest{Title: "F1", ExternalURL: formURL, AgentIDs: []string{a.ID, b.ID}}, "admin")
	f2, _ := d.CreateForm(ctx, schema.FormCreateRequest{Title: "F2", ExternalURL: formURL, AgentIDs: []string{a.ID}}, "admin")

	_, err := d.RecordStatus(ctx, f1.ID, a.ID, reconcile.Completed, nil)
	require.NoError(t, err)

	pending, err := d.FormsForAgent(ctx, a.ID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f2.ID, pending[0].ID)

	all, err := d.FormsForAgent(ctx, a.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err = d.FormsForAgent(ctx, b.ID, true)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// TestDuplicateEventRows checks that a retried append does not change the result
func TestDuplicateEventRows(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	f, _ := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID, b.ID}}, "admin")
	_, err := d.RecordStatus(ctx, f.ID, a.ID, reconcile.Completed, nil)
	require.NoError(t, err)

	before, err := d.GetForm(ctx, f.ID)
	require.NoError(t, err)

	events, _ := bolt.Read(ctx, "Sheet3")
	require.NoError(t, d.store.Append(ctx, "Sheet3", [][]string{events[1]}))

	after, err := d.GetForm(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Assignments, after.Assignments)
}

// TestLegacyRows checks single agent form rows and events that reference agent codes
func TestLegacyRows(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "77", "Legacy")

	form := make([]string, formWidth)
	form[formColID] = "FRM-legacy"
	form[formColAgentID] = "77"
	form[formColTitle] = "Old"
	form[formColStatus] = "חדש"
	form[formColURL] = formURL
	require.NoError(t, d.store.Append(ctx, "Sheet2", [][]string{form}))

	pending, err := d.FormsForAgent(ctx, a.ID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, schema.AggregateNew, pending[0].Status)

	event := make([]string, eventWidth)
	event[eventColID] = "RESP-legacy"
	event[eventColFormID] = "FRM-legacy"
	event[eventColAgentID] = "77"
	event[eventColStatus] = "נפתח"
	require.NoError(t, d.store.Append(ctx, "Sheet3", [][]string{event}))

	got, err := d.GetForm(ctx, "FRM-legacy")
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateInProgress, got.Status)

	// Writing converts the row to the list shape
	got, err = d.RecordStatus(ctx, "FRM-legacy", "77", reconcile.Completed, nil)
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateCompleted, got.Status)

	rows, _ := bolt.Read(ctx, "Sheet2")
	assert.Equal(t, "77", rows[1][formColAssigned])
	assert.Equal(t, "completed", rows[1][formColStatuses])
	assert.Equal(t, "completed", rows[1][formColStatus])
}

// TestUpdateLegacyRowKeepsStatus checks that an update of a legacy row whose
// agent is no longer active does not lower the stored status
func TestUpdateLegacyRowKeepsStatus(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "78", "Retired")

	form := make([]string, formWidth)
	form[formColID] = "FRM-legacy-done"
	form[formColAgentID] = "78"
	form[formColTitle] = "Old"
	form[formColStatus] = "הושלם"
	form[formColURL] = formURL
	require.NoError(t, d.store.Append(ctx, "Sheet2", [][]string{form}))

	inactive := schema.AgentInactive
	_, err := d.UpdateAgent(ctx, a.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)

	title := "Renamed"
	_, err = d.UpdateForm(ctx, "FRM-legacy-done", schema.FormUpdateRequest{Title: &title})
	require.NoError(t, err)

	rows, _ := bolt.Read(ctx, "Sheet2")
	assert.Equal(t, "78", rows[1][formColAssigned])
	assert.Equal(t, "completed", rows[1][formColStatuses])
	assert.Equal(t, schema.AggregateNew, rows[1][formColStatus])

	got, err := d.GetForm(ctx, "FRM-legacy-done")
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, a.ID, got.Assignments[0].AgentID)
	assert.Equal(t, schema.StatusCompleted, got.Assignments[0].Status)
}

// TestUpdateForm checks field updates and that kept assignees keep their status
func TestUpdateForm(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	c := mustAgent(t, d, "3", "Three")
	f, _ := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID, b.ID}}, "admin")
	_, err := d.RecordStatus(ctx, f.ID, a.ID, reconcile.Completed, nil)
	require.NoError(t, err)

	title := "Renamed"
	got, err := d.UpdateForm(ctx, f.ID, schema.FormUpdateRequest{Title: &title, AgentIDs: []string{a.ID, c.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	require.Len(t, got.Assignments, 2)
	assert.Equal(t, schema.StatusCompleted, got.Assignments[0].Status)
	assert.Equal(t, c.ID, got.Assignments[1].AgentID)
	assert.Equal(t, schema.AggregateInProgress, got.Status)

	bad := "not a url"
	_, err = d.UpdateForm(ctx, f.ID, schema.FormUpdateRequest{ExternalURL: &bad})
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = d.UpdateForm(ctx, "FRM-missing", schema.FormUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestDeleteForm checks soft delete
func TestDeleteForm(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	f, err := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL}, "admin")
	require.NoError(t, err)

	require.NoError(t, d.DeleteForm(ctx, f.ID))
	assert.ErrorIs(t, d.DeleteForm(ctx, f.ID), ErrNotFound)

	_, err = d.GetForm(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := d.ListForms(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	rows, _ := bolt.Read(ctx, "Sheet2")
	assert.Len(t, rows, 2)
	assert.Equal(t, schema.FormDeleted, rows[1][formColStatus])
}

// TestStatusReport checks rows for active assignees and totals
func TestStatusReport(t *testing.T) {
	d, _ := newTestData(t)
	ctx := context.Background()
	a := mustAgent(t, d, "1", "One")
	b := mustAgent(t, d, "2", "Two")
	f, _ := d.CreateForm(ctx, schema.FormCreateRequest{Title: "T", ExternalURL: formURL, AgentIDs: []string{a.ID, b.ID}}, "admin")
	_, err := d.RecordStatus(ctx, f.ID, a.ID, reconcile.Completed, nil)
	require.NoError(t, err)

	report, err := d.StatusReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, 1, report.Totals[schema.StatusCompleted])
	assert.Equal(t, 1, report.Totals[schema.StatusNotOpened])
	assert.NotNil(t, report.Rows[0].CompletedAt)

	// An inactive agent no longer counts towards the aggregate or the report
	inactive := schema.AgentInactive
	_, err = d.UpdateAgent(ctx, b.ID, schema.AgentUpdateRequest{Status: &inactive})
	require.NoError(t, err)

	report, err = d.StatusReport(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	got, err := d.GetForm(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.AggregateCompleted, got.Status)
}

// TestStoreUnavailable checks that a closed store is reported as unavailable
func TestStoreUnavailable(t *testing.T) {
	d, bolt := newTestData(t)
	ctx := context.Background()
	require.NoError(t, bolt.Close())

	_, err := d.ListForms(rowstore.NoCache(ctx))
	assert.ErrorIs(t, err, rowstore.ErrStoreUnavailable)
	_, _, err = d.CreateAgent(ctx, schema.AgentCreateRequest{Code: "1", Name: "x", Phone: "1", Secret: "s"}, "t")
	assert.ErrorIs(t, err, rowstore.ErrStoreUnavailable)
}

// TestCheckSecret covers the comparison rules directly
func TestCheckSecret(t *testing.T) {
	hash, err := HashSecret(" abc ")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))
	assert.True(t, CheckSecret(hash, "abc"))
	assert.False(t, CheckSecret(hash, "ab"))
	assert.False(t, CheckSecret("abc", "abcd"))
	assert.False(t, CheckSecret("", ""))
	assert.False(t, IsHashed("a$b"))
}
