/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package detect keeps track of agents working on externally hosted forms
// and turns completion signals into status events. Detection is best
// effort: sessions that never see a signal simply time out, and manual
// confirmation is always possible.
package detect

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/null"
	"github.com/FieldForms/FieldForms/common/schema"
)

var (
	ErrNoSession      = errors.New("detection session not found")
	ErrClosed         = errors.New("detection session is no longer watching")
	ErrOriginRejected = errors.New("message origin is not allowed")
	ErrInvalid        = errors.New("form and agent are required")
)

// CompletionFunc records a completion. The session state tells the
// receiver whether it was detected or manually confirmed.
type CompletionFunc func(ctx context.Context, s schema.DetectionSession, payload []byte) error

// Message is a cross-context message relayed by the client
type Message struct {
	Type    string
	URL     string
	Payload []byte
}

type Detector struct {
	mu            sync.Mutex
	sessions      map[string]*schema.DetectionSession
	ttl           time.Duration
	origins       []string
	allowInsecure bool
	markers       []string
	complete      CompletionFunc
	endpoint      string
	appOrigin     string
	now           func() time.Time
	logger        interfaces.Logger
}

// New returns a Detector with a one hour session lifetime unless
// options say otherwise
func New(options ...func(*Detector) error) (*Detector, error) {
	d := &Detector{
		sessions: make(map[string]*schema.DetectionSession),
		ttl:      time.Hour,
		origins:  []string{"docs.google.com"},
		markers:  []string{"formResponse"},
		complete: func(context.Context, schema.DetectionSession, []byte) error { return nil },
		now:      time.Now,
		logger:   null.Logger(),
	}

	// Process options (see options.go)
	for _, op := range options {
		if err := op(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func live(state string) bool {
	return state == schema.DetectArmed || state == schema.DetectWatching
}

// expire marks a live session past its lifetime as timed out. Caller holds the lock.
func (d *Detector) expire(s *schema.DetectionSession, now time.Time) {
	if live(s.State) && !now.Before(s.ExpiresAt) {
		s.State = schema.DetectTimedOut
		d.logger.Info(5003, "detection session timed out",
			fields.NewFields(
				fields.NewField("session", s.ID),
				fields.NewField("form", s.FormID),
				fields.NewField("agent", s.AgentID)))
	}
}

// Arm starts a detection session for an agent opening a form
func (d *Detector) Arm(formID, agentID, externalURL string) (schema.DetectionSession, error) {
	if formID == "" || agentID == "" {
		return schema.DetectionSession{}, ErrInvalid
	}

	now := d.now()
	extID := ExternalFormID(externalURL)
	s := &schema.DetectionSession{
		ID:             "DS-" + uuid.NewString(),
		FormID:         formID,
		AgentID:        agentID,
		ExternalFormID: extID,
		StorageKey:     StorageKey(extID),
		State:          schema.DetectArmed,
		ArmedAt:        now,
		ExpiresAt:      now.Add(d.ttl),
	}
	if d.endpoint != "" {
		s.ScriptURL = d.endpoint + schema.EndpointDetect + "/" + s.ID + "/script"
	}

	d.mu.Lock()
	d.sessions[s.ID] = s
	d.mu.Unlock()

	d.logger.Info(5001, "detection session armed",
		fields.NewFields(
			fields.NewField("session", s.ID),
			fields.NewField("form", formID),
			fields.NewField("agent", agentID),
			fields.NewField("key", s.StorageKey)))
	return *s, nil
}

// Get returns a copy of a session
func (d *Detector) Get(id string) (schema.DetectionSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sessions[id]
	if !ok {
		return schema.DetectionSession{}, ErrNoSession
	}
	d.expire(s, d.now())
	return *s, nil
}

// Watch records that the client opened the external context
func (d *Detector) Watch(id string) (schema.DetectionSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sessions[id]
	if !ok {
		return schema.DetectionSession{}, ErrNoSession
	}
	d.expire(s, d.now())
	if !live(s.State) {
		return *s, ErrClosed
	}
	s.State = schema.DetectWatching
	return *s, nil
}

// Message handles a cross-context message. The origin must be on the
// allow-list. A message completes the session if it has the completion
// type or reports a URL containing a confirmation marker.
func (d *Detector) Message(ctx context.Context, id, origin string, msg Message) (schema.DetectResult, error) {
	if !d.OriginAllowed(origin) {
		d.logger.Warning(5010, "detection message rejected",
			fields.NewFields(fields.NewField("session", id), fields.NewField("origin", origin)))
		return schema.DetectResult{}, ErrOriginRejected
	}

	current, err := d.Get(id)
	if err != nil {
		return schema.DetectResult{}, err
	}
	if !live(current.State) {
		return schema.DetectResult{Session: current}, ErrClosed
	}

	if msg.Type != schema.CompletionMessageType && !d.markerIn(msg.URL) {
		return schema.DetectResult{Session: current}, nil
	}
	return d.finish(ctx, []string{id}, schema.DetectCompleted, msg.Payload)
}

// StorageEvent handles a storage key change reported by an agent's client
func (d *Detector) StorageEvent(ctx context.Context, agentID, key, value string) (schema.DetectResult, error) {
	// Removal of the key is not a completion
	if value == "" {
		return schema.DetectResult{}, ErrNoSession
	}

	d.mu.Lock()
	now := d.now()
	var ids []string
	for _, s := range d.sessions {
		d.expire(s, now)
		if live(s.State) && s.AgentID == agentID && s.StorageKey == key {
			ids = append(ids, s.ID)
		}
	}
	d.mu.Unlock()

	if len(ids) == 0 {
		return schema.DetectResult{}, ErrNoSession
	}
	return d.finish(ctx, ids, schema.DetectCompleted, []byte(value))
}

// Confirm is manual confirmation. It always records a completion and
// closes every live session of the pair, including when none exist.
func (d *Detector) Confirm(ctx context.Context, formID, agentID string, payload []byte) (schema.DetectResult, error) {
	if formID == "" || agentID == "" {
		return schema.DetectResult{}, ErrInvalid
	}

	d.mu.Lock()
	now := d.now()
	var ids []string
	for _, s := range d.sessions {
		d.expire(s, now)
		if live(s.State) && s.FormID == formID && s.AgentID == agentID {
			ids = append(ids, s.ID)
		}
	}
	d.mu.Unlock()

	if len(ids) > 0 {
		return d.finish(ctx, ids, schema.DetectManuallyConfirmed, payload)
	}

	s := schema.DetectionSession{FormID: formID, AgentID: agentID, State: schema.DetectManuallyConfirmed, ArmedAt: now, ExpiresAt: now}
	if err := d.complete(ctx, s, payload); err != nil {
		return schema.DetectResult{Session: s}, err
	}
	d.logger.Info(5005, "manual confirmation recorded",
		fields.NewFields(fields.NewField("form", formID), fields.NewField("agent", agentID)))
	return schema.DetectResult{Session: s, Completed: true}, nil
}

// finish moves the sessions to state and records one completion. If
// recording fails the sessions return to their previous states.
func (d *Detector) finish(ctx context.Context, ids []string, state string, payload []byte) (schema.DetectResult, error) {
	prev := make(map[string]string, len(ids))

	d.mu.Lock()
	var first *schema.DetectionSession
	for _, id := range ids {
		s, ok := d.sessions[id]
		if !ok || !live(s.State) {
			continue
		}
		prev[id] = s.State
		s.State = state
		if first == nil {
			first = s
		}
	}
	if first == nil {
		d.mu.Unlock()
		return schema.DetectResult{}, ErrClosed
	}
	snapshot := *first
	d.mu.Unlock()

	// The callback writes to the store and runs outside the lock
	if err := d.complete(ctx, snapshot, payload); err != nil {
		d.mu.Lock()
		for id, state := range prev {
			if s, ok := d.sessions[id]; ok {
				s.State = state
			}
		}
		d.mu.Unlock()
		d.logger.Warning(5006, "completion not recorded, session reopened",
			fields.NewFields(fields.NewField("session", snapshot.ID), fields.Error(err)))
		snapshot.State = prev[snapshot.ID]
		return schema.DetectResult{Session: snapshot}, err
	}

	d.logger.Info(5004, "form completion recorded",
		fields.NewFields(
			fields.NewField("session", snapshot.ID),
			fields.NewField("form", snapshot.FormID),
			fields.NewField("agent", snapshot.AgentID),
			fields.NewField("state", state)))
	return schema.DetectResult{Session: snapshot, Completed: true}, nil
}

// Cancel stops watching without recording anything
func (d *Detector) Cancel(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.sessions[id]
	if !ok {
		return ErrNoSession
	}
	if live(s.State) {
		s.State = schema.DetectCancelled
	}
	return nil
}

// CancelAgent cancels every live session of an agent, used on logout
func (d *Detector) CancelAgent(agentID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.sessions {
		if s.AgentID == agentID && live(s.State) {
			s.State = schema.DetectCancelled
			n++
		}
	}
	return n
}

// Sweep times out expired sessions and forgets closed sessions one
// lifetime after they expired. It returns the number of live sessions.
func (d *Detector) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	count := 0
	for id, s := range d.sessions {
		d.expire(s, now)
		if live(s.State) {
			count++
			continue
		}
		if now.After(s.ExpiresAt.Add(d.ttl)) {
			delete(d.sessions, id)
		}
	}
	return count
}

// Live returns the number of sessions still watching
func (d *Detector) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	n := 0
	for _, s := range d.sessions {
		if live(s.State) && now.Before(s.ExpiresAt) {
			n++
		}
	}
	return n
}
