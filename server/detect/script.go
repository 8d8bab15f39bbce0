//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/FieldForms/FieldForms/common/schema"
)

// confirmationSelectors identify the thank-you page of hosted forms
var confirmationSelectors = []string{
	`[data-response="Thank you"]`,
	`.freebirdFormviewerViewResponseConfirmationMessage`,
}

// The script runs inside the external form's context. It reports a
// submission to the opening window, only when that window belongs to the
// application origin, and also leaves a marker in storage for the case
// where the form was opened as a separate top-level window.
var scriptTemplate = template.Must(template.New("detect").Parse(`(function () {
  var info = {
    type: '{{js .MessageType}}',
    formId: '{{js .FormID}}',
    agentId: '{{js .AgentID}}',
    session: '{{js .SessionID}}'
  };
  var storageKey = '{{js .StorageKey}}';
  var targetOrigin = '{{js .TargetOrigin}}';
  var markers = {{.Markers}};
  var selectors = {{.Selectors}};
  var done = false;

  function collect() {
    var responses = {};
    document.querySelectorAll('input, textarea, select').forEach(function (el) {
      if (el.name && el.value) { responses[el.name] = el.value; }
    });
    return responses;
  }

  function submitted() {
    for (var i = 0; i < markers.length; i++) {
      if (window.location.href.indexOf(markers[i]) !== -1) { return true; }
    }
    for (var j = 0; j < selectors.length; j++) {
      if (document.querySelector(selectors[j])) { return true; }
    }
    return false;
  }

  function report() {
    if (done || !submitted()) { return; }
    done = true;
    var msg = Object.assign({}, info, { url: window.location.href, timestamp: new Date().toISOString(), responses: collect() });
    if (targetOrigin) {
      try { (window.opener || window.parent).postMessage(msg, targetOrigin); } catch (e) {}
    }
    try { window.localStorage.setItem(storageKey, JSON.stringify(msg)); } catch (e) {}
    if (observer) { observer.disconnect(); }
    clearTimeout(timer);
  }

  var observer = window.MutationObserver ? new MutationObserver(report) : null;
  if (observer) { observer.observe(document.documentElement, { childList: true, subtree: true }); }
  var timer = setTimeout(function () { if (observer) { observer.disconnect(); } done = true; }, {{.LifetimeMS}});
  window.addEventListener('load', report);
  report();
})();
`))

type scriptData struct {
	MessageType  string
	FormID       string
	AgentID      string
	SessionID    string
	StorageKey   string
	TargetOrigin string
	Markers      string
	Selectors    string
	LifetimeMS   int64
}

// Script renders the detection script for a session
func (d *Detector) Script(id string) (string, error) {
	s, err := d.Get(id)
	if err != nil {
		return "", err
	}

	markers, err := json.Marshal(d.markers)
	if err != nil {
		return "", err
	}
	selectors, err := json.Marshal(confirmationSelectors)
	if err != nil {
		return "", err
	}

	remaining := s.ExpiresAt.Sub(d.now()).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}

	var buf bytes.Buffer
	err = scriptTemplate.Execute(&buf, scriptData{
		MessageType:  schema.CompletionMessageType,
		FormID:       s.FormID,
		AgentID:      s.AgentID,
		SessionID:    s.ID,
		StorageKey:   s.StorageKey,
		TargetOrigin: d.appOrigin,
		Markers:      string(markers),
		Selectors:    string(selectors),
		LifetimeMS:   remaining,
	})
	if err != nil {
		return "", fmt.Errorf("unable to render script: %w", err)
	}
	return buf.String(), nil
}
