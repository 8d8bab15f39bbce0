//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package detect

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

var formIDPattern = regexp.MustCompile(`/forms/d/(?:e/)?([A-Za-z0-9_-]+)`)

// ExternalFormID extracts the id of a hosted form from its URL. URLs of
// other hosts get a short hash so that the storage key is still stable.
func ExternalFormID(externalURL string) string {
	if m := formIDPattern.FindStringSubmatch(externalURL); m != nil {
		return m[1]
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(externalURL)))
	return hex.EncodeToString(sum[:6])
}

// StorageKey is the key the injected script writes on completion
func StorageKey(externalFormID string) string {
	return "form_completion_" + externalFormID
}

// OriginAllowed reports whether a message origin is on the allow-list
func (d *Detector) OriginAllowed(origin string) bool {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Host == "" {
		return false
	}

	switch u.Scheme {
	case "https":
	case "http":
		if !d.allowInsecure {
			return false
		}
	default:
		return false
	}

	host := strings.ToLower(u.Hostname())
	for _, allowed := range d.origins {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func (d *Detector) markerIn(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	for _, m := range d.markers {
		if m != "" && strings.Contains(rawURL, m) {
			return true
		}
	}
	return false
}
