/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package detect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

func WithLogger(logger interfaces.Logger) func(*Detector) error {
	return func(d *Detector) error {
		d.logger = logger
		return nil
	}
}

// WithTTL sets the session lifetime
func WithTTL(ttl time.Duration) func(*Detector) error {
	return func(d *Detector) error {
		if ttl <= 0 {
			return errors.New("detection ttl must be positive")
		}
		d.ttl = ttl
		return nil
	}
}

// WithAllowedOrigins sets the hosts whose messages are trusted. Subdomains match.
func WithAllowedOrigins(hosts []string) func(*Detector) error {
	return func(d *Detector) error {
		d.origins = d.origins[:0]
		for _, h := range hosts {
			h = strings.ToLower(strings.TrimSpace(h))
			if h != "" {
				d.origins = append(d.origins, h)
			}
		}
		return nil
	}
}

// WithInsecureOrigins also accepts http origins, for local testing
func WithInsecureOrigins(allow bool) func(*Detector) error {
	return func(d *Detector) error {
		d.allowInsecure = allow
		return nil
	}
}

// WithMarkers sets the URL fragments that indicate a confirmation page
func WithMarkers(markers []string) func(*Detector) error {
	return func(d *Detector) error {
		if len(markers) == 0 {
			return errors.New("at least one confirmation marker is required")
		}
		d.markers = markers
		return nil
	}
}

func WithCompletionFunc(f CompletionFunc) func(*Detector) error {
	return func(d *Detector) error {
		if f == nil {
			return errors.New("completion function is required")
		}
		d.complete = f
		return nil
	}
}

// WithEndpoint sets the external base URL used for script links. Its
// origin is the only target the injected script posts messages to.
func WithEndpoint(baseURL string) func(*Detector) error {
	return func(d *Detector) error {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL == "" {
			d.endpoint, d.appOrigin = "", ""
			return nil
		}
		u, err := url.Parse(baseURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid endpoint %q", baseURL)
		}
		d.endpoint = baseURL
		d.appOrigin = u.Scheme + "://" + u.Host
		return nil
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) func(*Detector) error {
	return func(d *Detector) error {
		d.now = now
		return nil
	}
}
