//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"strings"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Functional options

//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger interfaces.Logger) func(*HServer) error {
	return func(e *HServer) error {
		e.Logger = logger
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithListen(listen string) func(*HServer) error {
	return func(e *HServer) error {
		e.Listen = listen
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithHTTPTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HTTPTimeout = t
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithHTTPIdleTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HTTPIdleTimeout = t
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithHandlerTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HandlerTimeout = t
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithPenaltyBox(min, max int) func(*HServer) error {
	return func(e *HServer) error {
		e.PenaltyBoxMin = min
		e.PenaltyBoxMax = max
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithMaxConcurrent(m int) func(*HServer) error {
	return func(e *HServer) error {
		e.MaxConcurrent = m
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithDownFile(down string) func(*HServer) error {
	return func(e *HServer) error {
		e.DownFile = down
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithSEid(seid uint32) func(*HServer) error {
	return func(e *HServer) error {
		e.SEid = seid
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithHealthHandler(h bool) func(*HServer) error {
	return func(e *HServer) error {
		e.HealthHandler = h
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithDefaultHeaders(d bool) func(*HServer) error {
	return func(e *HServer) error {
		e.DefaultHeaders = d
		return nil
	}
}

// WithCORSOrigins accepts exact origins such as https://forms.example.com.
// A single "*" allows any origin.
//
//goland:noinspection GoUnusedExportedFunction
func WithCORSOrigins(origins []string) func(*HServer) error {
	return func(e *HServer) error {
		for _, o := range origins {
			o = strings.TrimRight(strings.TrimSpace(o), "/")
			if o != "" {
				e.CORSOrigins = append(e.CORSOrigins, o)
			}
		}
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithTLS(t bool, certFile, keyFile string) func(*HServer) error {
	return func(e *HServer) error {
		e.TLS = t
		e.TLSCertFile = certFile
		e.TLSKeyFile = keyFile
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithDebug(d bool) func(*HServer) error {
	return func(e *HServer) error {
		e.Debug = d
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithAuthFunc(authFunc AuthFunc) func(*HServer) error {
	return func(e *HServer) error {
		e.AuthFunc = authFunc
		return nil
	}
}
