/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"
	"strings"
)

// allowedOrigin returns the value for Access-Control-Allow-Origin or ""
func (s *HServer) allowedOrigin(origin string) string {
	if origin == "" {
		return ""
	}
	origin = strings.TrimRight(origin, "/")
	for _, o := range s.CORSOrigins {
		if o == "*" {
			return "*"
		}
		if strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// setCORS adds CORS headers when the request origin is allowed
func (s *HServer) setCORS(w http.ResponseWriter, req *http.Request) {
	allowed := s.allowedOrigin(req.Header.Get("Origin"))
	if allowed == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", allowed)
	w.Header().Add("Vary", "Origin")
}

func (s *HServer) preflight(w http.ResponseWriter, req *http.Request) {
	if s.allowedOrigin(req.Header.Get("Origin")) == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	w.Header().Set("Access-Control-Max-Age", "600")
	w.WriteHeader(http.StatusNoContent)
}
