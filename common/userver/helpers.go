//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"net"
	"net/http"
	"strings"
)

// RemoteIP returns the client IP without the port, preferring the first
// X-Forwarded-For entry when a proxy or load balancer is in front.
//
//goland:noinspection GoUnusedExportedFunction
func RemoteIP(req *http.Request) string {
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
