//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// See LICENSE file for details
//

package util

import "strings"

type NVPairs struct {
	Pairs map[string]string
}

// NewNVPairs parses a list of key=value strings. Keys are lower case,
// arguments without "=" are ignored.
func NewNVPairs(args []string) *NVPairs {
	r := NVPairs{
		Pairs: make(map[string]string),
	}

	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) == 2 {
			r.Pairs[strings.ToLower(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
		}
	}

	return &r
}

// Set adds a pair and returns the receiver so calls can be chained
func (p *NVPairs) Set(key, value string) *NVPairs {
	p.Pairs[strings.ToLower(key)] = value
	return p
}

// Get returns the value of key or ""
func (p *NVPairs) Get(key string) string {
	return p.Pairs[strings.ToLower(key)]
}
