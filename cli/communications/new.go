/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"net/http"
	"strings"

	"github.com/FieldForms/FieldForms/cli/global"
)

// Ensure that Communications implements the global.Comms interface
var _ global.Comms = &Communications{}

type Communications struct {
	token   string
	baseURL string
	client  *http.Client
}

// New returns a new Communications object and optionally accepts a token.
// Requests go to global.ServerURL.
func New(token ...string) global.Comms {
	return NewWithURL(global.ServerURL, token...)
}

// NewWithURL is New with an explicit server URL
func NewWithURL(serverURL string, token ...string) *Communications {
	comms := &Communications{
		baseURL: strings.TrimRight(serverURL, "/"),
		client:  &http.Client{Timeout: global.HTTPTimeout},
	}
	if len(token) > 0 {
		comms.token = token[0]
	}
	return comms
}

func (c *Communications) SetToken(token string) {
	c.token = token
}
