/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"net/http"
	"net/url"

	"github.com/FieldForms/FieldForms/cli/util"
)

// Get sends a GET request to the specified endpoint and returns the response body
func (c *Communications) Get(endpoint string) (int, []byte, error) {
	return c.sendRequest(http.MethodGet, endpoint, nil)
}

// GetQuery turns pairs into escaped query parameters for a GET request
func (c *Communications) GetQuery(endpoint string, pairs *util.NVPairs) (int, []byte, error) {
	if pairs != nil && len(pairs.Pairs) > 0 {
		values := url.Values{}
		for n, v := range pairs.Pairs {
			values.Set(n, v)
		}
		endpoint += "?" + values.Encode()
	}
	return c.sendRequest(http.MethodGet, endpoint, nil)
}
