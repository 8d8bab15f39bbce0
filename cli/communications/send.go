/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// sendRequest is a lower level function that sends HTTP requests
func (c *Communications) sendRequest(method, endpoint string, payload []byte) (int, []byte, error) {
	if c.baseURL == "" {
		return 0, nil, errors.New("server URL is not set")
	}

	httpReq, err := http.NewRequest(method, c.baseURL+endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	// Set the Authorization header if a token is present
	if c.token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	if method == http.MethodPost || method == http.MethodPut {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	var responseBody bytes.Buffer
	_, err = responseBody.ReadFrom(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, responseBody.Bytes(), nil
}
