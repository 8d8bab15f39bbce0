/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FieldForms/FieldForms/cli/credentials"
	"github.com/FieldForms/FieldForms/common/schema"
)

// Out receives everything the display functions print
var Out io.Writer = os.Stdout

// AnyResp handles any response from the server and pretty-prints it
// It also checks for an expired access token
func AnyResp(statusCode int, data []byte, err error) error {
	resp, err := decode[schema.APIAnyResponse](statusCode, data, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(Out, "\nServer response: HTTP %d\n", statusCode)
	return pretty(resp)
}

// decode checks the transport error, unmarshals the body and clears the
// access token when the server reports it expired
func decode[T any](statusCode int, data []byte, err error) (T, error) {
	var resp T
	if err != nil {
		return resp, fmt.Errorf("HTTP request failed: %w", err)
	}

	var status schema.APIAnyResponse
	if err = json.Unmarshal(data, &status); err != nil {
		return resp, fmt.Errorf("failed to unmarshal response (HTTP %d): %w", statusCode, err)
	}
	if status.Status == schema.APIStatusExpired {
		credentials.AccessExpired()
	}

	if statusCode >= 400 {
		return resp, &ServerError{HTTPCode: statusCode, Status: status.Status, Details: status.Details}
	}

	if err = json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp, nil
}

func pretty(v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling to JSON: %w", err)
	}
	_, err = fmt.Fprintln(Out, string(jsonData))
	return err
}
