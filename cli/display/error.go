/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/FieldForms/FieldForms/common/schema"
)

// ServerError is a non-2xx answer from the server
type ServerError struct {
	HTTPCode int
	Status   string
	Details  string
}

func (e *ServerError) Error() string {
	if e.Status == schema.APIStatusRetry {
		return fmt.Sprintf("server unavailable (HTTP %d): %s, try again shortly", e.HTTPCode, e.Details)
	}
	if e.Details == "" {
		return fmt.Sprintf("server returned HTTP %d", e.HTTPCode)
	}
	return fmt.Sprintf("server returned HTTP %d: %s", e.HTTPCode, e.Details)
}

// ErrorWrapper is a simple wrapper for CLI error handling.
// If there is an error, it prints it to stderr.
func ErrorWrapper(err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err.Error()))
	}
}
