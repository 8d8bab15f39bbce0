//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials never says which part of a login was wrong
	ErrInvalidCredentials = errors.New("authentication failed")
	ErrNotFound           = errors.New("object not found")
	ErrForbidden          = errors.New("not permitted")
	ErrSchemaMismatch     = errors.New("table header does not match schema")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrDuplicateCode is a ValidationError, so errors.As matches it as well
var ErrDuplicateCode = &ValidationError{Field: "code", Reason: "already in use by an active agent"}
