/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package ulogger writes event-numbered log lines to a file, stdout, or both.
// Files are rotated daily and old files are removed after the retention period.
package ulogger

import (
	"io"
	"os"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

var _ interfaces.Logger = (*ULogger)(nil)

// Option is a function that configures a ULogger
type Option func(*ULogger) error

// New creates a new instance of ULogger with the provided options
func New(options ...Option) (interfaces.Logger, error) {
	u := &ULogger{retainDays: 30, stdout: os.Stdout}

	for _, option := range options {
		if err := option(u); err != nil {
			return nil, err
		}
	}

	return u.open()
}

// WithPrefix sets a process name or similar short identifier
func WithPrefix(prefix string) Option {
	return func(u *ULogger) error {
		u.prefix = prefix
		return nil
	}
}

// WithLogFile sets the log file
func WithLogFile(logfile string) Option {
	return func(u *ULogger) error {
		u.logfile = logfile
		return nil
	}
}

// WithLogStdout enables or disables logging to stdout
func WithLogStdout(logStdout bool) Option {
	return func(u *ULogger) error {
		u.logStdout = logStdout
		return nil
	}
}

// WithWriter replaces stdout as the console destination
func WithWriter(w io.Writer) Option {
	return func(u *ULogger) error {
		u.stdout = w
		return nil
	}
}

// WithDebug enables or disables debug logging
func WithDebug(debug bool) Option {
	return func(u *ULogger) error {
		u.debug = debug
		return nil
	}
}

// WithRetention sets the number of days to retain logs
func WithRetention(retainDays int) Option {
	return func(u *ULogger) error {
		u.retainDays = retainDays
		return nil
	}
}
