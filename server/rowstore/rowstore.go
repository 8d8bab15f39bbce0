/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package rowstore treats a tabular backend as a row oriented database.
// Every table is a header row followed by data rows. Rows and columns
// are 0-based and the header is row 0.
package rowstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrStoreUnavailable is returned when the backend is unreachable,
// misconfigured, denies access or has been closed
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrNotSupported is returned when a backend lacks an optional operation
var ErrNotSupported = errors.New("operation not supported by store")

type Store interface {
	Read(ctx context.Context, table string) ([][]string, error)
	Append(ctx context.Context, table string, rows [][]string) error
	UpdateCell(ctx context.Context, table string, row, col int, value string) error
	Close() error
}

// Rewriter is implemented by stores that can replace a table's contents.
// It is only used by schema migration.
type Rewriter interface {
	Replace(ctx context.Context, table string, rows [][]string) error
}

// Pinger is implemented by stores that can check connectivity
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

type ctxKey int

const noCacheKey ctxKey = iota

// NoCache returns a context that bypasses read caches. Used by
// read-modify-write paths that must see the current stored value.
func NoCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, noCacheKey, true)
}

func bypassCache(ctx context.Context) bool {
	v, ok := ctx.Value(noCacheKey).(bool)
	return ok && v
}

// ColumnLetter converts a 0-based column index to spreadsheet letters (0 = A, 26 = AA)
func ColumnLetter(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

// A1 returns the A1 notation for a single cell, e.g. A1("Sheet2", 4, 6) == "Sheet2!G5"
func A1(table string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", quoteTable(table), ColumnLetter(col), row+1)
}

// quoteTable quotes sheet names that A1 notation would otherwise misread
func quoteTable(table string) string {
	if strings.ContainsAny(table, " !'") {
		return "'" + strings.ReplaceAll(table, "'", "''") + "'"
	}
	return table
}

// Unavailable wraps err with ErrStoreUnavailable unless it already is
func Unavailable(op, table string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%s %s: %w: %w", op, table, ErrStoreUnavailable, err)
}

// Pad returns row extended with empty cells to at least n columns
func Pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
