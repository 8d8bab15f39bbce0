/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package rowstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Sheets is a Store backed by a single Google spreadsheet. Each table is a sheet.
type Sheets struct {
	srv           *sheets.Service
	spreadsheetID string
	logger        interfaces.Logger
}

// Ensure Sheets implements the interfaces
var _ Store = (*Sheets)(nil)
var _ Rewriter = (*Sheets)(nil)
var _ Pinger = (*Sheets)(nil)

// NewSheets creates a Sheets store. Callers normally pass
// option.WithCredentialsFile with a service account key.
func NewSheets(ctx context.Context, spreadsheetID string, logger interfaces.Logger, opts ...option.ClientOption) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: no spreadsheet id configured", ErrStoreUnavailable)
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w: %w", ErrStoreUnavailable, err)
	}
	return &Sheets{srv: srv, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// WithCredentialsFile is a convenience wrapper for the service account key option
func WithCredentialsFile(path string) option.ClientOption {
	return option.WithCredentialsFile(path)
}

func (s *Sheets) Close() error {
	return nil
}

// Ping fetches spreadsheet metadata and logs its title and sheet names
func (s *Sheets) Ping(ctx context.Context) (string, error) {
	resp, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields("properties.title,sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", s.classify("ping", s.spreadsheetID, err)
	}

	names := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			names = append(names, sh.Properties.Title)
		}
	}

	title := ""
	if resp.Properties != nil {
		title = resp.Properties.Title
	}
	s.logger.Info(4001, "connected to spreadsheet",
		fields.NewFields(
			fields.NewField("id", s.spreadsheetID),
			fields.NewField("title", title),
			fields.NewField("sheets", strings.Join(names, ","))))
	return title, nil
}

func (s *Sheets) Read(ctx context.Context, table string) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, quoteTable(table)).Context(ctx).Do()
	if err != nil {
		return nil, s.classify("read", table, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Sheets) Append(ctx context.Context, table string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, quoteTable(table)+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return s.classify("append", table, err)
	}
	return nil
}

func (s *Sheets) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, A1(table, row, col), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return s.classify("update", table, err)
	}
	return nil
}

// Replace writes rows starting at A1 in a single update. Cells of the
// previous contents beyond the new extent are overwritten with blanks,
// so a failed write leaves the old rows in place.
func (s *Sheets) Replace(ctx context.Context, table string, rows [][]string) error {
	current, err := s.Read(ctx, table)
	if err != nil {
		return err
	}

	height := max(len(rows), len(current))
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	for _, row := range current {
		width = max(width, len(row))
	}

	padded := make([][]string, height)
	for i := range padded {
		var row []string
		if i < len(rows) {
			row = rows[i]
		}
		padded[i] = Pad(row, width)
	}

	vr := &sheets.ValueRange{Values: toValues(padded)}
	_, err = s.srv.Spreadsheets.Values.Update(s.spreadsheetID, quoteTable(table)+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return s.classify("replace", table, err)
	}
	return nil
}

// classify maps API failures that a retry or configuration change would
// fix onto ErrStoreUnavailable. Anything else is returned wrapped.
func (s *Sheets) classify(op, table string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden,
			apiErr.Code == http.StatusNotFound,
			apiErr.Code == http.StatusTooManyRequests,
			apiErr.Code >= 500:
			s.logger.Warning(4002, "spreadsheet unavailable",
				fields.NewFields(
					fields.NewField("op", op),
					fields.NewField("table", table),
					fields.NewField("code", apiErr.Code)))
			return Unavailable(op, table, err)
		}
		return fmt.Errorf("%s %s: %w", op, table, err)
	}

	// Transport failures (DNS, refused, TLS, token exchange)
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.Warning(4003, "spreadsheet unreachable",
		fields.NewFields(fields.NewField("op", op), fields.NewField("table", table), fields.Error(err)))
	return Unavailable(op, table, err)
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
