// Package sheetstore provides the Google Sheets backed record store used for
// all persistent state. It exposes plain row-level operations; table schemas
// live with the packages that own them.
package sheetstore

import (
	"context"
	"io"
	"log"
	"log/slog"
	"path/filepath"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mvgcolleges/voting-go/internal/conf"
	"github.com/mvgcolleges/voting-go/internal/errors"
	"github.com/mvgcolleges/voting-go/internal/logging"
)

// Package-level logger specific to the sheets service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "sheetstore.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "sheetstore", serviceLevelVar)
	if err != nil {
		// Fallback: disable service logging rather than panic on a bad log path.
		log.Printf("warning: failed to initialize sheetstore file logger at %s: %v", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "sheetstore")
		closeLogger = func() error { return nil }
	}
}

// RowStore is the record store contract consumed by the directory and ledger.
// Ranges use A1 notation including the sheet name ("Votes!A2:J").
type RowStore interface {
	// FetchRows returns the rows of the given range in sheet order.
	FetchRows(ctx context.Context, readRange string) ([][]any, error)
	// AppendRow appends a single row after the given table range.
	AppendRow(ctx context.Context, appendRange string, row []any) error
	// UpdateCells overwrites the cells of the given range.
	UpdateCells(ctx context.Context, updateRange string, rows [][]any) error
}

// Client implements RowStore against the Sheets v4 API. Operations are not
// retried and carry no atomicity across calls; a single failure propagates
// to the caller.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	debug         bool
}

// compile-time interface check
var _ RowStore = (*Client)(nil)

// New creates a sheets client from the given settings. Credentials come from
// inline service account JSON when set, otherwise from the key file.
// Additional client options (e.g. a mock HTTP client in tests) are appended
// after the credential option.
func New(ctx context.Context, settings *conf.SheetsSettings, opts ...option.ClientOption) (*Client, error) {
	if settings.SpreadsheetID == "" {
		return nil, errors.Newf("spreadsheet id is required").
			Category(errors.CategoryConfiguration).
			Component("sheetstore").
			Build()
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case settings.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(settings.CredentialsJSON)))
	case settings.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(settings.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Component("sheetstore").
			Build()
	}

	return &Client{
		svc:           svc,
		spreadsheetID: settings.SpreadsheetID,
	}, nil
}

// SetDebug enables verbose logging of individual store calls.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
	if debug {
		serviceLevelVar.Set(slog.LevelDebug)
	}
}

// FetchRows returns all rows of the range in sheet order. An empty range
// yields an empty slice, not an error.
func (c *Client) FetchRows(ctx context.Context, readRange string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		logger.Error("fetch failed", "range", readRange, "error", err)
		return nil, storeError(err, "fetch", readRange)
	}

	if c.debug {
		logger.Debug("fetched rows", "range", readRange, "count", len(resp.Values))
	}
	return resp.Values, nil
}

// AppendRow appends one row after the last row of the table range.
func (c *Client) AppendRow(ctx context.Context, appendRange string, row []any) error {
	body := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("append failed", "range", appendRange, "error", err)
		return storeError(err, "append", appendRange)
	}

	if c.debug {
		logger.Debug("appended row", "range", appendRange)
	}
	return nil
}

// UpdateCells overwrites the cells of the range with the given rows.
func (c *Client) UpdateCells(ctx context.Context, updateRange string, rows [][]any) error {
	body := &sheets.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, updateRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("update failed", "range", updateRange, "error", err)
		return storeError(err, "update", updateRange)
	}

	if c.debug {
		logger.Debug("updated cells", "range", updateRange)
	}
	return nil
}

// Close releases the service log writer.
func Close() error {
	return closeLogger()
}

func storeError(err error, op, rng string) error {
	return errors.New(err).
		Category(errors.CategorySheets).
		Component("sheetstore").
		Context("operation", op).
		Context("range", rng).
		Build()
}
