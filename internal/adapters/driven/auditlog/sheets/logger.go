// Package sheets keeps the append-only interaction audit trail in a
// Google Sheets spreadsheet via a service account.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// Ensure Logger implements the interface.
var _ driven.InteractionLog = (*Logger)(nil)

// DefaultSheetName is the tab interactions are appended to.
const DefaultSheetName = "Email Interactions"

// headerRow is the fixed column layout of the audit sheet. Appended rows
// follow this order exactly.
var headerRow = []string{
	"Timestamp",
	"Sender Name",
	"Sender Email",
	"Company Name",
	"Industry",
	"Funding Stage",
	"Ask Amount",
	"Request Summary",
	"Key Points",
	"Original Email",
	"Response",
	"Status",
}

// Config holds settings for the audit spreadsheet.
type Config struct {
	// CredentialsPath points at a service account JSON key (required).
	CredentialsPath string

	// SpreadsheetID identifies the spreadsheet (required).
	SpreadsheetID string

	// SheetName is the tab to append to (default: "Email Interactions").
	SheetName string
}

// Logger appends interaction records to one spreadsheet tab.
type Logger struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewLogger authenticates with the service account key and makes sure
// the target tab exists with the expected header row.
func NewLogger(ctx context.Context, cfg Config) (*Logger, error) {
	if cfg.CredentialsPath == "" || cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: credentials path and spreadsheet id are required: %w", domain.ErrConfiguration)
	}
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultSheetName
	}

	key, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	l := &Logger{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}
	if err := l.ensureSheet(ctx); err != nil {
		return nil, fmt.Errorf("initialize sheet: %w", err)
	}
	return l, nil
}

// ensureSheet creates the tab if missing and writes the header row when
// the tab is empty.
func (l *Logger) ensureSheet(ctx context.Context) error {
	meta, err := l.service.Spreadsheets.Get(l.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	exists := false
	for _, sheet := range meta.Sheets {
		if sheet.Properties.Title == l.sheetName {
			exists = true
			break
		}
	}
	if !exists {
		_, err = l.service.Spreadsheets.BatchUpdate(l.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: l.sheetName},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
	}

	resp, err := l.service.Spreadsheets.Values.Get(l.spreadsheetID, l.sheetName+"!A1:L1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(resp.Values) == 0 {
		header := make([]any, len(headerRow))
		for i, h := range headerRow {
			header[i] = h
		}
		_, err = l.service.Spreadsheets.Values.Update(l.spreadsheetID, l.sheetName+"!A1", &sheets.ValueRange{
			Values: [][]any{header},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
	}
	return nil
}

// Append logs one processed interaction as a new row.
func (l *Logger) Append(ctx context.Context, rec domain.InteractionRecord) error {
	_, err := l.service.Spreadsheets.Values.Append(l.spreadsheetID, l.sheetName+"!A1", &sheets.ValueRange{
		Values: [][]any{rowFor(rec)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

// History returns up to limit logged interactions, newest last, as raw
// string rows in header order. Short rows are padded so every row has a
// value per column.
func (l *Logger) History(ctx context.Context, limit int) ([][]string, error) {
	if limit <= 0 {
		limit = 100
	}
	resp, err := l.service.Spreadsheets.Values.Get(
		l.spreadsheetID,
		fmt.Sprintf("%s!A2:L%d", l.sheetName, limit+1),
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(headerRow))
		for i := range row {
			if i < len(raw) {
				row[i] = fmt.Sprint(raw[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowFor renders one record in header order.
func rowFor(rec domain.InteractionRecord) []any {
	return []any{
		rec.Timestamp.Format("2006-01-02 15:04:05"),
		rec.Fields.SenderName,
		rec.Fields.SenderEmail,
		rec.Fields.CompanyName,
		rec.Fields.Industry,
		rec.Fields.FundingStage,
		rec.Fields.AskAmount,
		rec.Fields.RequestSummary,
		rec.Fields.KeyPoints,
		rec.OriginalEmail,
		rec.Response,
		rec.Status,
	}
}
