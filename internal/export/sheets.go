// Package export pushes statement summaries to a Google Sheet so they can
// be reviewed outside the app.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// StatementRow is one card's current statement summary, flattened for a
// spreadsheet row.
type StatementRow struct {
	CardName        string
	BankName        string
	WindowStart     string
	WindowEnd       string
	SpendingUnits   float64
	RepaymentUnits  float64
	CashbackUnits   float64
	AvailableUnits  *float64
	TransactionNums int
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Credentials carries service account credentials, either inline JSON or a
// file path.
type Credentials struct {
	JSON string
	File string
}

func NewClient(ctx context.Context, spreadsheetID, sheetName string, creds Credentials) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var credentialsJSON []byte
	switch {
	case creds.JSON != "":
		credentialsJSON = []byte(creds.JSON)
	case creds.File != "":
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

var header = []any{
	"Card", "Bank", "Statement Start", "Statement End",
	"Spending", "Repayment", "Cashback", "Available Credit", "Transactions",
}

// ExportStatements replaces the sheet's contents with the given rows.
func (c *Client) ExportStatements(ctx context.Context, rows []StatementRow) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:I", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, header)
	for _, row := range rows {
		available := any("")
		if row.AvailableUnits != nil {
			available = *row.AvailableUnits
		}
		values = append(values, []any{
			row.CardName, row.BankName, row.WindowStart, row.WindowEnd,
			row.SpendingUnits, row.RepaymentUnits, row.CashbackUnits,
			available, row.TransactionNums,
		})
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Exported statement summaries",
		"sheet", c.sheetName,
		"rows", len(rows))

	return nil
}
