package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/export"
	"spendwise/internal/services"
)

// CardSource lists cards for the export run.
type CardSource interface {
	ListCards(ctx context.Context) ([]core.BankCard, error)
}

// Summarizer computes a card's windowed summary.
type Summarizer interface {
	Summarize(ctx context.Context, cardID string, window services.WindowKind, today core.Date) (services.CardSummary, error)
}

// StatementExporter writes statement rows to an external sheet.
type StatementExporter interface {
	ExportStatements(ctx context.Context, rows []export.StatementRow) error
}

// ExportWorker periodically pushes every card's current statement summary
// to Google Sheets.
type ExportWorker struct {
	cards     CardSource
	summaries Summarizer
	exporter  StatementExporter
	interval  time.Duration
}

func NewExportWorker(cards CardSource, summaries Summarizer, exporter StatementExporter, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		cards:     cards,
		summaries: summaries,
		exporter:  exporter,
		interval:  interval,
	}
}

// Run exports on a fixed interval until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.ExportOnce(ctx, core.DateOf(time.Now())); err != nil {
				slog.ErrorContext(ctx, "Statement export failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ExportOnce exports statement summaries for all cards with a closing day.
func (w *ExportWorker) ExportOnce(ctx context.Context, today core.Date) error {
	cards, err := w.cards.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}

	var rows []export.StatementRow
	for _, card := range cards {
		summary, err := w.summaries.Summarize(ctx, card.ID, services.WindowStatement, today)
		if errors.Is(err, services.ErrNoClosingDay) {
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "Summary for export failed",
				"card_id", card.ID,
				"error", err)
			continue
		}

		row := export.StatementRow{
			CardName:        card.CardName,
			BankName:        card.BankName,
			WindowStart:     summary.Start,
			WindowEnd:       summary.End,
			SpendingUnits:   summary.TotalSpending.Units(),
			RepaymentUnits:  summary.TotalRepayment.Units(),
			CashbackUnits:   summary.TotalCashback.Units(),
			TransactionNums: summary.TransactionCount,
		}
		if summary.AvailableCredit != nil {
			units := summary.AvailableCredit.Units()
			row.AvailableUnits = &units
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		slog.InfoContext(ctx, "No statement summaries to export")
		return nil
	}

	if err := w.exporter.ExportStatements(ctx, rows); err != nil {
		return fmt.Errorf("export statements: %w", err)
	}

	slog.InfoContext(ctx, "Statement export complete", "rows", len(rows))
	return nil
}
