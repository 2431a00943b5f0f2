package worker

import (
	"context"
	"errors"
	"testing"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/export"
	"spendwise/internal/services"
)

type fakeNotificationStore struct {
	cardIDs  []string
	messages []string
	dueDates []core.Date
	err      error
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, cardID, message string, dueDate core.Date) error {
	if f.err != nil {
		return f.err
	}
	f.cardIDs = append(f.cardIDs, cardID)
	f.messages = append(f.messages, message)
	f.dueDates = append(f.dueDates, dueDate)
	return nil
}

func TestHandlePaymentDue(t *testing.T) {
	store := &fakeNotificationStore{}
	w := NewNotificationWorker(store)

	msg := amqp.NewPaymentDueMessage("card-1", "Everyday", "ACME Bank", "2025-04-25")
	if err := w.HandlePaymentDue(context.Background(), msg); err != nil {
		t.Fatalf("HandlePaymentDue error = %v", err)
	}

	if len(store.cardIDs) != 1 || store.cardIDs[0] != "card-1" {
		t.Errorf("stored card ids = %v", store.cardIDs)
	}
	if store.dueDates[0].String() != "2025-04-25" {
		t.Errorf("due date = %s", store.dueDates[0])
	}
}

func TestHandlePaymentDueBadDate(t *testing.T) {
	w := NewNotificationWorker(&fakeNotificationStore{})

	msg := amqp.NewPaymentDueMessage("card-1", "Everyday", "ACME Bank", "25/04/2025")
	if err := w.HandlePaymentDue(context.Background(), msg); err == nil {
		t.Error("expected error for malformed due date")
	}
}

func TestHandlePaymentDueStoreFailure(t *testing.T) {
	w := NewNotificationWorker(&fakeNotificationStore{err: errors.New("db locked")})

	msg := amqp.NewPaymentDueMessage("card-1", "Everyday", "ACME Bank", "2025-04-25")
	if err := w.HandlePaymentDue(context.Background(), msg); err == nil {
		t.Error("expected store error to propagate for requeue")
	}
}

type fakeCardSource struct {
	cards []core.BankCard
}

func (f *fakeCardSource) ListCards(ctx context.Context) ([]core.BankCard, error) {
	return f.cards, nil
}

type fakeSummarizer struct {
	summaries map[string]services.CardSummary
}

func (f *fakeSummarizer) Summarize(ctx context.Context, cardID string, window services.WindowKind, today core.Date) (services.CardSummary, error) {
	s, ok := f.summaries[cardID]
	if !ok {
		return services.CardSummary{}, services.ErrNoClosingDay
	}
	return s, nil
}

type fakeExporter struct {
	rows [][]export.StatementRow
	err  error
}

func (f *fakeExporter) ExportStatements(ctx context.Context, rows []export.StatementRow) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows)
	return nil
}

func TestExportOnce(t *testing.T) {
	available := core.Money{Cents: 93000}
	cards := &fakeCardSource{cards: []core.BankCard{
		{ID: "c1", CardName: "Everyday", BankName: "ACME", StatementClosingDay: 15},
		{ID: "c2", CardName: "Debit", BankName: "ACME"}, // no closing day, skipped
	}}
	summaries := &fakeSummarizer{summaries: map[string]services.CardSummary{
		"c1": {
			Summary: core.Summary{
				TotalSpending:    core.Money{Cents: 10000},
				TotalRepayment:   core.Money{Cents: 3000},
				TotalCashback:    core.Money{Cents: 500},
				TransactionCount: 2,
				AvailableCredit:  &available,
			},
			Window: services.WindowStatement,
			Start:  "2025-04-15",
			End:    "2025-04-20",
		},
	}}
	exporter := &fakeExporter{}
	w := NewExportWorker(cards, summaries, exporter, 0)

	if err := w.ExportOnce(context.Background(), core.NewDate(2025, 4, 20)); err != nil {
		t.Fatalf("ExportOnce error = %v", err)
	}

	if len(exporter.rows) != 1 {
		t.Fatalf("export calls = %d, want 1", len(exporter.rows))
	}
	rows := exporter.rows[0]
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (card without closing day skipped)", len(rows))
	}
	row := rows[0]
	if row.CardName != "Everyday" || row.WindowStart != "2025-04-15" {
		t.Errorf("unexpected row %+v", row)
	}
	if row.SpendingUnits != 100 || row.CashbackUnits != 5 {
		t.Errorf("units = %v/%v, want 100/5", row.SpendingUnits, row.CashbackUnits)
	}
	if row.AvailableUnits == nil || *row.AvailableUnits != 930 {
		t.Errorf("AvailableUnits = %v, want 930", row.AvailableUnits)
	}
}

func TestExportOnceNoEligibleCards(t *testing.T) {
	cards := &fakeCardSource{cards: []core.BankCard{
		{ID: "c1", CardName: "Debit", BankName: "ACME"},
	}}
	exporter := &fakeExporter{}
	w := NewExportWorker(cards, &fakeSummarizer{}, exporter, 0)

	if err := w.ExportOnce(context.Background(), core.NewDate(2025, 4, 20)); err != nil {
		t.Fatalf("ExportOnce error = %v", err)
	}
	if len(exporter.rows) != 0 {
		t.Errorf("export should be skipped with no rows")
	}
}
