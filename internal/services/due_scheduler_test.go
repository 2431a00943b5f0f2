package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
)

type fakeCardLister struct {
	cards []core.BankCard
	err   error
}

func (f *fakeCardLister) ListCards(ctx context.Context) ([]core.BankCard, error) {
	return f.cards, f.err
}

type recordingPublisher struct {
	messages []*amqp.PaymentDueMessage
	err      error
}

func (p *recordingPublisher) PublishPaymentDue(ctx context.Context, msg *amqp.PaymentDueMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name   string
		today  core.Date
		dueDay int
		want   string
	}{
		{"later this month", core.NewDate(2025, 4, 20), 25, "2025-04-25"},
		{"today is the due day", core.NewDate(2025, 4, 25), 25, "2025-04-25"},
		{"already passed - next month", core.NewDate(2025, 4, 26), 25, "2025-05-25"},
		{"clamped to short month", core.NewDate(2025, 2, 1), 31, "2025-02-28"},
		{"clamped leap february", core.NewDate(2024, 2, 1), 30, "2024-02-29"},
		{"year wrap", core.NewDate(2025, 12, 31), 15, "2026-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.today, tt.dueDay)
			if got.String() != tt.want {
				t.Errorf("NextDueDate(%s, %d) = %s, want %s", tt.today, tt.dueDay, got, tt.want)
			}
		})
	}
}

func TestProcessDueCards(t *testing.T) {
	cards := &fakeCardLister{cards: []core.BankCard{
		{ID: "due-soon", CardName: "Everyday", BankName: "ACME", PaymentDueDay: 22},
		{ID: "due-later", CardName: "Travel", BankName: "ACME", PaymentDueDay: 28},
		{ID: "no-due-day", CardName: "Debit", BankName: "ACME"},
	}}
	pub := &recordingPublisher{}
	s := NewDueScheduler(cards, pub, 3, time.Hour)

	today := core.NewDate(2025, 4, 20)
	n, err := s.ProcessDueCards(context.Background(), today)
	if err != nil {
		t.Fatalf("ProcessDueCards error = %v", err)
	}
	if n != 1 {
		t.Fatalf("published %d, want 1", n)
	}
	if pub.messages[0].CardID != "due-soon" || pub.messages[0].DueDate != "2025-04-22" {
		t.Errorf("unexpected message %+v", pub.messages[0])
	}
}

func TestProcessDueCardsAnnouncesOnce(t *testing.T) {
	cards := &fakeCardLister{cards: []core.BankCard{
		{ID: "c1", CardName: "Everyday", BankName: "ACME", PaymentDueDay: 22},
	}}
	pub := &recordingPublisher{}
	s := NewDueScheduler(cards, pub, 3, time.Hour)

	today := core.NewDate(2025, 4, 20)
	if _, err := s.ProcessDueCards(context.Background(), today); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ProcessDueCards(context.Background(), today); err != nil {
		t.Fatal(err)
	}
	if len(pub.messages) != 1 {
		t.Errorf("published %d messages for the same due date, want 1", len(pub.messages))
	}

	// Next month's due date is a fresh announcement
	if _, err := s.ProcessDueCards(context.Background(), core.NewDate(2025, 5, 20)); err != nil {
		t.Fatal(err)
	}
	if len(pub.messages) != 2 {
		t.Errorf("published %d messages total, want 2", len(pub.messages))
	}
}

func TestProcessDueCardsPublishErrorRetriesNextScan(t *testing.T) {
	cards := &fakeCardLister{cards: []core.BankCard{
		{ID: "c1", CardName: "Everyday", BankName: "ACME", PaymentDueDay: 22},
	}}
	pub := &recordingPublisher{err: errors.New("broker down")}
	s := NewDueScheduler(cards, pub, 3, time.Hour)

	today := core.NewDate(2025, 4, 20)
	n, err := s.ProcessDueCards(context.Background(), today)
	if err != nil {
		t.Fatalf("scan should not fail on publish error, got %v", err)
	}
	if n != 0 {
		t.Errorf("published %d, want 0", n)
	}

	pub.err = nil
	n, err = s.ProcessDueCards(context.Background(), today)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("published %d on retry, want 1", n)
	}
}

func TestProcessDueCardsWithoutPublisher(t *testing.T) {
	cards := &fakeCardLister{cards: []core.BankCard{
		{ID: "c1", CardName: "Everyday", BankName: "ACME", PaymentDueDay: 22},
	}}
	s := NewDueScheduler(cards, nil, 3, time.Hour)

	n, err := s.ProcessDueCards(context.Background(), core.NewDate(2025, 4, 20))
	if err != nil || n != 0 {
		t.Errorf("got (%d, %v), want (0, nil)", n, err)
	}
}
