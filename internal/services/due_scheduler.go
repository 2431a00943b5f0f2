package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
)

// DuePublisher publishes payment due announcements.
type DuePublisher interface {
	PublishPaymentDue(ctx context.Context, msg *amqp.PaymentDueMessage) error
}

// CardLister lists cards for due-date scanning.
type CardLister interface {
	ListCards(ctx context.Context) ([]core.BankCard, error)
}

// DueScheduler scans cards and announces payments coming due within the
// configured lead time. Each card is announced at most once per due date.
type DueScheduler struct {
	cards     CardLister
	publisher DuePublisher
	leadDays  int
	interval  time.Duration

	announced map[string]struct{}
}

func NewDueScheduler(cards CardLister, publisher DuePublisher, leadDays int, interval time.Duration) *DueScheduler {
	return &DueScheduler{
		cards:     cards,
		publisher: publisher,
		leadDays:  leadDays,
		interval:  interval,
		announced: make(map[string]struct{}),
	}
}

// Run scans on a fixed interval until the context is cancelled.
func (s *DueScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First scan immediately on startup
	if _, err := s.ProcessDueCards(ctx, core.DateOf(time.Now())); err != nil {
		slog.ErrorContext(ctx, "Due card scan failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := s.ProcessDueCards(ctx, core.DateOf(time.Now())); err != nil {
				slog.ErrorContext(ctx, "Due card scan failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ProcessDueCards announces every card whose payment due date falls within
// leadDays of today. Returns the number of announcements published.
func (s *DueScheduler) ProcessDueCards(ctx context.Context, today core.Date) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}

	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cards: %w", err)
	}

	published := 0
	for _, card := range cards {
		if card.PaymentDueDay == 0 {
			continue
		}

		dueDate := NextDueDate(today, card.PaymentDueDay)
		daysUntil := int(dueDate.Time.Sub(today.Time).Hours() / 24)
		if daysUntil > s.leadDays {
			continue
		}

		key := card.ID + ":" + dueDate.String()
		if _, done := s.announced[key]; done {
			continue
		}

		msg := amqp.NewPaymentDueMessage(card.ID, card.CardName, card.BankName, dueDate.String())
		if err := s.publisher.PublishPaymentDue(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish payment due message",
				"card_id", card.ID,
				"due_date", dueDate.String(),
				"error", err)
			continue
		}

		s.announced[key] = struct{}{}
		published++
		slog.InfoContext(ctx, "Payment due announced",
			"card_id", card.ID,
			"card_name", card.CardName,
			"due_date", dueDate.String(),
			"days_until", daysUntil)
	}

	return published, nil
}

// NextDueDate returns the next occurrence of the card's due day on or after
// today, clamped to the end of short months.
func NextDueDate(today core.Date, dueDay int) core.Date {
	due := clampToMonth(today.Year(), today.Month(), dueDay)
	if due.Time.Before(today.Time) {
		due = clampToMonth(today.Year(), today.Month()+1, dueDay)
	}
	return due
}

func clampToMonth(year, month, day int) core.Date {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return core.NewDate(first.Year(), int(first.Month()), day)
}
