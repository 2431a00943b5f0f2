package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendwise/internal/cache"
	"spendwise/internal/core"
)

// WindowKind selects which slice of a card's history a summary covers.
type WindowKind string

const (
	WindowStatement WindowKind = "statement"
	WindowWeek      WindowKind = "week"
	WindowAll       WindowKind = "all"
)

var (
	ErrUnknownWindow = errors.New("unknown summary window")
	ErrNoClosingDay  = errors.New("card has no statement closing day configured")
)

// CardStore is the storage surface the card service needs.
type CardStore interface {
	GetCard(ctx context.Context, id string) (core.BankCard, error)
	ListTransactionsByCard(ctx context.Context, cardID string) ([]core.Transaction, error)
	ListPoliciesByCard(ctx context.Context, cardID string) ([]core.CashbackPolicy, error)
}

// CardSummary is a card summary annotated with the window it covers.
// Start and End are empty for the all-time window.
type CardSummary struct {
	core.Summary
	Window       WindowKind
	Start        string
	End          string
	Transactions []TransactionCashback
}

// TransactionCashback pairs a transaction with the cashback it earned.
type TransactionCashback struct {
	Transaction core.Transaction
	Cashback    core.Money
}

// CardService computes card summaries over statement, week, or all-time
// windows, with a small TTL cache in front of storage.
type CardService struct {
	store CardStore
	cache *cache.LRU[CardSummary]
}

func NewCardService(store CardStore, summaryCache *cache.LRU[CardSummary]) *CardService {
	return &CardService{store: store, cache: summaryCache}
}

// Summarize computes the summary for a card over the requested window,
// evaluated as of today.
func (s *CardService) Summarize(ctx context.Context, cardID string, window WindowKind, today core.Date) (CardSummary, error) {
	cacheKey := fmt.Sprintf("card:%s:%s:%s", cardID, window, today)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return CardSummary{}, fmt.Errorf("get card: %w", err)
	}

	txs, err := s.store.ListTransactionsByCard(ctx, cardID)
	if err != nil {
		return CardSummary{}, fmt.Errorf("list transactions: %w", err)
	}

	policies, err := s.store.ListPoliciesByCard(ctx, cardID)
	if err != nil {
		return CardSummary{}, fmt.Errorf("list policies: %w", err)
	}

	result := CardSummary{Window: window}
	switch window {
	case WindowStatement:
		if card.StatementClosingDay == 0 {
			return CardSummary{}, ErrNoClosingDay
		}
		w, err := core.CurrentStatementWindow(today, card.StatementClosingDay)
		if err != nil {
			return CardSummary{}, err
		}
		txs = w.Filter(txs)
		result.Start = w.Start.String()
		result.End = w.End.String()
	case WindowWeek:
		w := core.WeekWindow(today)
		txs = w.Filter(txs)
		result.Start = w.Start.String()
		result.End = w.End.String()
	case WindowAll:
		// all transactions
	default:
		return CardSummary{}, ErrUnknownWindow
	}

	summary, err := core.Summarize(txs, policies, card.CreditLimit)
	if err != nil {
		return CardSummary{}, fmt.Errorf("summarize card %s: %w", cardID, err)
	}
	result.Summary = summary

	result.Transactions = make([]TransactionCashback, len(txs))
	for i, tx := range txs {
		result.Transactions[i] = TransactionCashback{
			Transaction: tx,
			Cashback:    core.Cashback(tx, policies),
		}
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, result)
	}

	slog.DebugContext(ctx, "Card summary computed",
		"card_id", cardID,
		"window", string(window),
		"transactions", result.TransactionCount)

	return result, nil
}

// Invalidate drops cached summaries for a card after a write.
func (s *CardService) Invalidate(cardID string) {
	if s.cache != nil {
		s.cache.DeletePrefix("card:" + cardID + ":")
	}
}
