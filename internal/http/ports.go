package http

import (
	"context"

	"spendwise/internal/core"
	"spendwise/internal/services"
	"spendwise/internal/storage"
)

// Store is the persistence surface the server depends on.
type Store interface {
	Ping(ctx context.Context) error

	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	GetCategory(ctx context.Context, id string) (core.Category, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id string) error

	CreateCard(ctx context.Context, c core.BankCard) (core.BankCard, error)
	GetCard(ctx context.Context, id string) (core.BankCard, error)
	ListCards(ctx context.Context) ([]core.BankCard, error)
	UpdateCard(ctx context.Context, c core.BankCard) error
	DeleteCard(ctx context.Context, id string) error

	CreatePolicy(ctx context.Context, p core.CashbackPolicy) (core.CashbackPolicy, error)
	GetPolicy(ctx context.Context, id string) (core.CashbackPolicy, error)
	ListPoliciesByCard(ctx context.Context, cardID string) ([]core.CashbackPolicy, error)
	UpdatePolicy(ctx context.Context, p core.CashbackPolicy) error
	DeletePolicy(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactionsByCard(ctx context.Context, cardID string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	ListRecentNotifications(ctx context.Context, limit int) ([]storage.StoredNotification, error)
}

// Summarizer computes windowed card summaries.
type Summarizer interface {
	Summarize(ctx context.Context, cardID string, window services.WindowKind, today core.Date) (services.CardSummary, error)
	Invalidate(cardID string)
}

// OverviewProvider builds yearly statistics.
type OverviewProvider interface {
	OverviewForYear(ctx context.Context, year int) (core.YearOverview, error)
	Invalidate()
}
