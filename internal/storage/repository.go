package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendwise/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("storage: not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping reports whether the database connection is healthy.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	row, err := r.queries.CreateCategory(ctx, uuid.NewString(), c.Name, c.Description)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", row.ID, "name", row.Name)
	return categoryFromRow(row), nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	row, err := r.queries.GetCategory(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return categoryFromRow(row), nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]core.Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromRow(row)
	}
	return categories, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	n, err := r.queries.UpdateCategory(ctx, c.ID, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	n, err := r.queries.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.BankCard) (core.BankCard, error) {
	if err := c.Validate(); err != nil {
		return core.BankCard{}, err
	}

	row, err := r.queries.CreateCard(ctx, CreateCardParams{
		ID:                  uuid.NewString(),
		CardName:            c.CardName,
		BankName:            c.BankName,
		CardType:            c.CardType,
		CardNumberLast4:     c.CardNumberLast4,
		CardColor:           c.CardColor,
		CreditLimitCents:    nullCents(c.CreditLimit),
		StatementClosingDay: nullDay(c.StatementClosingDay),
		PaymentDueDay:       nullDay(c.PaymentDueDay),
	})
	if err != nil {
		return core.BankCard{}, fmt.Errorf("create card: %w", err)
	}

	slog.InfoContext(ctx, "Card created", "id", row.ID, "name", row.CardName)
	return cardFromRow(row), nil
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id string) (core.BankCard, error) {
	row, err := r.queries.GetCard(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BankCard{}, ErrNotFound
	}
	if err != nil {
		return core.BankCard{}, fmt.Errorf("get card: %w", err)
	}
	return cardFromRow(row), nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.BankCard, error) {
	rows, err := r.queries.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	cards := make([]core.BankCard, len(rows))
	for i, row := range rows {
		cards[i] = cardFromRow(row)
	}
	return cards, nil
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, c core.BankCard) error {
	if err := c.Validate(); err != nil {
		return err
	}

	n, err := r.queries.UpdateCard(ctx, UpdateCardParams{
		ID:                  c.ID,
		CardName:            c.CardName,
		BankName:            c.BankName,
		CardType:            c.CardType,
		CardNumberLast4:     c.CardNumberLast4,
		CardColor:           c.CardColor,
		CreditLimitCents:    nullCents(c.CreditLimit),
		StatementClosingDay: nullDay(c.StatementClosingDay),
		PaymentDueDay:       nullDay(c.PaymentDueDay),
	})
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, id string) error {
	n, err := r.queries.DeleteCard(ctx, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Card deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreatePolicy(ctx context.Context, p core.CashbackPolicy) (core.CashbackPolicy, error) {
	if err := p.Validate(); err != nil {
		return core.CashbackPolicy{}, err
	}

	row, err := r.queries.CreatePolicy(ctx, uuid.NewString(), p.CardID, p.CategoryID, p.Percentage, nullCents(p.MaxCashback))
	if err != nil {
		return core.CashbackPolicy{}, fmt.Errorf("create policy: %w", err)
	}

	slog.InfoContext(ctx, "Cashback policy created", "id", row.ID, "card_id", row.CardID, "category_id", row.CategoryID)
	return policyFromRow(row), nil
}

func (r *SQLiteRepository) GetPolicy(ctx context.Context, id string) (core.CashbackPolicy, error) {
	row, err := r.queries.GetPolicy(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CashbackPolicy{}, ErrNotFound
	}
	if err != nil {
		return core.CashbackPolicy{}, fmt.Errorf("get policy: %w", err)
	}
	return policyFromRow(row), nil
}

func (r *SQLiteRepository) ListPoliciesByCard(ctx context.Context, cardID string) ([]core.CashbackPolicy, error) {
	rows, err := r.queries.ListPoliciesByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}

	policies := make([]core.CashbackPolicy, len(rows))
	for i, row := range rows {
		policies[i] = policyFromRow(row)
	}
	return policies, nil
}

func (r *SQLiteRepository) UpdatePolicy(ctx context.Context, p core.CashbackPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}

	n, err := r.queries.UpdatePolicy(ctx, p.ID, p.CategoryID, p.Percentage, nullCents(p.MaxCashback))
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeletePolicy(ctx context.Context, id string) error {
	n, err := r.queries.DeletePolicy(ctx, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Cashback policy deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:              uuid.NewString(),
		CardID:          t.CardID,
		AmountCents:     t.Amount.Cents,
		Currency:        t.Currency,
		MerchantName:    t.MerchantName,
		CategoryID:      nullString(t.CategoryID),
		TransactionDate: t.Date.String(),
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", row.ID, "card_id", row.CardID, "amount_cents", row.AmountCents)
	tx, err := transactionFromRow(row)
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return transactionFromRow(row)
}

func (r *SQLiteRepository) ListTransactionsByCard(ctx context.Context, cardID string) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactionsByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromRows(rows)
}

func (r *SQLiteRepository) ListTransactionsByYear(ctx context.Context, year int) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactionsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list transactions by year: %w", err)
	}
	return transactionsFromRows(rows)
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	n, err := r.queries.UpdateTransaction(ctx, UpdateTransactionParams{
		ID:              t.ID,
		AmountCents:     t.Amount.Cents,
		Currency:        t.Currency,
		MerchantName:    t.MerchantName,
		CategoryID:      nullString(t.CategoryID),
		TransactionDate: t.Date.String(),
	})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	n, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateNotification(ctx context.Context, cardID, message string, dueDate core.Date) error {
	if err := r.queries.CreateNotification(ctx, uuid.NewString(), cardID, message, dueDate.String()); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

type StoredNotification struct {
	ID      string
	CardID  string
	Message string
	DueDate core.Date
}

func (r *SQLiteRepository) ListRecentNotifications(ctx context.Context, limit int) ([]StoredNotification, error) {
	rows, err := r.queries.ListRecentNotifications(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]StoredNotification, len(rows))
	for i, row := range rows {
		due, err := core.ParseDate(row.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parse due date %q: %w", row.DueDate, err)
		}
		items[i] = StoredNotification{ID: row.ID, CardID: row.CardID, Message: row.Message, DueDate: due}
	}
	return items, nil
}

func categoryFromRow(row Category) core.Category {
	return core.Category{ID: row.ID, Name: row.Name, Description: row.Description}
}

func cardFromRow(row BankCard) core.BankCard {
	c := core.BankCard{
		ID:              row.ID,
		CardName:        row.CardName,
		BankName:        row.BankName,
		CardType:        row.CardType,
		CardNumberLast4: row.CardNumberLast4,
		CardColor:       row.CardColor,
	}
	if row.CreditLimitCents.Valid {
		c.CreditLimit = &core.Money{Cents: row.CreditLimitCents.Int64}
	}
	if row.StatementClosingDay.Valid {
		c.StatementClosingDay = int(row.StatementClosingDay.Int64)
	}
	if row.PaymentDueDay.Valid {
		c.PaymentDueDay = int(row.PaymentDueDay.Int64)
	}
	return c
}

func policyFromRow(row CashbackPolicy) core.CashbackPolicy {
	p := core.CashbackPolicy{
		ID:         row.ID,
		CardID:     row.CardID,
		CategoryID: row.CategoryID,
		Percentage: row.Percentage,
	}
	if row.MaxCashbackCents.Valid {
		p.MaxCashback = &core.Money{Cents: row.MaxCashbackCents.Int64}
	}
	return p
}

func transactionFromRow(row Transaction) (core.Transaction, error) {
	date, err := core.ParseDate(row.TransactionDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", row.TransactionDate, err)
	}
	return core.Transaction{
		ID:           row.ID,
		CardID:       row.CardID,
		Amount:       core.Money{Cents: row.AmountCents},
		Currency:     row.Currency,
		MerchantName: row.MerchantName,
		CategoryID:   row.CategoryID.String,
		Date:         date,
	}, nil
}

func transactionsFromRows(rows []Transaction) ([]core.Transaction, error) {
	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		tx, err := transactionFromRow(row)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}
	return txs, nil
}

func nullCents(m *core.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: m.Cents, Valid: true}
}

func nullDay(day int) sql.NullInt64 {
	if day == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(day), Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
