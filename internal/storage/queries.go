package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the raw SQL layer. Row structs mirror table columns;
// translation to core types happens in the repository.
type Queries struct {
	db DBTX
}

type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

type BankCard struct {
	ID                  string
	CardName            string
	BankName            string
	CardType            string
	CardNumberLast4     string
	CardColor           string
	CreditLimitCents    sql.NullInt64
	StatementClosingDay sql.NullInt64
	PaymentDueDay       sql.NullInt64
	CreatedAt           time.Time
}

type CashbackPolicy struct {
	ID               string
	CardID           string
	CategoryID       string
	Percentage       float64
	MaxCashbackCents sql.NullInt64
	CreatedAt        time.Time
}

type Transaction struct {
	ID              string
	CardID          string
	AmountCents     int64
	Currency        string
	MerchantName    string
	CategoryID      sql.NullString
	TransactionDate string
	CreatedAt       time.Time
}

type Notification struct {
	ID        string
	CardID    string
	Message   string
	DueDate   string
	CreatedAt time.Time
}

const createCategory = `
INSERT INTO categories (id, name, description) VALUES (?, ?, ?)
RETURNING id, name, description, created_at
`

func (q *Queries) CreateCategory(ctx context.Context, id, name, description string) (Category, error) {
	var c Category
	err := q.db.QueryRowContext(ctx, createCategory, id, name, description).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

const getCategory = `
SELECT id, name, description, created_at FROM categories WHERE id = ?
`

func (q *Queries) GetCategory(ctx context.Context, id string) (Category, error) {
	var c Category
	err := q.db.QueryRowContext(ctx, getCategory, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

const listCategories = `
SELECT id, name, description, created_at FROM categories ORDER BY name
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const updateCategory = `
UPDATE categories SET name = ?, description = ? WHERE id = ?
`

func (q *Queries) UpdateCategory(ctx context.Context, id, name, description string) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateCategory, name, description, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteCategory = `
DELETE FROM categories WHERE id = ?
`

func (q *Queries) DeleteCategory(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createCard = `
INSERT INTO bank_cards (
	id, card_name, bank_name, card_type, card_number_last4, card_color,
	credit_limit_cents, statement_closing_day, payment_due_day
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, card_name, bank_name, card_type, card_number_last4, card_color,
	credit_limit_cents, statement_closing_day, payment_due_day, created_at
`

type CreateCardParams struct {
	ID                  string
	CardName            string
	BankName            string
	CardType            string
	CardNumberLast4     string
	CardColor           string
	CreditLimitCents    sql.NullInt64
	StatementClosingDay sql.NullInt64
	PaymentDueDay       sql.NullInt64
}

func (q *Queries) CreateCard(ctx context.Context, arg CreateCardParams) (BankCard, error) {
	var c BankCard
	err := q.db.QueryRowContext(ctx, createCard,
		arg.ID, arg.CardName, arg.BankName, arg.CardType, arg.CardNumberLast4,
		arg.CardColor, arg.CreditLimitCents, arg.StatementClosingDay, arg.PaymentDueDay,
	).Scan(
		&c.ID, &c.CardName, &c.BankName, &c.CardType, &c.CardNumberLast4,
		&c.CardColor, &c.CreditLimitCents, &c.StatementClosingDay, &c.PaymentDueDay,
		&c.CreatedAt,
	)
	return c, err
}

const getCard = `
SELECT id, card_name, bank_name, card_type, card_number_last4, card_color,
	credit_limit_cents, statement_closing_day, payment_due_day, created_at
FROM bank_cards WHERE id = ?
`

func (q *Queries) GetCard(ctx context.Context, id string) (BankCard, error) {
	var c BankCard
	err := q.db.QueryRowContext(ctx, getCard, id).Scan(
		&c.ID, &c.CardName, &c.BankName, &c.CardType, &c.CardNumberLast4,
		&c.CardColor, &c.CreditLimitCents, &c.StatementClosingDay, &c.PaymentDueDay,
		&c.CreatedAt,
	)
	return c, err
}

const listCards = `
SELECT id, card_name, bank_name, card_type, card_number_last4, card_color,
	credit_limit_cents, statement_closing_day, payment_due_day, created_at
FROM bank_cards ORDER BY created_at
`

func (q *Queries) ListCards(ctx context.Context) ([]BankCard, error) {
	rows, err := q.db.QueryContext(ctx, listCards)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BankCard
	for rows.Next() {
		var c BankCard
		if err := rows.Scan(
			&c.ID, &c.CardName, &c.BankName, &c.CardType, &c.CardNumberLast4,
			&c.CardColor, &c.CreditLimitCents, &c.StatementClosingDay, &c.PaymentDueDay,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const updateCard = `
UPDATE bank_cards SET
	card_name = ?, bank_name = ?, card_type = ?, card_number_last4 = ?,
	card_color = ?, credit_limit_cents = ?, statement_closing_day = ?,
	payment_due_day = ?
WHERE id = ?
`

type UpdateCardParams struct {
	ID                  string
	CardName            string
	BankName            string
	CardType            string
	CardNumberLast4     string
	CardColor           string
	CreditLimitCents    sql.NullInt64
	StatementClosingDay sql.NullInt64
	PaymentDueDay       sql.NullInt64
}

func (q *Queries) UpdateCard(ctx context.Context, arg UpdateCardParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateCard,
		arg.CardName, arg.BankName, arg.CardType, arg.CardNumberLast4,
		arg.CardColor, arg.CreditLimitCents, arg.StatementClosingDay,
		arg.PaymentDueDay, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteCard = `
DELETE FROM bank_cards WHERE id = ?
`

func (q *Queries) DeleteCard(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteCard, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createPolicy = `
INSERT INTO cashback_policies (id, card_id, category_id, percentage, max_cashback_cents)
VALUES (?, ?, ?, ?, ?)
RETURNING id, card_id, category_id, percentage, max_cashback_cents, created_at
`

func (q *Queries) CreatePolicy(ctx context.Context, id, cardID, categoryID string, percentage float64, maxCashbackCents sql.NullInt64) (CashbackPolicy, error) {
	var p CashbackPolicy
	err := q.db.QueryRowContext(ctx, createPolicy, id, cardID, categoryID, percentage, maxCashbackCents).
		Scan(&p.ID, &p.CardID, &p.CategoryID, &p.Percentage, &p.MaxCashbackCents, &p.CreatedAt)
	return p, err
}

const getPolicy = `
SELECT id, card_id, category_id, percentage, max_cashback_cents, created_at
FROM cashback_policies WHERE id = ?
`

func (q *Queries) GetPolicy(ctx context.Context, id string) (CashbackPolicy, error) {
	var p CashbackPolicy
	err := q.db.QueryRowContext(ctx, getPolicy, id).
		Scan(&p.ID, &p.CardID, &p.CategoryID, &p.Percentage, &p.MaxCashbackCents, &p.CreatedAt)
	return p, err
}

const listPoliciesByCard = `
SELECT id, card_id, category_id, percentage, max_cashback_cents, created_at
FROM cashback_policies WHERE card_id = ? ORDER BY created_at
`

func (q *Queries) ListPoliciesByCard(ctx context.Context, cardID string) ([]CashbackPolicy, error) {
	rows, err := q.db.QueryContext(ctx, listPoliciesByCard, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CashbackPolicy
	for rows.Next() {
		var p CashbackPolicy
		if err := rows.Scan(&p.ID, &p.CardID, &p.CategoryID, &p.Percentage, &p.MaxCashbackCents, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updatePolicy = `
UPDATE cashback_policies SET category_id = ?, percentage = ?, max_cashback_cents = ?
WHERE id = ?
`

func (q *Queries) UpdatePolicy(ctx context.Context, id, categoryID string, percentage float64, maxCashbackCents sql.NullInt64) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePolicy, categoryID, percentage, maxCashbackCents, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deletePolicy = `
DELETE FROM cashback_policies WHERE id = ?
`

func (q *Queries) DeletePolicy(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePolicy, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createTransaction = `
INSERT INTO transactions (id, card_id, amount_cents, currency, merchant_name, category_id, transaction_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, card_id, amount_cents, currency, merchant_name, category_id, transaction_date, created_at
`

type CreateTransactionParams struct {
	ID              string
	CardID          string
	AmountCents     int64
	Currency        string
	MerchantName    string
	CategoryID      sql.NullString
	TransactionDate string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	var t Transaction
	err := q.db.QueryRowContext(ctx, createTransaction,
		arg.ID, arg.CardID, arg.AmountCents, arg.Currency, arg.MerchantName,
		arg.CategoryID, arg.TransactionDate,
	).Scan(
		&t.ID, &t.CardID, &t.AmountCents, &t.Currency, &t.MerchantName,
		&t.CategoryID, &t.TransactionDate, &t.CreatedAt,
	)
	return t, err
}

const getTransaction = `
SELECT id, card_id, amount_cents, currency, merchant_name, category_id, transaction_date, created_at
FROM transactions WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var t Transaction
	err := q.db.QueryRowContext(ctx, getTransaction, id).Scan(
		&t.ID, &t.CardID, &t.AmountCents, &t.Currency, &t.MerchantName,
		&t.CategoryID, &t.TransactionDate, &t.CreatedAt,
	)
	return t, err
}

const listTransactionsByCard = `
SELECT id, card_id, amount_cents, currency, merchant_name, category_id, transaction_date, created_at
FROM transactions WHERE card_id = ? ORDER BY transaction_date DESC, created_at DESC
`

func (q *Queries) ListTransactionsByCard(ctx context.Context, cardID string) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByCard, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const listTransactionsByYear = `
SELECT id, card_id, amount_cents, currency, merchant_name, category_id, transaction_date, created_at
FROM transactions WHERE transaction_date >= ? AND transaction_date <= ?
ORDER BY transaction_date
`

func (q *Queries) ListTransactionsByYear(ctx context.Context, year int) ([]Transaction, error) {
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)
	rows, err := q.db.QueryContext(ctx, listTransactionsByYear, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]Transaction, error) {
	var items []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.CardID, &t.AmountCents, &t.Currency, &t.MerchantName,
			&t.CategoryID, &t.TransactionDate, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const updateTransaction = `
UPDATE transactions SET amount_cents = ?, currency = ?, merchant_name = ?,
	category_id = ?, transaction_date = ?
WHERE id = ?
`

type UpdateTransactionParams struct {
	ID              string
	AmountCents     int64
	Currency        string
	MerchantName    string
	CategoryID      sql.NullString
	TransactionDate string
}

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		arg.AmountCents, arg.Currency, arg.MerchantName, arg.CategoryID,
		arg.TransactionDate, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTransaction = `
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createNotification = `
INSERT INTO notifications (id, card_id, message, due_date) VALUES (?, ?, ?, ?)
`

func (q *Queries) CreateNotification(ctx context.Context, id, cardID, message, dueDate string) error {
	_, err := q.db.ExecContext(ctx, createNotification, id, cardID, message, dueDate)
	return err
}

const listRecentNotifications = `
SELECT id, card_id, message, due_date, created_at
FROM notifications ORDER BY created_at DESC LIMIT ?
`

func (q *Queries) ListRecentNotifications(ctx context.Context, limit int64) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listRecentNotifications, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.CardID, &n.Message, &n.DueDate, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
