package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date. Time-of-day is always midnight UTC so that
	// date comparisons behave as date-only comparisons.
	Date struct {
		time.Time
	}

	// Money is an amount in cents. Transaction amounts are signed: negative
	// means an expense (money leaving the account), positive means a refund
	// or repayment (money returning).
	Money struct {
		Cents int64
	}

	Transaction struct {
		ID           string
		CardID       string
		Amount       Money // signed, see Money
		Currency     string
		MerchantName string
		CategoryID   string // empty = uncategorized
		Date         Date
	}

	Category struct {
		ID          string
		Name        string
		Description string
	}

	// CashbackPolicy rebates a percentage of expense amounts in one category,
	// optionally capped per transaction. At most one policy may exist per
	// (card, category) pair; storage enforces this with a unique constraint.
	CashbackPolicy struct {
		ID          string
		CardID      string
		CategoryID  string
		Percentage  float64
		MaxCashback *Money // nil = uncapped
	}

	BankCard struct {
		ID                  string
		CardName            string
		BankName            string
		CardType            string
		CardNumberLast4     string
		CardColor           string
		CreditLimit         *Money // nil = no limit configured
		StatementClosingDay int    // day of month 1-31, 0 = unset
		PaymentDueDay       int    // day of month 1-31, 0 = unset
	}
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidClosingDay   = errors.New("statement closing day must be between 1 and 31")
	ErrInvalidDueDay       = errors.New("payment due day must be between 1 and 31")
	ErrNegativeCreditLimit = errors.New("credit limit cannot be negative")
	ErrNegativePercentage  = errors.New("cashback percentage cannot be negative")
	ErrNegativeCap         = errors.New("max cashback cannot be negative")
	ErrEmptyCardName       = errors.New("empty card name")
	ErrEmptyBankName       = errors.New("empty bank name")
	ErrInvalidLast4        = errors.New("card number last4 must be 4 digits")
	ErrEmptyCategoryName   = errors.New("empty category name")
	ErrMissingCategory     = errors.New("missing category")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month (1-12).
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// IsExpense reports whether the transaction moves money out of the account.
func (t Transaction) IsExpense() bool {
	return t.Amount.Cents < 0
}

// Abs returns the monetary magnitude.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if len(t.MerchantName) > 200 {
		return errors.New("merchant name too long (max 200 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 100 {
		return errors.New("category name too long (max 100 characters)")
	}
	return nil
}

func (p CashbackPolicy) Validate() error {
	if p.CategoryID == "" {
		return ErrMissingCategory
	}
	if p.Percentage < 0 {
		return ErrNegativePercentage
	}
	if p.MaxCashback != nil && p.MaxCashback.Cents < 0 {
		return ErrNegativeCap
	}
	return nil
}

func (c BankCard) Validate() error {
	if strings.TrimSpace(c.CardName) == "" {
		return ErrEmptyCardName
	}
	if strings.TrimSpace(c.BankName) == "" {
		return ErrEmptyBankName
	}
	if len(c.CardNumberLast4) != 4 {
		return ErrInvalidLast4
	}
	for _, r := range c.CardNumberLast4 {
		if r < '0' || r > '9' {
			return ErrInvalidLast4
		}
	}
	if c.CreditLimit != nil && c.CreditLimit.Cents < 0 {
		return ErrNegativeCreditLimit
	}
	if c.StatementClosingDay != 0 && (c.StatementClosingDay < 1 || c.StatementClosingDay > 31) {
		return ErrInvalidClosingDay
	}
	if c.PaymentDueDay != 0 && (c.PaymentDueDay < 1 || c.PaymentDueDay > 31) {
		return ErrInvalidDueDay
	}
	return nil
}
