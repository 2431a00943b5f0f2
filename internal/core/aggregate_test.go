package core

import (
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	// Mirrors the canonical example: -100.00 food expense, +30.00
	// uncategorized refund, 10% food policy capped at 5.00, limit 1000.00.
	txs := []Transaction{
		{ID: "t1", Amount: Money{Cents: -10000}, CategoryID: "food", Date: NewDate(2025, 4, 1)},
		{ID: "t2", Amount: Money{Cents: 3000}, Date: NewDate(2025, 4, 2)},
	}
	policies := []CashbackPolicy{
		{CategoryID: "food", Percentage: 10, MaxCashback: &Money{Cents: 500}},
	}
	limit := &Money{Cents: 100000}

	s, err := Summarize(txs, policies, limit)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.TotalSpending.Cents != 10000 {
		t.Errorf("TotalSpending = %d, want 10000", s.TotalSpending.Cents)
	}
	if s.TotalRepayment.Cents != 3000 {
		t.Errorf("TotalRepayment = %d, want 3000", s.TotalRepayment.Cents)
	}
	if s.TotalCashback.Cents != 500 {
		t.Errorf("TotalCashback = %d, want 500 (capped from 1000)", s.TotalCashback.Cents)
	}
	if s.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", s.TransactionCount)
	}
	// limit - spending + repayment, never limit + spending + repayment
	if s.AvailableCredit == nil || s.AvailableCredit.Cents != 93000 {
		t.Errorf("AvailableCredit = %v, want 93000", s.AvailableCredit)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	txs := []Transaction{
		{Amount: Money{Cents: -500}, CategoryID: "food", Date: NewDate(2025, 1, 1)},
		{Amount: Money{Cents: 250}, Date: NewDate(2025, 1, 2)},
	}
	policies := []CashbackPolicy{{CategoryID: "food", Percentage: 2}}
	limit := &Money{Cents: 10000}

	first, err := Summarize(txs, policies, limit)
	if err != nil {
		t.Fatalf("first Summarize() error = %v", err)
	}
	second, err := Summarize(txs, policies, limit)
	if err != nil {
		t.Fatalf("second Summarize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls disagree: %+v vs %+v", first, second)
	}
}

func TestSummarizeWithoutCreditLimit(t *testing.T) {
	s, err := Summarize([]Transaction{{Amount: Money{Cents: -100}}}, nil, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.AvailableCredit != nil {
		t.Errorf("AvailableCredit = %v, want nil without a limit", s.AvailableCredit)
	}
}

func TestSummarizeRejectsNegativeCreditLimit(t *testing.T) {
	_, err := Summarize(nil, nil, &Money{Cents: -1})
	if err != ErrNegativeCreditLimit {
		t.Errorf("error = %v, want ErrNegativeCreditLimit", err)
	}
}

func TestSummarizeNoPolicyMatchContributesZero(t *testing.T) {
	txs := []Transaction{
		{Amount: Money{Cents: -999999}, CategoryID: "uncovered", Date: NewDate(2025, 1, 1)},
	}
	policies := []CashbackPolicy{{CategoryID: "food", Percentage: 10}}

	s, err := Summarize(txs, policies, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.TotalCashback.Cents != 0 {
		t.Errorf("TotalCashback = %d, want 0", s.TotalCashback.Cents)
	}
}

func TestSummarizeCapIsPerTransaction(t *testing.T) {
	// Three 60.00 food expenses under a 10%/5.00-cap policy: each earns the
	// full 5.00 cap; there is no period-level cap, so the total is 15.00.
	txs := []Transaction{
		{Amount: Money{Cents: -6000}, CategoryID: "food", Date: NewDate(2025, 1, 1)},
		{Amount: Money{Cents: -6000}, CategoryID: "food", Date: NewDate(2025, 1, 2)},
		{Amount: Money{Cents: -6000}, CategoryID: "food", Date: NewDate(2025, 1, 3)},
	}
	policies := []CashbackPolicy{
		{CategoryID: "food", Percentage: 10, MaxCashback: &Money{Cents: 500}},
	}

	s, err := Summarize(txs, policies, nil)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.TotalCashback.Cents != 1500 {
		t.Errorf("TotalCashback = %d, want 1500", s.TotalCashback.Cents)
	}
}

func TestSummarizeDoesNotMutateInputs(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Amount: Money{Cents: -100}, CategoryID: "food", Date: NewDate(2025, 1, 1)},
	}
	policies := []CashbackPolicy{{CategoryID: "food", Percentage: 10}}
	txsCopy := make([]Transaction, len(txs))
	copy(txsCopy, txs)

	if _, err := Summarize(txs, policies, nil); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !reflect.DeepEqual(txs, txsCopy) {
		t.Error("Summarize mutated its input slice")
	}
}
