package core

// Summary holds the figures derived from one card's transaction list,
// typically pre-filtered by a statement or week window.
type Summary struct {
	TotalSpending    Money
	TotalRepayment   Money
	TotalCashback    Money
	TransactionCount int
	// AvailableCredit is creditLimit - spending + repayment. Nil when the
	// card has no configured limit.
	AvailableCredit *Money
}

// Summarize reduces a transaction list to spending, repayment, and cashback
// totals. creditLimit may be nil for cards without one; a negative limit is
// a configuration error and is rejected.
//
// Available credit uses the double-entry form (limit - spending + repayment).
// The alternative found in the wild, limit + spending + repayment, inflates
// available credit as spending grows and is treated as a defect, not an
// option.
func Summarize(txs []Transaction, policies []CashbackPolicy, creditLimit *Money) (Summary, error) {
	if creditLimit != nil && creditLimit.Cents < 0 {
		return Summary{}, ErrNegativeCreditLimit
	}
	var s Summary
	for _, t := range txs {
		if t.IsExpense() {
			s.TotalSpending.Cents += t.Amount.Abs().Cents
		} else {
			s.TotalRepayment.Cents += t.Amount.Cents
		}
		s.TotalCashback.Cents += Cashback(t, policies).Cents
	}
	s.TransactionCount = len(txs)
	if creditLimit != nil {
		s.AvailableCredit = &Money{
			Cents: creditLimit.Cents - s.TotalSpending.Cents + s.TotalRepayment.Cents,
		}
	}
	return s, nil
}
