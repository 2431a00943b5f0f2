package core

// Cashback computes the cashback earned by a single transaction under the
// card's policy set.
//
// Rules:
//   - uncategorized transactions earn nothing
//   - refunds earn nothing; cashback applies to expenses only
//   - no policy for the category means zero
//   - otherwise: abs(amount) * percentage / 100, rounded half-up to a cent,
//     capped per transaction at the policy's MaxCashback when set
//
// The result is never negative. If several policies match the same category
// (a data error upstream; storage enforces uniqueness) the first match wins.
func Cashback(t Transaction, policies []CashbackPolicy) Money {
	if t.CategoryID == "" || !t.IsExpense() {
		return Money{}
	}
	for _, p := range policies {
		if p.CategoryID != t.CategoryID {
			continue
		}
		earned := roundCents(float64(t.Amount.Abs().Cents) * p.Percentage / 100)
		if p.MaxCashback != nil && earned > p.MaxCashback.Cents {
			earned = p.MaxCashback.Cents
		}
		if earned < 0 {
			// negative percentage slipped past boundary validation
			earned = 0
		}
		return Money{Cents: earned}
	}
	return Money{}
}
