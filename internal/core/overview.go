package core

// YearOverview is a compact yearly summary across all of a user's cards.
type YearOverview struct {
	Year              int
	TotalSpending     Money
	TotalCashback     Money
	TotalTransactions int
	// TransactionsByMonth counts transactions per calendar month;
	// index 0 is January.
	TransactionsByMonth [12]int
}

// OverviewForYear reduces a year's transactions into totals and per-month
// counts. Transactions dated outside the year are skipped, so callers may
// pass an unfiltered list. Cashback is recomputed from each transaction's
// card policies rather than read from a stored column.
func OverviewForYear(year int, txs []Transaction, policiesByCard map[string][]CashbackPolicy) YearOverview {
	ov := YearOverview{Year: year}
	for _, t := range txs {
		if t.Date.Year() != year {
			continue
		}
		if t.IsExpense() {
			ov.TotalSpending.Cents += t.Amount.Abs().Cents
		}
		ov.TotalCashback.Cents += Cashback(t, policiesByCard[t.CardID]).Cents
		ov.TransactionsByMonth[t.Date.Month()-1]++
		ov.TotalTransactions++
	}
	return ov
}
