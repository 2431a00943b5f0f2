package core

import "time"

// Window is a closed date interval used to scope card transactions.
type Window struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the window, boundaries included.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start.Time) && !d.After(w.End.Time)
}

// Filter returns the transactions dated inside the window.
func (w Window) Filter(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// CurrentStatementWindow computes the current statement period of a card:
// the interval from the most recent statement closing date up to today,
// boundaries included. If today is before this month's closing day the
// period started on last month's closing day.
//
// When the closing day exceeds the length of the starting month (closing day
// 31 in a 30-day month), the start is clamped to that month's last day rather
// than rolling over into the next month.
func CurrentStatementWindow(today Date, closingDay int) (Window, error) {
	if closingDay < 1 || closingDay > 31 {
		return Window{}, ErrInvalidClosingDay
	}
	year, month := today.Year(), today.Month()
	if today.Day() < closingDay {
		month-- // time.Date normalizes month 0 to December of the prior year
	}
	return Window{Start: clampedDate(year, month, closingDay), End: today}, nil
}

// WeekWindow returns the calendar week containing today, Sunday through
// Saturday.
func WeekWindow(today Date) Window {
	start := today.AddDays(-int(today.Weekday()))
	return Window{Start: start, End: start.AddDays(6)}
}

// clampedDate builds a date with the day clamped to the month's last day.
// month may be outside 1-12; it is normalized the way time.Date does.
func clampedDate(year, month, day int) Date {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return Date{Time: first.AddDate(0, 0, day-1)}
}
