package core

import "testing"

func TestCurrentStatementWindow(t *testing.T) {
	tests := []struct {
		name       string
		today      Date
		closingDay int
		wantStart  Date
		wantEnd    Date
	}{
		{
			name:       "before closing day - starts previous month",
			today:      NewDate(2025, 4, 10),
			closingDay: 15,
			wantStart:  NewDate(2025, 3, 15),
			wantEnd:    NewDate(2025, 4, 10),
		},
		{
			name:       "after closing day - starts current month",
			today:      NewDate(2025, 4, 20),
			closingDay: 15,
			wantStart:  NewDate(2025, 4, 15),
			wantEnd:    NewDate(2025, 4, 20),
		},
		{
			name:       "on closing day - period starts today",
			today:      NewDate(2025, 4, 15),
			closingDay: 15,
			wantStart:  NewDate(2025, 4, 15),
			wantEnd:    NewDate(2025, 4, 15),
		},
		{
			name:       "year boundary - wraps into previous December",
			today:      NewDate(2025, 1, 5),
			closingDay: 15,
			wantStart:  NewDate(2024, 12, 15),
			wantEnd:    NewDate(2025, 1, 5),
		},
		{
			name:       "closing day 31 clamps to 30-day month",
			today:      NewDate(2025, 5, 10),
			closingDay: 31,
			wantStart:  NewDate(2025, 4, 30),
			wantEnd:    NewDate(2025, 5, 10),
		},
		{
			name:       "closing day 31 clamps to February",
			today:      NewDate(2025, 3, 10),
			closingDay: 31,
			wantStart:  NewDate(2025, 2, 28),
			wantEnd:    NewDate(2025, 3, 10),
		},
		{
			name:       "closing day 29 in leap February",
			today:      NewDate(2024, 3, 10),
			closingDay: 30,
			wantStart:  NewDate(2024, 2, 29),
			wantEnd:    NewDate(2024, 3, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := CurrentStatementWindow(tt.today, tt.closingDay)
			if err != nil {
				t.Fatalf("CurrentStatementWindow() error = %v", err)
			}
			if !w.Start.Equal(tt.wantStart.Time) {
				t.Errorf("start = %s, want %s", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd.Time) {
				t.Errorf("end = %s, want %s", w.End, tt.wantEnd)
			}
		})
	}
}

func TestCurrentStatementWindowInvalidClosingDay(t *testing.T) {
	for _, day := range []int{0, -1, 32, 100} {
		if _, err := CurrentStatementWindow(NewDate(2025, 4, 10), day); err == nil {
			t.Errorf("closingDay %d: expected error", day)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: NewDate(2025, 3, 15), End: NewDate(2025, 4, 10)}

	tests := []struct {
		d    Date
		want bool
	}{
		{NewDate(2025, 3, 15), true}, // start inclusive
		{NewDate(2025, 4, 10), true}, // end inclusive
		{NewDate(2025, 3, 20), true},
		{NewDate(2025, 3, 14), false},
		{NewDate(2025, 4, 11), false},
	}
	for _, tt := range tests {
		if got := w.Contains(tt.d); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestWindowFilter(t *testing.T) {
	w := Window{Start: NewDate(2025, 3, 15), End: NewDate(2025, 4, 10)}
	txs := []Transaction{
		{ID: "in-1", Amount: Money{Cents: -100}, Date: NewDate(2025, 3, 15)},
		{ID: "out-1", Amount: Money{Cents: -100}, Date: NewDate(2025, 3, 1)},
		{ID: "in-2", Amount: Money{Cents: 200}, Date: NewDate(2025, 4, 10)},
		{ID: "out-2", Amount: Money{Cents: -100}, Date: NewDate(2025, 4, 11)},
	}

	got := w.Filter(txs)
	if len(got) != 2 {
		t.Fatalf("filtered %d transactions, want 2", len(got))
	}
	if got[0].ID != "in-1" || got[1].ID != "in-2" {
		t.Errorf("filtered IDs = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		name      string
		today     Date
		wantStart Date
		wantEnd   Date
	}{
		{
			name:      "midweek",
			today:     NewDate(2025, 4, 16), // a Wednesday
			wantStart: NewDate(2025, 4, 13), // Sunday
			wantEnd:   NewDate(2025, 4, 19), // Saturday
		},
		{
			name:      "sunday is its own week start",
			today:     NewDate(2025, 4, 13),
			wantStart: NewDate(2025, 4, 13),
			wantEnd:   NewDate(2025, 4, 19),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekWindow(tt.today)
			if !w.Start.Equal(tt.wantStart.Time) || !w.End.Equal(tt.wantEnd.Time) {
				t.Errorf("WeekWindow(%s) = [%s, %s], want [%s, %s]",
					tt.today, w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
