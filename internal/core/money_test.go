package core

import "testing"

func TestParseSignedDecimalToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"-12.34", -1234, false},
		{"+12.34", 1234, false},
		{"-0.005", -1, false}, // half-up on third decimal
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"100", 10000, false},
		{"-100", -10000, false},
		{".5", 50, false},
		{"", 0, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"12.", 0, true},
		{"--5", 0, true},
		{"92233720368547759", 0, true}, // would overflow int64 cents
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSignedDecimalToCents(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSignedDecimalToCents(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSignedDecimalToCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyAbs(t *testing.T) {
	if got := (Money{Cents: -150}).Abs(); got.Cents != 150 {
		t.Errorf("Abs(-150) = %d", got.Cents)
	}
	if got := (Money{Cents: 150}).Abs(); got.Cents != 150 {
		t.Errorf("Abs(150) = %d", got.Cents)
	}
}

func TestMoneyUnits(t *testing.T) {
	if got := (Money{Cents: 1234}).Units(); got != 12.34 {
		t.Errorf("Units() = %v, want 12.34", got)
	}
}
