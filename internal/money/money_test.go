package money

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"0.05", 5, false},
		{"-0.05", -5, false},
		{"7", 700, false},
		{"1.2", 120, false},
		{"0", 0, false},
		{"+3.00", 300, false},
		{"1.234", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"12.x4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, "USD")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.Amount != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got.Amount, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{1234, "12.34"},
		{5, "0.05"},
		{-5, "-0.05"},
		{0, "0.00"},
		{700, "7.00"},
		{-1501, "-15.01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := New(tt.amount, "USD").String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMulDivFloors(t *testing.T) {
	tests := []struct {
		amount   int64
		num, den int64
		want     int64
	}{
		{200, 1200, 2000, 120}, // exact proration
		{100, 334, 1000, 33},   // 33.4 floors to 33
		{100, 1, 3, 33},        // 33.33...
		{-5, 1, 2, -3},         // floor(-2.5) = -3, not trunc
		{1001, 1, 2, 500},
	}

	for _, tt := range tests {
		got := New(tt.amount, "USD").MulDiv(tt.num, tt.den)
		if got.Amount != tt.want {
			t.Errorf("New(%d).MulDiv(%d, %d) = %d, want %d",
				tt.amount, tt.num, tt.den, got.Amount, tt.want)
		}
	}
}

func TestSameCurrency(t *testing.T) {
	usd := New(100, "USD")
	alsoUSD := New(200, "") // empty tag defaults to USD
	eur := New(100, "EUR")

	if err := SameCurrency(usd, alsoUSD); err != nil {
		t.Errorf("expected USD and default to match, got %v", err)
	}
	if err := SameCurrency(usd, eur); err == nil {
		t.Error("expected currency mismatch error, got nil")
	}
	if err := SameCurrency(); err != nil {
		t.Errorf("expected no error for empty input, got %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	a := New(1500, "USD")
	b := New(499, "USD")

	if got := a.Add(b).Amount; got != 1999 {
		t.Errorf("Add = %d, want 1999", got)
	}
	if got := a.Sub(b).Amount; got != 1001 {
		t.Errorf("Sub = %d, want 1001", got)
	}
	if got := b.Neg().Amount; got != -499 {
		t.Errorf("Neg = %d, want -499", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering is wrong")
	}
	if !Zero("USD").IsZero() || a.IsZero() {
		t.Error("IsZero is wrong")
	}
	if !b.Neg().IsNegative() || !a.IsPositive() {
		t.Error("sign predicates are wrong")
	}
}
