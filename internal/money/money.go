// Package money provides a fixed-precision monetary value type.
//
// All amounts are stored as integer minor units (cents for USD) so that
// arithmetic is exact. Nothing in this package touches float64; parsing and
// formatting work directly on the decimal string representation.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidMoney     = errors.New("invalid money amount")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// DefaultCurrency is assumed when no currency tag is given.
const DefaultCurrency = "USD"

// Money is an immutable monetary value: an amount in minor units plus a
// currency tag. The zero value is zero units of the default currency.
type Money struct {
	// Amount is the value in minor units (e.g., cents). May be negative
	// for corrections and refunds.
	Amount int64 `json:"amount"`

	// Currency is the ISO 4217 code (e.g., "USD"). Empty means DefaultCurrency.
	Currency string `json:"currency,omitempty"`
}

// New creates a Money value from minor units.
func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: normalize(currency)}
}

// Zero returns a zero value in the given currency.
func Zero(currency string) Money {
	return New(0, currency)
}

// Parse converts a decimal string like "12.34" or "-0.05" into minor units.
// At most two fractional digits are accepted.
func Parse(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty string", ErrInvalidMoney)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return Money{}, fmt.Errorf("%w: more than two fractional digits in %q", ErrInvalidMoney, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	amount := units*100 + cents
	if amount < 0 {
		return Money{}, fmt.Errorf("%w: overflow in %q", ErrInvalidMoney, s)
	}
	if neg {
		amount = -amount
	}
	return New(amount, currency), nil
}

func normalize(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	return currency
}

// Cur returns the effective currency tag.
func (m Money) Cur() string {
	return normalize(m.Currency)
}

// SameCurrency reports whether all values share one currency.
// Receipt validation uses this once; arithmetic below assumes it holds.
func SameCurrency(ms ...Money) error {
	if len(ms) == 0 {
		return nil
	}
	cur := ms[0].Cur()
	for _, m := range ms[1:] {
		if m.Cur() != cur {
			return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, cur, m.Cur())
		}
	}
	return nil
}

// Add returns m + o. Currencies must match (validated at receipt construction).
func (m Money) Add(o Money) Money {
	return New(m.Amount+o.Amount, m.Cur())
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return New(m.Amount-o.Amount, m.Cur())
}

// Neg returns -m.
func (m Money) Neg() Money {
	return New(-m.Amount, m.Cur())
}

// Cmp compares amounts: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) int {
	switch {
	case m.Amount < o.Amount:
		return -1
	case m.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }
func (m Money) IsPositive() bool { return m.Amount > 0 }

// MulDiv returns floor(m × num / den) in minor units. This is the proration
// primitive: the discarded fraction is redistributed by the caller so that
// per-participant shares sum exactly to the original charge.
func (m Money) MulDiv(num, den int64) Money {
	return New(floorDiv(m.Amount*num, den), m.Cur())
}

// floorDiv divides rounding toward negative infinity, unlike Go's
// truncating integer division. Matters for negative correction amounts.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// String formats the amount as a plain decimal, e.g. "12.34" or "-0.05".
func (m Money) String() string {
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
