package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount as stored in the ledger collections.
//
// Collections are written by more than one client, so amounts show up as JSON
// numbers, numeric strings, null or the odd garbage value. Decoding is lenient:
// anything that is not a number reads as zero. Encoding always emits a bare
// JSON number.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal value.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromInt is a convenience constructor, mostly for tests and fixtures.
func MoneyFromInt(v int64) Money {
	return Money{Decimal: decimal.NewFromInt(v)}
}

// MoneyPtr returns a pointer to a Money built from d.
func MoneyPtr(d decimal.Decimal) *Money {
	m := NewMoney(d)
	return &m
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			m.Decimal = decimal.Zero
			return nil
		}
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" || raw == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

// OrZero dereferences an optional amount.
func OrZero(m *Money) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Decimal
}
