package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount expressed in a display unit, e.g. ₹3.3 Crores
type Money struct {
	Amount decimal.Decimal
	Symbol string
	Unit   string
}

// NewMoney parses amount as a decimal string
func NewMoney(amount, symbol, unit string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: d, Symbol: symbol, Unit: unit}, nil
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String formats the amount with thousands separators, e.g. "₹3,500 Cr"
func (m Money) String() string {
	var sb strings.Builder
	sb.WriteString(m.Symbol)
	sb.WriteString(groupThousands(m.Amount.String()))
	if m.Unit != "" {
		sb.WriteString(" ")
		sb.WriteString(m.Unit)
	}
	return sb.String()
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var sb strings.Builder
	sb.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}
