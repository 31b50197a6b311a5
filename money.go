package fgpt

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency used to display every amount.
const Currency = money.USD

// Money represents a monetary value in Currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns the Money for a value in major units (dollars).
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// String returns the amount formatted like "$1,234.56". Amounts of any size
// are formatted from the decimal, the currency only gives the symbols.
func (m Money) String() string {
	cur := money.GetCurrency(Currency)
	rounded := m.value.Round(int32(cur.Fraction))
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(cur.Fraction)), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	res := strings.Replace(cur.Template, "$", cur.Grapheme, 1)
	res = strings.Replace(res, "1", b.String(), 1)
	if rounded.IsNegative() {
		res = "-" + res
	}
	return res
}

// Simple wrappers around decimal.Decimal.

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Round(places int32) Money        { return Money{value: m.value.Round(places)} }
func (m Money) StringFixed(places int32) string { return m.value.StringFixed(places) }

// Sum adds up amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent is a ratio expressed in percent.
type Percent float64

func (p Percent) String() string {
	return decimal.NewFromFloat(float64(p)).StringFixed(2) + "%"
}
