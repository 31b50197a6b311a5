package fgpt

import (
	"errors"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultInflationRate is the annual inflation rate, in percent, assumed when
// none is given.
const DefaultInflationRate = 3.0

// HealthyDTI is the debt-to-income ratio, in percent, under which debt is
// considered healthy.
const HealthyDTI = 36.0

// ErrIncomeNotPositive is returned by DebtToIncome when there is no income to
// compare the debt with.
var ErrIncomeNotPositive = errors.New("Income must be greater than zero.")

// ErrInflationRate is returned by InflationAdjustedValue when prices would
// vanish: a yearly rate of -100% or less.
var ErrInflationRate = errors.New("Inflation rate must be greater than -100%.")

var hundred = decimal.NewFromInt(100)

// Inflation is the result of InflationAdjustedValue.
type Inflation struct {
	Amount   Money
	Years    int
	Rate     decimal.Decimal // annual, in percent
	Adjusted Money           // value of Amount in today's money after Years
}

// InflationAdjustedValue returns what amount will be worth after years of
// inflation at rate percent a year, compounded yearly:
//
//	amount / (1 + rate/100)^years
func InflationAdjustedValue(amount Money, years int, rate decimal.Decimal) (Inflation, error) {
	if rate.LessThanOrEqual(hundred.Neg()) {
		return Inflation{}, ErrInflationRate
	}
	factor := decimal.NewFromInt(1).Add(rate.Div(hundred)).Pow(decimal.NewFromInt(int64(years)))
	return Inflation{
		Amount:   amount,
		Years:    years,
		Rate:     rate,
		Adjusted: Money{value: amount.value.Div(factor)},
	}, nil
}

// DTI is a debt-to-income ratio.
type DTI struct {
	Debt   Money // monthly
	Income Money // monthly
	Ratio  Percent
}

// Healthy reports whether the ratio is below HealthyDTI.
func (d DTI) Healthy() bool { return float64(d.Ratio) < HealthyDTI }

// DebtToIncome computes the monthly debt-to-income ratio in percent.
// It fails with ErrIncomeNotPositive when income is zero or negative.
func DebtToIncome(debt, income Money) (DTI, error) {
	if !income.value.IsPositive() {
		return DTI{}, ErrIncomeNotPositive
	}
	ratio := debt.value.Div(income.value).Mul(hundred)
	return DTI{Debt: debt, Income: income, Ratio: Percent(ratio.InexactFloat64())}, nil
}

// NetWorthReport is the result of NetWorth.
type NetWorthReport struct {
	Assets      map[string]Money
	Liabilities map[string]Money
	TotalAssets Money
	TotalDebts  Money
	NetWorth    Money
}

// NetWorth sums assets and liabilities. Amounts are taken as given: a negative
// asset lowers the total.
func NetWorth(assets, liabilities map[string]Money) NetWorthReport {
	r := NetWorthReport{Assets: assets, Liabilities: liabilities}
	for _, v := range assets {
		r.TotalAssets = r.TotalAssets.Add(v)
	}
	for _, v := range liabilities {
		r.TotalDebts = r.TotalDebts.Add(v)
	}
	r.NetWorth = r.TotalAssets.Sub(r.TotalDebts)
	return r
}

// Labels returns the sorted keys of m, for stable rendering.
func Labels(m map[string]Money) []string {
	return slices.Sorted(maps.Keys(m))
}
