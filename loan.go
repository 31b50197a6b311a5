package fgpt

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Loan is a debt to repay. It is supplied by the user for one calculation and
// never stored.
type Loan struct {
	Name       string
	Balance    Money
	Rate       decimal.Decimal // annual interest rate in percent
	MinPayment Money
}

// Repayment strategies.
const (
	Avalanche = "avalanche" // highest interest rate first
	Snowball  = "snowball"  // smallest balance first
)

// RepaymentTip is given with every repayment plan.
const RepaymentTip = "Pay minimums on all loans, then put extra toward the top loan."

// RepaymentPlan is the list of loans in the order they should receive any
// money paid above the minimums.
type RepaymentPlan struct {
	Strategy string // strategy label as requested, title cased
	Loans    []Loan
	Tip      string
}

// RepaymentOrder orders loans for the given strategy.
//
// "avalanche" (any case) orders by rate, highest first. An empty strategy is
// avalanche too. Any other strategy, "snowball" or not, orders by balance,
// smallest first. Loans that tie keep their input order.
func RepaymentOrder(loans []Loan, strategy string) RepaymentPlan {
	strategy = strings.TrimSpace(strategy)
	if strategy == "" {
		strategy = Avalanche
	}

	ordered := slices.Clone(loans)
	if strings.EqualFold(strategy, Avalanche) {
		slices.SortStableFunc(ordered, func(a, b Loan) int { return b.Rate.Cmp(a.Rate) })
	} else {
		slices.SortStableFunc(ordered, func(a, b Loan) int { return a.Balance.value.Cmp(b.Balance.value) })
	}

	return RepaymentPlan{
		Strategy: titleCase(strategy),
		Loans:    ordered,
		Tip:      RepaymentTip,
	}
}

// TotalMinimum returns the sum of all minimum payments.
func (p RepaymentPlan) TotalMinimum() Money {
	var total Money
	for _, l := range p.Loans {
		total = total.Add(l.MinPayment)
	}
	return total
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
