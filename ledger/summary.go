package ledger

import (
	"context"
	"slices"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/date"
)

// CategoryTotal is the sum of the amounts of a category.
type CategoryTotal struct {
	Category string
	Total    fgpt.Money
}

// Summary is the income and expense balance over a set of months.
type Summary struct {
	Months     []string // normalized YYYY-MM, empty for all time
	Income     fgpt.Money
	Expense    fgpt.Money
	Balance    fgpt.Money      // Income - Expense
	Categories []CategoryTotal // expenses only, by category name
	Count      int             // number of transactions summarized
	Empty      bool            // the ledger has no transaction at all
}

// Period describes the months covered, "all time" when there is no filter.
func (s Summary) Period() string {
	if len(s.Months) == 0 {
		return "all time"
	}
	return strings.Join(s.Months, ", ")
}

// Summarize totals income and expenses over months, or over all time when no
// month is given. Months are free text ("April 2025", "2025-04", "may") and
// are normalized to YYYY-MM; text that cannot be read as a month is kept as
// is and simply matches nothing.
func (s *Store) Summarize(ctx context.Context, months ...string) (Summary, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Empty: len(txs) == 0}
	filter := make(map[string]bool)
	for _, m := range months {
		if strings.TrimSpace(m) == "" {
			continue
		}
		nm := date.NormalizeMonth(m)
		if !filter[nm] {
			filter[nm] = true
			sum.Months = append(sum.Months, nm)
		}
	}

	byCategory := make(map[string]fgpt.Money)
	for _, tx := range txs {
		if len(filter) > 0 && !filter[date.NormalizeMonth(tx.Date)] {
			continue
		}
		sum.Count++
		switch tx.Type {
		case Income:
			sum.Income = sum.Income.Add(tx.Amount)
		case Expense:
			sum.Expense = sum.Expense.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	sum.Categories = totals(byCategory)
	return sum, nil
}

// InvestmentSummary totals the investment transactions.
type InvestmentSummary struct {
	Total      fgpt.Money
	Categories []CategoryTotal
	Count      int
	Empty      bool // the ledger has no transaction at all
}

// Found reports whether there was any investment at all.
func (s InvestmentSummary) Found() bool { return s.Count > 0 }

// SummarizeInvestments totals transactions whose category mentions
// "investment" (see Transaction.IsInvestment), whatever their type.
func (s *Store) SummarizeInvestments(ctx context.Context) (InvestmentSummary, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return InvestmentSummary{}, err
	}
	sum := InvestmentSummary{Empty: len(txs) == 0}
	byCategory := make(map[string]fgpt.Money)
	for _, tx := range txs {
		if !tx.IsInvestment() {
			continue
		}
		sum.Count++
		sum.Total = sum.Total.Add(tx.Amount)
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}
	sum.Categories = totals(byCategory)
	return sum, nil
}

// ListInvestments returns the investment transactions in insertion order.
func (s *Store) ListInvestments(ctx context.Context) ([]Transaction, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(txs, func(tx Transaction) bool { return !tx.IsInvestment() }), nil
}

func totals(byCategory map[string]fgpt.Money) []CategoryTotal {
	res := make([]CategoryTotal, 0, len(byCategory))
	for c, v := range byCategory {
		res = append(res, CategoryTotal{Category: c, Total: v})
	}
	slices.SortFunc(res, func(a, b CategoryTotal) int { return strings.Compare(a.Category, b.Category) })
	return res
}
