package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/search"
	"github.com/shopspring/decimal"
)

// TestTemplatesParse makes sure every embedded template is valid.
func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "templates/*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no templates embedded")
	}
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			t.Fatal(err)
		}
		tmpl := template.New("main").Funcs(funcs)
		tmpl.New("category_table").Parse("")
		if _, err := tmpl.Parse(string(content)); err != nil {
			t.Errorf("template %s: %v", file, err)
		}
	}
}

// contains checks that got holds every fragment of want, in order.
func contains(t *testing.T, got string, want ...string) {
	t.Helper()
	if strings.Contains(got, "error ") {
		t.Fatalf("rendering failed: %s", got)
	}
	rest := got
	for _, w := range want {
		i := strings.Index(rest, w)
		if i < 0 {
			t.Errorf("output does not contain %q (in order):\n%s", w, got)
			return
		}
		rest = rest[i+len(w):]
	}
}

func TestLedger(t *testing.T) {
	txs := []ledger.Transaction{
		{ID: 1, Date: "2025-04-03", Type: ledger.Expense, Category: "groceries", Amount: fgpt.M(50)},
		{ID: 2, Date: "2025-04-05", Type: ledger.Income, Category: "salary | april", Amount: fgpt.M(3000)},
	}
	contains(t, Transactions(txs),
		"| ID | Date | Type | Category | Amount |",
		"| 1 | 2025-04-03 | expense | groceries | $50.00 |",
		`| 2 | 2025-04-05 | income | salary \| april | $3,000.00 |`)
	if got := Transactions(nil); got != "No transactions recorded yet." {
		t.Errorf("Transactions(nil) = %q", got)
	}

	if got := Added(txs[0]); got != "Recorded Expense of $50.00 under 'groceries' on 2025-04-03 (id 1)." {
		t.Errorf("Added() = %q", got)
	}
	if got := Deleted(7); got != "Deleted transaction with id 7." {
		t.Errorf("Deleted() = %q", got)
	}
	if got := Cleared(); got != "All transactions have been cleared." {
		t.Errorf("Cleared() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := ledger.Summary{
		Months:     []string{"2025-04"},
		Income:     fgpt.M(3000),
		Expense:    fgpt.M(1250),
		Balance:    fgpt.M(1750),
		Categories: []ledger.CategoryTotal{{Category: "groceries", Total: fgpt.M(50)}, {Category: "rent", Total: fgpt.M(1200)}},
		Count:      3,
	}
	contains(t, Summary(s),
		"### Budget Summary for 2025-04",
		"| Income | $3,000.00 |",
		"| Expenses | $1,250.00 |",
		"| Balance | $1,750.00 |",
		"**Expense Breakdown**",
		"| groceries | $50.00 |",
		"| rent | $1,200.00 |")

	noMatch := ledger.Summary{Months: []string{"2024-01"}}
	got := Summary(noMatch)
	contains(t, got, "Budget Summary for 2024-01", "| Balance | $0.00 |")
	if strings.Contains(got, "Breakdown") {
		t.Errorf("Summary() without expenses has a breakdown:\n%s", got)
	}

	if got := Summary(ledger.Summary{Empty: true}); got != "No transactions recorded yet." {
		t.Errorf("Summary(empty) = %q", got)
	}
}

func TestInvestments(t *testing.T) {
	s := ledger.InvestmentSummary{
		Total:      fgpt.M(1500),
		Categories: []ledger.CategoryTotal{{Category: "ETF Investment", Total: fgpt.M(1500)}},
		Count:      2,
	}
	contains(t, Investments(s), "### Total Invested: $1,500.00", "| ETF Investment | $1,500.00 |")

	tests := []struct {
		s    ledger.InvestmentSummary
		want string
	}{
		{ledger.InvestmentSummary{Empty: true}, "No transactions recorded yet."},
		{ledger.InvestmentSummary{}, "No investment transactions found."},
	}
	for _, tt := range tests {
		if got := Investments(tt.s); got != tt.want {
			t.Errorf("Investments(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}

	rows := []ledger.Transaction{{ID: 4, Date: "2025-05-02", Type: ledger.Expense, Category: "index fund investment", Amount: fgpt.M(500)}}
	contains(t, InvestmentList(rows, false), "| 4 | 2025-05-02 | index fund investment | $500.00 |")
	if got := InvestmentList(nil, false); got != "No investments found." {
		t.Errorf("InvestmentList(none) = %q", got)
	}
	if got := InvestmentList(nil, true); got != "No transactions recorded yet." {
		t.Errorf("InvestmentList(empty ledger) = %q", got)
	}
}

func TestPlanning(t *testing.T) {
	plan := fgpt.RepaymentOrder([]fgpt.Loan{
		{Name: "Car", Balance: fgpt.M(8000), Rate: decimal.NewFromInt(7), MinPayment: fgpt.M(200)},
		{Name: "Card", Balance: fgpt.M(2000), Rate: decimal.NewFromInt(22), MinPayment: fgpt.M(60)},
	}, "avalanche")
	contains(t, RepaymentPlan(plan),
		"### Repayment Strategy: Avalanche",
		"| 1 | Card | $2,000.00 | 22.00% | $60.00 |",
		"| 2 | Car | $8,000.00 | 7.00% | $200.00 |",
		"Total minimum payments: $260.00 per month.",
		"**Tip:** Pay minimums on all loans, then put extra toward the top loan.")

	inf, err := fgpt.InflationAdjustedValue(fgpt.M(1000), 10, decimal.NewFromInt(3))
	if err != nil {
		t.Fatal(err)
	}
	if got := Inflation(inf); got != "$1,000.00 will be worth approximately $744.09 in 10 years at 3.0% inflation." {
		t.Errorf("Inflation() = %q", got)
	}

	dti, err := fgpt.DebtToIncome(fgpt.M(1500), fgpt.M(5000))
	if err != nil {
		t.Fatal(err)
	}
	contains(t, DTI(dti), "Your Debt-to-Income ratio is 30.00%. Below 36% is considered healthy.", "healthy range")
	high, _ := fgpt.DebtToIncome(fgpt.M(2500), fgpt.M(5000))
	contains(t, DTI(high), "50.00%", "paying down debt")

	nw := fgpt.NetWorth(
		map[string]fgpt.Money{"savings": fgpt.M(20000), "house": fgpt.M(300000)},
		map[string]fgpt.Money{"mortgage": fgpt.M(250000)},
	)
	contains(t, NetWorth(nw),
		"| house | $300,000.00 |",
		"| savings | $20,000.00 |",
		"| **Total Assets** | **$320,000.00** |",
		"| mortgage | $250,000.00 |",
		"**Net Worth: $70,000.00**")
}

func TestSentiment(t *testing.T) {
	r, err := fgpt.Sentiment([]string{"Apple posts record profit", "Apple stock surges"})
	if err != nil {
		t.Fatal(err)
	}
	contains(t, Sentiment("AAPL", r),
		"### News Sentiment: AAPL",
		"- Apple posts record profit (",
		"Overall Sentiment: Positive (avg polarity: ",
		r.Opinion())
}

func TestStock(t *testing.T) {
	q := &market.Quote{
		Symbol:        "AAPL",
		Price:         decimal.RequireFromString("169.58"),
		Change:        decimal.RequireFromString("-0.76"),
		ChangePercent: decimal.RequireFromString("-0.45"),
		Volume:        42104826,
	}
	p := &market.Profile{
		Symbol:      "AAPL",
		Name:        "Apple Inc",
		Description: "Apple designs iPhones.",
		Ratings:     &market.Ratings{Rating: decimal.RequireFromString("4.2"), TargetPrice: decimal.NewFromInt(200), StrongBuy: 20, Buy: 8, Hold: 10, Sell: 1, StrongSell: 2},
	}
	contains(t, Stock("AAPL", q, p),
		"### Apple Inc (AAPL)",
		"| Price | $169.58 |",
		"| Change | -0.76 (-0.45%) |",
		"| Volume | 42,104,826 |",
		"| Analyst consensus | Buy (4.2/5) |",
		"| Target price | $200.00 |",
		"| 20 / 8 / 10 / 1 / 2 |",
		"Apple designs iPhones.")

	got := Stock("TSLA", nil, nil)
	contains(t, got, "### TSLA", "| Price | data unavailable |")
	if strings.Contains(got, "Analyst") {
		t.Errorf("Stock() without profile shows ratings:\n%s", got)
	}
}

func TestResults(t *testing.T) {
	got := Results([]search.Result{
		{Title: "Index fund", URL: "https://duckduckgo.com/Index_fund", Snippet: "A fund that tracks an index."},
		{Title: "ETF", URL: "https://example.com/etf"},
	})
	contains(t, got,
		"- [Index fund](https://duckduckgo.com/Index_fund): A fund that tracks an index.",
		"- [ETF](https://example.com/etf)")
	if got := Results(nil); got != "No results found." {
		t.Errorf("Results(nil) = %q", got)
	}
}
