package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fgpt/ledger"
)

// NoTransactions is shown for an empty ledger.
const NoTransactions = "No transactions recorded yet."

// Added confirms a recorded transaction.
func Added(tx ledger.Transaction) string {
	return fmt.Sprintf("Recorded %s of %s under '%s' on %s (id %d).",
		titleCase(string(tx.Type)), tx.Amount, tx.Category, tx.Date, tx.ID)
}

// Deleted confirms a deletion, whether or not id existed.
func Deleted(id int64) string {
	return fmt.Sprintf("Deleted transaction with id %d.", id)
}

// Cleared confirms the ledger was emptied.
func Cleared() string { return "All transactions have been cleared." }

// Transactions renders the ledger as a table.
func Transactions(txs []ledger.Transaction) string {
	if len(txs) == 0 {
		return NoTransactions
	}
	return renderTemplate("transactions", "transactions.md", nil, txs)
}

// Summary renders a budget summary.
func Summary(s ledger.Summary) string {
	if s.Empty {
		return NoTransactions
	}
	return renderTemplate("summary", "summary.md", categoryTable, s)
}

// Investments renders the investment totals.
func Investments(s ledger.InvestmentSummary) string {
	switch {
	case s.Empty:
		return NoTransactions
	case !s.Found():
		return "No investment transactions found."
	}
	return renderTemplate("investments", "investments.md", categoryTable, s)
}

// InvestmentList renders raw investment rows. empty tells whether the whole
// ledger is empty.
func InvestmentList(txs []ledger.Transaction, empty bool) string {
	switch {
	case empty:
		return NoTransactions
	case len(txs) == 0:
		return "No investments found."
	}
	return renderTemplate("investmentList", "investment_list.md", nil, txs)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
