package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/ledger"
	"google.golang.org/genai"
)

// Budget questions.
const (
	AskInvest = "Sure! What would you like to invest in, and how much?"
	AskBudget = "I can record an income or an expense, summarize your budget, list, delete or clear your transactions, and total your investments. What would you like to do?"
)

var (
	// verbs, strongest first: "got paid" is income even though it says paid.
	paidRe    = wordsRe("got paid", "get paid", "was paid", "been paid", "getting paid")
	investRe  = wordsRe("invested", "invest", "investing")
	expenseRe = wordsRe("spent", "spend", "spending", "paid", "pay", "bought", "buy", "purchased", "purchase", "cost", "costs", "lost")
	incomeRe  = wordsRe("earned", "earn", "received", "receive", "made", "make", "got", "won", "sold")
	txVerbRe  = wordsRe("got paid", "get paid", "invested", "spent", "paid", "bought", "purchased", "earned", "received")

	clearRe        = regexp.MustCompile(`(?i)\b(?:clear|wipe|reset)\b|\b(?:delete|remove|erase)\s+(?:all|everything)\b|\bstart\s+(?:over|fresh)\b`)
	deleteRe       = wordsRe("delete", "remove", "undo", "erase")
	idRe           = regexp.MustCompile(`(?i)(?:\bid|#|\bnumber|\bno\.?|\btransaction)\s*#?\s*(\d+)`)
	wantInvestRe   = regexp.MustCompile(`(?i)\b(?:want|wanna|would like|'d like|like|plan|planning|thinking|think|going|ready|start|how)\s+(?:to\s+|about\s+|of\s+)?(?:start\s+)?invest(?:ing)?\b`)
	investmentsRe  = wordsRe("investment", "investments", "invested", "portfolio")
	listRe         = wordsRe("list", "show", "display", "see", "view", "print", "all", "each", "every")
	totalRe        = wordsRe("summary", "summarize", "summarise", "total", "totals", "how much", "overview", "breakdown", "balance")
	transactionsRe = wordsRe("transaction", "transactions", "entries", "entry", "records", "ledger", "history")
	summaryRe      = wordsRe("summary", "summarize", "summarise", "overview", "breakdown", "balance", "total", "how much", "budget", "report", "spending", "expenses", "income", "so far")
)

// units and fillers around a category.
var (
	leading  = set("i", "we", "i've", "ive", "just", "have", "has", "had", "dollars", "dollar", "bucks", "usd", "$", "on", "for", "at", "in", "into", "to", "from", "towards", "toward", "the", "a", "an", "my", "some", "of", "worth", "money", "cash", "total", "about", "around", "just", "only", "today", "yesterday", "this", "last", "week", "as")
	stops    = set("and", "but", "so", "because", "since", "with", "using", "via", "today", "yesterday", "tomorrow", "last", "this", "which", "that", "then", "please", "when", "while", "after", "before", "ago")
	trailing = set("on", "for", "at", "in", "to", "from", "of", "the", "a", "an", "my", "is", "was", "it", "me")
)

// transaction is an add_transaction request read from a message.
type transaction struct {
	Type     string // "income", "expense" or "invest"
	Category string
	Amount   *number
	Date     string
}

// readTransaction reads a transaction from message. ok is false when there
// is no transaction verb.
func readTransaction(message string) (tx transaction, ok bool) {
	when, rest := cutDate(ungroup(message))
	tx.Date = when

	verb := paidRe.FindStringIndex(rest)
	tx.Type = string(ledger.Income)
	if verb == nil {
		if verb = investRe.FindStringIndex(rest); verb != nil {
			tx.Type = "invest"
		}
	}
	if verb == nil {
		if verb = expenseRe.FindStringIndex(rest); verb != nil {
			tx.Type = string(ledger.Expense)
		}
	}
	if verb == nil {
		if verb = incomeRe.FindStringIndex(rest); verb != nil {
			tx.Type = string(ledger.Income)
		}
	}
	if verb == nil {
		return transaction{}, false
	}

	amounts := amountsOf(rest)
	for i := range amounts {
		if amounts[i].Start >= verb[1] || i == len(amounts)-1 {
			tx.Amount = &amounts[i]
			break
		}
	}
	from := verb[1]
	if tx.Amount != nil {
		from = tx.Amount.End
	}
	tx.Category = phrase(rest[from:])
	if tx.Category == "" && tx.Amount != nil && tx.Amount.Start > verb[1] {
		// "received my salary of 3000", "paid rent 1200"
		tx.Category = phrase(rest[verb[1]:tx.Amount.Start])
	}
	if tx.Category == "" {
		// "dinner cost 80"
		tx.Category = phrase(rest[:verb[0]])
	}
	return tx, true
}

// phrase returns the first noun phrase of s: fillers and units are skipped
// and it ends at the first clause break.
func phrase(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	var words []string
	for _, f := range strings.Fields(s) {
		brk := strings.ContainsAny(f[len(f)-1:], ",.;:!?")
		word := strings.Trim(f, ",.;:!?\"'()")
		w := strings.ToLower(word)
		if w != "" && (len(words) > 0 || !leading[w]) {
			if stops[w] || len(numbers(w)) > 0 {
				break
			}
			words = append(words, word)
		}
		if brk && len(words) > 0 {
			break
		}
	}
	for len(words) > 0 && trailing[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func budget(message string) Extraction {
	switch {
	case clearRe.MatchString(message):
		return Extraction{Calls: []*genai.FunctionCall{call("clear_transactions", nil)}}
	case deleteRe.MatchString(message):
		id, ok := transactionID(message)
		if !ok {
			return Extraction{Question: "Which transaction should I delete? Give me its id: you can see ids by asking me to list your transactions."}
		}
		return Extraction{Calls: []*genai.FunctionCall{call("delete_transaction", map[string]any{"id": float64(id)})}}
	}

	tx, isTx := readTransaction(message)
	if isTx && tx.Amount != nil {
		return addTransaction(tx)
	}

	switch {
	case wantInvestRe.MatchString(message) && !totalRe.MatchString(message):
		return Extraction{Question: AskInvest}
	case investmentsRe.MatchString(message) && !transactionsRe.MatchString(message) || strings.Contains(strings.ToLower(message), "investment transactions"):
		if listRe.MatchString(message) && !totalRe.MatchString(message) {
			return Extraction{Calls: []*genai.FunctionCall{call("list_investments", nil)}}
		}
		return Extraction{Calls: []*genai.FunctionCall{call("get_investment_summary", nil)}}
	case listRe.MatchString(message) && transactionsRe.MatchString(message):
		return Extraction{Calls: []*genai.FunctionCall{call("list_transactions", nil)}}
	case summaryRe.MatchString(message) && (!isTx || totalRe.MatchString(message) || questionRe.MatchString(message)):
		args := map[string]any{}
		if ms := months(message); len(ms) > 0 {
			list := make([]any, len(ms))
			for i, m := range ms {
				list[i] = m
			}
			args["months"] = list
		}
		return Extraction{Calls: []*genai.FunctionCall{call("get_budget_summary", args)}}
	case isTx && tx.Type == "invest":
		return Extraction{Question: AskInvest}
	case isTx:
		return Extraction{Question: askAmount(tx)}
	}
	return Extraction{Question: AskBudget}
}

func transactionID(message string) (int64, bool) {
	if m := idRe.FindStringSubmatch(message); m != nil {
		if n := numbers(m[1]); len(n) == 1 {
			return n[0].Value.IntPart(), true
		}
	}
	if n := amountsOf(message); len(n) == 1 && n[0].Value.IsInteger() {
		return n[0].Value.IntPart(), true
	}
	return 0, false
}

func addTransaction(tx transaction) Extraction {
	amount := fgpt.M(tx.Amount.Value)
	if tx.Category == "" {
		switch tx.Type {
		case string(ledger.Income):
			return Extraction{Question: fmt.Sprintf("Where did the %s come from? For example: salary, freelance, gift.", amount)}
		case "invest":
			return Extraction{Question: fmt.Sprintf("What did you invest the %s in? For example: ETF, index fund, stocks.", amount)}
		default:
			return Extraction{Question: fmt.Sprintf("What was the %s for? For example: groceries, rent, transport.", amount)}
		}
	}
	if tx.Type == "invest" {
		tx.Type = string(ledger.Expense)
		if !strings.Contains(strings.ToLower(tx.Category), "investment") {
			tx.Category += " investment"
		}
	}
	args := map[string]any{
		"type":     tx.Type,
		"category": tx.Category,
		"amount":   tx.Amount.Float(),
	}
	if tx.Date != "" {
		args["date"] = tx.Date
	}
	return Extraction{Calls: []*genai.FunctionCall{call("add_transaction", args)}}
}

func askAmount(tx transaction) string {
	on := ""
	if tx.Category != "" {
		on = " on " + tx.Category
	}
	if tx.Type == string(ledger.Income) {
		if tx.Category != "" {
			return fmt.Sprintf("How much did you receive from %s?", tx.Category)
		}
		return "How much did you receive, and where did it come from?"
	}
	if tx.Category == "" {
		return "How much did you spend, and on what?"
	}
	return fmt.Sprintf("How much did you spend%s?", on)
}
