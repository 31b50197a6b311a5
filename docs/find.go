package docs

import (
	"strings"
	"unicode"
)

// keywords are the phrases that point a question to a topic.
var keywords = map[string][]string{
	"budgeting":           {"budget", "budgeting", "50/30/20", "track my spending", "tracking expenses"},
	"emergency-fund":      {"emergency fund", "rainy day", "emergency savings"},
	"compound-interest":   {"compound interest", "compounding", "compound", "interest on interest", "rule of 72"},
	"inflation":           {"inflation", "purchasing power", "cost of living"},
	"debt-repayment":      {"avalanche", "snowball", "pay off debt", "pay off my debt", "repay", "repayment", "debt payoff"},
	"debt-to-income":      {"debt-to-income", "debt to income", "dti"},
	"credit-score":        {"credit score", "credit report", "fico", "credit rating", "credit utilization", "credit history", "credit"},
	"net-worth":           {"net worth", "assets and liabilities"},
	"stocks-and-bonds":    {"stock", "stocks", "bond", "bonds", "equities", "shares"},
	"etf":                 {"etf", "etfs", "exchange-traded fund", "exchange traded fund"},
	"index-funds":         {"index fund", "index funds", "s&p 500", "passive investing"},
	"diversification":     {"diversification", "diversify", "diversified", "eggs in one basket"},
	"retirement-accounts": {"401k", "401(k)", "ira", "roth", "retirement account", "retirement"},
}

// Find returns the topic that best matches question, and whether one
// matched at all. Longer phrases weigh more than single words, so "index
// fund" beats "fund".
func Find(question string) (string, bool) {
	q := " " + normalize(question) + " "
	best, bestScore := "", 0
	for topic, phrases := range keywords {
		score := 0
		for _, p := range phrases {
			if strings.Contains(q, " "+p+" ") {
				score += len(strings.Fields(p))*10 + len(p)
			}
		}
		if score > bestScore || score == bestScore && score > 0 && topic < best {
			best, bestScore = topic, score
		}
	}
	return best, bestScore > 0
}

// normalize lower-cases s and turns punctuation into spaces, keeping the
// characters that appear in keywords.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune("-/&()", r):
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
