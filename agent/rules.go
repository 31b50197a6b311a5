package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/fgpt/logger"
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/session"
)

// Rules is the deterministic backend: it classifies messages with keyword
// cues, extracts tool arguments with patterns, and answers by calling the
// specialist's tools directly.
type Rules struct {
	team  Team
	tools *Tools
}

// NewRules returns a rules backend for team. tools is used to resolve
// company names while extracting arguments.
func NewRules(team Team, tools *Tools) *Rules {
	return &Rules{team: team, tools: tools}
}

// Questions asked when the intent is unclear.
const (
	AskRephrase = "Sorry, I didn't quite get that. Could you rephrase? I can track your budget, plan loan repayments, explain finance concepts, and look up stocks and market news."
	AskMessage  = "What can I help you with?"
)

var (
	smallTalk = set("hi", "hello", "hey", "heya", "hiya", "howdy", "yo", "greetings", "hola",
		"good", "morning", "afternoon", "evening", "night", "day",
		"thanks", "thank", "you", "thx", "ty", "cheers", "much", "so", "very",
		"bye", "goodbye", "see", "ya", "later", "ok", "okay", "cool", "great", "nice", "awesome",
		"how", "are", "doing", "there", "fgpt", "what's", "whats", "up", "sup", "again", "help", "me")
	aboutYou = wordsRe("who are you", "what are you", "what can you do", "what do you do",
		"how can you help", "introduce yourself", "your name")

	conceptRe  = wordsRe("what is", "what's", "whats", "what are", "what does", "explain", "how does", "how do", "define", "definition of", "meaning of", "tell me about", "why is", "why are", "why should", "difference between", "teach me", "help me understand")
	personalRe = wordsRe("my", "me", "i", "i'm", "i've", "mine", "im")
	digitRe    = regexp.MustCompile(`\d`)
	questionRe = regexp.MustCompile(`(?i)^(?:what|what's|whats|who|when|where|why|how|which|is|are|can|could|should|do|does|did|will|would|tell|find|search|look)\b|\?\s*$`)
	orRe       = wordsRe("or")

	plannerCues = wordsRe("net worth", "inflation", "purchasing power", "dti", "debt-to-income", "debt to income", "assets", "liabilities", "worth in")
	budgetCues  = wordsRe("spent", "spend", "spending", "paid", "bought", "purchased", "earned", "received", "got paid", "get paid",
		"invested", "budget", "transaction", "transactions", "expense", "expenses", "ledger", "summary", "investments", "investment summary")
	// "got" alone is too common, it needs an amount: "I got 50 from mom".
	gotAmountRe = regexp.MustCompile(`(?i)\bgot\s+(?:\$\s*)?\d`)
	loanAnchors = wordsRe("loan", "loans", "avalanche", "snowball", "pay off", "paying off", "payoff", "repay", "repayment", "repaying")
	repayRe     = wordsRe("avalanche", "snowball", "pay off", "paying off", "payoff", "repay", "repayment", "repaying")
	loanCues    = wordsRe("debt", "debts", "mortgage", "credit card", "credit cards", "student loan")
	creditCues  = wordsRe("credit score", "credit scores", "credit report", "credit rating", "credit history", "fico", "credit utilization", "my credit", "build credit", "credit limit")
	financeCues = wordsRe("price", "prices", "quote", "ticker", "analyst", "analysts", "rating", "ratings", "recommendation", "recommendations", "market cap", "share price", "stock price", "trading at", "valuation", "fundamentals")
	newsCues    = wordsRe("sentiment", "news", "headline", "headlines", "buzz", "mood", "bullish", "bearish", "hype")

	budgetWeak  = wordsRe("balance", "income", "salary", "paycheck", "money", "savings", "invest", "investing", "investment", "bills", "groceries")
	loanWeak    = wordsRe("owe", "interest rate", "borrowed", "lender")
	financeWeak = wordsRe("stock", "stocks", "share", "shares", "company", "companies", "equity", "ipo")
)

// strongOrder is the priority of strong cues, first wins.
var strongOrder = []string{Budget, Loan, Credit, Planner, Finance, Sentiment}

var topics = map[string]string{
	Budget:    "your budget",
	Loan:      "repaying your loans",
	Credit:    "your credit score",
	Planner:   "financial planning",
	Finance:   "stock prices and company data",
	Sentiment: "news sentiment",
}

// Classify picks the specialist for message, or a clarifying question.
func (r *Rules) Classify(ctx context.Context, message string, history []session.Turn) (Decision, error) {
	d := r.classify(message)
	logger.FromContext(ctx).Debug().Str("specialist", d.Specialist).Bool("clarify", d.Question != "").Msg("route")
	return d, nil
}

func (r *Rules) classify(message string) Decision {
	words := tokens(message)
	if len(words) == 0 {
		return Decision{Question: AskMessage}
	}

	if isSmallTalk(words) || (len(words) <= 6 && aboutYou.MatchString(message)) {
		return Decision{Specialist: General}
	}

	strong := r.strongCues(message)
	if r.isConcept(message, strong) {
		return Decision{Specialist: Literacy}
	}

	if len(strong) >= 2 && orRe.MatchString(message) {
		return Decision{Question: fmt.Sprintf("Do you want help with %s or with %s?", topics[strong[0]], topics[strong[1]])}
	}
	if len(strong) > 0 {
		return Decision{Specialist: strong[0]}
	}

	switch {
	case budgetWeak.MatchString(message):
		return Decision{Specialist: Budget}
	case loanWeak.MatchString(message):
		return Decision{Specialist: Loan}
	case financeWeak.MatchString(message) || hasCompany(message):
		return Decision{Specialist: Finance}
	}

	if len(words) >= 2 && questionRe.MatchString(strings.TrimSpace(message)) {
		return Decision{Specialist: Web}
	}
	return Decision{Question: AskRephrase}
}

func isSmallTalk(words []string) bool {
	for _, w := range words {
		if !smallTalk[w] {
			return false
		}
	}
	return true
}

// strongCues returns the categories with a strong cue, in priority order.
func (r *Rules) strongCues(message string) []string {
	planner := plannerCues.MatchString(message)
	var res []string
	for _, id := range strongOrder {
		var ok bool
		switch id {
		case Budget:
			ok = budgetCues.MatchString(message) || gotAmountRe.MatchString(message)
		case Loan:
			// debt words belong to the ratio in "debt-to-income".
			ok = loanAnchors.MatchString(message) || (!planner && loanCues.MatchString(message))
		case Credit:
			ok = creditCues.MatchString(message)
		case Planner:
			ok = planner
		case Finance:
			ok = financeCues.MatchString(message)
		case Sentiment:
			ok = newsCues.MatchString(message)
		}
		if ok {
			res = append(res, id)
		}
	}
	// Planner phrases are specific: they beat generic budget words
	// ("expenses") and loan words ("debt").
	if planner && len(res) > 0 && res[0] != Planner && !repayRe.MatchString(message) && !txVerbRe.MatchString(message) {
		res = append([]string{Planner}, removeID(res, Planner)...)
	}
	return res
}

func removeID(ids []string, id string) []string {
	var res []string
	for _, x := range ids {
		if x != id {
			res = append(res, x)
		}
	}
	return res
}

// isConcept reports whether message asks to explain a concept in general
// terms, rather than about the user's own figures or a stock.
func (r *Rules) isConcept(message string, strong []string) bool {
	if !conceptRe.MatchString(message) || personalRe.MatchString(message) || digitRe.MatchString(message) {
		return false
	}
	for _, id := range strong {
		if id == Finance || id == Sentiment {
			return false
		}
	}
	return !hasCompany(message)
}

// hasCompany reports whether message names a well known company or looks
// like it contains a ticker.
func hasCompany(message string) bool {
	for _, w := range tokens(message) {
		if _, ok := market.Shortlisted(w); ok {
			return true
		}
	}
	return len(tickers(message)) > 0
}

var (
	tickerRe   = regexp.MustCompile(`\b[A-Z]{2,5}(?:\.[A-Z]{1,6})?\b`)
	notTickers = set("DTI", "ETF", "ETFS", "IRA", "USD", "US", "CEO", "OK", "FAQ", "APR", "IPO", "GDP", "CPI", "EPS", "PE", "NEWS", "FICO", "ROI", "LOL", "OMG", "BTW", "IMO", "TL", "DR", "ASAP", "FGPT", "EUR", "GBP", "HI", "HEY", "YO")
)

// tickers returns the words of message that look like tickers.
func tickers(message string) []string {
	// A message in capitals is shouting, not tickers.
	if strings.ToUpper(message) == message {
		return nil
	}
	var res []string
	for _, t := range tickerRe.FindAllString(message, -1) {
		if !notTickers[t] {
			res = append(res, t)
		}
	}
	return res
}
