package agent

import (
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// AskPlanner lists what the planner computes.
const AskPlanner = "I can compute your net worth, what an amount will be worth after inflation, or your debt-to-income ratio. Which one, and with which figures?"

var (
	clauseRe    = regexp.MustCompile(`[.?!;\n]+(?:\s+|$)`)
	netWorthRe  = wordsRe("net worth", "assets", "liabilities")
	inflationRe = wordsRe("inflation", "purchasing power", "worth in")
	dtiRe       = wordsRe("dti", "debt-to-income", "debt to income")
	liabilityRe = wordsRe("liabilities", "liability", "debts", "i owe", "owe", "owing")

	incomeWords = set("income", "earn", "earning", "earnings", "salary", "make", "gross", "paycheck", "revenue")
	debtWords   = set("debt", "debts", "payments", "payment", "pay", "owe", "loans", "loan", "mortgage", "rent", "obligations")
	labelFiller = set("net", "worth", "what's", "whats", "what", "is", "are", "my", "assets", "asset", "liabilities", "liability",
		"debts", "in", "of", "have", "i", "own", "owe", "about", "$", "dollars", "total", "the", "a", "an", "calculate", "compute",
		"with", "and", "value", "valued", "at", "worth", "also", "plus", "there", "me", "tell", "if", "on", "for", "so", "how", "much")
)

func planner(message string) Extraction {
	text := ungroup(message)
	var (
		infl, dti, rest []string
		ext             Extraction
		asks            []string
	)
	for _, c := range clauseRe.Split(text, -1) {
		switch {
		case inflationRe.MatchString(c):
			infl = append(infl, c)
		case dtiRe.MatchString(c):
			dti = append(dti, c)
		default:
			rest = append(rest, c)
		}
	}

	if netWorthRe.MatchString(text) {
		if c, ask := netWorth(strings.Join(rest, ". ")); c != nil {
			ext.Calls = append(ext.Calls, c)
		} else {
			asks = append(asks, ask)
		}
	}
	for _, c := range infl {
		if c, ask := inflation(c); c != nil {
			ext.Calls = append(ext.Calls, c)
		} else {
			asks = append(asks, ask)
		}
	}
	if len(dti) > 0 {
		clause := strings.Join(dti, ". ")
		if len(amountsOf(clause)) < 2 {
			clause = strings.Join(append(dti, rest...), ". ")
		}
		if c, ask := debtToIncome(clause); c != nil {
			ext.Calls = append(ext.Calls, c)
		} else {
			asks = append(asks, ask)
		}
	}

	if len(ext.Calls) == 0 && len(asks) == 0 {
		return Extraction{Question: AskPlanner}
	}
	ext.Question = strings.Join(asks, " ")
	return ext
}

// labelled reads "label amount" pairs separated by commas or "and".
func labelled(s string) []any {
	var res []any
	for _, piece := range segmentRe.Split(s, -1) {
		nums := amountsOf(piece)
		if len(nums) == 0 {
			continue
		}
		n := nums[0]
		label := strings.Join(trimWords(cleanTokens(piece[:n.Start]), labelFiller), " ")
		if label == "" {
			label = strings.Join(trimWords(cleanTokens(piece[n.End:]), labelFiller), " ")
		}
		if label == "" {
			label = fmt.Sprintf("item %d", len(res)+1)
		}
		res = append(res, map[string]any{"name": label, "amount": n.Float()})
	}
	return res
}

// cleanTokens returns the words of s without digits.
func cleanTokens(s string) []string {
	var res []string
	for _, t := range tokens(s) {
		if !digitRe.MatchString(t) {
			res = append(res, t)
		}
	}
	return res
}

func netWorth(s string) (*genai.FunctionCall, string) {
	assets, liabilities := s, ""
	if m := liabilityRe.FindStringIndex(s); m != nil {
		assets, liabilities = s[:m[0]], s[m[0]:]
	}
	a, l := labelled(assets), labelled(liabilities)
	if len(a) == 0 && len(l) == 0 {
		return nil, "For your net worth, what do you own and what do you owe? For example: savings 10000, car 8000, debts: car loan 5000."
	}
	args := map[string]any{"assets": a, "liabilities": l}
	if a == nil {
		args["assets"] = []any{}
	}
	if l == nil {
		args["liabilities"] = []any{}
	}
	return call("calculate_net_worth", args), ""
}

func inflation(clause string) (*genai.FunctionCall, string) {
	args := map[string]any{}
	for _, n := range numbers(clause) {
		switch {
		case n.Percent:
			if _, ok := args["inflation_rate"]; !ok {
				args["inflation_rate"] = n.Float()
			}
		case n.Years:
			if _, ok := args["years"]; !ok {
				args["years"] = n.Float()
			}
		default:
			if _, ok := args["amount"]; !ok {
				args["amount"] = n.Float()
			}
		}
	}
	_, amount := args["amount"]
	_, years := args["years"]
	switch {
	case !amount && !years:
		return nil, "For inflation, which amount and over how many years?"
	case !amount:
		return nil, "Which amount should I adjust for inflation?"
	case !years:
		return nil, "Over how many years should I apply inflation?"
	}
	return call("inflation_adjusted_value", args), ""
}

func debtToIncome(clause string) (*genai.FunctionCall, string) {
	nums := amountsOf(clause)
	args := map[string]any{}
	var unlabelled []number
	prev := 0
	for i, n := range nums {
		near := tokens(clause[prev:n.Start])
		if len(near) == 0 || !(hasAny(near, incomeWords) || hasAny(near, debtWords)) {
			end := len(clause)
			if i+1 < len(nums) {
				end = nums[i+1].Start
			}
			near = append(near, tokens(clause[n.End:end])...)
		}
		prev = n.End
		switch {
		case hasAny(near, incomeWords) && args["monthly_income"] == nil:
			args["monthly_income"] = n.Float()
		case hasAny(near, debtWords) && args["monthly_debt"] == nil:
			args["monthly_debt"] = n.Float()
		default:
			unlabelled = append(unlabelled, n)
		}
	}
	for _, n := range unlabelled {
		if args["monthly_debt"] == nil {
			args["monthly_debt"] = n.Float()
		} else if args["monthly_income"] == nil {
			args["monthly_income"] = n.Float()
		}
	}
	if args["monthly_debt"] == nil || args["monthly_income"] == nil {
		return nil, "For your debt-to-income ratio, what are your monthly debt payments and your monthly gross income?"
	}
	return call("dti_ratio", args), ""
}

func hasAny(words []string, in map[string]bool) bool {
	for _, w := range words {
		if in[w] {
			return true
		}
	}
	return false
}
