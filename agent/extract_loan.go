package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/fgpt"
	"google.golang.org/genai"
)

// AskLoans asks for the loans to plan.
const AskLoans = "Tell me about your loans: for each one, its name, balance, interest rate and minimum payment. For example: car loan 5000 at 7% min 150, credit card 3000 at 22% min 90."

var (
	segmentRe  = regexp.MustCompile(`(?i)[;\n]|,\s*|\s+(?:and|plus|also)\s+`)
	minRe      = regexp.MustCompile(`(?i)\b(?:min(?:imum)?\.?(?:\s+(?:monthly\s+)?payments?)?|paying|payments?|monthly)\s*(?:of|is|:|=)?\s*\$?(\d+(?:\.\d+)?)`)
	rateRe     = regexp.MustCompile(`(?i)\b(?:at|rate(?:\s+of|\s+is)?|apr(?:\s+of|\s+is)?|interest(?:\s+of|\s+is)?)\s*(\d+(?:\.\d+)?)\b`)
	loanNounRe = wordsRe("loan", "loans", "card", "mortgage", "debt", "line of credit", "heloc")
	snowballRe = wordsRe("snowball", "smallest balance", "smallest first")
	avalRe     = wordsRe("avalanche", "highest rate", "highest interest")

	nameFillers = set("i", "i've", "ive", "we", "have", "has", "got", "owe", "also", "a", "an", "the", "my", "our",
		"another", "one", "and", "plus", "with", "there's", "there", "is", "are", "its", "it's", "for", "of", "balance",
		"at", "owing", "remaining", "totaling", "worth", "left", "on", "$")
)

// loanDraft is a loan read from a message, possibly incomplete.
type loanDraft struct {
	name                   string
	balance, rate, payment *number
}

func (l loanDraft) missing() []string {
	var m []string
	if l.balance == nil {
		m = append(m, "balance")
	}
	if l.rate == nil {
		m = append(m, "interest rate")
	}
	if l.payment == nil {
		m = append(m, "minimum payment")
	}
	return m
}

// readLoans reads the loans listed in message.
func readLoans(message string) []loanDraft {
	var loans []loanDraft
	for _, seg := range segmentRe.Split(ungroup(message), -1) {
		l := readLoan(seg)
		switch {
		case l.balance == nil && l.name == "" && len(loans) > 0:
			// "... and min 150" completes the previous loan.
			prev := &loans[len(loans)-1]
			if prev.rate == nil {
				prev.rate = l.rate
			}
			if prev.payment == nil {
				prev.payment = l.payment
			}
		case l.balance != nil:
			loans = append(loans, l)
		case l.name != "" && len(strings.Fields(l.name)) <= 3 && loanNounRe.MatchString(l.name):
			loans = append(loans, l)
		}
	}
	for i := range loans {
		if loans[i].name == "" {
			loans[i].name = fmt.Sprintf("Loan %d", i+1)
		}
	}
	return loans
}

func readLoan(seg string) loanDraft {
	var l loanDraft
	nums := numbers(seg)
	used := make(map[int]bool)
	at := func(start int) *number {
		for i := range nums {
			if nums[i].Start <= start && start < nums[i].End && !used[i] {
				used[i] = true
				return &nums[i]
			}
		}
		return nil
	}

	if m := minRe.FindStringSubmatchIndex(seg); m != nil {
		l.payment = at(m[2])
	}
	for i := range nums {
		if nums[i].Percent && !used[i] {
			used[i] = true
			l.rate = &nums[i]
			break
		}
	}
	if l.rate == nil {
		for _, m := range rateRe.FindAllStringSubmatchIndex(seg, -1) {
			if n := at(m[2]); n != nil {
				if n.Value.LessThan(fgpt.M(100).Decimal()) {
					l.rate = n
					break
				}
				// "at 5000" is a balance
				delete(used, indexOf(nums, n))
			}
		}
	}
	for i := range nums {
		if !used[i] && !nums[i].Years {
			used[i] = true
			l.balance = &nums[i]
			break
		}
	}
	if l.payment == nil && l.balance != nil {
		// "car loan 5000 at 7% 150": the figure left is the payment.
		for i := range nums {
			if !used[i] && !nums[i].Years {
				used[i] = true
				l.payment = &nums[i]
				break
			}
		}
	}
	first := len(seg)
	if len(nums) > 0 {
		first = nums[0].Start
	}
	l.name = loanName(seg[:first])
	return l
}

func indexOf(nums []number, n *number) int {
	for i := range nums {
		if &nums[i] == n {
			return i
		}
	}
	return -1
}

// loanName cleans the text before the figures of a loan.
func loanName(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	var words []string
	for _, f := range strings.Fields(s) {
		if w := strings.Trim(f, ",.;:!?\"'()"); w != "" {
			words = append(words, w)
		}
	}
	for len(words) > 0 && nameFillers[strings.ToLower(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && nameFillers[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	// "pay off my car loan" keeps "car loan"
	for i := len(words) - 1; i > 0; i-- {
		if strings.EqualFold(words[i], "my") || strings.EqualFold(words[i], "a") || strings.EqualFold(words[i], "the") {
			words = words[i+1:]
			break
		}
	}
	return strings.Join(words, " ")
}

func strategy(message string) string {
	if snowballRe.MatchString(message) && !avalRe.MatchString(message) {
		return fgpt.Snowball
	}
	return fgpt.Avalanche
}

func loan(message string) Extraction {
	loans := readLoans(message)
	if len(loans) == 0 {
		if snowballRe.MatchString(message) || avalRe.MatchString(message) {
			return Extraction{
				Calls:    []*genai.FunctionCall{call("get_topic", map[string]any{"topic": "debt-repayment"})},
				Question: AskLoans,
			}
		}
		return Extraction{Question: AskLoans}
	}

	var asks []string
	list := make([]any, 0, len(loans))
	for _, l := range loans {
		if m := l.missing(); len(m) > 0 {
			asks = append(asks, fmt.Sprintf("the %s of your %s", strings.Join(m, " and "), strings.ToLower(l.name)))
			continue
		}
		list = append(list, map[string]any{
			"name":        l.name,
			"balance":     l.balance.Float(),
			"rate":        l.rate.Float(),
			"min_payment": l.payment.Float(),
		})
	}
	if len(asks) > 0 {
		return Extraction{Question: fmt.Sprintf("To plan your repayment I still need %s. Could you share them?", strings.Join(asks, ", and "))}
	}

	s := strategy(message)
	intro := "Using the **avalanche** strategy: paying the highest interest rate first costs you the least interest overall. Ask for snowball if you prefer clearing the smallest balances first."
	if s == fgpt.Snowball {
		intro = "Using the **snowball** strategy: clearing the smallest balance first gives quick wins that keep you motivated, even though avalanche would cost less interest."
	}
	return Extraction{
		Intro: intro,
		Calls: []*genai.FunctionCall{call("calculate_loan_repayment", map[string]any{"loans": list, "strategy": s})},
	}
}
