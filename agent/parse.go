package agent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/etnz/fgpt/date"
	"github.com/shopspring/decimal"
)

// number is an amount found in a message.
type number struct {
	Value      decimal.Decimal
	Start, End int
	Percent    bool // "7%", "7 percent"
	Years      bool // "10 years"
}

func (n number) Float() float64 { return n.Value.InexactFloat64() }

var (
	numberRe = regexp.MustCompile(`(?i)(\$\s?)?(\d+)(\.\d+)?(?:\s?(k|thousand|m|million)\b)?(\s?%|\s?percent\b)?(\s*(?:years?|yrs?)\b)?`)
	// thousands separators, removed before anything else
	groupRe = regexp.MustCompile(`(\d),(\d{3})\b`)
)

var multipliers = map[string]decimal.Decimal{
	"k":        decimal.NewFromInt(1_000),
	"thousand": decimal.NewFromInt(1_000),
	"m":        decimal.NewFromInt(1_000_000),
	"million":  decimal.NewFromInt(1_000_000),
}

// ungroup removes thousands separators: "10,000" is "10000".
func ungroup(s string) string {
	for {
		t := groupRe.ReplaceAllString(s, "$1$2")
		if t == s {
			return s
		}
		s = t
	}
}

// numbers returns the numbers of s, which must already be ungrouped. Digits
// glued to letters ("401k" aside) are not numbers: "Q3", "mp3".
func numbers(s string) []number {
	var res []number
	for _, m := range numberRe.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > 0 {
			if r := rune(s[m[0]-1]); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '/' {
				continue
			}
		}
		text := s[m[4]:m[5]]
		if m[6] >= 0 {
			text += s[m[6]:m[7]]
		}
		v, err := decimal.NewFromString(text)
		if err != nil {
			continue
		}
		if m[8] >= 0 {
			v = v.Mul(multipliers[strings.ToLower(s[m[8]:m[9]])])
		}
		res = append(res, number{
			Value:   v,
			Start:   m[0],
			End:     m[1],
			Percent: m[10] >= 0,
			Years:   m[12] >= 0,
		})
	}
	return res
}

// amountsOf returns the numbers of s that are neither rates nor durations.
func amountsOf(s string) []number {
	var res []number
	for _, n := range numbers(s) {
		if !n.Percent && !n.Years {
			res = append(res, n)
		}
	}
	return res
}

const monthPattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	datePhraseRe = regexp.MustCompile(`(?i)\b(?:(?:on|in|during|since)\s+)?(?:` +
		`\d{4}-\d{1,2}(?:-\d{1,2})?|` +
		`\d{1,2}/\d{1,2}/\d{4}|` +
		`today|yesterday|tomorrow|` +
		`(?:the\s+)?(?:\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?)?(?:` + monthPattern + `)\.?(?:\s+\d{1,2}(?:st|nd|rd|th)?\b)?(?:,?\s+\d{4})?` +
		`)\b`)
	monthRefRe   = regexp.MustCompile(`(?i)\b(?:(\d{4})-(\d{1,2})|(` + monthPattern + `)\.?(?:,?\s+(\d{4}))?)\b`)
	relativeRe   = regexp.MustCompile(`(?i)\b(this|last|previous|past)\s+month\b`)
	datePrefixRe = regexp.MustCompile(`(?i)^(?:on|in|during|since)\s+`)
)

// cutDate finds the first date of s. It returns the date, without its
// preposition, and s without it.
func cutDate(s string) (when, rest string) {
	for _, m := range datePhraseRe.FindAllStringIndex(s, -1) {
		phrase := s[m[0]:m[1]]
		// "may" alone is more often a verb than a month.
		if strings.EqualFold(phrase, "may") {
			continue
		}
		when = datePrefixRe.ReplaceAllString(phrase, "")
		return when, s[:m[0]] + " " + s[m[1]:]
	}
	return "", s
}

// months returns the months referred to in s as YYYY-MM. A month name
// without a year takes the year of a following month ("April and May 2025"),
// else the current year.
func months(s string) []string {
	type ref struct{ name, year string }
	var refs []ref
	for _, m := range monthRefRe.FindAllStringSubmatchIndex(s, -1) {
		if m[2] >= 0 {
			refs = append(refs, ref{name: s[m[4]:m[5]], year: s[m[2]:m[3]]})
			continue
		}
		name := s[m[6]:m[7]]
		year := ""
		if m[8] >= 0 {
			year = s[m[8]:m[9]]
		}
		if strings.EqualFold(name, "may") && year == "" && !monthContext(s[:m[0]]) {
			continue
		}
		refs = append(refs, ref{name: name, year: year})
	}
	for i := len(refs) - 2; i >= 0; i-- {
		if refs[i].year == "" && !isDigits(refs[i].name) {
			refs[i].year = refs[i+1].year
		}
	}

	var res []string
	seen := make(map[string]bool)
	add := func(m string) {
		if !seen[m] {
			seen[m] = true
			res = append(res, m)
		}
	}
	for _, r := range refs {
		if isDigits(r.name) { // ISO: year-month
			add(date.NormalizeMonth(r.year + "-" + r.name))
		} else {
			add(date.NormalizeMonth(strings.TrimSpace(r.name + " " + r.year)))
		}
	}
	for _, m := range relativeRe.FindAllStringSubmatch(s, -1) {
		this := date.Today().MonthOf()
		if strings.EqualFold(m[1], "this") {
			add(this.String())
		} else {
			add(date.NewMonth(this.Year(), this.Month()-1).String())
		}
	}
	return res
}

// monthContext reports whether the text before a word makes it a month.
func monthContext(before string) bool {
	fields := strings.Fields(strings.ToLower(before))
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if strings.HasSuffix(last, ",") {
		return true
	}
	switch last {
	case "in", "for", "of", "and", "during", "or", "&":
		return true
	}
	return false
}

func isDigits(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}

// tokens splits s into lower case words, keeping apostrophes, dots and
// hyphens inside words.
func tokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '.' && r != '-' && r != '&'
	})
	res := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'.-"); f != "" {
			res = append(res, f)
		}
	}
	return res
}

// set builds a lookup table of words.
func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// trimWords removes the words of drop at both ends of words.
func trimWords(words []string, drop map[string]bool) []string {
	for len(words) > 0 && drop[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && drop[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return words
}

// wordsRe compiles a case insensitive regexp matching any of the phrases as
// whole words.
func wordsRe(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
