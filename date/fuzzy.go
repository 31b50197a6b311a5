package date

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ErrEmpty is returned when parsing an empty string.
var ErrEmpty = errors.New("empty date")

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// words that carry no date information in "on the 15th of April".
var fillers = map[string]bool{"in": true, "on": true, "of": true, "the": true, "for": true, "during": true, "month": true}

// day layouts tried before the word scanner. Month first wins on ambiguous
// slashed dates, like most US-centric parsers.
var dayLayouts = []string{readDateFormat, "2006/1/2", "2006.1.2", "1/2/2006", "2/1/2006"}

var monthLayouts = []string{"2006-1", "2006/1", "1/2006", "1-2006"}

// IsMonthName reports whether word is a month name or its usual abbreviation.
func IsMonthName(word string) bool {
	_, ok := monthNames[strings.ToLower(strings.Trim(word, ".,"))]
	return ok
}

// ParseFuzzy parses a day written the way people write it in a chat.
//
// Supported forms include ISO dates ("2025-04-15", "2025-4-5"), slashed dates
// ("04/15/2025"), month names with optional day and year in any order
// ("April 15, 2025", "15th of April", "Apr 2025", "april") and the relative
// words today, yesterday and tomorrow. A missing year is the current year, a
// missing day is the first of the month.
func ParseFuzzy(s string) (Date, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Date{}, ErrEmpty
	}
	switch s {
	case "today", "now":
		return Today(), nil
	case "yesterday":
		return Today().Add(-1), nil
	case "tomorrow":
		return Today().Add(1), nil
	}

	s = stripFillers(s)
	if d, ok := parseLayouts(s, dayLayouts); ok {
		return d, nil
	}
	if d, ok := parseLayouts(s, monthLayouts); ok {
		return d, nil
	}
	return scan(s)
}

// ParseMonth parses a month reference: "2025-04", "April 2025", "apr", or any
// day accepted by ParseFuzzy (its month is returned).
func ParseMonth(s string) (Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Month{}, ErrEmpty
	}
	if d, ok := parseLayouts(stripFillers(s), monthLayouts); ok {
		return d.MonthOf(), nil
	}
	d, err := ParseFuzzy(s)
	if err != nil {
		return Month{}, err
	}
	return d.MonthOf(), nil
}

// NormalizeDay returns s as YYYY-MM-DD. An empty s is today. When s cannot be
// parsed it is assumed to be already normalized and returned trimmed.
func NormalizeDay(s string) string {
	if strings.TrimSpace(s) == "" {
		return Today().String()
	}
	d, err := ParseFuzzy(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return d.String()
}

// NormalizeMonth returns s as YYYY-MM. When s cannot be parsed it is assumed
// to be already normalized and returned trimmed.
func NormalizeMonth(s string) string {
	m, err := ParseMonth(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return m.String()
}

func stripFillers(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if !fillers[f] {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func parseLayouts(s string, layouts []string) (Date, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Date()), true
		}
	}
	return Date{}, false
}

// scan reads free words looking for a month name, a 4-digit year and a day.
func scan(s string) (Date, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '/' || r == '-' || r == '.'
	})

	var (
		year  int
		month time.Month
		day   int
	)
	for _, tok := range tokens {
		if fillers[tok] {
			continue
		}
		if m, ok := monthNames[tok]; ok {
			if month != 0 {
				return Date{}, fmt.Errorf("invalid date %q: two months", s)
			}
			month = m
			continue
		}
		digits := trimOrdinal(tok)
		n, ok := atoi(digits)
		if !ok {
			return Date{}, fmt.Errorf("invalid date %q: unexpected %q", s, tok)
		}
		switch {
		case len(digits) == 4 && year == 0:
			year = n
		case len(digits) <= 2 && day == 0:
			day = n
		default:
			return Date{}, fmt.Errorf("invalid date %q: unexpected %q", s, tok)
		}
	}
	if month == 0 {
		return Date{}, fmt.Errorf("invalid date %q: no month", s)
	}
	if year == 0 {
		year = Today().Year()
	}
	if day == 0 {
		day = 1
	}
	d := New(year, month, day)
	if d.Day() != day {
		return Date{}, fmt.Errorf("invalid date %q: %s has no day %d", s, month, day)
	}
	return d, nil
}

func trimOrdinal(tok string) string {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if t, ok := strings.CutSuffix(tok, suffix); ok && t != "" {
			return t
		}
	}
	return tok
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
