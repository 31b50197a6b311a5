package fgpt

import (
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// JSONGet evaluates a jsonpath expression against a decoded JSON document.
// It returns nil when the path does not exist.
func JSONGet(doc any, path string) any {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	// jsonpath is never clear about whether it returns a list of 1 answer, or
	// a single answer: keep the first one if any.
	if list, ok := val.([]any); ok && isFilter(path) {
		if len(list) == 0 {
			return nil
		}
		val = list[0]
	}
	return val
}

// isFilter reports whether path selects a list of matches rather than a
// single value.
func isFilter(path string) bool {
	return strings.ContainsAny(path, "*?:,") || strings.Contains(path, "..")
}

// JSONString returns the string at path, or "" when absent or not a string.
func JSONString(doc any, path string) string {
	s, _ := JSONGet(doc, path).(string)
	return strings.TrimSpace(s)
}

// JSONNumber returns the number at path. Services sometimes send numbers as
// strings ("12.5"), or "NA" for missing values; ok is false when there is no
// usable number.
func JSONNumber(doc any, path string) (d decimal.Decimal, ok bool) {
	switch v := JSONGet(doc, path).(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
		return d, err == nil
	}
	return decimal.Zero, false
}
