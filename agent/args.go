package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/shopspring/decimal"
)

// Arguments come either from the model, as decoded JSON (float64, string,
// []any, map[string]any), or from the rules engine, which uses the same
// shapes. Numbers are also accepted as strings.

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case decimal.Decimal:
		return v, true
	case string:
		s := strings.NewReplacer("$", "", ",", "", "%", "").Replace(strings.TrimSpace(v))
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}
	return decimal.Zero, false
}

func numberArg(args map[string]any, key string) (decimal.Decimal, bool) {
	return toDecimal(args[key])
}

func intArg(args map[string]any, key string) (int64, bool) {
	d, ok := numberArg(args, key)
	if !ok || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	return d.IntPart(), true
}

// stringsArg accepts a list of strings, or a single comma separated string.
func stringsArg(args map[string]any, key string) []string {
	var res []string
	switch v := args[key].(type) {
	case []string:
		res = append(res, v...)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				res = append(res, s)
			}
		}
	case string:
		res = strings.Split(v, ",")
	}
	out := res[:0]
	for _, s := range res {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// amountsArg reads labelled amounts, given either as an object
// {"savings": 1000} or as a list [{"name": "savings", "amount": 1000}].
func amountsArg(args map[string]any, key string) (map[string]fgpt.Money, error) {
	res := make(map[string]fgpt.Money)
	add := func(label string, v any) error {
		d, ok := toDecimal(v)
		if !ok {
			return fmt.Errorf("%s: %q is not an amount", key, fmt.Sprint(v))
		}
		if label == "" {
			label = fmt.Sprintf("item %d", len(res)+1)
		}
		res[label] = res[label].Add(fgpt.M(d))
		return nil
	}
	switch v := args[key].(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := add(k, v[k]); err != nil {
				return nil, err
			}
		}
	case []any:
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: expected a list of objects", key)
			}
			if err := add(stringArg(m, "name"), m["amount"]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%s: unexpected %T", key, v)
	}
	return res, nil
}

// loansArg reads a list of loans.
func loansArg(args map[string]any, key string) ([]fgpt.Loan, error) {
	list, ok := args[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list of loans", key)
	}
	loans := make([]fgpt.Loan, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: loan %d is not an object", key, i+1)
		}
		loan := fgpt.Loan{Name: stringArg(m, "name")}
		if loan.Name == "" {
			loan.Name = fmt.Sprintf("Loan %d", i+1)
		}
		balance, ok := numberArg(m, "balance")
		if !ok {
			return nil, fmt.Errorf("%s: balance is missing", loan.Name)
		}
		rate, ok := numberArg(m, "rate")
		if !ok {
			return nil, fmt.Errorf("%s: rate is missing", loan.Name)
		}
		payment, _ := numberArg(m, "min_payment")
		loan.Balance, loan.Rate, loan.MinPayment = fgpt.M(balance), rate, fgpt.M(payment)
		loans = append(loans, loan)
	}
	if len(loans) == 0 {
		return nil, fmt.Errorf("%s: no loan given", key)
	}
	return loans, nil
}
