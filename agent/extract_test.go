package agent

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/fgpt"
	"google.golang.org/genai"
)

func names(calls []*genai.FunctionCall) []string {
	var res []string
	for _, c := range calls {
		res = append(res, c.Name)
	}
	return res
}

func TestBudget_AddTransaction(t *testing.T) {
	tests := []struct {
		message string
		want    map[string]any
	}{
		{"I spent 50 on groceries", map[string]any{"type": "expense", "category": "groceries", "amount": 50.0}},
		{"Paid rent 1200", map[string]any{"type": "expense", "category": "rent", "amount": 1200.0}},
		{"dinner cost 80", map[string]any{"type": "expense", "category": "dinner", "amount": 80.0}},
		{"I got paid 3000 from my salary yesterday", map[string]any{"type": "income", "category": "salary", "amount": 3000.0, "date": "yesterday"}},
		{"I got 50 from mom", map[string]any{"type": "income", "category": "mom", "amount": 50.0}},
		{"I earned 1,200 from freelance work", map[string]any{"type": "income", "category": "freelance work", "amount": 1200.0}},
		{"I invested $500 in an index fund", map[string]any{"type": "expense", "category": "index fund investment", "amount": 500.0}},
		{"I spent 45.5 on books on April 3", map[string]any{"type": "expense", "category": "books", "amount": 45.5, "date": "April 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			ext := budget(tt.message)
			if len(ext.Calls) != 1 || ext.Calls[0].Name != "add_transaction" {
				t.Fatalf("budget(%q) = %+v, want one add_transaction call", tt.message, ext)
			}
			if got := ext.Calls[0].Args; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("budget(%q) args = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestBudget_Requests(t *testing.T) {
	tests := []struct {
		message  string
		call     string
		args     map[string]any
		question string
	}{
		{"clear all my transactions", "clear_transactions", nil, ""},
		{"delete transaction 3", "delete_transaction", map[string]any{"id": 3.0}, ""},
		{"show my transactions", "list_transactions", nil, ""},
		{"show my investments", "list_investments", nil, ""},
		{"how much have I invested in total", "get_investment_summary", nil, ""},
		{"what is my budget summary for April 2025", "get_budget_summary", map[string]any{"months": []any{"2025-04"}}, ""},
		{"give me my budget summary", "get_budget_summary", map[string]any{}, ""},
		{"I want to invest", "", nil, AskInvest},
		{"delete it", "", nil, "Which transaction should I delete? Give me its id: you can see ids by asking me to list your transactions."},
		{"I spent 50", "", nil, "What was the $50.00 for? For example: groceries, rent, transport."},
		{"I bought a new phone", "", nil, "How much did you spend on new phone?"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			ext := budget(tt.message)
			if ext.Question != tt.question {
				t.Errorf("budget(%q).Question = %q, want %q", tt.message, ext.Question, tt.question)
			}
			if tt.call == "" {
				if len(ext.Calls) != 0 {
					t.Errorf("budget(%q) calls %v, want none", tt.message, names(ext.Calls))
				}
				return
			}
			if len(ext.Calls) != 1 || ext.Calls[0].Name != tt.call {
				t.Fatalf("budget(%q) calls %v, want %s", tt.message, names(ext.Calls), tt.call)
			}
			if tt.args != nil && !reflect.DeepEqual(ext.Calls[0].Args, tt.args) {
				t.Errorf("budget(%q) args = %v, want %v", tt.message, ext.Calls[0].Args, tt.args)
			}
		})
	}
}

func TestLoan(t *testing.T) {
	ext := loan("I have a car loan of 5000 at 7% with a minimum payment of 150, and a credit card 3000 at 22% min 90")
	if len(ext.Calls) != 1 || ext.Calls[0].Name != "calculate_loan_repayment" {
		t.Fatalf("loan() = %+v, want a calculate_loan_repayment call", ext)
	}
	want := map[string]any{
		"loans": []any{
			map[string]any{"name": "car loan", "balance": 5000.0, "rate": 7.0, "min_payment": 150.0},
			map[string]any{"name": "credit card", "balance": 3000.0, "rate": 22.0, "min_payment": 90.0},
		},
		"strategy": fgpt.Avalanche,
	}
	if got := ext.Calls[0].Args; !reflect.DeepEqual(got, want) {
		t.Errorf("loan() args = %v, want %v", got, want)
	}
	if !strings.Contains(ext.Intro, "avalanche") {
		t.Errorf("loan() intro = %q, want the avalanche strategy", ext.Intro)
	}
}

func TestLoan_Snowball(t *testing.T) {
	ext := loan("use the snowball method: car loan 5000 at 7% min 150")
	if len(ext.Calls) != 1 {
		t.Fatalf("loan() = %+v, want one call", ext)
	}
	if s := ext.Calls[0].Args["strategy"]; s != fgpt.Snowball {
		t.Errorf("strategy = %v, want snowball", s)
	}
	loans := ext.Calls[0].Args["loans"].([]any)
	if name := loans[0].(map[string]any)["name"]; name != "car loan" {
		t.Errorf("name = %v, want car loan", name)
	}
}

func TestLoan_AsksForMissingFigures(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I have a car loan of 5000 at 7%", "the minimum payment of your car loan"},
		{"help me plan my repayments", AskLoans},
	}
	for _, tt := range tests {
		ext := loan(tt.message)
		if len(ext.Calls) != 0 || !strings.Contains(ext.Question, tt.want) {
			t.Errorf("loan(%q) = %+v, want a question containing %q", tt.message, ext, tt.want)
		}
	}
}

func TestPlanner_MultipleTools(t *testing.T) {
	ext := planner("My assets are savings 15000 and a car 8000, my liabilities are a car loan 10000. " +
		"What will 1000 be worth in 10 years with 3% inflation? " +
		"My monthly debt payments are 1500 and my monthly income is 5000, what is my debt to income ratio?")
	if ext.Question != "" {
		t.Errorf("planner() question = %q, want none", ext.Question)
	}
	want := []string{"calculate_net_worth", "inflation_adjusted_value", "dti_ratio"}
	if got := names(ext.Calls); !reflect.DeepEqual(got, want) {
		t.Fatalf("planner() calls %v, want %v", got, want)
	}

	netWorth := map[string]any{
		"assets": []any{
			map[string]any{"name": "savings", "amount": 15000.0},
			map[string]any{"name": "car", "amount": 8000.0},
		},
		"liabilities": []any{
			map[string]any{"name": "car loan", "amount": 10000.0},
		},
	}
	if got := ext.Calls[0].Args; !reflect.DeepEqual(got, netWorth) {
		t.Errorf("calculate_net_worth args = %v, want %v", got, netWorth)
	}
	inflation := map[string]any{"amount": 1000.0, "years": 10.0, "inflation_rate": 3.0}
	if got := ext.Calls[1].Args; !reflect.DeepEqual(got, inflation) {
		t.Errorf("inflation_adjusted_value args = %v, want %v", got, inflation)
	}
	dti := map[string]any{"monthly_debt": 1500.0, "monthly_income": 5000.0}
	if got := ext.Calls[2].Args; !reflect.DeepEqual(got, dti) {
		t.Errorf("dti_ratio args = %v, want %v", got, dti)
	}
}

func TestPlanner_AsksForMissingFigures(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"what will my savings be worth in 10 years with inflation", "Which amount should I adjust for inflation?"},
		{"what is my debt to income ratio", "For your debt-to-income ratio"},
		{"help me with planning", AskPlanner},
	}
	for _, tt := range tests {
		ext := planner(tt.message)
		if len(ext.Calls) != 0 || !strings.Contains(ext.Question, tt.want) {
			t.Errorf("planner(%q) = %+v, want a question containing %q", tt.message, ext, tt.want)
		}
	}
}

func TestRules_Extract(t *testing.T) {
	r := newRules()
	ctx := context.Background()
	tests := []struct {
		message, id string
		calls       []string
		reply       string
	}{
		{"hi", General, nil, Welcome},
		{"bye", General, nil, Goodbye},
		{"What is an ETF?", Literacy, []string{"get_topic"}, ""},
		{"What is an annuity?", Literacy, []string{"web_search"}, ""},
		{"How do I improve my credit score?", Credit, []string{"get_topic"}, ""},
		{"Who won the world cup?", Web, []string{"web_search"}, ""},
		{"What is Tesla's stock price?", Finance, []string{"get_stock_info"}, ""},
		{`How do these headlines feel: "Stocks rally to record highs"`, Sentiment, []string{"analyze_sentiment"}, ""},
		{"What's the news sentiment on Apple?", Sentiment, []string{"news_sentiment"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			ext := r.Extract(ctx, tt.message, tt.id)
			if got := names(ext.Calls); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("Extract(%q, %s) calls %v, want %v", tt.message, tt.id, got, tt.calls)
			}
			if !strings.HasPrefix(ext.Reply, tt.reply) {
				t.Errorf("Extract(%q, %s) reply = %q, want prefix %q", tt.message, tt.id, ext.Reply, tt.reply)
			}
		})
	}
}

func TestRules_Extract_Finance(t *testing.T) {
	r := newRules()
	ext := r.Extract(context.Background(), "What is Tesla's stock price?", Finance)
	if len(ext.Calls) != 1 || ext.Calls[0].Args["symbol"] != "TSLA" {
		t.Errorf("Extract() = %+v, want get_stock_info for TSLA", ext)
	}

	ext = r.Extract(context.Background(), "what is the stock price of Zorblax Industries?", Finance)
	if len(ext.Calls) != 0 || !strings.Contains(ext.Question, "Zorblax Industries") {
		t.Errorf("Extract(unknown company) = %+v, want a question naming it", ext)
	}
}
