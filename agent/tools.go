package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/docs"
	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/logger"
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/renderer"
	"github.com/etnz/fgpt/search"
	"google.golang.org/genai"
)

// Messages for failures the user can do something about.
const (
	couldNotSave = "Could not save, try again."
	couldNotRead = "Could not read the ledger, try again."
)

// Market is the market data collaborator. *market.Client implements it.
type Market interface {
	Quote(ctx context.Context, symbol string) (market.Quote, error)
	Profile(ctx context.Context, symbol string) (market.Profile, error)
	ResolveSymbol(ctx context.Context, name string) string
}

// Tools holds the collaborators behind the functions specialists can call.
// Ledger is required; a nil Market, Web or News makes the functions relying
// on it answer that the data is unavailable.
type Tools struct {
	Ledger *ledger.Store
	Market Market
	Web    search.Searcher
	News   search.Searcher
}

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func str(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeString, Description: desc} }
func num(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeNumber, Description: desc} }

// log records a tool call and returns its text unchanged.
func (t *Tools) log(ctx context.Context, name string, err error, text string) string {
	l := logger.FromContext(ctx)
	if err != nil {
		l.Warn().Err(err).Str("tool", name).Msg("tool failed")
	} else {
		l.Debug().Str("tool", name).Msg("tool called")
	}
	return text
}

// AddTransaction records an income or an expense.
func (t *Tools) AddTransaction() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "add_transaction",
			Description: "Records an income or an expense in the user's ledger. Investments are expenses whose category contains 'investment'.",
			Parameters: object([]string{"type", "category", "amount"}, map[string]*genai.Schema{
				"type":     {Type: genai.TypeString, Enum: []string{string(ledger.Income), string(ledger.Expense)}},
				"category": str("what the money was for or came from, e.g. groceries, salary, ETF investment"),
				"amount":   num("positive amount in dollars"),
				"date":     str("when it happened, any format, e.g. 2025-04-15 or April 2025. Leave empty for today"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			amount, ok := numberArg(args, "amount")
			if !ok {
				return "How much was it?"
			}
			category := stringArg(args, "category")
			if category == "" {
				return "What category should I record it under?"
			}
			tx, err := t.Ledger.Add(ctx, ledger.Type(stringArg(args, "type")), category, fgpt.M(amount), stringArg(args, "date"))
			switch {
			case errors.Is(err, ledger.ErrInvalidType):
				return t.log(ctx, "add_transaction", err, "Is it an income or an expense?")
			case errors.Is(err, ledger.ErrNegativeAmount):
				return t.log(ctx, "add_transaction", err, "The amount must be positive. For money going out, record an expense.")
			case err != nil:
				return t.log(ctx, "add_transaction", err, couldNotSave)
			}
			return t.log(ctx, "add_transaction", nil, renderer.Added(tx))
		},
	}
}

// ListTransactions lists the ledger.
func (t *Tools) ListTransactions() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "list_transactions",
			Description: "Lists every recorded transaction with its id, date, type, category and amount.",
		},
		Run: func(ctx context.Context, args map[string]any) string {
			txs, err := t.Ledger.List(ctx)
			if err != nil {
				return t.log(ctx, "list_transactions", err, couldNotRead)
			}
			return t.log(ctx, "list_transactions", nil, renderer.Transactions(txs))
		},
	}
}

// DeleteTransaction deletes a transaction by id.
func (t *Tools) DeleteTransaction() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "delete_transaction",
			Description: "Deletes the transaction with the given id. Use list_transactions to find ids.",
			Parameters: object([]string{"id"}, map[string]*genai.Schema{
				"id": {Type: genai.TypeInteger, Description: "id of the transaction"},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			id, ok := intArg(args, "id")
			if !ok {
				return "Which transaction id should I delete?"
			}
			if err := t.Ledger.Delete(ctx, id); err != nil {
				return t.log(ctx, "delete_transaction", err, couldNotSave)
			}
			return t.log(ctx, "delete_transaction", nil, renderer.Deleted(id))
		},
	}
}

// ClearTransactions empties the ledger.
func (t *Tools) ClearTransactions() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "clear_transactions",
			Description: "Deletes every transaction. Only when the user explicitly asks to clear or reset everything.",
		},
		Run: func(ctx context.Context, args map[string]any) string {
			if _, err := t.Ledger.Clear(ctx); err != nil {
				return t.log(ctx, "clear_transactions", err, couldNotSave)
			}
			return t.log(ctx, "clear_transactions", nil, renderer.Cleared())
		},
	}
}

// BudgetSummary summarizes income and expenses.
func (t *Tools) BudgetSummary() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_budget_summary",
			Description: "Totals income, expenses and balance, with expenses by category, over all time or over the given months.",
			Parameters: object(nil, map[string]*genai.Schema{
				"months": {
					Type:        genai.TypeArray,
					Items:       str("a month, preferably YYYY-MM"),
					Description: "months to summarize; empty for all time",
				},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			s, err := t.Ledger.Summarize(ctx, stringsArg(args, "months")...)
			if err != nil {
				return t.log(ctx, "get_budget_summary", err, couldNotRead)
			}
			return t.log(ctx, "get_budget_summary", nil, renderer.Summary(s))
		},
	}
}

// InvestmentSummary totals investments.
func (t *Tools) InvestmentSummary() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_investment_summary",
			Description: "Totals the money invested, by category. A transaction is an investment when its category mentions 'investment'.",
		},
		Run: func(ctx context.Context, args map[string]any) string {
			s, err := t.Ledger.SummarizeInvestments(ctx)
			if err != nil {
				return t.log(ctx, "get_investment_summary", err, couldNotRead)
			}
			return t.log(ctx, "get_investment_summary", nil, renderer.Investments(s))
		},
	}
}

// ListInvestments lists investment transactions.
func (t *Tools) ListInvestments() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "list_investments",
			Description: "Lists the investment transactions one by one.",
		},
		Run: func(ctx context.Context, args map[string]any) string {
			all, err := t.Ledger.List(ctx)
			if err != nil {
				return t.log(ctx, "list_investments", err, couldNotRead)
			}
			txs, err := t.Ledger.ListInvestments(ctx)
			if err != nil {
				return t.log(ctx, "list_investments", err, couldNotRead)
			}
			return t.log(ctx, "list_investments", nil, renderer.InvestmentList(txs, len(all) == 0))
		},
	}
}

// Topic reads an embedded finance topic.
func (t *Tools) Topic() Function {
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_topic",
			Description: "Returns a short, reviewed explanation of a personal finance concept.",
			Parameters: object([]string{"topic"}, map[string]*genai.Schema{
				"topic": {Type: genai.TypeString, Enum: topics},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			topic := stringArg(args, "topic")
			content, err := docs.GetTopic(topic)
			if err != nil {
				return t.log(ctx, "get_topic", err, fmt.Sprintf("I have no notes about %q.", topic))
			}
			return t.log(ctx, "get_topic", nil, content)
		},
	}
}
