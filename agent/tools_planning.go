package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/renderer"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func amounts(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: desc,
		Items: object([]string{"name", "amount"}, map[string]*genai.Schema{
			"name":   str("label, e.g. savings, car loan"),
			"amount": num("amount in dollars"),
		}),
	}
}

// LoanRepayment orders loans for repayment.
func (t *Tools) LoanRepayment() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "calculate_loan_repayment",
			Description: "Orders loans for repayment: avalanche pays the highest rate first, snowball the smallest balance first.",
			Parameters: object([]string{"loans"}, map[string]*genai.Schema{
				"loans": {
					Type: genai.TypeArray,
					Items: object([]string{"name", "balance", "rate"}, map[string]*genai.Schema{
						"name":        str("loan name"),
						"balance":     num("remaining balance in dollars"),
						"rate":        num("annual interest rate in percent"),
						"min_payment": num("minimum monthly payment in dollars"),
					}),
				},
				"strategy": {Type: genai.TypeString, Enum: []string{fgpt.Avalanche, fgpt.Snowball}},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			loans, err := loansArg(args, "loans")
			if err != nil {
				return t.log(ctx, "calculate_loan_repayment", err, "I need the balance and the interest rate of every loan: "+err.Error()+".")
			}
			plan := fgpt.RepaymentOrder(loans, stringArg(args, "strategy"))
			return t.log(ctx, "calculate_loan_repayment", nil, renderer.RepaymentPlan(plan))
		},
	}
}

// Inflation computes the future value of money.
func (t *Tools) Inflation() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "inflation_adjusted_value",
			Description: "Computes what an amount will be worth, in today's money, after some years of inflation.",
			Parameters: object([]string{"amount", "years"}, map[string]*genai.Schema{
				"amount":         num("amount in dollars"),
				"years":          {Type: genai.TypeInteger, Description: "number of years"},
				"inflation_rate": num(fmt.Sprintf("annual inflation in percent, %v when unknown", fgpt.DefaultInflationRate)),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			amount, ok := numberArg(args, "amount")
			if !ok {
				return "Which amount should I adjust for inflation?"
			}
			years, ok := intArg(args, "years")
			if !ok || years < 0 {
				return "Over how many years?"
			}
			rate, ok := numberArg(args, "inflation_rate")
			if !ok {
				rate = decimal.NewFromFloat(fgpt.DefaultInflationRate)
			}
			i, err := fgpt.InflationAdjustedValue(fgpt.M(amount), int(years), rate)
			if err != nil {
				return t.log(ctx, "inflation_adjusted_value", err, err.Error())
			}
			return t.log(ctx, "inflation_adjusted_value", nil, renderer.Inflation(i))
		},
	}
}

// DebtToIncome computes the debt-to-income ratio.
func (t *Tools) DebtToIncome() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "dti_ratio",
			Description: "Computes the debt-to-income ratio from monthly debt payments and monthly gross income.",
			Parameters: object([]string{"monthly_debt", "monthly_income"}, map[string]*genai.Schema{
				"monthly_debt":   num("total monthly debt payments in dollars"),
				"monthly_income": num("monthly gross income in dollars"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			debt, _ := numberArg(args, "monthly_debt")
			income, _ := numberArg(args, "monthly_income")
			dti, err := fgpt.DebtToIncome(fgpt.M(debt), fgpt.M(income))
			if errors.Is(err, fgpt.ErrIncomeNotPositive) {
				return t.log(ctx, "dti_ratio", nil, err.Error())
			}
			return t.log(ctx, "dti_ratio", nil, renderer.DTI(dti))
		},
	}
}

// NetWorth computes the net worth.
func (t *Tools) NetWorth() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "calculate_net_worth",
			Description: "Computes net worth as the total of assets minus the total of liabilities.",
			Parameters: object(nil, map[string]*genai.Schema{
				"assets":      amounts("what the user owns"),
				"liabilities": amounts("what the user owes"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			assets, err := amountsArg(args, "assets")
			if err != nil {
				return t.log(ctx, "calculate_net_worth", err, "I could not read the assets: "+err.Error()+".")
			}
			liabilities, err := amountsArg(args, "liabilities")
			if err != nil {
				return t.log(ctx, "calculate_net_worth", err, "I could not read the liabilities: "+err.Error()+".")
			}
			if len(assets) == 0 && len(liabilities) == 0 {
				return "What do you own and what do you owe?"
			}
			return t.log(ctx, "calculate_net_worth", nil, renderer.NetWorth(fgpt.NetWorth(assets, liabilities)))
		},
	}
}

// AnalyzeSentiment scores headlines given by the user.
func (t *Tools) AnalyzeSentiment() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "analyze_sentiment",
			Description: "Scores the sentiment of news headlines and gives the overall mood.",
			Parameters: object([]string{"headlines"}, map[string]*genai.Schema{
				"headlines": {Type: genai.TypeArray, Items: str("a headline")},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			report, err := fgpt.Sentiment(stringsArg(args, "headlines"))
			if err != nil {
				return t.log(ctx, "analyze_sentiment", nil, err.Error())
			}
			return t.log(ctx, "analyze_sentiment", nil, renderer.Sentiment("", report))
		},
	}
}
