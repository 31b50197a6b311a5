package renderer

import (
	"fmt"

	"github.com/etnz/fgpt"
)

// RepaymentPlan renders loans in repayment order.
func RepaymentPlan(p fgpt.RepaymentPlan) string {
	return renderTemplate("repaymentPlan", "repayment_plan.md", nil, p)
}

// Inflation renders the value of money after inflation.
func Inflation(i fgpt.Inflation) string {
	return fmt.Sprintf("%s will be worth approximately %s in %d years at %s%% inflation.",
		i.Amount, i.Adjusted, i.Years, i.Rate.StringFixed(1))
}

// DTI renders a debt-to-income ratio.
func DTI(d fgpt.DTI) string {
	s := fmt.Sprintf("Your Debt-to-Income ratio is %s. Below %.0f%% is considered healthy.", d.Ratio, fgpt.HealthyDTI)
	if d.Healthy() {
		return s + " Yours is in the healthy range."
	}
	return s + " Yours is above it: paying down debt before borrowing more would help."
}

// NetWorth renders assets, liabilities and the resulting net worth.
func NetWorth(r fgpt.NetWorthReport) string {
	return renderTemplate("netWorth", "net_worth.md", nil, r)
}

// Sentiment renders the sentiment of headlines about subject.
func Sentiment(subject string, r fgpt.SentimentReport) string {
	data := struct {
		Subject string
		Report  fgpt.SentimentReport
	}{subject, r}
	return renderTemplate("sentiment", "sentiment.md", nil, data)
}
