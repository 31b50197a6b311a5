package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/etnz/fgpt/agent"
	"github.com/etnz/fgpt/market"
	"github.com/google/subcommands"
)

var tickerRe = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]+)?$`)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the price and analyst view of a stock" }
func (*quoteCmd) Usage() string {
	return `quote <ticker|company>

  Shows the latest price, the analyst ratings and the description of a stock.
  A company name is resolved to its ticker first.
`
}

func (*quoteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: quote needs a ticker or a company name.")
		return subcommands.ExitUsageError
	}

	tools := NewTools(nil)
	symbol := name
	if !tickerRe.MatchString(name) {
		symbol = agent.Output(tools.Symbol().Call(ctx, "", map[string]any{"company": name}))
	}
	if symbol == market.Unknown {
		fmt.Fprintf(os.Stderr, "Error: no listed company found for %q\n", name)
		return subcommands.ExitFailure
	}
	printMarkdown(agent.Output(tools.StockInfo().Call(ctx, "", map[string]any{"symbol": symbol})))
	return subcommands.ExitSuccess
}
