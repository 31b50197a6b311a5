package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// withLedger opens the ledger, runs fn and closes it.
func withLedger(ctx context.Context, fn func(*ledger.Store) error) subcommands.ExitStatus {
	store, err := OpenLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger %q: %v\n", ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer store.Close()
	if err := fn(store); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type addCmd struct {
	date string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `add [-d <date>] income|expense <category> <amount>

  Records a transaction in the ledger. The category may span several words.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the transaction (\"2025-04-15\", \"April 2025\", \"yesterday\"). Defaults to today.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Error: add needs a type, a category and an amount.")
		return subcommands.ExitUsageError
	}
	args := f.Args()
	typ, err := ledger.ParseType(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	category := strings.Join(args[1:len(args)-1], " ")
	amount, err := decimal.NewFromString(strings.TrimPrefix(args[len(args)-1], "$"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", args[len(args)-1], err)
		return subcommands.ExitUsageError
	}

	return withLedger(ctx, func(s *ledger.Store) error {
		tx, err := s.Add(ctx, typ, category, fgpt.M(amount), c.date)
		if err != nil {
			return err
		}
		printMarkdown(renderer.Added(tx))
		return nil
	})
}

type listCmd struct {
	head int
	tail int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*listCmd) Usage() string {
	return `list [-head <n>] [-tail <n>]

  Lists the transactions of the ledger in the order they were recorded.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	return withLedger(ctx, func(s *ledger.Store) error {
		txs, err := s.List(ctx)
		if err != nil {
			return err
		}
		if c.head > 0 && len(txs) > c.head {
			txs = txs[:c.head]
		}
		if c.tail > 0 && len(txs) > c.tail {
			txs = txs[len(txs)-c.tail:]
		}
		printMarkdown(renderer.Transactions(txs))
		return nil
	})
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete transactions by id" }
func (*deleteCmd) Usage() string {
	return `delete <id>...

  Deletes the transactions with the given ids. Unknown ids are ignored.
`
}

func (*deleteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: delete needs at least one id.")
		return subcommands.ExitUsageError
	}
	ids := make([]int64, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q is not a transaction id\n", arg)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}
	return withLedger(ctx, func(s *ledger.Store) error {
		for _, id := range ids {
			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			printMarkdown(renderer.Deleted(id))
		}
		return nil
	})
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every transaction" }
func (*clearCmd) Usage() string {
	return `clear -yes

  Deletes every transaction of the ledger.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the deletion.")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: clear deletes every transaction, run it again with -yes to confirm.")
		return subcommands.ExitUsageError
	}
	return withLedger(ctx, func(s *ledger.Store) error {
		if _, err := s.Clear(ctx); err != nil {
			return err
		}
		printMarkdown(renderer.Cleared())
		return nil
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "summarize income and expenses" }
func (*summaryCmd) Usage() string {
	return `summary [<month>...]

  Totals income and expenses over the given months ("2025-04", "April 2025"),
  or over all time.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// "April 2025" may come as two arguments.
	months := monthArgs(f.Args())
	return withLedger(ctx, func(s *ledger.Store) error {
		sum, err := s.Summarize(ctx, months...)
		if err != nil {
			return err
		}
		printMarkdown(renderer.Summary(sum))
		return nil
	})
}

// monthArgs joins a month name with the year that follows it.
func monthArgs(args []string) []string {
	var months []string
	for i := 0; i < len(args); i++ {
		if i+1 < len(args) && !strings.Contains(args[i], "-") {
			if _, err := strconv.Atoi(args[i+1]); err == nil {
				months = append(months, args[i]+" "+args[i+1])
				i++
				continue
			}
		}
		months = append(months, args[i])
	}
	return months
}

type investmentsCmd struct {
	list bool
}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "summarize investments" }
func (*investmentsCmd) Usage() string {
	return `investments [-list]

  Totals the transactions whose category mentions "investment".
`
}

func (c *investmentsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the investment transactions instead of totals.")
}

func (c *investmentsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *ledger.Store) error {
		sum, err := s.SummarizeInvestments(ctx)
		if err != nil {
			return err
		}
		if !c.list {
			printMarkdown(renderer.Investments(sum))
			return nil
		}
		txs, err := s.ListInvestments(ctx)
		if err != nil {
			return err
		}
		printMarkdown(renderer.InvestmentList(txs, sum.Empty))
		return nil
	})
}
