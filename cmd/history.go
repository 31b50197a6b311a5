package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/fgpt/session"
	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "review past conversations" }
func (*historyCmd) Usage() string {
	return `history [<session>]

  Lists the recorded conversations, most recent first, or prints the turns of
  one of them. A session may be given by a prefix of its id.
`
}

func (*historyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := session.Open(ctx, sessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session file %q: %v\n", sessionFile, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	infos, err := store.Sessions(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		if len(infos) == 0 {
			printMarkdown("No conversation recorded yet.")
			return subcommands.ExitSuccess
		}
		var b strings.Builder
		b.WriteString("| Session | Started | Turns |\n|---|---|---:|\n")
		for _, info := range infos {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", info.ID, info.Started.Local().Format(time.DateTime), info.Turns)
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	id := ""
	for _, info := range infos {
		if strings.HasPrefix(info.ID, f.Arg(0)) {
			id = info.ID
			break
		}
	}
	if id == "" {
		fmt.Fprintf(os.Stderr, "Error: no session %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	turns, err := store.Turns(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	for _, t := range turns {
		who := "**You**"
		if t.Role == session.Assistant {
			who = "**fgpt**"
		}
		fmt.Fprintf(&b, "%s (%s)\n\n%s\n\n", who, t.At.Local().Format(time.TimeOnly), t.Content)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
