package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/fgpt/agent"
	"github.com/etnz/fgpt/logger"
	"github.com/google/subcommands"
)

// assistCmd is the subcommand for the interactive chat.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the finance assistant" }
func (*assistCmd) Usage() string {
	return `assist [<message>]

Start an interactive session with the assistant. Arguments, when given, are
sent as the first message. Type "exit" or press Ctrl-D to leave.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the assistant: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	router := a.newRouter()
	logger.FromContext(ctx).Debug().Str("session", router.History().ID()).Str("backend", backend).Msg("session started")
	if err := chat(ctx, router, os.Stdin, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// chat runs the read-eval-print loop until in is exhausted, the user types
// exit, or ctx is done.
func chat(ctx context.Context, r *agent.Router, in io.Reader, first string) error {
	if first == "" {
		printMarkdown(agent.Welcome)
	}
	scanner := bufio.NewScanner(in)
	for {
		message := first
		first = ""
		if message == "" {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			message = strings.TrimSpace(scanner.Text())
		}
		switch strings.ToLower(message) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := r.Turn(ctx, message)
		if err != nil {
			// only a cancelled context ends up here.
			return nil
		}
		printMarkdown(reply.Text)
	}
}
