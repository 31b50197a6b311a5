// Command fgpt is a conversational personal finance assistant.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/fgpt/cmd"
	"github.com/etnz/fgpt/logger"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine: the environment may already be set.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, flag.CommandLine)
	cmd.Complete(name, flag.CommandLine)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = logger.WithContext(ctx, logger.New(cmd.Verbose()))
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
