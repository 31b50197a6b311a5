package cmd

import (
	"flag"

	"github.com/etnz/fgpt/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion of the program name when the shell
// asks for it, and exits. It does nothing otherwise.
// Install it with COMP_INSTALL=1 <name>.
func Complete(name string, f *flag.FlagSet) {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(f),
	}
	root.Flags["ledger-file"] = predict.Files("*.db")
	root.Flags["session-file"] = predict.Files("*.db")
	root.Flags["backend"] = predict.Set{RulesBackend, GeminiBackend, HybridBackend}

	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
	}
	root.Sub["add"].Args = predict.Set{"income", "expense"}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	root.Sub["quote"].Args = predict.Set{"AAPL", "AMZN", "GOOGL", "INFY", "MSFT", "TSLA"}

	root.Complete(name)
}

// flags lists the flags of f. Boolean flags take no value.
func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = nil
			return
		}
		m[fl.Name] = predict.Set{}
	})
	return m
}
