// Package cmd implements the fgpt command line application: the chat
// transports (terminal and websocket) and direct access to the ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/agent"
	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/search"
	"github.com/etnz/fgpt/session"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// Backends selectable with -backend.
const (
	RulesBackend  = "rules"
	GeminiBackend = "gemini"
	HybridBackend = "hybrid"
)

// Commands are all the subcommands, in help order.
var Commands = []subcommands.Command{
	&assistCmd{},
	&serveCmd{},
	&addCmd{},
	&listCmd{},
	&deleteCmd{},
	&clearCmd{},
	&summaryCmd{},
	&investmentsCmd{},
	&quoteCmd{},
	&topicCmd{},
	&historyCmd{},
}

// groups of the subcommands in the help.
var groups = map[string]string{
	"assist":      "chat",
	"serve":       "chat",
	"add":         "ledger",
	"list":        "ledger",
	"delete":      "ledger",
	"clear":       "ledger",
	"summary":     "ledger",
	"investments": "ledger",
	"quote":       "market",
	"topic":       "docs",
	"history":     "chat",
}

// Register the global flags on f and the subcommands on c.
// A main package calls Register once the environment is loaded, since flag
// defaults are read from it.
func Register(c *subcommands.Commander, f *flag.FlagSet) {
	registerFlags(f)
	for _, cmd := range Commands {
		c.Register(cmd, groups[cmd.Name()])
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var (
	ledgerFile  string
	sessionFile string
	backend     string
	model       string
	timeout     time.Duration
	verbose     bool
)

func registerFlags(f *flag.FlagSet) {
	f.StringVar(&ledgerFile, "ledger-file", env("FGPT_LEDGER_FILE", "fgpt.db"), "Path to the ledger file (sqlite)")
	f.StringVar(&sessionFile, "session-file", env("FGPT_SESSION_FILE", "fgpt-sessions.db"), "Path to the conversation history file (sqlite)")
	f.StringVar(&backend, "backend", env("FGPT_BACKEND", RulesBackend), "Language backend: rules, gemini or hybrid")
	f.StringVar(&model, "model", env("FGPT_MODEL", agent.DefaultModel), "Gemini model for the gemini and hybrid backends")
	f.DurationVar(&timeout, "timeout", envDuration("FGPT_TIMEOUT", fgpt.DefaultTimeout), "Timeout of each market data or search request")
	f.BoolVar(&verbose, "v", envBool("FGPT_VERBOSE"), "Verbose logging")
}

// Verbose reports whether -v was set.
func Verbose() bool { return verbose }

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// OpenLedger opens the ledger file.
func OpenLedger(ctx context.Context) (*ledger.Store, error) {
	return ledger.Open(ctx, ledgerFile)
}

// NewTools returns the tools over store, with market data and search
// clients configured from the environment.
func NewTools(store *ledger.Store) *agent.Tools {
	token := os.Getenv("EODHD_API_TOKEN")
	return &agent.Tools{
		Ledger: store,
		Market: market.New(market.Config{APIKey: token, Timeout: timeout}),
		Web:    search.NewDuckDuckGo(search.Config{Timeout: timeout}),
		News:   search.NewNews(search.Config{APIKey: token, Timeout: timeout}),
	}
}

// app holds the resources of the chat transports.
type app struct {
	store      *ledger.Store
	sessions   *session.Store
	team       agent.Team
	classifier agent.Classifier
	responder  agent.Responder
}

// openApp opens the ledger and the session files and builds the router for
// the selected backend.
func openApp(ctx context.Context) (*app, error) {
	store, err := OpenLedger(ctx)
	if err != nil {
		return nil, err
	}
	tools := NewTools(store)
	team := agent.NewTeam(tools)
	classifier, responder, err := newBackend(ctx, team, tools)
	if err != nil {
		store.Close()
		return nil, err
	}
	sessions, err := session.Open(ctx, sessionFile)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &app{
		store:      store,
		sessions:   sessions,
		team:       team,
		classifier: classifier,
		responder:  responder,
	}, nil
}

// newRouter starts a new conversation, recorded in the session file.
func (a *app) newRouter() *agent.Router {
	return agent.NewRouter(a.team, a.classifier, a.responder, session.New(a.sessions))
}

// newBackend returns the classifier and responder of the -backend flag. The
// hybrid backend routes with the rules and answers with Gemini, falling back
// to the rules when Gemini fails.
func newBackend(ctx context.Context, team agent.Team, tools *agent.Tools) (agent.Classifier, agent.Responder, error) {
	rules := agent.NewRules(team, tools)
	switch backend {
	case RulesBackend:
		return rules, rules, nil
	case GeminiBackend, HybridBackend:
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Gemini's client: %w", err)
		}
		gemini := agent.NewGemini(client, model, team)
		if backend == GeminiBackend {
			return gemini, gemini, nil
		}
		return rules, agent.Fallback{Primary: gemini, Secondary: rules}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q, want rules, gemini or hybrid", backend)
	}
}

// Close releases the files.
func (a *app) Close() {
	a.sessions.Close()
	a.store.Close()
}

// printMarkdown renders md for the terminal, or prints it raw when it cannot
// be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
