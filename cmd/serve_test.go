package cmd

import (
	"context"
	"flag"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/fgpt/agent"
	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/logger"
	"github.com/google/subcommands"
	"github.com/gorilla/websocket"
)

// rulesRouter returns a factory of routers over an in-memory ledger, with the
// rules backend and no network access.
func rulesRouter(t *testing.T) func() *agent.Router {
	t.Helper()
	store, err := ledger.Open(context.Background(), ledger.Memory)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	tools := &agent.Tools{Ledger: store}
	team := agent.NewTeam(tools)
	rules := agent.NewRules(team, tools)
	return func() *agent.Router { return agent.NewRouter(team, rules, rules, nil) }
}

func TestChatServer(t *testing.T) {
	srv := httptest.NewServer(NewChatServer(rulesRouter(t)).Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/chat", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	tests := []struct {
		message string
		want    string
		clarify bool
	}{
		{"I spent 50 on groceries", "$50.00", false},
		{"show my transactions", "groceries", false},
		{"", agent.AskMessage, true},
		{"yo wassup fam, bread's looking thin ngl", agent.AskRephrase, true},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if err := conn.WriteJSON(chatRequest{Message: tt.message}); err != nil {
				t.Fatal(err)
			}
			var got chatResponse
			if err := conn.ReadJSON(&got); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got.Reply, tt.want) || got.Clarify != tt.clarify {
				t.Errorf("reply to %q = %+v, want %q with clarify %v", tt.message, got, tt.want, tt.clarify)
			}
		})
	}
}

func TestChatServer_ConnectionsAreSeparateConversations(t *testing.T) {
	var (
		mu      sync.Mutex
		routers []*agent.Router
	)
	newRouter := rulesRouter(t)
	srv := httptest.NewServer(NewChatServer(func() *agent.Router {
		r := newRouter()
		mu.Lock()
		routers = append(routers, r)
		mu.Unlock()
		return r
	}).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"
	for i := 0; i < 2; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := conn.WriteJSON(chatRequest{Message: "hi"}); err != nil {
			t.Fatal(err)
		}
		var got chatResponse
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatal(err)
		}
		conn.Close()
	}

	mu.Lock()
	defer mu.Unlock()
	if len(routers) != 2 {
		t.Fatalf("routers = %d, want one per connection", len(routers))
	}
	if routers[0].History().ID() == routers[1].History().ID() {
		t.Error("both connections share the same session")
	}
	for i, r := range routers {
		if n := r.History().Len(); n != 2 {
			t.Errorf("session %d has %d turns, want 2", i, n)
		}
	}
}

// events passes each log event on to a channel.
type events chan string

func (e events) Write(p []byte) (int, error) {
	select {
	case e <- string(p):
	default:
	}
	return len(p), nil
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	ledgerFile, sessionFile, backend = filepath.Join(dir, "fgpt.db"), filepath.Join(dir, "sessions.db"), RulesBackend
	t.Cleanup(func() { ledgerFile, sessionFile, backend = "", "", "" })

	logs := make(events, 16)
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), logger.NewWithWriter(logs)))
	defer cancel()
	done := make(chan subcommands.ExitStatus, 1)
	go func() {
		done <- (&serveCmd{addr: "127.0.0.1:0"}).Execute(ctx, flag.NewFlagSet("serve", flag.ContinueOnError))
	}()

	deadline := time.After(10 * time.Second)
	for serving := false; !serving; {
		select {
		case e := <-logs:
			serving = strings.Contains(e, "serving chat")
		case got := <-done:
			t.Fatalf("Execute() = %v before the context was cancelled", got)
		case <-deadline:
			t.Fatal("the server did not start")
		}
	}
	cancel()

	select {
	case got := <-done:
		if got != subcommands.ExitSuccess {
			t.Errorf("Execute() = %v, want %v", got, subcommands.ExitSuccess)
		}
	case <-deadline:
		t.Fatal("Execute() did not return after the context was cancelled")
	}

	// The ledger was closed: it opens again.
	store, err := ledger.Open(context.Background(), ledgerFile)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()
}
