package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/fgpt/ledger"
	"github.com/etnz/fgpt/session"
)

// newRouter returns a rules router over an in-memory ledger.
func newRouter(t *testing.T) (*Router, *ledger.Store) {
	t.Helper()
	store, err := ledger.Open(context.Background(), ledger.Memory)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	tools := &Tools{Ledger: store}
	team := NewTeam(tools)
	rules := NewRules(team, tools)
	return NewRouter(team, rules, rules, nil), store
}

func TestRouter_Turn(t *testing.T) {
	ctx := context.Background()
	r, _ := newRouter(t)

	reply, err := r.Turn(ctx, "My assets are savings 15000 and a car 8000, my liabilities are a car loan 10000. What will 1000 be worth in 10 years with 3% inflation? My monthly debt payments are 1500 and my monthly income is 5000, what is my debt to income ratio?")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Specialist != Planner || reply.Clarify {
		t.Errorf("Turn() = %+v, want a planner answer", reply)
	}
	for _, want := range []string{"$13,000.00", "$744.09", "30.00%"} {
		if !strings.Contains(reply.Text, want) {
			t.Errorf("Turn() text = %q, want it to contain %q", reply.Text, want)
		}
	}

	if got := r.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}
	turns := r.History().Turns()
	if turns[0].Role != session.User || turns[1].Role != session.Assistant || turns[1].Content != reply.Text {
		t.Errorf("History() = %+v, want the message then the reply", turns)
	}
}

func TestRouter_Turn_EmptyMessage(t *testing.T) {
	r, _ := newRouter(t)
	reply, err := r.Turn(context.Background(), "  \n")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Text != AskMessage || !reply.Clarify {
		t.Errorf("Turn(empty) = %+v, want %q", reply, AskMessage)
	}
	if r.History().Len() != 0 {
		t.Errorf("an empty message was recorded in the history")
	}
}

func TestRouter_Turn_FollowUp(t *testing.T) {
	tests := []struct {
		answer   string
		category string
	}{
		{"on rent", "rent"},        // unreadable alone
		{"groceries", "groceries"}, // a budget word
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			ctx := context.Background()
			r, store := newRouter(t)

			reply, err := r.Turn(ctx, "I spent 50")
			if err != nil {
				t.Fatal(err)
			}
			if !reply.Clarify || reply.Specialist != Budget {
				t.Fatalf("Turn(I spent 50) = %+v, want a budget question", reply)
			}

			reply, err = r.Turn(ctx, tt.answer)
			if err != nil {
				t.Fatal(err)
			}
			if reply.Clarify || !strings.Contains(reply.Text, "$50.00") {
				t.Errorf("Turn(%q) = %+v, want the transaction recorded", tt.answer, reply)
			}
			txs, err := store.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(txs) != 1 || txs[0].Category != tt.category {
				t.Errorf("ledger = %+v, want one %q transaction", txs, tt.category)
			}
		})
	}
}

func TestRouter_Turn_FollowUpIsDroppedOnNewTopic(t *testing.T) {
	ctx := context.Background()
	r, store := newRouter(t)

	if _, err := r.Turn(ctx, "I spent 50"); err != nil {
		t.Fatal(err)
	}
	reply, err := r.Turn(ctx, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Specialist != General {
		t.Errorf("Turn(hi) = %+v, want the general specialist", reply)
	}
	txs, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 0 {
		t.Errorf("ledger = %+v, want no transaction", txs)
	}
}

func TestRouter_Turn_Concurrent(t *testing.T) {
	ctx := context.Background()
	r, store := newRouter(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Turn(ctx, "I spent 5 on coffee"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Turn() error = %v", err)
	}

	txs, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != n {
		t.Errorf("ledger has %d transactions, want %d", len(txs), n)
	}

	turns := r.History().Turns()
	if len(turns) != 2*n {
		t.Fatalf("History().Len() = %d, want %d", len(turns), 2*n)
	}
	// Each message is immediately followed by its own reply.
	for i := 0; i < len(turns); i += 2 {
		if turns[i].Role != session.User || turns[i+1].Role != session.Assistant {
			t.Errorf("turns %d and %d = %s, %s, want user then assistant", i, i+1, turns[i].Role, turns[i+1].Role)
		}
		if !strings.Contains(turns[i+1].Content, "$5.00") {
			t.Errorf("reply %d = %q, want the recorded coffee", i/2, turns[i+1].Content)
		}
	}
}

type stubClassifier struct {
	d   Decision
	err error
}

func (c stubClassifier) Classify(context.Context, string, []session.Turn) (Decision, error) {
	return c.d, c.err
}

type failingResponder struct{}

func (failingResponder) Respond(context.Context, *Specialist, string, []session.Turn) (Reply, error) {
	return Reply{}, errors.New("backend down")
}

func TestRouter_Turn_Failures(t *testing.T) {
	tools := &Tools{}
	team := NewTeam(tools)
	rules := NewRules(team, tools)

	tests := []struct {
		name       string
		classifier Classifier
		responder  Responder
		want       string
		clarify    bool
	}{
		{"respond fails", rules, failingResponder{}, Apology, false},
		{"classify fails", stubClassifier{err: errors.New("down")}, rules, Apology, false},
		{"unknown specialist", stubClassifier{d: Decision{Specialist: "astrologer"}}, rules, AskRephrase, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(team, tt.classifier, tt.responder, nil)
			reply, err := r.Turn(context.Background(), "I spent 50 on groceries")
			if err != nil {
				t.Fatal(err)
			}
			if reply.Text != tt.want || reply.Clarify != tt.clarify {
				t.Errorf("Turn() = %+v, want %q (clarify %v)", reply, tt.want, tt.clarify)
			}
			if r.History().Len() != 2 {
				t.Errorf("History().Len() = %d, want 2", r.History().Len())
			}
		})
	}
}

func TestRouter_Turn_CancelledContext(t *testing.T) {
	r, _ := newRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Turn(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("Turn() error = %v, want %v", err, context.Canceled)
	}
}
