// Package session keeps the conversation history: the ordered user and
// assistant turns given back to specialists as context.
//
// A History lives for one run of the application. When backed by a Store,
// every turn is also written to the agent-state file, so that past sessions
// can be reviewed later; a new run starts a new, empty session.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role of the author of a turn.
type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
)

// Turn is one message of the conversation.
type Turn struct {
	Role    Role
	Content string
	At      time.Time
}

// History is the append-only list of turns of the current session.
type History struct {
	mu    sync.Mutex
	id    string
	turns []Turn
	store *Store // optional
}

// New starts a new session. store may be nil for a history kept in memory
// only.
func New(store *Store) *History {
	return &History{id: uuid.NewString(), store: store}
}

// ID returns the session id.
func (h *History) ID() string { return h.id }

// Append adds a turn, and persists it when the history has a store.
// A turn that cannot be persisted is not added.
func (h *History) Append(ctx context.Context, role Role, content string) error {
	turn := Turn{Role: role, Content: content, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.store != nil {
		if err := h.store.Append(ctx, h.id, turn); err != nil {
			return fmt.Errorf("save turn: %w", err)
		}
	}
	h.turns = append(h.turns, turn)
	return nil
}

// Turns returns a copy of all the turns, oldest first.
func (h *History) Turns() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.turns)
}

// Last returns a copy of the n most recent turns, oldest first.
func (h *History) Last(n int) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.turns) {
		n = len(h.turns)
	}
	return slices.Clone(h.turns[len(h.turns)-n:])
}

// Len returns the number of turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
