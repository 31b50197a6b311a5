// Package agent routes each user message to one of a team of personal
// finance specialists and returns its answer.
//
// Classification and answering are pluggable: the Rules backend is
// deterministic, the Gemini backend delegates to a hosted model, and both can
// be mixed. Whatever the backend, replies are sanitized and every turn is
// appended to the session history.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/etnz/fgpt/logger"
	"github.com/etnz/fgpt/session"
)

// Decision is where a message goes: a specialist, or back to the user with a
// clarifying question.
type Decision struct {
	Specialist string
	Question   string
}

// Reply is the answer to one message.
type Reply struct {
	Text       string
	Specialist string // empty when the router itself answered
	Clarify    bool   // Text is a question for the user
}

// Classifier picks the specialist for a message.
type Classifier interface {
	Classify(ctx context.Context, message string, history []session.Turn) (Decision, error)
}

// Responder answers a message as a specialist.
type Responder interface {
	Respond(ctx context.Context, s *Specialist, message string, history []session.Turn) (Reply, error)
}

// HistoryContext is the number of past turns given to backends.
const HistoryContext = 10

// Apology replaces an answer that failed.
const Apology = "Sorry, something went wrong while answering. Please try again in a moment."

// Router dispatches messages to the team, one at a time.
type Router struct {
	mu         sync.Mutex
	team       Team
	classifier Classifier
	responder  Responder
	history    *session.History
	pending    *followUp
}

// followUp is a specialist question waiting for the user's answer.
type followUp struct {
	specialist string
	message    string
}

// NewRouter returns a router. history may be nil for a throw-away session.
func NewRouter(team Team, classifier Classifier, responder Responder, history *session.History) *Router {
	if history == nil {
		history = session.New(nil)
	}
	return &Router{team: team, classifier: classifier, responder: responder, history: history}
}

// History returns the session history.
func (r *Router) History() *session.History { return r.history }

// Route classifies message. A decision for a specialist that is not in the
// team becomes a clarifying question.
func (r *Router) Route(ctx context.Context, message string, history []session.Turn) (Decision, error) {
	d, err := r.classifier.Classify(ctx, message, history)
	if err != nil {
		return Decision{}, fmt.Errorf("classify: %w", err)
	}
	if d.Question == "" {
		if _, ok := r.team.Get(d.Specialist); !ok {
			d = Decision{Question: AskRephrase}
		}
	}
	return d, nil
}

// Handle answers message and returns the reply text.
func (r *Router) Handle(ctx context.Context, message string) (string, error) {
	reply, err := r.Turn(ctx, message)
	return reply.Text, err
}

// Turn answers message. Backend failures are logged and answered with an
// apology; the only error is the context's.
func (r *Router) Turn(ctx context.Context, message string) (Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{Text: AskMessage, Clarify: true}, nil
	}
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	log := logger.FromContext(ctx)
	reply := r.answer(ctx, message, r.history.Last(HistoryContext))
	reply.Text = Sanitize(reply.Text)

	if err := r.history.Append(ctx, session.User, message); err != nil {
		log.Warn().Err(err).Msg("history")
	}
	if err := r.history.Append(ctx, session.Assistant, reply.Text); err != nil {
		log.Warn().Err(err).Msg("history")
	}
	return reply, nil
}

func (r *Router) answer(ctx context.Context, message string, history []session.Turn) Reply {
	log := logger.FromContext(ctx)
	d, err := r.Route(ctx, message, history)
	if err != nil {
		log.Error().Err(err).Msg("route")
		return Reply{Text: Apology}
	}

	// The message may answer the question the last specialist asked.
	pending := r.pending
	r.pending = nil
	if pending != nil && (d.Question != "" || d.Specialist == pending.specialist) {
		d = Decision{Specialist: pending.specialist}
		message = pending.message + " " + message
	}
	if d.Question != "" {
		log.Info().Bool("clarify", true).Msg("route")
		return Reply{Text: d.Question, Clarify: true}
	}

	s, _ := r.team.Get(d.Specialist)
	log.Info().Str("specialist", s.ID).Msg("route")
	reply, err := r.responder.Respond(ctx, s, message, history)
	if err != nil {
		log.Error().Err(err).Str("specialist", s.ID).Msg("respond")
		return Reply{Text: Apology, Specialist: s.ID}
	}
	reply.Specialist = s.ID
	if reply.Clarify {
		r.pending = &followUp{specialist: s.ID, message: message}
	}
	return reply
}
