package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/fgpt/logger"
	"github.com/etnz/fgpt/session"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// MaxToolRounds bounds the function calls of a single answer.
const MaxToolRounds = 5

// clarify is the pseudo specialist the model picks to ask a question.
const clarify = "clarify"

// Gemini is the model backed Classifier and Responder.
type Gemini struct {
	client *genai.Client
	model  string
	team   Team
}

// NewGemini returns a Gemini backend for team.
func NewGemini(client *genai.Client, model string, team Team) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model, team: team}
}

func textContent(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// contents converts the history into model contents.
func contents(history []session.Turn) []*genai.Content {
	res := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := "user"
		if t.Role == session.Assistant {
			role = "model"
		}
		res = append(res, &genai.Content{Role: role, Parts: []*genai.Part{{Text: t.Content}}})
	}
	return res
}

// parts returns the parts of the first candidate.
func parts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

func answerText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, p := range parts(resp) {
		if p.Text != "" {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func functionCalls(resp *genai.GenerateContentResponse) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, p := range parts(resp) {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

func (g *Gemini) routing() string {
	var b strings.Builder
	b.WriteString("You route the messages of fgpt, a personal finance assistant, to the one specialist that should answer.\n\nSpecialists:\n")
	for _, s := range g.team {
		fmt.Fprintf(&b, "- %s: %s\n", s.ID, s.Role)
	}
	b.WriteString(`
Rules, first match wins:
- greetings, thanks, small talk, questions about fgpt itself: general
- a general question about a finance concept ("what is", "explain", "how does"): literacy
- recording income, expenses or investments, budget summaries, listing or deleting transactions: budget
- paying off loans or debts: loan
- credit scores: credit
- net worth, inflation, debt-to-income ratio: planner
- stock prices, tickers, analyst ratings, company data: finance
- news or market sentiment: sentiment
- anything else money related: web
Use the conversation so far: a short answer usually continues the previous topic.
If the message is slang or gibberish you cannot read, or could equally go to two specialists, pick "clarify" and write one short clarifying question.`)
	return b.String()
}

// Classify asks the model for the specialist.
func (g *Gemini) Classify(ctx context.Context, message string, history []session.Turn) (Decision, error) {
	ids := append(g.team.IDs(), clarify)
	config := &genai.GenerateContentConfig{
		SystemInstruction: textContent(g.routing()),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"specialist": {Type: genai.TypeString, Enum: ids},
				"question":   {Type: genai.TypeString, Description: "the clarifying question, only with clarify"},
			},
			Required: []string{"specialist"},
		},
	}
	msgs := append(contents(history), &genai.Content{Role: "user", Parts: []*genai.Part{{Text: message}}})
	resp, err := g.client.Models.GenerateContent(ctx, g.model, msgs, config)
	if err != nil {
		return Decision{}, fmt.Errorf("gemini route: %w", err)
	}

	var out struct {
		Specialist string `json:"specialist"`
		Question   string `json:"question"`
	}
	if err := json.Unmarshal([]byte(answerText(resp)), &out); err != nil {
		return Decision{}, fmt.Errorf("gemini route: %w", err)
	}
	logger.FromContext(ctx).Debug().Str("specialist", out.Specialist).Msg("gemini route")
	if _, ok := g.team.Get(out.Specialist); !ok {
		if out.Question == "" {
			out.Question = AskRephrase
		}
		return Decision{Question: out.Question}, nil
	}
	return Decision{Specialist: out.Specialist}, nil
}

// Respond plays the specialist s, running the function calls the model asks
// for until it answers with text. The model keeps the conversation, so
// replies are never marked Clarify.
func (g *Gemini) Respond(ctx context.Context, s *Specialist, message string, history []session.Turn) (Reply, error) {
	config := &genai.GenerateContentConfig{SystemInstruction: textContent(s.SystemInstruction())}
	if len(s.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: s.Declarations()}}
	}
	chat, err := g.client.Chats.Create(ctx, g.model, config, contents(history))
	if err != nil {
		return Reply{}, fmt.Errorf("%s: start chat: %w", s.ID, err)
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", s.ID, err)
	}

	lib := s.Library()
	for round := 0; ; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}
		if round == MaxToolRounds {
			return Reply{}, fmt.Errorf("%s: more than %d rounds of function calls", s.ID, MaxToolRounds)
		}
		responses := make([]*genai.Part, len(calls))
		var eg errgroup.Group
		for i, c := range calls {
			eg.Go(func() error {
				responses[i] = &genai.Part{FunctionResponse: lib(ctx, c)}
				return nil
			})
		}
		eg.Wait()
		if resp, err = chat.Send(ctx, responses...); err != nil {
			return Reply{}, fmt.Errorf("%s: %w", s.ID, err)
		}
	}

	text := answerText(resp)
	if text == "" {
		return Reply{}, fmt.Errorf("%s: %w", s.ID, ErrEmptyAnswer)
	}
	return Reply{Text: text, Specialist: s.ID}, nil
}

// ErrEmptyAnswer is returned when the model ends without any text.
var ErrEmptyAnswer = errors.New("empty answer")

// Fallback answers with Primary, and with Secondary when Primary fails.
type Fallback struct {
	Primary, Secondary Responder
}

func (f Fallback) Respond(ctx context.Context, s *Specialist, message string, history []session.Turn) (Reply, error) {
	reply, err := f.Primary.Respond(ctx, s, message, history)
	if err == nil {
		return reply, nil
	}
	logger.FromContext(ctx).Warn().Err(err).Str("specialist", s.ID).Msg("falling back")
	return f.Secondary.Respond(ctx, s, message, history)
}
