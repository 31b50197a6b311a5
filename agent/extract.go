package agent

import (
	"context"
	"strings"

	"github.com/etnz/fgpt/docs"
	"github.com/etnz/fgpt/session"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// Extraction is what the rules make of a message for one specialist: tools
// to call, a question for missing information, or a direct reply.
type Extraction struct {
	Intro    string                // put before the tool results
	Calls    []*genai.FunctionCall // called in order
	Question string                // asked after the tool results, if any
	Reply    string                // answer without any tool
}

func call(name string, args map[string]any) *genai.FunctionCall {
	return &genai.FunctionCall{Name: name, Args: args}
}

// Extract reads message for the specialist id.
func (r *Rules) Extract(ctx context.Context, message, id string) Extraction {
	message = strings.TrimSpace(message)
	switch id {
	case General:
		return Extraction{Reply: general(message)}
	case Literacy:
		return r.literacy(message)
	case Budget:
		return budget(message)
	case Loan:
		return loan(message)
	case Credit:
		return Extraction{Calls: []*genai.FunctionCall{call("get_topic", map[string]any{"topic": "credit-score"})}}
	case Planner:
		return planner(message)
	case Finance:
		return r.finance(ctx, message)
	case Sentiment:
		return sentiment(message)
	case Web:
		return web(message)
	}
	return Extraction{Question: AskRephrase}
}

// Respond answers message as the specialist s, calling its tools itself.
func (r *Rules) Respond(ctx context.Context, s *Specialist, message string, history []session.Turn) (Reply, error) {
	ext := r.Extract(ctx, message, s.ID)
	reply := Reply{Specialist: s.ID, Clarify: ext.Question != ""}
	if len(ext.Calls) == 0 {
		reply.Text = ext.Reply
		if ext.Question != "" {
			reply.Text = ext.Question
		}
		return reply, nil
	}

	lib := s.Library()
	outputs := make([]string, len(ext.Calls))
	var g errgroup.Group
	for i, c := range ext.Calls {
		g.Go(func() error {
			outputs[i] = Output(lib(ctx, c))
			return nil
		})
	}
	g.Wait()

	parts := append([]string{ext.Intro}, outputs...)
	parts = append(parts, ext.Question)
	reply.Text = join(parts)
	return reply, nil
}

// join joins the non empty parts as paragraphs.
func join(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// General answers.
const (
	Welcome      = "Hi! I'm fgpt, your personal finance assistant. What would you like to do today?"
	Capabilities = `I'm fgpt, a personal finance assistant. I can:

- record your income and expenses and summarize your budget,
- plan the repayment of your loans (avalanche or snowball),
- compute your net worth, your debt-to-income ratio and the effect of inflation,
- explain finance concepts such as ETFs, compound interest or credit scores,
- look up stock prices and analyst ratings,
- gauge the news sentiment around a company,
- search the web for anything else money related.`
	YoureWelcome = "You're welcome! Anything else I can help with?"
	Goodbye      = "Goodbye! Your transactions are saved for next time."
	OffTopic     = "I'm focused on personal finance, so I can't help much with that. Ask me about your budget, loans, investments or any finance concept."
)

var (
	thanksRe = wordsRe("thanks", "thank you", "thx", "ty", "cheers")
	byeRe    = wordsRe("bye", "goodbye", "see you", "see ya", "later")
	helloRe  = wordsRe("hi", "hello", "hey", "heya", "hiya", "howdy", "yo", "greetings", "hola", "good morning", "good afternoon", "good evening", "what's up", "whats up", "sup")
)

func general(message string) string {
	switch {
	case byeRe.MatchString(message):
		return Goodbye
	case thanksRe.MatchString(message):
		return YoureWelcome
	case aboutYou.MatchString(message) || strings.Contains(strings.ToLower(message), "help"):
		return Capabilities
	case helloRe.MatchString(message) || isSmallTalk(tokens(message)):
		return Welcome + "\n\n" + Capabilities[strings.Index(Capabilities, "I can:"):]
	}
	return OffTopic
}

func (r *Rules) literacy(message string) Extraction {
	if topic, ok := docs.Find(message); ok {
		return Extraction{Calls: []*genai.FunctionCall{call("get_topic", map[string]any{"topic": topic})}}
	}
	// No notes: the web explains it.
	ext := web(message)
	ext.Intro = "I don't have notes on that concept yet, here is what I found on the web:"
	return ext
}

func web(message string) Extraction {
	return Extraction{
		Intro: "Here is what I found on the web:",
		Calls: []*genai.FunctionCall{call("web_search", map[string]any{"query": message, "max_results": float64(WebResults)})},
	}
}
