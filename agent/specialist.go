package agent

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Specialist is an agent focused on one area of personal finance. It is only
// data: the backends decide how it answers.
type Specialist struct {
	ID           string
	Name         string
	Role         string
	Instructions []string
	Tools        []Function
}

// Library returns the library of the specialist's own tools.
func (s *Specialist) Library() Library { return NewLibrary(s.Tools) }

// Declarations returns the declarations of the specialist's tools.
func (s *Specialist) Declarations() []*genai.FunctionDeclaration { return NewDeclaration(s.Tools) }

// SystemInstruction returns the prompt a model plays the specialist with.
func (s *Specialist) SystemInstruction() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the %s of fgpt, a personal finance assistant.\n", s.Name)
	fmt.Fprintf(&b, "Your role: %s.\n\n", s.Role)
	for _, i := range append(s.Instructions, commonInstructions...) {
		fmt.Fprintf(&b, "- %s\n", i)
	}
	return b.String()
}

var commonInstructions = []string{
	"Answer in concise markdown.",
	"Never show raw JSON, function calls or tool payloads: turn tool results into plain sentences or tables.",
	"When a tool answers with a question or an error, pass it on to the user in your own words.",
	"If the request is unclear, ask one short clarifying question instead of guessing.",
}

// Team is the set of specialists a router dispatches to.
type Team []*Specialist

// Get returns the specialist id.
func (t Team) Get(id string) (*Specialist, bool) {
	for _, s := range t {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// IDs returns the ids of the specialists, in team order.
func (t Team) IDs() []string {
	ids := make([]string, len(t))
	for i, s := range t {
		ids[i] = s.ID
	}
	return ids
}
