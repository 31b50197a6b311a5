package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library dispatches a function call to the function it names.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a tool a specialist can call.
type Function interface {
	// Declare this function
	Declaration() *genai.FunctionDeclaration
	// Call this function
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary returns a Library calling functions by name. Calls to any other
// name get an error response.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, e := range functions {
			d := e.Declaration()
			if d.Name == call.Name {
				return e.Call(ctx, call.ID, call.Args)
			}
		}
		return failure(call.ID, call.Name, fmt.Sprintf("unknown function %s", call.Name))
	}
}

// NewDeclaration returns the declarations of functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, e := range functions {
		result = append(result, e.Declaration())
	}
	return result
}

// Func implements a simple Function whose result is a text.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Run returns the text answer of the call. Failures are already turned
	// into text for the user: Run never fails.
	Run func(ctx context.Context, args map[string]any) string
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	if args == nil {
		args = map[string]any{}
	}
	if missing := missingArgs(f.Decl, args); len(missing) > 0 {
		return failure(id, f.Decl.Name, fmt.Sprintf("missing required arguments: %v", missing))
	}
	return &genai.FunctionResponse{
		ID:       id,
		Name:     f.Decl.Name,
		Response: map[string]any{"output": f.Run(ctx, args)},
	}
}

func missingArgs(d *genai.FunctionDeclaration, args map[string]any) []string {
	if d.Parameters == nil {
		return nil
	}
	var missing []string
	for _, name := range d.Parameters.Required {
		if v, ok := args[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func failure(id, name, msg string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": msg},
	}
}

// Output returns the text of a function response: its output, or its error.
func Output(resp *genai.FunctionResponse) string {
	if resp == nil {
		return ""
	}
	if s, ok := resp.Response["output"].(string); ok {
		return s
	}
	if s, ok := resp.Response["error"].(string); ok {
		return "Sorry, I could not do that: " + s + "."
	}
	return ""
}
