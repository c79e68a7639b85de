// Package synth turns a natural-language question into SQL text using a
// remote text-generation service. The output is best effort: it is trimmed
// and stripped of fenced-code-block markers but never validated, so invalid
// SQL is only discovered when the executor runs it.
package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopql/shopql/internal/schema"
)

type Result struct {
	SQL      string
	Provider string
	Model    string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, question string) (Result, error)
}

// GenerationError reports a synthesis call that did not produce SQL:
// transport failure, API error, or an empty response. It is never retried.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate sql via %s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// BuildPrompt composes the single instructional context sent to the model:
// dialect constraints, the schema rendering, the literal question, and the
// raw-SQL-only instruction.
func BuildPrompt(question string) string {
	return fmt.Sprintf(`You are a helpful assistant that generates SQL queries for a DuckDB database.
DuckDB uses PostgreSQL-like SQL syntax.

Here is the database schema:

%s
Question: %q

Write a syntactically correct SQL query using only the tables and columns above.
Only return the raw SQL query.
Do NOT use triple backticks or markdown formatting.`, schema.Render(), question)
}

// StripFences removes fenced-code-block wrapping from a model response. Only
// lines that begin with a fence marker are dropped; a marker trailing real
// content on the same line is left alone. Responses that do not start with a
// fence are returned trimmed and otherwise untouched.
func StripFences(response string) string {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
