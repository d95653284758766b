package intent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// ResponseStrategy turns query results into a natural-language answer
// string, optionally alongside structured table/summary data (spec §4.8).
type ResponseStrategy interface {
	Respond(ctx context.Context, req ResponseRequest) (string, map[string]any)
}

// ResponseRequest carries everything a strategy needs: the rows, the
// template that produced them, and the inference client for prose
// generation.
type ResponseRequest struct {
	Query     string
	Template  schema.Template
	EntityName string
	Rows      []map[string]any
	Err       error
	Inference iface.Inference
	Formatter *ResponseFormatter
}

// ResponseStrategyFactory dispatches to a registered strategy by name,
// grounded on the pipeline's strategies.ResponseStrategyFactory.
type ResponseStrategyFactory struct {
	mu         sync.RWMutex
	strategies map[string]ResponseStrategy
}

// NewResponseStrategyFactory builds a factory pre-registered with the four
// built-in strategies: table, summary, error, no_results.
func NewResponseStrategyFactory() *ResponseStrategyFactory {
	f := &ResponseStrategyFactory{strategies: make(map[string]ResponseStrategy)}
	f.RegisterStrategy("table", TableResponseStrategy{})
	f.RegisterStrategy("summary", SummaryResponseStrategy{})
	f.RegisterStrategy("error", ErrorResponseStrategy{})
	f.RegisterStrategy("no_results", NoResultsResponseStrategy{})
	return f
}

// RegisterStrategy adds or overwrites a named strategy, allowing custom
// response rendering beyond the four built-ins (spec §4.8).
func (f *ResponseStrategyFactory) RegisterStrategy(name string, strategy ResponseStrategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies[name] = strategy
}

// Get returns the strategy registered under name.
func (f *ResponseStrategyFactory) Get(name string) (ResponseStrategy, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.strategies[name]
	return s, ok
}

// TableResponseStrategy formats results as a table, builds a prompt, asks
// the LLM for prose, and falls back to a count-based sentence if
// generation fails.
type TableResponseStrategy struct{}

func (TableResponseStrategy) Respond(ctx context.Context, req ResponseRequest) (string, map[string]any) {
	table := req.Formatter.FormatTableData(req.Rows, req.EntityName)

	prompt := buildResponsePrompt(req.Query, req.Template, table, "table")
	if req.Inference != nil {
		if text, err := req.Inference.Generate(ctx, prompt); err == nil && strings.TrimSpace(text) != "" {
			return text, map[string]any{"table_data": table}
		}
	}
	return fallbackCountResponse(len(req.Rows), req.EntityName), map[string]any{"table_data": table}
}

// SummaryResponseStrategy formats the top summary fields, asks the LLM for
// prose, and falls back to format_summary_data rendered as plain text.
type SummaryResponseStrategy struct{}

func (SummaryResponseStrategy) Respond(ctx context.Context, req ResponseRequest) (string, map[string]any) {
	summary := req.Formatter.FormatSummaryData(req.Rows, req.EntityName)

	prompt := buildResponsePrompt(req.Query, req.Template, summary, "summary")
	if req.Inference != nil {
		if text, err := req.Inference.Generate(ctx, prompt); err == nil && strings.TrimSpace(text) != "" {
			return text, map[string]any{"summary_data": summary}
		}
	}
	return renderSummaryFallback(summary), map[string]any{"summary_data": summary}
}

// ErrorResponseStrategy renders a user-facing message for a failed query.
type ErrorResponseStrategy struct{}

func (ErrorResponseStrategy) Respond(_ context.Context, req ResponseRequest) (string, map[string]any) {
	if req.Err != nil {
		return fmt.Sprintf("I couldn't complete that request: %s", req.Err.Error()), nil
	}
	return "I couldn't complete that request.", nil
}

// NoResultsResponseStrategy renders a message for a zero-row result set.
type NoResultsResponseStrategy struct{}

func (NoResultsResponseStrategy) Respond(_ context.Context, req ResponseRequest) (string, map[string]any) {
	entity := req.EntityName
	if entity == "" {
		entity = "results"
	}
	return fmt.Sprintf("I couldn't find any %s matching your request.", entity), nil
}

func buildResponsePrompt(query string, tmpl schema.Template, data []map[string]any, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User asked: %q\n\n", query)
	fmt.Fprintf(&b, "Query description: %s\n\n", tmpl.Description)
	fmt.Fprintf(&b, "Results (%s view, %d rows):\n", style, len(data))
	for i, row := range data {
		if i >= 10 {
			fmt.Fprintf(&b, "...and %d more\n", len(data)-10)
			break
		}
		fmt.Fprintf(&b, "%v\n", row)
	}
	b.WriteString("\nWrite a concise, natural-language answer summarizing these results for the user.")
	return b.String()
}

func fallbackCountResponse(count int, entityName string) string {
	noun := entityName
	if noun == "" {
		noun = "result"
	}
	if count == 1 {
		return fmt.Sprintf("Found 1 %s matching your request.", noun)
	}
	return fmt.Sprintf("Found %d %ss matching your request.", count, noun)
}

func renderSummaryFallback(summary []map[string]any) string {
	if len(summary) == 0 {
		return "No results to summarize."
	}
	var lines []string
	for _, row := range summary {
		var parts []string
		for k, v := range row {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v))
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, "\n")
}
