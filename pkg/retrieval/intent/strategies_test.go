package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

type fakeInference struct {
	text string
	err  error
}

func (f fakeInference) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func TestResponseStrategyFactory_BuiltinsRegistered(t *testing.T) {
	f := NewResponseStrategyFactory()

	for _, name := range []string{"table", "summary", "error", "no_results"} {
		_, ok := f.Get(name)
		assert.True(t, ok, "expected built-in strategy %q", name)
	}
	_, ok := f.Get("unknown")
	assert.False(t, ok)
}

func TestResponseStrategyFactory_RegisterStrategy_Overwrite(t *testing.T) {
	f := NewResponseStrategyFactory()
	f.RegisterStrategy("table", ErrorResponseStrategy{})
	s, _ := f.Get("table")
	_, ok := s.(ErrorResponseStrategy)
	assert.True(t, ok)
}

func TestTableResponseStrategy_UsesInferenceWhenAvailable(t *testing.T) {
	formatter := NewResponseFormatter(schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil))
	req := ResponseRequest{
		Query:     "how many orders",
		Rows:      []map[string]any{{"id": 1}},
		Inference: fakeInference{text: "There is 1 order."},
		Formatter: formatter,
	}

	text, extra := TableResponseStrategy{}.Respond(context.Background(), req)
	assert.Equal(t, "There is 1 order.", text)
	assert.Contains(t, extra, "table_data")
}

func TestTableResponseStrategy_FallsBackOnInferenceError(t *testing.T) {
	formatter := NewResponseFormatter(schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil))
	req := ResponseRequest{
		EntityName: "order",
		Rows:       []map[string]any{{"id": 1}, {"id": 2}},
		Inference:  fakeInference{err: errors.New("llm unavailable")},
		Formatter:  formatter,
	}

	text, _ := TableResponseStrategy{}.Respond(context.Background(), req)
	assert.Equal(t, "Found 2 orders matching your request.", text)
}

func TestTableResponseStrategy_FallsBackOnBlankInferenceText(t *testing.T) {
	formatter := NewResponseFormatter(schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil))
	req := ResponseRequest{
		EntityName: "order",
		Rows:       []map[string]any{{"id": 1}},
		Inference:  fakeInference{text: "   "},
		Formatter:  formatter,
	}

	text, _ := TableResponseStrategy{}.Respond(context.Background(), req)
	assert.Equal(t, "Found 1 order matching your request.", text)
}

func TestErrorResponseStrategy(t *testing.T) {
	text, extra := ErrorResponseStrategy{}.Respond(context.Background(), ResponseRequest{Err: errors.New("boom")})
	assert.Contains(t, text, "boom")
	assert.Nil(t, extra)
}

func TestNoResultsResponseStrategy(t *testing.T) {
	text, _ := NoResultsResponseStrategy{}.Respond(context.Background(), ResponseRequest{EntityName: "order"})
	assert.Equal(t, "I couldn't find any order matching your request.", text)
}
