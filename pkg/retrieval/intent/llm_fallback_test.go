package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

type scriptedInference struct {
	response string
	err      error
	prompts  []string
}

func (s *scriptedInference) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestLLMFallback_ExtractOne_ParsesTypedValues(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)

	infer := &scriptedInference{response: "42"}
	f := NewLLMFallback(infer, domain)
	v, ok := f.ExtractOne(context.Background(), "order 42", schema.Parameter{Name: "order_id", Type: "integer"}, "find an order")
	require.True(t, ok)
	assert.Equal(t, 42, v)
	require.Len(t, infer.prompts, 1)
	assert.Contains(t, infer.prompts[0], "order_id")
}

func TestLLMFallback_ExtractOne_NotFoundReturnsFalse(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{response: "NOT_FOUND"}
	f := NewLLMFallback(infer, domain)

	_, ok := f.ExtractOne(context.Background(), "anything", schema.Parameter{Name: "x"}, "")
	assert.False(t, ok)
}

func TestLLMFallback_ExtractOne_InferenceErrorReturnsFalse(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{err: errors.New("timeout")}
	f := NewLLMFallback(infer, domain)

	_, ok := f.ExtractOne(context.Background(), "anything", schema.Parameter{Name: "x"}, "")
	assert.False(t, ok)
}

func TestLLMFallback_ExtractOne_DecimalStripsCurrency(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{response: "$1,234.50"}
	f := NewLLMFallback(infer, domain)

	v, ok := f.ExtractOne(context.Background(), "q", schema.Parameter{Name: "total", Type: "decimal"}, "")
	require.True(t, ok)
	assert.InDelta(t, 1234.50, v, 0.001)
}

func TestLLMFallback_ExtractOne_BooleanVariant(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{response: "yes"}
	f := NewLLMFallback(infer, domain)

	v, ok := f.ExtractOne(context.Background(), "q", schema.Parameter{Name: "active", Type: "boolean"}, "")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestLLMFallback_ExtractOne_IncludesDomainContext(t *testing.T) {
	order := &schema.Entity{Name: "order", DisplayName: "Order", Description: "a placed order"}
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{"order": order}, []string{"order"})
	domain.EntitySynonyms["order"] = []string{"purchase"}

	infer := &scriptedInference{response: "5"}
	f := NewLLMFallback(infer, domain)
	_, _ = f.ExtractOne(context.Background(), "q", schema.Parameter{Name: "id", Entity: "order", Type: "integer"}, "")

	require.Len(t, infer.prompts, 1)
	assert.Contains(t, infer.prompts[0], "Entity: Order")
	assert.Contains(t, infer.prompts[0], "purchase")
}

func TestLLMFallback_ExtractMany_ParsesJSONObject(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{response: `{"order_id": 7, "status": "shipped", "missing": null}`}
	f := NewLLMFallback(infer, domain)

	out := f.ExtractMany(context.Background(), "q", []schema.Parameter{
		{Name: "order_id", Type: "integer"},
		{Name: "status", Type: "string"},
		{Name: "missing", Type: "string"},
	}, "")

	assert.Equal(t, 7, out["order_id"])
	assert.Equal(t, "shipped", out["status"])
	assert.NotContains(t, out, "missing")
}

func TestLLMFallback_ExtractMany_StripsCodeFence(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{response: "```json\n{\"x\": 1}\n```"}
	f := NewLLMFallback(infer, domain)

	out := f.ExtractMany(context.Background(), "q", []schema.Parameter{{Name: "x", Type: "integer"}}, "")
	assert.Equal(t, 1, out["x"])
}

func TestLLMFallback_ExtractMany_InferenceErrorReturnsEmpty(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	infer := &scriptedInference{err: errors.New("boom")}
	f := NewLLMFallback(infer, domain)

	out := f.ExtractMany(context.Background(), "q", []schema.Parameter{{Name: "x"}}, "")
	assert.Empty(t, out)
}

func TestConvertBatchValue(t *testing.T) {
	assert.Equal(t, 3, convertBatchValue(float64(3), "integer"))
	assert.Equal(t, 2.5, convertBatchValue("2.5", "decimal"))
	assert.Equal(t, true, convertBatchValue("true", "boolean"))
	assert.Equal(t, "raw", convertBatchValue("raw", "string"))
}
