package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

func buildExtractorPipelineDomain() *schema.DomainConfig {
	order := &schema.Entity{
		Name: "order",
		Fields: map[string]*schema.Field{
			"id":     {Name: "id", DataType: "integer", Searchable: true},
			"status": {Name: "status", DataType: "string"},
		},
	}
	return schema.NewDomainConfig("orders", "ecommerce", "", map[string]*schema.Entity{"order": order}, []string{"order"})
}

func TestDomainParameterExtractor_Extract_PatternOnly(t *testing.T) {
	domain := buildExtractorPipelineDomain()
	e := NewDomainParameterExtractor(domain, nil)

	params := []schema.Parameter{
		{Name: "order_id", Entity: "order", Field: "id", Type: "integer", Required: true},
	}

	result := e.Extract(context.Background(), "show me order 12345", "find an order", params)
	assert.Equal(t, 12345, result.Parameters["order_id"])
	assert.Empty(t, result.MissingRequired(params))
}

func TestDomainParameterExtractor_Extract_AppliesDefaultWhenUnresolved(t *testing.T) {
	domain := buildExtractorPipelineDomain()
	e := NewDomainParameterExtractor(domain, nil)

	params := []schema.Parameter{
		{Name: "limit", Type: "integer", Default: 10},
	}

	result := e.Extract(context.Background(), "list orders", "", params)
	assert.Equal(t, 10, result.Parameters["limit"])
}

func TestDomainParameterExtractor_Extract_NoInferenceLeavesRequiredMissing(t *testing.T) {
	domain := buildExtractorPipelineDomain()
	e := NewDomainParameterExtractor(domain, nil)

	params := []schema.Parameter{
		{Name: "order_id", Entity: "order", Field: "id", Type: "integer", Required: true},
	}

	result := e.Extract(context.Background(), "show me my orders", "", params)
	assert.Equal(t, []string{"order_id"}, result.MissingRequired(params))
}

func TestDomainParameterExtractor_Extract_SingleMissingUsesExtractOne(t *testing.T) {
	domain := buildExtractorPipelineDomain()
	infer := &scriptedInference{response: "99"}
	e := NewDomainParameterExtractor(domain, infer)

	params := []schema.Parameter{
		{Name: "order_id", Entity: "order", Field: "id", Type: "integer", Required: true},
	}

	result := e.Extract(context.Background(), "show me my recent order", "", params)
	assert.Equal(t, 99, result.Parameters["order_id"])
	require.Len(t, infer.prompts, 1)
}

func TestDomainParameterExtractor_Extract_MultipleMissingUsesExtractMany(t *testing.T) {
	domain := buildExtractorPipelineDomain()
	infer := &scriptedInference{response: `{"order_id": 1, "status": "shipped"}`}
	e := NewDomainParameterExtractor(domain, infer)

	params := []schema.Parameter{
		{Name: "order_id", Entity: "order", Field: "id", Type: "integer", Required: true},
		{Name: "status", Entity: "order", Field: "status", Type: "string", Required: true},
	}

	result := e.Extract(context.Background(), "show me my recent orders", "", params)
	assert.Equal(t, 1, result.Parameters["order_id"])
	assert.Equal(t, "shipped", result.Parameters["status"])
	require.Len(t, infer.prompts, 1, "two or more missing required params are batched into one LLM call")
}

func TestDomainParameterExtractor_Extract_ValidatesSanitizedValues(t *testing.T) {
	order := &schema.Entity{
		Name: "order",
		Fields: map[string]*schema.Field{
			"id": {Name: "id", DataType: "integer", ValidationRules: map[string]any{"min": float64(1)}},
		},
	}
	domain := schema.NewDomainConfig("orders", "ecommerce", "", map[string]*schema.Entity{"order": order}, []string{"order"})
	e := NewDomainParameterExtractor(domain, nil)

	params := []schema.Parameter{{Name: "order_id", Entity: "order", Field: "id", Type: "integer", Default: 0}}
	result := e.Extract(context.Background(), "list orders", "", params)

	assert.NotEmpty(t, result.Errors["id"], "a default of 0 violates the min:1 validation rule")
}

func TestExtractionResult_MissingRequired_IgnoresOptionalParams(t *testing.T) {
	result := ExtractionResult{Parameters: map[string]any{}}
	params := []schema.Parameter{{Name: "optional_param", Required: false}}
	assert.Empty(t, result.MissingRequired(params))
}
