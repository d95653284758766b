package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

func TestDomainResponseGenerator_DispatchesByState(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	g := NewDomainResponseGenerator(domain, nil)

	text, _ := g.Generate(context.Background(), "q", schema.Template{}, "order", nil, errors.New("db down"))
	assert.Contains(t, text, "db down")

	text, _ = g.Generate(context.Background(), "q", schema.Template{}, "order", nil, nil)
	assert.Contains(t, text, "couldn't find")

	text, extra := g.Generate(context.Background(), "q", schema.Template{}, "order", []map[string]any{{"id": 1}}, nil)
	assert.Contains(t, text, "Found 1 order")
	assert.Contains(t, extra, "table_data")

	text, extra = g.Generate(context.Background(), "q", schema.Template{ResultFormat: schema.ResultFormatSummary}, "order", []map[string]any{{"id": 1}}, nil)
	assert.Contains(t, extra, "summary_data")
	require.NotEmpty(t, text)
}

func TestDomainResponseGenerator_FactoryAllowsCustomStrategy(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	g := NewDomainResponseGenerator(domain, nil)
	g.Factory().RegisterStrategy("table", ErrorResponseStrategy{})

	text, _ := g.Generate(context.Background(), "q", schema.Template{}, "order", []map[string]any{{"id": 1}}, nil)
	assert.Equal(t, "I couldn't complete that request.", text)
}

func TestDomainResponseGenerator_Generate_NoResultsIgnoresResultFormat(t *testing.T) {
	domain := schema.NewDomainConfig("d", "t", "", map[string]*schema.Entity{}, nil)
	g := NewDomainResponseGenerator(domain, nil)

	text, extra := g.Generate(context.Background(), "q", schema.Template{ResultFormat: schema.ResultFormatSummary}, "order", nil, nil)
	assert.Contains(t, text, "couldn't find")
	assert.Nil(t, extra)
}
