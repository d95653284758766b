package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

func TestNewIntentAdapter(t *testing.T) {
	domain := schema.NewDomainConfig("orders", "ecommerce", "", map[string]*schema.Entity{}, nil)
	lib := schema.TemplateLibrary{Templates: []schema.Template{{ID: "t1"}}}

	a := NewIntentAdapter("orders_db", domain, lib)

	require.NotNil(t, a.GenericAdapter)
	assert.Same(t, domain, a.Domain)
	assert.Equal(t, lib, a.TemplateLibrary)
}

func TestIntentAdapter_ExtractDirectAnswer_NeverShortcuts(t *testing.T) {
	domain := schema.NewDomainConfig("orders", "ecommerce", "", map[string]*schema.Entity{}, nil)
	a := NewIntentAdapter("orders_db", domain, schema.TemplateLibrary{})

	item := schema.ContextItem{Metadata: map[string]any{"answer": "should be ignored"}}
	_, ok := a.ExtractDirectAnswer(item)
	assert.False(t, ok, "intent answers are always synthesized, never pulled from a document")
}
