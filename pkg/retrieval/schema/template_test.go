package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_EffectiveType(t *testing.T) {
	assert.Equal(t, "integer", Parameter{Type: "integer", DataType: "string"}.EffectiveType())
	assert.Equal(t, "decimal", Parameter{DataType: "decimal"}.EffectiveType())
	assert.Equal(t, "string", Parameter{}.EffectiveType())
}

func TestTemplate_EmbeddingText(t *testing.T) {
	tmpl := Template{
		Description: "Count orders by customer",
		NLExamples:  []string{"how many orders did customer 42 place"},
		Tags:        []string{"orders", "count"},
		Parameters:  []Parameter{{Name: "customer_id"}},
		SemanticTags: SemanticTags{
			Action:          "count",
			PrimaryEntity:   "order",
			SecondaryEntity: "customer",
			Qualifiers:      []string{"last_month"},
		},
	}

	text := tmpl.EmbeddingText([]string{"purchase", "sale"})

	for _, want := range []string{
		"Count orders by customer",
		"how many orders did customer 42 place",
		"orders", "count",
		"customer id", // underscore replaced with space
		"order", "customer",
		"last_month",
		"purchase", "sale",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "  ") // no awkward double spaces from empty fields
}

func TestTemplate_EmbeddingText_EmptyFieldsOmitted(t *testing.T) {
	tmpl := Template{Description: "bare template"}
	assert.Equal(t, "bare template", tmpl.EmbeddingText(nil))
}

func TestTemplateLibrary_MergeAndFind(t *testing.T) {
	lib := TemplateLibrary{Templates: []Template{
		{ID: "t1", Description: "first"},
		{ID: "t2", Description: "second"},
	}}

	lib.Merge(TemplateLibrary{Templates: []Template{
		{ID: "t2", Description: "second-updated"},
		{ID: "t3", Description: "third"},
	}})

	require.Len(t, lib.Templates, 3)

	t2, ok := lib.Find("t2")
	require.True(t, ok)
	assert.Equal(t, "second-updated", t2.Description, "merge lets a later template override an earlier one with the same id")

	t3, ok := lib.Find("t3")
	require.True(t, ok)
	assert.Equal(t, "third", t3.Description)

	_, ok = lib.Find("missing")
	assert.False(t, ok)
}
