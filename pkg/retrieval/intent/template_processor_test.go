package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

func TestTemplateProcessor_RenderSQL_SubstitutesKnownParams(t *testing.T) {
	p := NewTemplateProcessor(nil)
	tmpl := schema.Template{SQLTemplate: "SELECT * FROM orders WHERE customer_id = {{.customer_id}}"}

	out, err := p.RenderSQL(tmpl, map[string]any{"customer_id": 42})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = 42", out)
}

func TestTemplateProcessor_RenderSQL_PreservesUnknownPlaceholder(t *testing.T) {
	p := NewTemplateProcessor(nil)
	tmpl := schema.Template{SQLTemplate: "SELECT * FROM orders WHERE customer_id = {{.customer_id}} AND status = {{.status}}"}

	out, err := p.RenderSQL(tmpl, map[string]any{"customer_id": 42})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = 42 AND status = {{.status}}", out)
}

func TestTemplateProcessor_RenderSQL_WrapsLikeParamsContainingName(t *testing.T) {
	p := NewTemplateProcessor(nil)
	tmpl := schema.Template{SQLTemplate: "SELECT * FROM customers WHERE name LIKE {{.customer_name | sql_string}}"}

	out, err := p.RenderSQL(tmpl, map[string]any{"customer_name": "Jane"})
	require.NoError(t, err)
	assert.Contains(t, out, "'%Jane%'")
}

func TestTemplateProcessor_RenderSQL_DoesNotWrapWhenNoLike(t *testing.T) {
	p := NewTemplateProcessor(nil)
	tmpl := schema.Template{SQLTemplate: "SELECT * FROM customers WHERE name = {{.customer_name | sql_string}}"}

	out, err := p.RenderSQL(tmpl, map[string]any{"customer_name": "Jane"})
	require.NoError(t, err)
	assert.Contains(t, out, "'Jane'")
	assert.NotContains(t, out, "%Jane%")
}

func TestTemplateProcessor_RenderSQL_SQLPercentPlaceholdersSurviveRender(t *testing.T) {
	p := NewTemplateProcessor(nil)
	tmpl := schema.Template{SQLTemplate: "SELECT * FROM orders WHERE customer_id = %(customer_id)s AND total > {{.min_total}}"}

	out, err := p.RenderSQL(tmpl, map[string]any{"min_total": 100})
	require.NoError(t, err)
	assert.Contains(t, out, "%(customer_id)s", "the DB-API placeholder syntax is left untouched for sqlbackend to rewrite")
	assert.Contains(t, out, "100")
}

func TestTemplateProcessor_RenderStructure_NestedHTTPBody(t *testing.T) {
	p := NewTemplateProcessor(nil)
	body := map[string]any{
		"method": "GET",
		"path":   "/customers/{{.customer_id}}/orders",
		"query": map[string]any{
			"limit": "{{.limit}}",
		},
		"tags": []any{"{{.tag1}}", "static"},
	}

	out, err := p.RenderStructure(body, map[string]any{"customer_id": 7, "limit": 10, "tag1": "urgent"})
	require.NoError(t, err)

	assert.Equal(t, "GET", out["method"])
	assert.Equal(t, "/customers/7/orders", out["path"])
	query := out["query"].(map[string]any)
	assert.Equal(t, "10", query["limit"])
	tags := out["tags"].([]any)
	assert.Equal(t, "urgent", tags[0])
	assert.Equal(t, "static", tags[1])
}

func TestSQLString_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `'it''s here'`, sqlString("it's here"))
}

func TestSQLList_QuotesStringElements(t *testing.T) {
	out := sqlList([]any{"a", 1, "b"})
	assert.Equal(t, "('a', 1, 'b')", out)
}

func TestSQLIdentifier_QuotesSafeIdentifier(t *testing.T) {
	assert.Equal(t, `"orders"`, sqlIdentifier("orders"))
}

func TestSQLIdentifier_EscapesUnsafeIdentifier(t *testing.T) {
	out := sqlIdentifier(`bad"name`)
	assert.Equal(t, `"bad""name"`, out)
}

func TestCollapseBlankLines(t *testing.T) {
	in := "a\n\n\n\nb"
	assert.Equal(t, "a\n\nb", collapseBlankLines(in))
}
