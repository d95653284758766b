package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// TemplateProcessor renders a template's SQL/HTTP/query-DSL body against
// the extracted parameter values, using Go's text/template engine rather
// than a borrowed templating library — the prompt-adapter code this
// module is built from recommends exactly that for structured
// interpolation (spec §4.4, §4.9).
type TemplateProcessor struct {
	domain *schema.DomainConfig

	// PreserveUnknown leaves `{{.name}}` references untouched in the
	// rendered output when name has no bound value, instead of erroring.
	// When false, rendering fails on a reference to an unbound name.
	PreserveUnknown bool
}

// NewTemplateProcessor builds a TemplateProcessor bound to domain.
func NewTemplateProcessor(domain *schema.DomainConfig) *TemplateProcessor {
	return &TemplateProcessor{domain: domain, PreserveUnknown: true}
}

// RenderSQL renders tmpl.SQLTemplate against params after wrapping LIKE
// parameters (see wrapLikeParams). `{{.var}}` template variables are
// substituted; `%(name)s` DB-API placeholders are left untouched for the
// sqlbackend driver to bind.
func (p *TemplateProcessor) RenderSQL(tmpl schema.Template, params map[string]any) (string, error) {
	return p.render(tmpl.SQLTemplate, wrapLikeParams(tmpl.SQLTemplate, params))
}

// wrapLikeParams wraps a name-like parameter's value in `%value%` before
// rendering, when the SQL text uses LIKE (spec §4.5: "template
// substitution for LIKE parameters"). Returns a shallow copy; the
// caller's params map is left untouched.
func wrapLikeParams(sqlText string, params map[string]any) map[string]any {
	if !strings.Contains(strings.ToUpper(sqlText), "LIKE") {
		return params
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
		if !strings.Contains(strings.ToLower(k), "name") {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		s = strings.TrimSpace(s)
		s = strings.Trim(s, `"'`)
		if s == "" {
			continue
		}
		out[k] = "%" + s + "%"
	}
	return out
}

// RenderStructure walks a query_dsl/http_request map, rendering every
// string leaf as a template against params (spec §4.4: HTTP/DSL bodies
// carry the same placeholder syntax as sql_template).
func (p *TemplateProcessor) RenderStructure(body map[string]any, params map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(body))
	for k, v := range body {
		rendered, err := p.renderAny(v, params)
		if err != nil {
			return nil, err
		}
		out[k] = rendered
	}
	return out, nil
}

func (p *TemplateProcessor) renderAny(v any, params map[string]any) (any, error) {
	switch val := v.(type) {
	case string:
		return p.render(val, params)
	case map[string]any:
		return p.RenderStructure(val, params)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			r, err := p.renderAny(item, params)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

var templateVarPattern = regexp.MustCompile(`\{\{\s*\.(\w+)(\s*\|[^}]*)?\s*\}\}`)

// render substitutes every `{{.name}}` (optionally piped through a known
// filter) occurrence in text.
func (p *TemplateProcessor) render(text string, params map[string]any) (string, error) {
	if text == "" {
		return "", nil
	}

	j := newJoinerRegistry()
	funcs := template.FuncMap{
		"sql_string":     sqlString,
		"sql_list":       sqlList,
		"sql_identifier": sqlIdentifier,
		"json":           jsonFilter,
		"tojson":         jsonFilter,
		"joiner":         j.joiner,
	}

	missing := p.missingVariables(text, params)
	working := text
	placeholders := make(map[string]string, len(missing))
	renderParams := params
	if p.PreserveUnknown && len(missing) > 0 {
		renderParams = make(map[string]any, len(params)+len(missing))
		for k, v := range params {
			renderParams[k] = v
		}
		for i, name := range missing {
			token := fmt.Sprintf("{{.%s}}", name)
			sentinel := fmt.Sprintf("\x00PRESERVE_%d\x00", i)
			placeholders[sentinel] = token
			working = strings.ReplaceAll(working, token, sentinel)
			renderParams[name] = sentinel
		}
	}

	tmpl := template.New("intent").Funcs(funcs)
	if !p.PreserveUnknown {
		tmpl = tmpl.Option("missingkey=error")
	}
	tmpl, err := tmpl.Parse(working)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, renderParams); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	rendered := buf.String()
	for sentinel, token := range placeholders {
		rendered = strings.ReplaceAll(rendered, sentinel, token)
	}
	return collapseBlankLines(rendered), nil
}

func (p *TemplateProcessor) missingVariables(text string, params map[string]any) []string {
	var missing []string
	for _, m := range templateVarPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

var blankLinePattern = regexp.MustCompile(`\n{3,}`)

// collapseBlankLines folds runs of 3+ newlines down to a single blank
// line, matching the source renderer's whitespace cleanup.
func collapseBlankLines(s string) string {
	return blankLinePattern.ReplaceAllString(s, "\n\n")
}

// sqlString quotes a value as a single-quoted SQL string literal,
// doubling embedded quotes.
func sqlString(v any) string {
	s := fmt.Sprintf("%v", v)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqlList renders a slice as a parenthesized, comma-separated SQL list,
// quoting string elements.
func sqlList(v any) string {
	items, ok := v.([]any)
	if !ok {
		return sqlString(v)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch item.(type) {
		case string:
			parts = append(parts, sqlString(item))
		default:
			parts = append(parts, fmt.Sprintf("%v", item))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// sqlIdentifier double-quotes a SQL identifier (table/column name). A
// value that is not a plain identifier is not rejected: its embedded
// double quotes are doubled and the result is quoted.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func sqlIdentifier(v any) string {
	s := fmt.Sprintf("%v", v)
	if !identifierPattern.MatchString(s) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return `"` + s + `"`
}

func jsonFilter(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return strconv.Quote(fmt.Sprintf("%v", v))
	}
	return string(b)
}

// joinerRegistry backs the `joiner(sep)` template global: the first call
// for a given separator returns "", every subsequent call returns sep
// (spec §4.9 design notes).
type joinerRegistry struct {
	called map[string]bool
}

func newJoinerRegistry() *joinerRegistry {
	return &joinerRegistry{called: make(map[string]bool)}
}

func (j *joinerRegistry) joiner(sep string) string {
	if sep == "" {
		sep = ", "
	}
	if !j.called[sep] {
		j.called[sep] = true
		return ""
	}
	return sep
}
