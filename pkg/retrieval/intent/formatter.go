package intent

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// ResponseFormatter turns raw SQL/HTTP result rows into display-ready
// table and summary structures, applying each field's display_format
// (spec §4.7), grounded on the pipeline's response/formatters stage.
type ResponseFormatter struct {
	domain *schema.DomainConfig
}

// NewResponseFormatter builds a ResponseFormatter bound to domain.
func NewResponseFormatter(domain *schema.DomainConfig) *ResponseFormatter {
	return &ResponseFormatter{domain: domain}
}

// FormatTableData renders every row through formatSingleResult, scoped to entityName.
func (f *ResponseFormatter) FormatTableData(rows []map[string]any, entityName string) []map[string]any {
	formatted := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, f.formatSingleResult(row, entityName))
	}
	return formatted
}

// FormatSummaryData picks the top-5 highest-priority fields per row and
// renders only those, for result_format "summary" templates (spec §4.7).
func (f *ResponseFormatter) FormatSummaryData(rows []map[string]any, entityName string) []map[string]any {
	fields := f.summaryFields(entityName, rows)
	summary := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		formatted := f.formatSingleResult(row, entityName)
		reduced := make(map[string]any, len(fields))
		for _, name := range fields {
			if v, ok := formatted[name]; ok {
				reduced[name] = v
			}
		}
		summary = append(summary, reduced)
	}
	return summary
}

func (f *ResponseFormatter) formatSingleResult(row map[string]any, entityName string) map[string]any {
	out := make(map[string]any, len(row))
	entity := f.domain.GetEntity(entityName)
	for key, value := range row {
		var field *schema.Field
		if entity != nil {
			field = entity.Fields[key]
		}
		out[key] = f.formatValue(value, field)
	}
	return out
}

func (f *ResponseFormatter) formatValue(value any, field *schema.Field) any {
	if value == nil || field == nil || field.DisplayFormat == "" {
		return value
	}

	switch field.DisplayFormat {
	case "currency":
		if n, ok := asFloat(value); ok {
			return fmt.Sprintf("$%s", formatThousands(n, 2))
		}
	case "percentage":
		if n, ok := asFloat(value); ok {
			places := decimalPlaces(field)
			return fmt.Sprintf("%.*f%%", places, n)
		}
	case "date":
		if s, ok := formatTimestamp(value, "2006-01-02"); ok {
			return s
		}
	case "datetime":
		if s, ok := formatTimestamp(value, "2006-01-02 15:04:05"); ok {
			return s
		}
	case "phone":
		if s, ok := value.(string); ok {
			return formatPhone(s)
		}
	case "email":
		if s, ok := value.(string); ok {
			return strings.ToLower(s)
		}
	case "title_case":
		if s, ok := value.(string); ok {
			return titleCaseWords(s)
		}
	case "upper_case":
		if s, ok := value.(string); ok {
			return strings.ToUpper(s)
		}
	case "lower_case":
		if s, ok := value.(string); ok {
			return strings.ToLower(s)
		}
	}

	if n, ok := asFloat(value); ok {
		if _, isFloat := value.(float64); isFloat {
			return roundToPlaces(n, decimalPlaces(field))
		}
		if _, isFloat := value.(float32); isFloat {
			return roundToPlaces(n, decimalPlaces(field))
		}
	}
	return value
}

func decimalPlaces(field *schema.Field) int {
	if field.ExtractionHints != nil {
		if v, ok := field.ExtractionHints["decimal_places"]; ok {
			if n, ok := asFloat(v); ok {
				return int(n)
			}
		}
	}
	return 2
}

func roundToPlaces(v float64, places int) float64 {
	r, err := strconv.ParseFloat(fmt.Sprintf("%.*f", places, v), 64)
	if err != nil {
		return v
	}
	return r
}

func formatThousands(v float64, places int) string {
	s := fmt.Sprintf("%.*f", places, v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

func formatTimestamp(value any, layout string) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(layout), true
	case string:
		for _, l := range append([]string{layout}, datetimeLayouts...) {
			if t, err := time.Parse(l, v); err == nil {
				return t.Format(layout), true
			}
		}
	}
	return "", false
}

func titleCaseWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func formatPhone(raw string) string {
	digits := phoneSeparatorPattern.ReplaceAllString(raw, "")
	digits = strings.TrimPrefix(digits, "+1")
	if len(digits) == 10 {
		return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
	}
	return raw
}

// summaryFieldPriority is the fallback priority table by semantic_type,
// used when the field declares no summary_priority; a field whose
// semantic_type is not listed falls back to a name-based heuristic. No
// domain strategy is consulted (spec §4.7 step 3).
var summaryFieldPriority = map[string]int{
	"order_identifier": 100,
	"person_name":       90,
	"identifier":        90,
	"monetary_amount":   85,
	"status":            80,
	"contact_email":     75,
	"location":          70,
	"contact_info":      65,
}

func (f *ResponseFormatter) summaryFields(entityName string, rows []map[string]any) []string {
	entity := f.domain.GetEntity(entityName)
	type scored struct {
		name     string
		priority int
	}
	var candidates []scored
	seen := make(map[string]bool)

	if entity != nil {
		for name, field := range entity.Fields {
			candidates = append(candidates, scored{name: name, priority: fieldPriority(field)})
			seen[name] = true
		}
	}
	if len(rows) > 0 {
		for name := range rows[0] {
			if !seen[name] {
				candidates = append(candidates, scored{name: name, priority: genericNamePriority(name)})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].priority > candidates[j].priority })

	limit := 5
	if limit > len(candidates) {
		limit = len(candidates)
	}
	names := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		names = append(names, c.name)
	}
	return names
}

func fieldPriority(field *schema.Field) int {
	if field.SummaryPriority != nil {
		return *field.SummaryPriority
	}
	if p, ok := summaryFieldPriority[field.SemanticType]; ok {
		return p
	}
	return genericNamePriority(field.Name)
}

func genericNamePriority(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "id"):
		return 50
	case strings.Contains(lower, "name") || strings.Contains(lower, "title"):
		return 45
	case strings.Contains(lower, "status") || strings.Contains(lower, "state"):
		return 40
	case strings.Contains(lower, "date") || strings.Contains(lower, "time"):
		return 35
	case strings.Contains(lower, "amount") || strings.Contains(lower, "total") || strings.Contains(lower, "price"):
		return 30
	default:
		return 1
	}
}
