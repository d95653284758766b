package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// ValueExtractor pulls a typed value for one domain field out of a user
// query: a field-specific pattern first, then a numeric range, then any
// domain-declared semantic-type pattern, finally a generic `key: value`
// context match (spec §4.6 step 2), grounded on the pipeline's
// value_extractor stage.
type ValueExtractor struct {
	domain  *schema.DomainConfig
	builder *PatternBuilder
}

// NewValueExtractor builds a ValueExtractor bound to domain and its
// compiled patterns.
func NewValueExtractor(domain *schema.DomainConfig, builder *PatternBuilder) *ValueExtractor {
	return &ValueExtractor{domain: domain, builder: builder}
}

// Extract attempts to pull entityName.fieldName's value out of query.
func (v *ValueExtractor) Extract(query, entityName, fieldName string) (any, bool) {
	field := v.domain.GetField(entityName, fieldName)
	if field == nil {
		return nil, false
	}

	if pattern, ok := v.builder.Pattern(entityName, fieldName); ok {
		if m := pattern.FindStringSubmatch(query); m != nil {
			raw := m[len(m)-1]
			return v.parseValue(raw, field.DataType), true
		}
	}

	if field.DataType == "integer" || field.DataType == "decimal" {
		if rangePattern, ok := v.builder.RangePattern(entityName, fieldName); ok {
			if m := rangePattern.FindStringSubmatch(query); len(m) == 3 {
				lo := v.parseValue(m[1], field.DataType)
				hi := v.parseValue(m[2], field.DataType)
				return map[string]any{"min": lo, "max": hi}, true
			}
		}
	}

	if semType, ok := v.domain.SemanticTypes[field.SemanticType]; ok {
		for _, rp := range semType.RegexPatterns {
			if re, err := regexp.Compile(rp.Pattern); err == nil {
				if m := re.FindStringSubmatch(query); m != nil && rp.ValueGroup < len(m) {
					return v.parseValue(m[rp.ValueGroup], field.DataType), true
				}
			}
		}
	}

	if raw, ok := contextValue(query, fieldName); ok {
		return v.parseValue(raw, field.DataType), true
	}

	return nil, false
}

var contextPattern = `(?i)%s\s*[:=]\s*["']?([^"'\s,;]+)["']?`

func contextValue(query, fieldName string) (string, bool) {
	pattern := strings.ReplaceAll(fieldName, "_", "[_\\s]")
	re, err := regexp.Compile(strings.ReplaceAll(contextPattern, "%s", pattern))
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseValue type-converts raw text per the field's data type (spec §4.6
// step 2: integer/decimal strip `$,`, date normalized to ISO, boolean via
// true/yes/1/active/enabled vs false/no/0/inactive/disabled).
func (v *ValueExtractor) parseValue(raw, dataType string) any {
	switch dataType {
	case "integer":
		clean := stripCurrency(raw)
		n, err := strconv.Atoi(clean)
		if err != nil {
			return raw
		}
		return n
	case "decimal":
		clean := stripCurrency(raw)
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return raw
		}
		return f
	case "date", "datetime":
		return normalizeDate(raw)
	case "boolean":
		return parseBoolean(raw)
	default:
		return raw
	}
}

func stripCurrency(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

var inputDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func normalizeDate(raw string) string {
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func parseBoolean(raw string) any {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch lower {
	case "true", "yes", "1", "active", "enabled":
		return true
	case "false", "no", "0", "inactive", "disabled":
		return false
	default:
		return nil
	}
}

// ExtractTemplateParameter extracts a value for a template parameter. A
// parameter bound to an entity field is delegated to Extract; any other
// is matched by its type (date, boolean, integer/decimal, email), then
// against its allowed values, then as a quoted string, then as a
// capitalized name (spec §4.6 step 2).
func (v *ValueExtractor) ExtractTemplateParameter(query string, param schema.Parameter) (any, bool) {
	if param.Entity != "" && param.Field != "" {
		return v.Extract(query, param.Entity, param.Field)
	}
	return v.extractGenericParameter(query, param)
}

var quotedStringPattern = regexp.MustCompile(`["']([^"']+)["']`)
var capitalizedNamePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`)

func (v *ValueExtractor) extractGenericParameter(query string, param schema.Parameter) (any, bool) {
	switch param.EffectiveType() {
	case "date", "datetime":
		if m := datePattern.FindString(query); m != "" {
			return normalizeDate(m), true
		}
	case "boolean":
		for _, word := range strings.Fields(query) {
			if b := parseBoolean(word); b != nil {
				return b, true
			}
		}
	case "integer", "decimal":
		if m := decimalPattern.FindStringSubmatch(query); m != nil {
			return v.parseValue(m[1], param.EffectiveType()), true
		}
	case "email":
		if m := emailPattern.FindString(query); m != "" {
			return m, true
		}
	}

	if len(param.AllowedValues) > 0 {
		lower := strings.ToLower(query)
		for _, allowed := range param.AllowedValues {
			if strings.Contains(lower, strings.ToLower(allowed)) {
				return allowed, true
			}
		}
	}

	if m := quotedStringPattern.FindStringSubmatch(query); m != nil {
		return m[1], true
	}
	if m := capitalizedNamePattern.FindString(query); m != "" {
		return m, true
	}

	return nil, false
}
