package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// PatternBuilder compiles one regex per searchable/filterable domain field,
// plus a companion range pattern for numeric fields, grounded on the
// extraction pipeline's pattern_builder stage (spec §4.6 step 1).
type PatternBuilder struct {
	domain *schema.DomainConfig

	patterns      map[string]*regexp.Regexp
	rangePatterns map[string]*regexp.Regexp
}

// NewPatternBuilder builds and compiles every pattern for domain up front.
func NewPatternBuilder(domain *schema.DomainConfig) *PatternBuilder {
	b := &PatternBuilder{
		domain:        domain,
		patterns:      make(map[string]*regexp.Regexp),
		rangePatterns: make(map[string]*regexp.Regexp),
	}
	b.build()
	return b
}

func (b *PatternBuilder) build() {
	for entityName, entity := range b.domain.Entities {
		for fieldName, field := range entity.Fields {
			if !field.Searchable && !field.Filterable {
				continue
			}
			key := entityName + "." + fieldName
			if p := b.patternForField(entityName, field); p != nil {
				b.patterns[key] = p
			}
			if field.DataType == "integer" || field.DataType == "decimal" {
				if rp := b.rangePattern(field); rp != nil {
					b.rangePatterns[key] = rp
				}
			}
		}
	}
}

func (b *PatternBuilder) patternForField(entityName string, field *schema.Field) *regexp.Regexp {
	lower := strings.ToLower(field.Name)

	switch {
	case field.DataType == "integer" && strings.Contains(lower, "id"):
		return b.idPattern(entityName)
	case field.DataType == "string" && field.Name == "email":
		return emailPattern
	case field.DataType == "decimal":
		return decimalPattern
	case field.DataType == "integer":
		return integerPattern
	case field.DataType == "date":
		return datePattern
	case field.DataType == "string" && strings.Contains(lower, "phone"):
		return phonePattern
	default:
		return nil
	}
}

func (b *PatternBuilder) idPattern(entityName string) *regexp.Regexp {
	synonyms := b.domain.GetEntitySynonyms(entityName)
	names := append([]string{entityName}, synonyms...)
	for i, n := range names {
		names[i] = regexp.QuoteMeta(n)
	}
	pattern := fmt.Sprintf(`(?i)(%s)\s*(?:id\s*)?(?:#|number|id)?\s*(\d+)`, strings.Join(names, "|"))
	return regexp.MustCompile(pattern)
}

func (b *PatternBuilder) rangePattern(field *schema.Field) *regexp.Regexp {
	if field.DataType == "decimal" {
		return decimalRangePattern
	}
	return integerRangePattern
}

var (
	emailPattern        = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	decimalPattern      = regexp.MustCompile(`(?i)\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	integerPattern      = regexp.MustCompile(`(?i)\$?\s*(\d{1,3}(?:,\d{3})*)`)
	datePattern         = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4}`)
	phonePattern        = regexp.MustCompile(`(?i)\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}|\+?1?\s*\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	decimalRangePattern = regexp.MustCompile(`(?i)between\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)\s*and\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)
	integerRangePattern = regexp.MustCompile(`(?i)between\s*\$?\s*(\d{1,3}(?:,\d{3})*)\s*and\s*\$?\s*(\d{1,3}(?:,\d{3})*)`)
)

// Pattern returns the compiled pattern for entity.field, if one was built.
func (b *PatternBuilder) Pattern(entityName, fieldName string) (*regexp.Regexp, bool) {
	p, ok := b.patterns[entityName+"."+fieldName]
	return p, ok
}

// RangePattern returns the compiled range pattern for entity.field, if one was built.
func (b *PatternBuilder) RangePattern(entityName, fieldName string) (*regexp.Regexp, bool) {
	p, ok := b.rangePatterns[entityName+"."+fieldName]
	return p, ok
}
