package intent

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// Validator checks extracted parameter values against the field's declared
// data type and validation_rules (spec §4.6 step 4), grounded on the
// extraction pipeline's validator stage.
type Validator struct {
	domain *schema.DomainConfig
}

// NewValidator builds a Validator bound to domain.
func NewValidator(domain *schema.DomainConfig) *Validator {
	return &Validator{domain: domain}
}

// Validate reports whether value is acceptable for entityName.fieldName,
// returning a human-readable error message when it is not.
func (v *Validator) Validate(value any, entityName, fieldName string) (bool, string) {
	field := v.domain.GetField(entityName, fieldName)
	if field == nil {
		return true, ""
	}
	if !validateType(value, field.DataType) {
		return false, fmt.Sprintf("invalid type for %s: expected %s", fieldName, field.DataType)
	}
	if len(field.ValidationRules) > 0 {
		return validateRules(value, field.ValidationRules, fieldName)
	}
	return true, ""
}

func validateType(value any, dataType string) bool {
	if value == nil {
		return true
	}
	switch dataType {
	case "integer":
		switch value.(type) {
		case int, int32, int64:
			return true
		case string:
			return isAllDigits(value.(string))
		}
		return false
	case "decimal":
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "date":
		return isValidDate(value)
	case "datetime":
		return isValidDatetime(value)
	case "email":
		s, ok := value.(string)
		return ok && emailExactPattern.MatchString(s)
	case "phone":
		s, ok := value.(string)
		return ok && isValidPhone(s)
	default:
		return true
	}
}

var emailExactPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var dateLayouts = []string{"2006-01-02"}
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

func isValidDate(value any) bool {
	if t, ok := value.(time.Time); ok {
		_ = t
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isValidDatetime(value any) bool {
	if t, ok := value.(time.Time); ok {
		_ = t
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

var phoneSeparatorPattern = regexp.MustCompile(`[\s\-().]`)

func isValidPhone(value string) bool {
	clean := phoneSeparatorPattern.ReplaceAllString(value, "")
	clean = strings.TrimPrefix(clean, "+")
	if !isAllDigits(clean) {
		return false
	}
	return len(clean) >= 10 && len(clean) <= 15
}

func validateRules(value any, rules map[string]any, fieldName string) (bool, string) {
	if min, ok := numericRule(rules, "min"); ok {
		if n, ok := asFloat(value); ok && n < min {
			return false, fmt.Sprintf("%s must be at least %v", fieldName, min)
		}
	}
	if max, ok := numericRule(rules, "max"); ok {
		if n, ok := asFloat(value); ok && n > max {
			return false, fmt.Sprintf("%s must be at most %v", fieldName, max)
		}
	}
	if s, ok := value.(string); ok {
		if minLen, ok := numericRule(rules, "min_length"); ok && float64(len(s)) < minLen {
			return false, fmt.Sprintf("%s must be at least %v characters", fieldName, minLen)
		}
		if maxLen, ok := numericRule(rules, "max_length"); ok && float64(len(s)) > maxLen {
			return false, fmt.Sprintf("%s must be at most %v characters", fieldName, maxLen)
		}
		if pat, ok := rules["pattern"].(string); ok {
			if re, err := regexp.Compile(pat); err == nil && !re.MatchString(s) {
				desc, _ := rules["pattern_description"].(string)
				if desc == "" {
					desc = "required format"
				}
				return false, fmt.Sprintf("%s does not match %s", fieldName, desc)
			}
		}
	}
	if allowed, ok := rules["allowed_values"].([]string); ok {
		if !containsString(allowed, fmt.Sprintf("%v", value)) {
			return false, fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(allowed, ", "))
		}
	}
	if required, _ := rules["required"].(bool); required && value == nil {
		return false, fmt.Sprintf("%s is required", fieldName)
	}
	return true, ""
}

func numericRule(rules map[string]any, key string) (float64, bool) {
	v, ok := rules[key]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// ValidateAll validates a flat "entity.field" -> value parameter map,
// returning per-field error lists (spec §4.6 step 4).
func (v *Validator) ValidateAll(parameters map[string]any) map[string][]string {
	errors := make(map[string][]string)
	for key, value := range parameters {
		entityName, fieldName, ok := strings.Cut(key, ".")
		if !ok {
			continue
		}
		if valid, msg := v.Validate(value, entityName, fieldName); !valid && msg != "" {
			errors[fieldName] = append(errors[fieldName], msg)
		}
	}
	return errors
}

// Sanitize normalizes a value for a field: trims/truncates strings, lowers
// emails, and strips phone separators (spec §4.6 step 4).
func (v *Validator) Sanitize(value any, entityName, fieldName string) any {
	field := v.domain.GetField(entityName, fieldName)
	if field == nil {
		return value
	}
	switch field.DataType {
	case "string":
		s, ok := value.(string)
		if !ok {
			return value
		}
		s = strings.TrimSpace(s)
		if maxLen, ok := numericRule(field.ValidationRules, "max_length"); ok && float64(len(s)) > maxLen {
			s = s[:int(maxLen)]
		}
		return s
	case "email":
		if s, ok := value.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	case "phone":
		if s, ok := value.(string); ok {
			return phoneSeparatorPattern.ReplaceAllString(s, "")
		}
	}
	return value
}
