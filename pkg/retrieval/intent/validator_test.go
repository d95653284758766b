package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

func buildValidatorTestDomain() *schema.DomainConfig {
	minLen := 2.0
	order := &schema.Entity{
		Name: "order",
		Fields: map[string]*schema.Field{
			"customer_id": {Name: "customer_id", DataType: "integer"},
			"total":       {Name: "total", DataType: "decimal", ValidationRules: map[string]any{"min": 0.0, "max": 100000.0}},
			"status":      {Name: "status", DataType: "string", ValidationRules: map[string]any{"allowed_values": []string{"pending", "shipped", "cancelled"}}},
			"email":       {Name: "email", DataType: "email"},
			"note":        {Name: "note", DataType: "string", ValidationRules: map[string]any{"min_length": minLen, "max_length": 5.0}},
		},
	}
	return schema.NewDomainConfig("orders", "ecommerce", "", map[string]*schema.Entity{"order": order}, []string{"order"})
}

func TestValidator_Validate_TypeMismatch(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	ok, msg := v.Validate("not a number", "order", "customer_id")
	assert.False(t, ok)
	assert.Contains(t, msg, "invalid type")
}

func TestValidator_Validate_UnknownFieldIsPermissive(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())
	ok, msg := v.Validate("anything", "order", "nonexistent_field")
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestValidator_Validate_NilValueIsAlwaysValidType(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())
	ok, _ := v.Validate(nil, "order", "customer_id")
	assert.True(t, ok)
}

func TestValidator_Validate_MinMaxRules(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	ok, _ := v.Validate(-5.0, "order", "total")
	assert.False(t, ok, "below min must fail")

	ok, _ = v.Validate(200000.0, "order", "total")
	assert.False(t, ok, "above max must fail")

	ok, _ = v.Validate(500.0, "order", "total")
	assert.True(t, ok)
}

func TestValidator_Validate_AllowedValues(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	ok, _ := v.Validate("shipped", "order", "status")
	assert.True(t, ok)

	ok, msg := v.Validate("teleporting", "order", "status")
	assert.False(t, ok)
	assert.Contains(t, msg, "must be one of")
}

func TestValidator_Validate_StringLengthRules(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	ok, _ := v.Validate("x", "order", "note")
	assert.False(t, ok, "shorter than min_length must fail")

	ok, _ = v.Validate("toolong", "order", "note")
	assert.False(t, ok, "longer than max_length must fail")

	ok, _ = v.Validate("ok", "order", "note")
	assert.True(t, ok)
}

func TestValidator_Validate_Email(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	ok, _ := v.Validate("jane@example.com", "order", "email")
	assert.True(t, ok)

	ok, _ = v.Validate("not-an-email", "order", "email")
	assert.False(t, ok)
}

func TestValidator_ValidateAll(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())

	errs := v.ValidateAll(map[string]any{
		"order.customer_id": "abc",
		"order.total":        500.0,
		"malformed_key":      "no dot",
	})

	assert.Contains(t, errs, "customer_id")
	assert.NotContains(t, errs, "total")
}

func TestValidator_Sanitize_StringTrimAndTruncate(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())
	out := v.Sanitize("  toolong  ", "order", "note")
	assert.Equal(t, "toolo", out, "trimmed then truncated to max_length=5")
}

func TestValidator_Sanitize_EmailLowercasesAndTrims(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())
	out := v.Sanitize("  Jane@Example.COM  ", "order", "email")
	assert.Equal(t, "jane@example.com", out)
}

func TestValidator_Sanitize_UnknownFieldReturnsValueUnchanged(t *testing.T) {
	v := NewValidator(buildValidatorTestDomain())
	out := v.Sanitize(42, "order", "nonexistent")
	assert.Equal(t, 42, out)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, isValidDate("2024-03-15"))
	assert.False(t, isValidDate("03/15/2024"), "only the canonical ISO layout is accepted by the date type itself")
	assert.False(t, isValidDate(42))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, isValidPhone("(555) 123-4567"))
	assert.True(t, isValidPhone("+1 555 123 4567"))
	assert.False(t, isValidPhone("123"))
}
