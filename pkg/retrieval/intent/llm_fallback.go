package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// LLMFallback asks the configured inference client to extract a parameter
// value pattern matching missed, one parameter at a time or batched
// (spec §4.6 step 3), grounded on the pipeline's llm_fallback stage.
type LLMFallback struct {
	inference iface.Inference
	domain    *schema.DomainConfig
}

// NewLLMFallback builds an LLMFallback bound to inference and domain.
func NewLLMFallback(inference iface.Inference, domain *schema.DomainConfig) *LLMFallback {
	return &LLMFallback{inference: inference, domain: domain}
}

// ExtractOne asks the LLM for a single parameter's value.
func (f *LLMFallback) ExtractOne(ctx context.Context, userQuery string, param schema.Parameter, templateDescription string) (any, bool) {
	prompt := f.buildExtractionPrompt(userQuery, param, templateDescription)
	response, err := f.inference.Generate(ctx, prompt)
	if err != nil {
		return nil, false
	}
	return f.parseResponse(response, param)
}

func (f *LLMFallback) buildExtractionPrompt(userQuery string, param schema.Parameter, templateDescription string) string {
	domainContext := f.domainContext(param)

	var b strings.Builder
	fmt.Fprintf(&b, "Extract the value for parameter %q from the user's query.\n\n", param.Name)
	fmt.Fprintf(&b, "User Query: %q\n\n", userQuery)
	fmt.Fprintf(&b, "Template Context: %s\n", templateDescription)
	fmt.Fprintf(&b, "Parameter Details:\n- Name: %s\n- Type: %s\n- Description: %s\n\n",
		param.Name, param.EffectiveType(), param.ExtractionHints["description"])
	if domainContext != "" {
		b.WriteString(domainContext)
		b.WriteString("\n\n")
	}
	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. Look for the %s value in the user's query\n", param.Name)
	b.WriteString("2. If found, extract and format it according to the type\n")
	b.WriteString("3. If not explicitly stated, infer from context if possible\n")
	b.WriteString("4. Return ONLY the extracted value or \"NOT_FOUND\" if not present\n\n")
	b.WriteString("For date values, use YYYY-MM-DD format.\n")
	b.WriteString("For numeric values, return the number without currency symbols or commas.\n\n")
	b.WriteString("Response:")
	return b.String()
}

func (f *LLMFallback) domainContext(param schema.Parameter) string {
	var parts []string
	if param.Entity != "" {
		if entity := f.domain.GetEntity(param.Entity); entity != nil {
			name := entity.DisplayName
			if name == "" {
				name = entity.Name
			}
			parts = append(parts, "Entity: "+name)
			if entity.Description != "" {
				parts = append(parts, "Entity Description: "+entity.Description)
			}
			if syns := f.domain.GetEntitySynonyms(param.Entity); len(syns) > 0 {
				parts = append(parts, "Entity Synonyms: "+strings.Join(syns, ", "))
			}
		}
	}
	if param.Field != "" && param.Entity != "" {
		if field := f.domain.GetField(param.Entity, param.Field); field != nil {
			if field.DisplayName != "" {
				parts = append(parts, "Field Display Name: "+field.DisplayName)
			}
			if syns := f.domain.GetFieldSynonyms(param.Field); len(syns) > 0 {
				parts = append(parts, "Field Synonyms: "+strings.Join(syns, ", "))
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Domain Context:\n" + strings.Join(parts, "\n")
}

func (f *LLMFallback) parseResponse(response string, param schema.Parameter) (any, bool) {
	response = strings.TrimSpace(response)
	if response == "" || response == "NOT_FOUND" {
		return nil, false
	}

	if strings.HasPrefix(response, "{") || strings.HasPrefix(response, "[") {
		var parsed any
		if err := json.Unmarshal([]byte(response), &parsed); err == nil {
			return parsed, true
		}
	}

	switch param.EffectiveType() {
	case "integer":
		clean := digitsOnly(response)
		n, err := strconv.Atoi(clean)
		if err != nil {
			return nil, false
		}
		return n, true
	case "decimal":
		clean := stripCurrency(response)
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, false
		}
		return v, true
	case "boolean":
		b := parseBoolean(response)
		if b == nil {
			return nil, false
		}
		return b, true
	default:
		return response, true
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractMany asks the LLM to extract several parameters in a single call,
// returning only the ones it could resolve (spec §4.6 step 3: batched
// when two or more parameters are missing).
func (f *LLMFallback) ExtractMany(ctx context.Context, userQuery string, params []schema.Parameter, templateDescription string) map[string]any {
	prompt := f.buildBatchPrompt(userQuery, params, templateDescription)
	response, err := f.inference.Generate(ctx, prompt)
	if err != nil {
		return map[string]any{}
	}
	return f.parseBatchResponse(response, params)
}

func (f *LLMFallback) buildBatchPrompt(userQuery string, params []schema.Parameter, templateDescription string) string {
	var descriptions []string
	for _, p := range params {
		desc := fmt.Sprintf("- %s (%s)", p.Name, p.EffectiveType())
		if d, ok := p.ExtractionHints["description"].(string); ok && d != "" {
			desc += ": " + d
		}
		descriptions = append(descriptions, desc)
	}

	var b strings.Builder
	b.WriteString("Extract parameter values from the user's query.\n\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", userQuery)
	fmt.Fprintf(&b, "Template Context: %s\n\n", templateDescription)
	b.WriteString("Parameters to extract:\n")
	b.WriteString(strings.Join(descriptions, "\n"))
	b.WriteString("\n\nReturn a JSON object with parameter names as keys and extracted values.\n")
	b.WriteString("Use null for parameters that cannot be extracted from the query.\n\n")
	b.WriteString("Response:")
	return b.String()
}

func (f *LLMFallback) parseBatchResponse(response string, params []schema.Parameter) map[string]any {
	response = strings.TrimSpace(response)
	if strings.Contains(response, "```json") {
		response = strings.SplitN(strings.SplitN(response, "```json", 2)[1], "```", 2)[0]
	} else if strings.Contains(response, "```") {
		parts := strings.SplitN(response, "```", 3)
		if len(parts) >= 2 {
			response = parts[1]
		}
	}
	response = strings.TrimSpace(response)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any)
	for _, p := range params {
		v, ok := parsed[p.Name]
		if !ok || v == nil {
			continue
		}
		out[p.Name] = convertBatchValue(v, p.EffectiveType())
	}
	return out
}

func convertBatchValue(value any, dataType string) any {
	switch dataType {
	case "integer":
		switch n := value.(type) {
		case float64:
			return int(n)
		case string:
			i, err := strconv.Atoi(n)
			if err == nil {
				return i
			}
		}
	case "decimal":
		switch n := value.(type) {
		case float64:
			return n
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err == nil {
				return f
			}
		}
	case "boolean":
		switch b := value.(type) {
		case bool:
			return b
		case string:
			return parseBoolean(b) == true
		}
	}
	return fmt.Sprintf("%v", value)
}
