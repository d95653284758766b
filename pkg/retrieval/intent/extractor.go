package intent

import (
	"context"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// DomainParameterExtractor orchestrates pattern extraction, LLM fallback
// for still-missing required parameters, validation, and default
// application (spec §4.6), grounded on the pipeline's extractor facade.
type DomainParameterExtractor struct {
	domain    *schema.DomainConfig
	builder   *PatternBuilder
	values    *ValueExtractor
	validator *Validator
	llm       *LLMFallback
}

// NewDomainParameterExtractor wires the extraction sub-stages together.
// inference may be nil, in which case pattern-only extraction applies and
// missing required parameters are simply left unset.
func NewDomainParameterExtractor(domain *schema.DomainConfig, inference iface.Inference) *DomainParameterExtractor {
	builder := NewPatternBuilder(domain)
	e := &DomainParameterExtractor{
		domain:    domain,
		builder:   builder,
		values:    NewValueExtractor(domain, builder),
		validator: NewValidator(domain),
	}
	if inference != nil {
		e.llm = NewLLMFallback(inference, domain)
	}
	return e
}

// ExtractionResult carries the resolved parameter values plus any
// validation errors encountered.
type ExtractionResult struct {
	Parameters map[string]any
	Errors     map[string][]string
}

// Extract runs the two-pass extraction pipeline (spec §4.6): pattern-based
// first, LLM fallback for missing required parameters (batched when two or
// more are still missing), defaults applied last, then validation.
func (e *DomainParameterExtractor) Extract(ctx context.Context, userQuery, templateDescription string, params []schema.Parameter) ExtractionResult {
	values := make(map[string]any)

	var missing []schema.Parameter
	for _, p := range params {
		if v, ok := e.values.ExtractTemplateParameter(userQuery, p); ok {
			values[p.Name] = v
			continue
		}
		if p.Required {
			missing = append(missing, p)
		}
	}

	if e.llm != nil && len(missing) > 0 {
		if len(missing) >= 2 {
			batch := e.llm.ExtractMany(ctx, userQuery, missing, templateDescription)
			for _, p := range missing {
				if v, ok := batch[p.Name]; ok {
					values[p.Name] = v
				}
			}
		} else {
			p := missing[0]
			if v, ok := e.llm.ExtractOne(ctx, userQuery, p, templateDescription); ok {
				values[p.Name] = v
			}
		}
	}

	for _, p := range params {
		if _, ok := values[p.Name]; !ok && p.Default != nil {
			values[p.Name] = p.Default
		}
	}

	keyed := make(map[string]any, len(values))
	for _, p := range params {
		v, ok := values[p.Name]
		if !ok {
			continue
		}
		if p.Entity != "" && p.Field != "" {
			v = e.validator.Sanitize(v, p.Entity, p.Field)
			keyed[p.Entity+"."+p.Field] = v
		}
		values[p.Name] = v
	}

	return ExtractionResult{Parameters: values, Errors: e.validator.ValidateAll(keyed)}
}

// MissingRequired reports which required parameters still have no value
// after Extract ran.
func (r ExtractionResult) MissingRequired(params []schema.Parameter) []string {
	var missing []string
	for _, p := range params {
		if !p.Required {
			continue
		}
		if _, ok := r.Parameters[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	return missing
}
