package adapters

import "github.com/lookatitude/beluga-ai/pkg/retrieval/schema"

// IntentAdapter is the Adapter variant intent retrievers use. Unlike the
// other variants it is mostly a typed holder: the intent pipeline builds
// its single ContextItem directly from DomainResponseGenerator output
// (spec §4.4 step 9), so FormatDocument/ApplyDomainFiltering are simple
// pass-throughs; the adapter's real job is owning the loaded domain
// configuration and template library other components dereference.
type IntentAdapter struct {
	*GenericAdapter
	Domain          *schema.DomainConfig
	TemplateLibrary schema.TemplateLibrary
}

// NewIntentAdapter builds an IntentAdapter bound to one domain config and
// template library.
func NewIntentAdapter(sourceName string, domain *schema.DomainConfig, templates schema.TemplateLibrary) *IntentAdapter {
	return &IntentAdapter{
		GenericAdapter:  NewGenericAdapter(sourceName),
		Domain:          domain,
		TemplateLibrary: templates,
	}
}

// ExtractDirectAnswer never shortcuts: intent answers are always
// LLM-synthesized from query results, never pulled verbatim from a document.
func (a *IntentAdapter) ExtractDirectAnswer(schema.ContextItem) (string, bool) {
	return "", false
}
