package intent

import (
	"strings"
	"sync"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// DomainStrategy is the pluggable capability set a business domain can
// supply on top of the declarative DomainConfig data (spec §4.8):
// domain names, similarity boosting, and summary-field prioritization.
// Parameter extraction is not part of it; PatternBuilder and
// ValueExtractor handle that from the domain config.
type DomainStrategy interface {
	DomainNames() []string
	CalculateDomainBoost(tmpl schema.Template, query string, domain *schema.DomainConfig) float32
	SummaryFieldPriority(field *schema.Field, domain *schema.DomainConfig) (int, bool)
}

// DomainStrategyRegistry resolves a DomainStrategy by exact domain name,
// then domain type, then falls back to GenericDomainStrategy — so every
// domain works out of the box from its declarative config alone.
type DomainStrategyRegistry struct {
	mu       sync.RWMutex
	byName   map[string]DomainStrategy
	byType   map[string]DomainStrategy
}

// NewDomainStrategyRegistry builds an empty registry; GetStrategy always
// has a fallback even with nothing registered.
func NewDomainStrategyRegistry() *DomainStrategyRegistry {
	return &DomainStrategyRegistry{byName: make(map[string]DomainStrategy), byType: make(map[string]DomainStrategy)}
}

// RegisterByName binds a strategy to an exact domain_name.
func (r *DomainStrategyRegistry) RegisterByName(domainName string, s DomainStrategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[domainName] = s
}

// RegisterByType binds a strategy to a domain_type, used when no
// domain_name-specific registration exists.
func (r *DomainStrategyRegistry) RegisterByType(domainType string, s DomainStrategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[domainType] = s
}

// GetStrategy resolves domain's strategy: by domain_name, then by
// domain_type, falling back to GenericDomainStrategy.
func (r *DomainStrategyRegistry) GetStrategy(domain *schema.DomainConfig) DomainStrategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byName[domain.DomainName]; ok {
		return s
	}
	if s, ok := r.byType[domain.DomainType]; ok {
		return s
	}
	return NewGenericDomainStrategy()
}

// GenericDomainStrategy is the data-driven fallback: it names no domains,
// adds no similarity boost, and reports a field's declared summary_priority,
// so a new domain needs no Go code to get reasonable behavior (spec §4.8).
type GenericDomainStrategy struct{}

// NewGenericDomainStrategy builds the data-driven fallback strategy.
func NewGenericDomainStrategy() GenericDomainStrategy { return GenericDomainStrategy{} }

func (GenericDomainStrategy) DomainNames() []string { return nil }

// CalculateDomainBoost has no generic boost beyond what TemplateReranker
// already applies from tags/entities/actions; a data-only domain carries
// no additional lexical disambiguation rules.
func (GenericDomainStrategy) CalculateDomainBoost(tmpl schema.Template, query string, domain *schema.DomainConfig) float32 {
	return 0
}

// SummaryFieldPriority defers entirely to the field's own declared
// summary_priority and reports no priority when it is unset; the field's
// semantic_type is not consulted.
func (GenericDomainStrategy) SummaryFieldPriority(field *schema.Field, domain *schema.DomainConfig) (int, bool) {
	if field.SummaryPriority != nil {
		return *field.SummaryPriority, true
	}
	return 0, false
}

// actionSynonyms maps a template's declared action to additional verbs
// that should count as a match for the action boost (spec §4.9).
var actionSynonyms = map[string][]string{
	"list":   {"list", "show", "find", "get", "display"},
	"count":  {"count", "how many", "number of"},
	"search": {"search", "find", "look for", "look up"},
	"update": {"update", "change", "modify", "edit"},
	"delete": {"delete", "remove", "cancel"},
	"create": {"create", "add", "new", "make"},
}

func actionMatches(action, query string) bool {
	lower := strings.ToLower(query)
	if strings.Contains(lower, strings.ToLower(action)) {
		return true
	}
	for _, syn := range actionSynonyms[strings.ToLower(action)] {
		if strings.Contains(lower, syn) {
			return true
		}
	}
	return false
}
