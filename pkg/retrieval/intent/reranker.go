package intent

import (
	"sort"
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// TemplateReranker adjusts a similarity-ranked TemplateMatch list with
// additive lexical boosts, capped at 1.0, then re-sorts descending
// (spec §4.9).
type TemplateReranker struct {
	domain   *schema.DomainConfig
	strategy DomainStrategy
}

// NewTemplateReranker builds a TemplateReranker bound to domain and its
// resolved DomainStrategy.
func NewTemplateReranker(domain *schema.DomainConfig, strategy DomainStrategy) *TemplateReranker {
	if strategy == nil {
		strategy = NewGenericDomainStrategy()
	}
	return &TemplateReranker{domain: domain, strategy: strategy}
}

// Rerank boosts and re-sorts matches for query, returning a new slice.
func (r *TemplateReranker) Rerank(query string, matches []schema.TemplateMatch) []schema.TemplateMatch {
	out := make([]schema.TemplateMatch, len(matches))
	copy(out, matches)

	for i := range out {
		boost := r.boost(query, out[i].TemplateData)
		out[i].Similarity = clampSim(out[i].Similarity+boost, 0, 1)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out
}

func clampSim(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *TemplateReranker) boost(query string, tmpl schema.Template) float32 {
	var total float32
	lowerQuery := strings.ToLower(query)

	if tag := tmpl.SemanticTags.PrimaryEntity; tag != "" {
		if strings.Contains(lowerQuery, strings.ToLower(tag)) {
			total += 0.2
		} else if r.domain != nil {
			for _, syn := range r.domain.GetEntitySynonyms(tag) {
				if strings.Contains(lowerQuery, strings.ToLower(syn)) {
					total += 0.15
					break
				}
			}
		}
	}

	if action := tmpl.SemanticTags.Action; action != "" && actionMatches(action, query) {
		total += 0.15
	}

	for _, qualifier := range tmpl.SemanticTags.Qualifiers {
		if strings.Contains(lowerQuery, strings.ToLower(qualifier)) {
			total += 0.1
		}
	}

	for _, tag := range tmpl.Tags {
		if strings.Contains(lowerQuery, strings.ToLower(tag)) {
			total += 0.05
		}
	}

	total += bestExampleBoost(query, tmpl.NLExamples)

	if r.domain != nil {
		total += r.strategy.CalculateDomainBoost(tmpl, query, r.domain)
	}

	return total
}

// bestExampleBoost returns up to +0.2 scaled by the best Jaccard token
// similarity between query and any of tmpl's nl_examples, when that
// similarity is at least 0.5 (spec §4.9).
func bestExampleBoost(query string, examples []string) float32 {
	var best float64
	queryTokens := tokenSet(query)
	for _, ex := range examples {
		sim := jaccard(queryTokens, tokenSet(ex))
		if sim > best {
			best = sim
		}
	}
	if best < 0.5 {
		return 0
	}
	return float32(best * 0.2)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
