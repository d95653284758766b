// Package schema holds the data shapes shared across the retrieval pipeline:
// context items returned to callers, templates and template libraries for
// the intent pipeline, and the domain configuration that drives extraction
// and response formatting.
package schema

import "sort"

// ContextItem is the unit of result returned by every retriever. Confidence
// is the final ranking score in [0,1]; Metadata always carries at least
// "source" (backend/datasource name) and "collection" (resolved collection
// name).
type ContextItem struct {
	Content     string         `json:"content"`
	RawDocument string         `json:"raw_document,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Confidence  float32        `json:"confidence"`
}

// MetaString returns a string-typed metadata value, or "" if absent/wrong type.
func (c *ContextItem) MetaString(key string) string {
	if c.Metadata == nil {
		return ""
	}
	if v, ok := c.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// WithMeta sets a metadata key, allocating the map if needed, and returns
// the item for chaining.
func (c *ContextItem) WithMeta(key string, value any) *ContextItem {
	if c.Metadata == nil {
		c.Metadata = make(map[string]any)
	}
	c.Metadata[key] = value
	return c
}

// ByConfidenceDescending sorts items in place by descending Confidence. It
// is stable so ties preserve backend-return order, satisfying the
// deterministic-reproducibility invariant of spec §8.
func ByConfidenceDescending(items []ContextItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Confidence > items[j].Confidence
	})
}
