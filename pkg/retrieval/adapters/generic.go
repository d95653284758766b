// Package adapters implements the Adapter capability variants named in
// spec §3: Generic, QA, File, Intent. Each shapes raw backend rows into
// ContextItems and optionally filters/extracts a direct answer.
package adapters

import (
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// GenericAdapter is the baseline Adapter: it copies raw content and
// metadata into a ContextItem, offers no direct-answer shortcut, and
// applies no domain filtering. Every other adapter variant either wraps
// or overrides pieces of this behavior.
type GenericAdapter struct {
	SourceName string
}

// NewGenericAdapter builds an adapter tagged with the backend/datasource name
// that FormatDocument stamps into metadata["source"].
func NewGenericAdapter(sourceName string) *GenericAdapter {
	return &GenericAdapter{SourceName: sourceName}
}

// FormatDocument builds a ContextItem from a raw document body and its
// backend metadata, stamping the source name (spec §3 ContextItem
// invariant: metadata always carries "source").
func (a *GenericAdapter) FormatDocument(raw string, metadata map[string]any) schema.ContextItem {
	meta := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	if _, ok := meta["source"]; !ok {
		meta["source"] = a.SourceName
	}
	return schema.ContextItem{
		Content:     raw,
		RawDocument: raw,
		Metadata:    meta,
	}
}

// ExtractDirectAnswer never shortcuts for the generic adapter.
func (a *GenericAdapter) ExtractDirectAnswer(schema.ContextItem) (string, bool) {
	return "", false
}

// ApplyDomainFiltering is the identity transform; generic documents carry
// no domain semantics to filter on.
func (a *GenericAdapter) ApplyDomainFiltering(items []schema.ContextItem, _ string) []schema.ContextItem {
	return items
}

// containsAnyFold reports whether s contains any of substrs, case-insensitively.
func containsAnyFold(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
