package adapters

import (
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// FileAdapter specializes QAAdapter (spec §9 design note: "FileAdapter
// specializes QAAdapter by wrapping it and extending its filtering"). It
// adds file-type exclusion: documents tagged with a file_type the query
// explicitly excludes ("not in pdfs", "excluding images") are dropped. A
// filename or file type mentioned in the query gives no relevance boost
// and does not keep a document that filtering would drop.
type FileAdapter struct {
	*QAAdapter
}

// NewFileAdapter builds a FileAdapter tagged with the backend/datasource name.
func NewFileAdapter(sourceName string) *FileAdapter {
	return &FileAdapter{QAAdapter: NewQAAdapter(sourceName)}
}

// ApplyDomainFiltering delegates to the wrapped QAAdapter's (generic)
// pass-through, then drops items whose file_type is explicitly excluded
// by the query.
func (a *FileAdapter) ApplyDomainFiltering(items []schema.ContextItem, query string) []schema.ContextItem {
	items = a.QAAdapter.ApplyDomainFiltering(items, query)

	excluded := excludedFileTypes(query)
	if len(excluded) == 0 {
		return items
	}

	filtered := make([]schema.ContextItem, 0, len(items))
	for _, item := range items {
		fileType, _ := item.Metadata["file_type"].(string)
		if fileType != "" && excluded[strings.ToLower(fileType)] {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// excludedFileTypes parses "not pdf"/"excluding images"/"without docs"
// style query fragments into a set of lower-cased file-type tokens.
func excludedFileTypes(query string) map[string]bool {
	lower := strings.ToLower(query)
	markers := []string{"not ", "excluding ", "without ", "except "}
	excluded := map[string]bool{}
	for _, marker := range markers {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		rest := lower[idx+len(marker):]
		fields := strings.FieldsFunc(rest, func(r rune) bool {
			return r == ' ' || r == ',' || r == '.'
		})
		if len(fields) > 0 {
			excluded[strings.TrimSuffix(fields[0], "s")] = true
		}
	}
	return excluded
}
