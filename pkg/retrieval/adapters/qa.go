package adapters

import (
	"regexp"
	"strings"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// qaAnswerPattern recognizes "Q: ... A: <answer>" shaped FAQ documents,
// the shape produced by most Chroma/Qdrant FAQ ingestion pipelines.
var qaAnswerPattern = regexp.MustCompile(`(?is)A:\s*(.+)$`)

// QAAdapter formats FAQ-shaped documents and offers a direct-answer
// shortcut: when metadata carries an explicit "answer" field, or the
// content matches the "Q: ... A: ..." convention, ExtractDirectAnswer
// returns it so callers can skip LLM synthesis entirely.
type QAAdapter struct {
	*GenericAdapter
}

// NewQAAdapter builds a QAAdapter tagged with the backend/datasource name.
func NewQAAdapter(sourceName string) *QAAdapter {
	return &QAAdapter{GenericAdapter: NewGenericAdapter(sourceName)}
}

// ExtractDirectAnswer returns the metadata "answer" field when present,
// else the text following "A:" in the content, else false.
func (a *QAAdapter) ExtractDirectAnswer(item schema.ContextItem) (string, bool) {
	if item.Metadata != nil {
		if answer, ok := item.Metadata["answer"].(string); ok && answer != "" {
			return answer, true
		}
	}
	if m := qaAnswerPattern.FindStringSubmatch(item.Content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
