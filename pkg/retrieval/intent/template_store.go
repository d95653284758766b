package intent

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// MemoryTemplateStore is the default iface.TemplateStore: an ephemeral,
// process-local vector index over template embeddings, brute-force
// cosine similarity (spec §3, §4.4). Deployments that need a persistent
// store can swap in one of the vector package's backends behind the same
// interface — this implementation exists for the common "a few hundred
// templates, rebuilt per process" case.
type MemoryTemplateStore struct {
	mu        sync.RWMutex
	dimension int
	entries   []templateEntry
}

type templateEntry struct {
	templateID string
	embedding  []float32
	metadata   map[string]any
}

// NewMemoryTemplateStore builds an empty store.
func NewMemoryTemplateStore() *MemoryTemplateStore { return &MemoryTemplateStore{} }

// Initialize records the embedder's current dimension. Callers compare it
// against StoredDimension before deciding whether to Reset and reload
// (spec §4.4 step 4: "drop and recreate the store" on a dimension change).
func (s *MemoryTemplateStore) Initialize(ctx context.Context, dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.dimension = dimension
	}
	return nil
}

// Insert adds one template embedding to the store.
func (s *MemoryTemplateStore) Insert(ctx context.Context, templateID string, embedding []float32, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.dimension = len(embedding)
	}
	s.entries = append(s.entries, templateEntry{templateID: templateID, embedding: embedding, metadata: metadata})
	return nil
}

// SearchSimilar returns the templates whose embedding has cosine
// similarity ≥ threshold with queryEmbedding, ordered descending, capped
// at limit (spec §3 TemplateStore contract).
func (s *MemoryTemplateStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, threshold float32) ([]schema.TemplateMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		match schema.TemplateMatch
		sim   float32
	}
	var candidates []scored
	for _, e := range s.entries {
		sim := cosineSimilarity(queryEmbedding, e.embedding)
		if sim < threshold {
			continue
		}
		candidates = append(candidates, scored{
			match: schema.TemplateMatch{TemplateID: e.templateID, Similarity: sim},
			sim:   sim,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].sim > candidates[j].sim })

	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	out := make([]schema.TemplateMatch, len(candidates))
	for i, c := range candidates {
		out[i] = c.match
	}
	return out, nil
}

// Count returns the number of stored template embeddings.
func (s *MemoryTemplateStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Reset drops every stored embedding.
func (s *MemoryTemplateStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.dimension = 0
	return nil
}

// StoredDimension returns the embedding dimension recorded at the first
// Insert/Initialize call, and whether the store has ever held one.
func (s *MemoryTemplateStore) StoredDimension(ctx context.Context) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension, s.dimension > 0
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
