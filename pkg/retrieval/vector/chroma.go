package vector

import (
	"context"
	"fmt"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// ChromaBackend is an in-process, Chroma-compatible vector index backed by
// chromem-go (grounded on teilomillet-raggo's go.mod, which pulls the same
// library for its own Chroma-adjacent store). It honors the same cosine
// distance-to-confidence rule Chroma's HTTP API would (spec §4.3).
type ChromaBackend struct {
	mu          sync.RWMutex
	db          *chromem.DB
	collections map[string]*chromem.Collection
	hnswSpace   string
}

// NewChromaBackend constructs a ChromaBackend. hnswSpace mirrors the
// `{"hnsw:space":"cosine"}` metadata Chroma collections are created with
// (spec §4.3 per-backend specifics).
func NewChromaBackend() *ChromaBackend {
	return &ChromaBackend{
		collections: make(map[string]*chromem.Collection),
		hnswSpace:   "cosine",
	}
}

func (b *ChromaBackend) Connect(ctx context.Context) error {
	b.db = chromem.NewDB()
	return nil
}

func (b *ChromaBackend) Close() error { return nil }

func (b *ChromaBackend) EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.collections[name]; ok {
		return nil
	}
	if existing := b.db.GetCollection(name, nil); existing != nil {
		b.collections[name] = existing
		return nil
	}
	if !autoCreate {
		return fmt.Errorf("collection %q not found", name)
	}
	col, err := b.db.CreateCollection(name, map[string]string{"hnsw:space": b.hnswSpace}, nil)
	if err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}
	b.collections[name] = col
	return nil
}

// AddDocument inserts a pre-embedded document, used by seed-data tests and
// the CLI demo; the production path populates collections out-of-band.
func (b *ChromaBackend) AddDocument(ctx context.Context, collection, id, content string, embedding []float32, metadata map[string]string) error {
	b.mu.RLock()
	col, ok := b.collections[collection]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("collection %q not set", collection)
	}
	return col.AddDocument(ctx, chromem.Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		Embedding: embedding,
	})
}

func (b *ChromaBackend) Search(ctx context.Context, collection string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	b.mu.RLock()
	col, ok := b.collections[collection]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("collection %q not set", collection)
	}

	n := maxResults
	if count := col.Count(); n > count {
		n = count
	}
	if n <= 0 {
		return nil, nil
	}

	results, err := col.QueryEmbedding(ctx, embedding, n, nil, nil)
	if err != nil {
		return nil, err
	}

	hits := make([]iface.VectorHit, 0, len(results))
	for _, r := range results {
		meta := make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			meta[k] = v
		}
		// chromem-go reports cosine similarity in [-1,1]; recover the
		// [0,2] cosine distance Chroma's own wire protocol would report.
		distance := 1 - r.Similarity
		hits = append(hits, iface.VectorHit{
			Document: r.Content,
			Metadata: meta,
			Score:    distance,
		})
	}
	return hits, nil
}

func (b *ChromaBackend) ConvertScore(distance float32) float32 {
	return chromaConfidence(distance)
}
