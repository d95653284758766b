package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

type fakeVectorBackend struct {
	connectErr        error
	ensureErr         error
	hits              []iface.VectorHit
	searchErr         error
	convertScoreFn    func(float32) float32
	lastCollection    string
	lastMaxResults    int
	closeCalls        int
}

func (b *fakeVectorBackend) Connect(ctx context.Context) error { return b.connectErr }
func (b *fakeVectorBackend) Close() error                      { b.closeCalls++; return nil }

func (b *fakeVectorBackend) EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error {
	return b.ensureErr
}

func (b *fakeVectorBackend) Search(ctx context.Context, collection string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	b.lastCollection = collection
	b.lastMaxResults = maxResults
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	return b.hits, nil
}

func (b *fakeVectorBackend) ConvertScore(score float32) float32 {
	if b.convertScoreFn != nil {
		return b.convertScoreFn(score)
	}
	return score
}

type fakeVectorEmbedder struct {
	vector []float32
	err    error
}

func (e *fakeVectorEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.vector, e.err
}
func (e *fakeVectorEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, nil
}
func (e *fakeVectorEmbedder) GetDimension() int { return len(e.vector) }

type passthroughAdapter struct{}

func (passthroughAdapter) FormatDocument(raw string, metadata map[string]any) schema.ContextItem {
	return schema.ContextItem{Content: raw, Metadata: metadata}
}
func (passthroughAdapter) ExtractDirectAnswer(item schema.ContextItem) (string, bool) { return "", false }
func (passthroughAdapter) ApplyDomainFiltering(items []schema.ContextItem, query string) []schema.ContextItem {
	return items
}

func TestRetriever_GetRelevantContext_FiltersSortsAndTruncates(t *testing.T) {
	backend := &fakeVectorBackend{hits: []iface.VectorHit{
		{Document: "low", Score: 0.1},
		{Document: "high", Score: 0.9},
		{Document: "mid", Score: 0.5},
	}}
	embedder := &fakeVectorEmbedder{vector: []float32{0.1, 0.2}}
	r := New("chroma", backend, embedder, passthroughAdapter{}, true, WithConfidenceThreshold(0.3), WithReturnResults(2))

	require.NoError(t, r.Initialize(context.Background()))
	require.NoError(t, r.SetCollection(context.Background(), "docs"))

	items, err := r.GetRelevantContext(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, items, 2, "the 0.1-score hit is filtered below threshold, leaving 2, capped at ReturnResults")
	assert.Equal(t, "high", items[0].Content)
	assert.Equal(t, "mid", items[1].Content)
}

func TestRetriever_GetRelevantContext_EmbeddingDisabledReturnsEmpty(t *testing.T) {
	backend := &fakeVectorBackend{hits: []iface.VectorHit{{Document: "x", Score: 1}}}
	embedder := &fakeVectorEmbedder{vector: []float32{0.1}}
	r := New("chroma", backend, embedder, passthroughAdapter{}, false)

	require.NoError(t, r.Initialize(context.Background()))
	require.NoError(t, r.SetCollection(context.Background(), "docs"))

	items, err := r.GetRelevantContext(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRetriever_GetRelevantContext_EmptyEmbeddingReturnsEmpty(t *testing.T) {
	backend := &fakeVectorBackend{}
	embedder := &fakeVectorEmbedder{vector: nil}
	r := New("chroma", backend, embedder, passthroughAdapter{}, true)

	require.NoError(t, r.Initialize(context.Background()))
	require.NoError(t, r.SetCollection(context.Background(), "docs"))

	items, err := r.GetRelevantContext(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRetriever_GetRelevantContext_DimensionMismatchReturnsEmptyNotError(t *testing.T) {
	backend := &fakeVectorBackend{searchErr: errors.New("vector dimension does not match collection")}
	embedder := &fakeVectorEmbedder{vector: []float32{0.1}}
	r := New("chroma", backend, embedder, passthroughAdapter{}, true)

	require.NoError(t, r.Initialize(context.Background()))
	require.NoError(t, r.SetCollection(context.Background(), "docs"))

	items, err := r.GetRelevantContext(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRetriever_GetRelevantContext_NoCollectionResolvedReturnsError(t *testing.T) {
	backend := &fakeVectorBackend{}
	embedder := &fakeVectorEmbedder{vector: []float32{0.1}}
	r := New("chroma", backend, embedder, passthroughAdapter{}, true)
	require.NoError(t, r.Initialize(context.Background()))

	_, err := r.GetRelevantContext(context.Background(), "q")
	assert.Error(t, err)
}

func TestRetriever_GetRelevantContext_PerQueryCollectionOverride(t *testing.T) {
	backend := &fakeVectorBackend{hits: []iface.VectorHit{{Document: "x", Score: 1}}}
	embedder := &fakeVectorEmbedder{vector: []float32{0.1}}
	r := New("chroma", backend, embedder, passthroughAdapter{}, true)
	require.NoError(t, r.Initialize(context.Background()))

	items, err := r.GetRelevantContext(context.Background(), "q", iface.WithCollectionName("override"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "override", backend.lastCollection)
}

func TestRetriever_Close_NoopBeforeInitialize(t *testing.T) {
	backend := &fakeVectorBackend{}
	r := New("chroma", backend, &fakeVectorEmbedder{}, passthroughAdapter{}, true)
	require.NoError(t, r.Close())
	assert.Zero(t, backend.closeCalls)
}

func TestRetriever_Initialize_BackendConnectFailurePropagates(t *testing.T) {
	backend := &fakeVectorBackend{connectErr: errors.New("unreachable")}
	r := New("chroma", backend, &fakeVectorEmbedder{}, passthroughAdapter{}, true)
	assert.Error(t, r.Initialize(context.Background()))
}
