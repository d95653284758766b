// Package vector implements the vector-retriever pipeline of spec §4.3:
// embed -> search -> score-to-confidence -> format -> filter -> sort ->
// truncate, plus the six backend drivers (chroma, qdrant, pinecone,
// elasticsearch, milvus, redis) behind the narrow iface.VectorBackend
// capability.
package vector

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/lookatitude/beluga-ai/pkg/retrieval"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// Options configures a Retriever; functional-options per teacher convention
// (pkg/retrievers.Option).
type Options struct {
	Logger              *zap.Logger
	Metrics             *retrieval.Metrics
	ConfidenceThreshold float32
	RelevanceThreshold  float32
	ReturnResults       int
	MaxResults          int
	AutoCreateCollection bool
	Dimension           int
}

// Option mutates Options.
type Option func(*Options)

func WithLogger(l *zap.Logger) Option            { return func(o *Options) { o.Logger = l } }
func WithMetrics(m *retrieval.Metrics) Option     { return func(o *Options) { o.Metrics = m } }
func WithConfidenceThreshold(v float32) Option    { return func(o *Options) { o.ConfidenceThreshold = v } }
func WithRelevanceThreshold(v float32) Option     { return func(o *Options) { o.RelevanceThreshold = v } }
func WithReturnResults(n int) Option              { return func(o *Options) { o.ReturnResults = n } }
func WithMaxResults(n int) Option                 { return func(o *Options) { o.MaxResults = n } }
func WithAutoCreateCollection(b bool) Option      { return func(o *Options) { o.AutoCreateCollection = b } }
func WithDimension(n int) Option                  { return func(o *Options) { o.Dimension = n } }

func defaultOptions() Options {
	return Options{
		Logger:        zap.NewNop(),
		ReturnResults: 10,
		MaxResults:    50,
	}
}

// Retriever is the vector-pipeline implementation of iface.Retriever
// (spec §4.2/§4.3). It owns exactly one VectorBackend handle.
type Retriever struct {
	backendName    string
	backend        iface.VectorBackend
	embedder       iface.Embedder
	embeddingOn    bool
	adapter        iface.Adapter
	collection     string
	initialized    bool
	opts           Options

	dimensionMismatch *regexp.Regexp
}

var dimensionErrPattern = regexp.MustCompile(`(?i)dimension.*(match|expect)`)

// New builds a vector Retriever. embeddingEnabled mirrors spec §4.3 step 2:
// when false, GetRelevantContext always returns an empty list.
func New(backendName string, backend iface.VectorBackend, embedder iface.Embedder, adapter iface.Adapter, embeddingEnabled bool, opts ...Option) *Retriever {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Retriever{
		backendName:       backendName,
		backend:           backend,
		embedder:          embedder,
		embeddingOn:       embeddingEnabled,
		adapter:           adapter,
		opts:              o,
		dimensionMismatch: dimensionErrPattern,
	}
}

// Initialize connects the backend. Idempotent (spec §4.2).
func (r *Retriever) Initialize(ctx context.Context) error {
	if r.initialized {
		return nil
	}
	if err := r.backend.Connect(ctx); err != nil {
		return retrieval.NewError("VectorRetriever.Initialize", retrieval.KindBackendUnavailable, err)
	}
	r.initialized = true
	return nil
}

// Close releases the backend handle; safe on uninitialized instances.
func (r *Retriever) Close() error {
	if !r.initialized {
		return nil
	}
	return r.backend.Close()
}

// SetCollection binds the retriever to a named collection, auto-creating
// it when configured and the backend confirms absence.
func (r *Retriever) SetCollection(ctx context.Context, name string) error {
	if err := r.backend.EnsureCollection(ctx, name, r.opts.Dimension, r.opts.AutoCreateCollection); err != nil {
		return retrieval.NewError("VectorRetriever.SetCollection", retrieval.KindCollectionNotFound, err)
	}
	r.collection = name
	return nil
}

// GetRelevantContext runs the full vector pipeline (spec §4.3).
func (r *Retriever) GetRelevantContext(ctx context.Context, query string, opts ...iface.QueryOption) ([]schema.ContextItem, error) {
	start := time.Now()
	qopts := iface.ApplyQueryOptions(opts...)

	collection, err := r.resolveCollection(qopts)
	if err != nil {
		return nil, err
	}
	if err := r.SetCollection(ctx, collection); err != nil {
		return nil, err
	}

	if !r.embeddingOn {
		return []schema.ContextItem{}, nil
	}

	embedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil || len(embedding) == 0 {
		r.opts.Logger.Debug("empty query embedding, returning no results", zap.String("backend", r.backendName))
		return []schema.ContextItem{}, nil
	}

	maxResults := r.opts.MaxResults
	if qopts.ReturnResults > 0 && qopts.ReturnResults > maxResults {
		maxResults = qopts.ReturnResults
	}

	hits, err := r.backend.Search(ctx, collection, embedding, maxResults)
	if err != nil {
		if r.dimensionMismatch.MatchString(err.Error()) {
			r.opts.Logger.Error("query vector dimension mismatch",
				zap.Int("query_dimension", len(embedding)),
				zap.String("collection", collection),
				zap.Error(err))
			return []schema.ContextItem{}, nil
		}
		r.opts.Logger.Error("vector search failed", zap.Error(err), zap.String("backend", r.backendName))
		return []schema.ContextItem{}, nil
	}

	threshold := r.opts.ConfidenceThreshold
	if r.opts.RelevanceThreshold > threshold {
		threshold = r.opts.RelevanceThreshold
	}

	items := make([]schema.ContextItem, 0, len(hits))
	for _, hit := range hits {
		confidence := r.backend.ConvertScore(hit.Score)
		if confidence < threshold {
			continue
		}
		item := r.adapter.FormatDocument(hit.Document, hit.Metadata)
		item.Confidence = confidence
		item.WithMeta("source", r.backendName)
		item.WithMeta("collection", collection)
		item.WithMeta("similarity", confidence)
		items = append(items, item)
	}

	schema.ByConfidenceDescending(items)
	items = r.adapter.ApplyDomainFiltering(items, query)

	returnResults := r.opts.ReturnResults
	if qopts.ReturnResults > 0 {
		returnResults = qopts.ReturnResults
	}
	if returnResults > 0 && len(items) > returnResults {
		items = items[:returnResults]
	}

	if r.opts.Metrics != nil {
		r.opts.Metrics.RecordQuery(ctx, "vector_store", r.backendName, time.Since(start), len(items))
	}
	return items, nil
}

func (r *Retriever) resolveCollection(qopts iface.QueryOptions) (string, error) {
	if qopts.CollectionName != "" {
		return qopts.CollectionName, nil
	}
	if r.collection != "" {
		return r.collection, nil
	}
	return "", retrieval.NewErrorMessage("VectorRetriever.GetRelevantContext", retrieval.KindNoCollection,
		"no collection resolved: provide collectionName, an API-key-derived collection, or datasource_config.collection")
}
