package intent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lookatitude/beluga-ai/pkg/retrieval"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/adapters"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// SQLBackend is the narrow capability an intent retriever needs from a
// sqlbackend driver: connection lifecycle plus named-parameter query
// execution (spec §4.4). The three sqlbackend drivers all implement it.
type SQLBackend interface {
	Connect(ctx context.Context) error
	Close() error
	Query(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// SQLOptions configures a SQLIntentRetriever.
type SQLOptions struct {
	Logger                 *zap.Logger
	Metrics                *retrieval.Metrics
	MaxTemplates           int
	ConfidenceThreshold    float32
	ReloadTemplatesOnStart bool
}

func defaultSQLOptions() SQLOptions {
	return SQLOptions{Logger: zap.NewNop(), MaxTemplates: 10, ConfidenceThreshold: 0.5}
}

// SQLOption mutates SQLOptions.
type SQLOption func(*SQLOptions)

func WithSQLLogger(l *zap.Logger) SQLOption           { return func(o *SQLOptions) { o.Logger = l } }
func WithSQLMetrics(m *retrieval.Metrics) SQLOption   { return func(o *SQLOptions) { o.Metrics = m } }
func WithMaxTemplates(n int) SQLOption                { return func(o *SQLOptions) { o.MaxTemplates = n } }
func WithSQLConfidenceThreshold(v float32) SQLOption  { return func(o *SQLOptions) { o.ConfidenceThreshold = v } }
func WithReloadTemplatesOnStart(b bool) SQLOption     { return func(o *SQLOptions) { o.ReloadTemplatesOnStart = b } }

// SQLIntentRetriever implements iface.Retriever over a SQL backend: NL
// query -> template match -> parameter extraction -> render -> execute ->
// response synthesis (spec §4.4).
type SQLIntentRetriever struct {
	backend   SQLBackend
	embedder  iface.Embedder
	inference iface.Inference
	adapter   *adapters.IntentAdapter
	store     iface.TemplateStore

	reranker  *TemplateReranker
	extractor *DomainParameterExtractor
	processor *TemplateProcessor
	generator *DomainResponseGenerator

	collection  string
	initialized bool
	opts        SQLOptions
}

// NewSQLIntentRetriever wires every intent-pipeline sub-stage from the
// adapter's domain config and template library.
func NewSQLIntentRetriever(backend SQLBackend, embedder iface.Embedder, inference iface.Inference, adapter *adapters.IntentAdapter, store iface.TemplateStore, opts ...SQLOption) *SQLIntentRetriever {
	o := defaultSQLOptions()
	for _, opt := range opts {
		opt(&o)
	}
	strategy := NewDomainStrategyRegistry().GetStrategy(adapter.Domain)
	return &SQLIntentRetriever{
		backend:   backend,
		embedder:  embedder,
		inference: inference,
		adapter:   adapter,
		store:     store,
		reranker:  NewTemplateReranker(adapter.Domain, strategy),
		extractor: NewDomainParameterExtractor(adapter.Domain, inference),
		processor: NewTemplateProcessor(adapter.Domain),
		generator: NewDomainResponseGenerator(adapter.Domain, inference),
		opts:      o,
	}
}

// Initialize connects the backend and loads templates into the store
// (spec §4.4 initialization sequence). Idempotent.
func (r *SQLIntentRetriever) Initialize(ctx context.Context) error {
	if r.initialized {
		return nil
	}
	if err := r.backend.Connect(ctx); err != nil {
		return retrieval.NewError("SQLIntentRetriever.Initialize", retrieval.KindBackendUnavailable, err)
	}

	dimension := r.embedder.GetDimension()
	if err := r.store.Initialize(ctx, dimension); err != nil {
		return retrieval.NewError("SQLIntentRetriever.Initialize", retrieval.KindUnexpected, err)
	}

	stored, hasStored := r.store.StoredDimension(ctx)
	count, _ := r.store.Count(ctx)
	needsReload := r.opts.ReloadTemplatesOnStart || count == 0 || (hasStored && stored != dimension)
	if hasStored && stored != dimension {
		r.opts.Logger.Info("embedding dimension changed, rebuilding template store",
			zap.Int("stored_dimension", stored), zap.Int("current_dimension", dimension))
		if err := r.store.Reset(ctx); err != nil {
			return retrieval.NewError("SQLIntentRetriever.Initialize", retrieval.KindUnexpected, err)
		}
	}

	if needsReload {
		for _, tmpl := range r.adapter.TemplateLibrary.Templates {
			synonyms := r.adapter.Domain.GetEntitySynonyms(tmpl.SemanticTags.PrimaryEntity)
			text := tmpl.EmbeddingText(synonyms)
			embedding, err := r.embedder.EmbedQuery(ctx, text)
			if err != nil {
				r.opts.Logger.Warn("failed to embed template", zap.String("template_id", tmpl.ID), zap.Error(err))
				continue
			}
			if err := r.store.Insert(ctx, tmpl.ID, embedding, map[string]any{"description": tmpl.Description}); err != nil {
				r.opts.Logger.Warn("failed to insert template", zap.String("template_id", tmpl.ID), zap.Error(err))
			}
		}
	}

	r.initialized = true
	return nil
}

func (r *SQLIntentRetriever) Close() error {
	if !r.initialized {
		return nil
	}
	return r.backend.Close()
}

func (r *SQLIntentRetriever) SetCollection(ctx context.Context, name string) error {
	r.collection = name
	return nil
}

// TemplateStore exposes the backing store so a CompositeIntentRetriever can
// search it directly without going through GetRelevantContext.
func (r *SQLIntentRetriever) TemplateStore() iface.TemplateStore { return r.store }

// GetRelevantContext runs the intent pipeline's query-execution sequence
// (spec §4.4 "Query execution").
func (r *SQLIntentRetriever) GetRelevantContext(ctx context.Context, query string, opts ...iface.QueryOption) ([]schema.ContextItem, error) {
	start := time.Now()

	embedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return failureItem(retrieval.KindParameterExtractionFailed), nil
	}

	matches, err := r.store.SearchSimilar(ctx, embedding, r.opts.MaxTemplates, r.opts.ConfidenceThreshold)
	if err != nil {
		r.opts.Logger.Error("template store search failed", zap.Error(err))
		return failureItem(retrieval.KindNoMatchingTemplate), nil
	}
	matches = r.reranker.Rerank(query, matches)

	sawExtractionFailure := false

	for _, match := range matches {
		if match.Similarity < r.opts.ConfidenceThreshold {
			continue
		}
		tmpl, ok := r.adapter.TemplateLibrary.Find(match.TemplateID)
		if !ok {
			continue
		}

		result := r.extractor.Extract(ctx, query, tmpl.Description, tmpl.Parameters)
		if missing := result.MissingRequired(tmpl.Parameters); len(missing) > 0 {
			sawExtractionFailure = true
			continue
		}

		rendered, err := r.processor.RenderSQL(tmpl, result.Parameters)
		if err != nil {
			r.opts.Logger.Debug("template render failed, skipping", zap.String("template_id", tmpl.ID), zap.Error(err))
			continue
		}

		rows, err := r.backend.Query(ctx, rendered, result.Parameters)
		if err != nil {
			r.opts.Logger.Debug("template execution failed, skipping", zap.String("template_id", tmpl.ID), zap.Error(err))
			continue
		}

		entityName := tmpl.SemanticTags.PrimaryEntity
		answer, extra := r.generator.Generate(ctx, query, tmpl, entityName, rows, nil)

		item := schema.ContextItem{Content: answer, Confidence: match.Similarity}
		item.WithMeta("template_id", tmpl.ID)
		item.WithMeta("query_intent", tmpl.ID)
		item.WithMeta("parameters_used", result.Parameters)
		item.WithMeta("similarity", match.Similarity)
		item.WithMeta("result_count", len(rows))
		for k, v := range extra {
			item.WithMeta(k, v)
		}

		if r.opts.Metrics != nil {
			r.opts.Metrics.RecordQuery(ctx, "sql_intent", r.collection, time.Since(start), 1)
		}
		return []schema.ContextItem{item}, nil
	}

	if sawExtractionFailure {
		return failureItem(retrieval.KindParameterExtractionFailed), nil
	}
	return failureItem(retrieval.KindNoMatchingTemplate), nil
}

func failureItem(kind retrieval.Kind) []schema.ContextItem {
	item := schema.ContextItem{
		Content:    "I couldn't find a matching way to answer that.",
		Confidence: 0,
	}
	item.WithMeta("error", string(kind))
	return []schema.ContextItem{item}
}
