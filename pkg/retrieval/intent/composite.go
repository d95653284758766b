package intent

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lookatitude/beluga-ai/pkg/retrieval"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// Child is the capability CompositeIntentRetriever needs from a named
// intent retriever: the full Retriever lifecycle plus direct access to its
// template store for the fan-out match phase (spec §4.10).
type Child interface {
	iface.Retriever
	TemplateStore() iface.TemplateStore
}

// ChildResolver looks up a named child retriever through whatever external
// registry owns it. CompositeIntentRetriever holds no ownership over the
// returned value — it never Initializes or Closes it.
type ChildResolver func(name string) (Child, bool)

// CompositeOptions configures a CompositeIntentRetriever.
type CompositeOptions struct {
	Logger              *zap.Logger
	Metrics             *retrieval.Metrics
	ChildTimeout        time.Duration
	ConfidenceThreshold float32
}

func defaultCompositeOptions() CompositeOptions {
	return CompositeOptions{Logger: zap.NewNop(), ChildTimeout: 5 * time.Second, ConfidenceThreshold: 0.5}
}

// CompositeOption mutates CompositeOptions.
type CompositeOption func(*CompositeOptions)

func WithCompositeLogger(l *zap.Logger) CompositeOption { return func(o *CompositeOptions) { o.Logger = l } }
func WithCompositeMetrics(m *retrieval.Metrics) CompositeOption {
	return func(o *CompositeOptions) { o.Metrics = m }
}
func WithChildTimeout(d time.Duration) CompositeOption {
	return func(o *CompositeOptions) { o.ChildTimeout = d }
}
func WithCompositeConfidenceThreshold(v float32) CompositeOption {
	return func(o *CompositeOptions) { o.ConfidenceThreshold = v }
}

// CompositeIntentRetriever owns no backend of its own: it fans a query
// across named child intent retrievers and routes execution to whichever
// child owns the single best-matching template (spec §4.10).
type CompositeIntentRetriever struct {
	childNames []string
	resolve    ChildResolver
	embedder   iface.Embedder
	opts       CompositeOptions
	collection string
}

// NewCompositeIntentRetriever builds a router over the named children,
// resolved lazily through resolve on every query so the composite never
// needs to be rebuilt when the manager's registry changes.
func NewCompositeIntentRetriever(childNames []string, resolve ChildResolver, embedder iface.Embedder, opts ...CompositeOption) *CompositeIntentRetriever {
	o := defaultCompositeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	names := make([]string, len(childNames))
	copy(names, childNames)
	return &CompositeIntentRetriever{childNames: names, resolve: resolve, embedder: embedder, opts: o}
}

// Initialize is a no-op: children are initialized by whatever owns them.
func (c *CompositeIntentRetriever) Initialize(ctx context.Context) error { return nil }

// Close is a no-op: composite never closes children it does not own
// (spec §4.10: "Composite is not allowed to close child adapters").
func (c *CompositeIntentRetriever) Close() error { return nil }

func (c *CompositeIntentRetriever) SetCollection(ctx context.Context, name string) error {
	c.collection = name
	return nil
}

type childMatch struct {
	adapter string
	match   schema.TemplateMatch
}

// GetRelevantContext embeds once, fans the search out to every child with
// a per-child timeout, picks the single best-scoring template across all
// children, and delegates full execution to that child's own pipeline
// (spec §4.10).
func (c *CompositeIntentRetriever) GetRelevantContext(ctx context.Context, query string, opts ...iface.QueryOption) ([]schema.ContextItem, error) {
	start := time.Now()

	embedding, err := c.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return failureItem(retrieval.KindParameterExtractionFailed), nil
	}

	var mu sync.Mutex
	var merged []childMatch
	searched := make([]string, 0, len(c.childNames))

	var wg sync.WaitGroup
	for _, name := range c.childNames {
		child, ok := c.resolve(name)
		if !ok {
			c.opts.Logger.Warn("composite child not found", zap.String("adapter", name))
			continue
		}
		searched = append(searched, name)

		wg.Add(1)
		go func(name string, child Child) {
			defer wg.Done()
			childCtx, cancel := context.WithTimeout(ctx, c.opts.ChildTimeout)
			defer cancel()

			matches, err := child.TemplateStore().SearchSimilar(childCtx, embedding, 10, c.opts.ConfidenceThreshold)
			if err != nil {
				c.opts.Logger.Debug("composite child search failed", zap.String("adapter", name), zap.Error(err))
				return
			}
			mu.Lock()
			for _, m := range matches {
				merged = append(merged, childMatch{adapter: name, match: m})
			}
			mu.Unlock()
		}(name, child)
	}
	wg.Wait()

	if len(merged) == 0 {
		return failureItem(retrieval.KindNoMatchingTemplate), nil
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].match.Similarity > merged[j].match.Similarity })
	best := merged[0]

	if best.match.Similarity < c.opts.ConfidenceThreshold {
		item := schema.ContextItem{Content: "No adapter matched this query with sufficient confidence.", Confidence: 0}
		item.WithMeta("error", "below_threshold")
		item.WithMeta("adapters_searched", searched)
		return []schema.ContextItem{item}, nil
	}

	chosen, ok := c.resolve(best.adapter)
	if !ok {
		return failureItem(retrieval.KindNoMatchingTemplate), nil
	}

	items, err := chosen.GetRelevantContext(ctx, query, opts...)
	if err != nil {
		return nil, err
	}

	routing := map[string]any{
		"selected_adapter":   best.adapter,
		"template_id":        best.match.TemplateID,
		"similarity_score":   best.match.Similarity,
		"adapters_searched":  searched,
		"total_matches_found": len(merged),
	}
	for i := range items {
		items[i].WithMeta("composite_routing", routing)
	}

	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordQuery(ctx, "composite_intent", c.collection, time.Since(start), len(items))
	}
	return items, nil
}
