package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lookatitude/beluga-ai/pkg/retrieval"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/adapters"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// AuthType selects how HTTPIntentRetriever authenticates outbound requests
// (spec §4.4).
type AuthType string

const (
	AuthNone        AuthType = "none"
	AuthBasic       AuthType = "basic_auth"
	AuthAPIKey      AuthType = "api_key"
	AuthBearerToken AuthType = "bearer_token"
)

// AuthConfig names the environment variables an HTTPIntentRetriever reads
// its credentials from, never the credentials themselves.
type AuthConfig struct {
	Type            AuthType
	UsernameEnv     string
	PasswordEnv     string
	APIKeyEnv       string
	APIKeyHeader    string // default "X-API-Key"
	BearerTokenEnv  string
}

func (a AuthConfig) apply(req *http.Request) {
	switch a.Type {
	case AuthBasic:
		req.SetBasicAuth(os.Getenv(a.UsernameEnv), os.Getenv(a.PasswordEnv))
	case AuthAPIKey:
		header := a.APIKeyHeader
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, os.Getenv(a.APIKeyEnv))
	case AuthBearerToken:
		req.Header.Set("Authorization", "Bearer "+os.Getenv(a.BearerTokenEnv))
	case AuthNone, "":
	}
}

// HTTPOptions configures an HTTPIntentRetriever.
type HTTPOptions struct {
	Logger                 *zap.Logger
	Metrics                *retrieval.Metrics
	MaxTemplates           int
	ConfidenceThreshold    float32
	ReloadTemplatesOnStart bool
	RequestTimeout         time.Duration
}

func defaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		Logger:              zap.NewNop(),
		MaxTemplates:         10,
		ConfidenceThreshold:  0.5,
		RequestTimeout:       10 * time.Second,
	}
}

// HTTPOption mutates HTTPOptions.
type HTTPOption func(*HTTPOptions)

func WithHTTPLogger(l *zap.Logger) HTTPOption          { return func(o *HTTPOptions) { o.Logger = l } }
func WithHTTPMetrics(m *retrieval.Metrics) HTTPOption   { return func(o *HTTPOptions) { o.Metrics = m } }
func WithHTTPMaxTemplates(n int) HTTPOption             { return func(o *HTTPOptions) { o.MaxTemplates = n } }
func WithHTTPConfidenceThreshold(v float32) HTTPOption  { return func(o *HTTPOptions) { o.ConfidenceThreshold = v } }
func WithHTTPReloadTemplatesOnStart(b bool) HTTPOption  { return func(o *HTTPOptions) { o.ReloadTemplatesOnStart = b } }
func WithHTTPRequestTimeout(d time.Duration) HTTPOption { return func(o *HTTPOptions) { o.RequestTimeout = d } }

// newPooledClient builds the *http.Client each HTTPIntentRetriever owns:
// a small keep-alive pool (5 idle connections, at most 10 per host) sized
// for a handful of concurrent upstream calls per retriever instance
// (spec §4.4).
func newPooledClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 5,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// HTTPIntentRetriever implements iface.Retriever over a REST API: NL query
// -> template match -> parameter extraction -> render HTTP request ->
// execute -> response synthesis (spec §4.4).
type HTTPIntentRetriever struct {
	baseURL   string
	auth      AuthConfig
	client    *http.Client
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
	opts        HTTPOptions
}

// NewHTTPIntentRetriever wires every intent-pipeline sub-stage for an
// HTTP-backed domain API.
func NewHTTPIntentRetriever(baseURL string, auth AuthConfig, embedder iface.Embedder, inference iface.Inference, adapter *adapters.IntentAdapter, store iface.TemplateStore, opts ...HTTPOption) *HTTPIntentRetriever {
	o := defaultHTTPOptions()
	for _, opt := range opts {
		opt(&o)
	}
	strategy := NewDomainStrategyRegistry().GetStrategy(adapter.Domain)
	return &HTTPIntentRetriever{
		baseURL:   baseURL,
		auth:      auth,
		client:    newPooledClient(o.RequestTimeout),
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

// Initialize loads templates into the store, mirroring
// SQLIntentRetriever.Initialize's sequence (spec §4.4); there is no
// backend connection step for an HTTP API beyond the pooled client already
// built in the constructor.
func (r *HTTPIntentRetriever) Initialize(ctx context.Context) error {
	if r.initialized {
		return nil
	}
	dimension := r.embedder.GetDimension()
	if err := r.store.Initialize(ctx, dimension); err != nil {
		return retrieval.NewError("HTTPIntentRetriever.Initialize", retrieval.KindUnexpected, err)
	}

	stored, hasStored := r.store.StoredDimension(ctx)
	count, _ := r.store.Count(ctx)
	needsReload := r.opts.ReloadTemplatesOnStart || count == 0 || (hasStored && stored != dimension)
	if hasStored && stored != dimension {
		r.opts.Logger.Info("embedding dimension changed, rebuilding template store",
			zap.Int("stored_dimension", stored), zap.Int("current_dimension", dimension))
		if err := r.store.Reset(ctx); err != nil {
			return retrieval.NewError("HTTPIntentRetriever.Initialize", retrieval.KindUnexpected, err)
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

func (r *HTTPIntentRetriever) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *HTTPIntentRetriever) SetCollection(ctx context.Context, name string) error {
	r.collection = name
	return nil
}

// TemplateStore exposes the backing store so a CompositeIntentRetriever can
// search it directly without going through GetRelevantContext.
func (r *HTTPIntentRetriever) TemplateStore() iface.TemplateStore { return r.store }

// GetRelevantContext mirrors SQLIntentRetriever's query-execution sequence,
// substituting a rendered HTTP call for the SQL execute step (spec §4.4).
// 4xx/5xx responses are treated as execution failure and the next matching
// template is tried.
func (r *HTTPIntentRetriever) GetRelevantContext(ctx context.Context, query string, opts ...iface.QueryOption) ([]schema.ContextItem, error) {
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

		rendered, err := r.processor.RenderStructure(tmpl.HTTPRequest, result.Parameters)
		if err != nil {
			r.opts.Logger.Debug("http template render failed, skipping", zap.String("template_id", tmpl.ID), zap.Error(err))
			continue
		}

		rows, err := r.execute(ctx, rendered)
		if err != nil {
			r.opts.Logger.Debug("http template execution failed, skipping", zap.String("template_id", tmpl.ID), zap.Error(err))
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
			r.opts.Metrics.RecordQuery(ctx, "http_intent", r.collection, time.Since(start), 1)
		}
		return []schema.ContextItem{item}, nil
	}

	if sawExtractionFailure {
		return failureItem(retrieval.KindParameterExtractionFailed), nil
	}
	return failureItem(retrieval.KindNoMatchingTemplate), nil
}

// execute issues one rendered request directive against baseURL, returning
// the decoded JSON body as a row set (a single-object response becomes a
// one-row result).
func (r *HTTPIntentRetriever) execute(ctx context.Context, directive map[string]any) ([]map[string]any, error) {
	method, _ := directive["method"].(string)
	if method == "" {
		method = http.MethodGet
	}
	path, _ := directive["path"].(string)

	var body io.Reader
	if payload, ok := directive["body"]; ok {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if headers, ok := directive["headers"].(map[string]any); ok {
		for k, v := range headers {
			if s, ok := v.(string); ok {
				req.Header.Set(k, s)
			}
		}
	}
	r.auth.apply(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return decodeRows(payload)
}

func decodeRows(payload []byte) ([]map[string]any, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var asRows []map[string]any
	if err := json.Unmarshal(payload, &asRows); err == nil {
		return asRows, nil
	}
	var asObject map[string]any
	if err := json.Unmarshal(payload, &asObject); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	if items, ok := asObject["results"].([]any); ok {
		return toRows(items), nil
	}
	if items, ok := asObject["data"].([]any); ok {
		return toRows(items), nil
	}
	return []map[string]any{asObject}, nil
}

func toRows(items []any) []map[string]any {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows
}
