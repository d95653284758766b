// Package iface defines the narrow, interface-segregated capabilities the
// retrieval package consumes: embedding, inference, and the per-backend
// drivers. Mirrors the teacher's pkg/retrievers/iface and pkg/chatmodels/iface
// split of large interfaces into single-responsibility pieces.
package iface

import (
	"context"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// Embedder turns text into vectors. Consumed, never hosted, by this module.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	GetDimension() int
}

// Inference is the narrow LLM capability the intent pipeline consumes for
// parameter-extraction fallback and response generation.
type Inference interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Adapter shapes raw backend rows into ContextItems and applies
// domain-aware filtering. Variants: QA, Generic, File, Intent (spec §3).
type Adapter interface {
	FormatDocument(raw string, metadata map[string]any) schema.ContextItem
	ExtractDirectAnswer(item schema.ContextItem) (string, bool)
	ApplyDomainFiltering(items []schema.ContextItem, query string) []schema.ContextItem
}

// Retriever is the sole query entry point every retriever implementation
// exposes (spec §4.2).
type Retriever interface {
	Initialize(ctx context.Context) error
	Close() error
	SetCollection(ctx context.Context, name string) error
	GetRelevantContext(ctx context.Context, query string, opts ...QueryOption) ([]schema.ContextItem, error)
}

// QueryOptions carries the per-call overrides GetRelevantContext accepts.
type QueryOptions struct {
	APIKey         string
	CollectionName string
	ReturnResults  int
}

// QueryOption mutates QueryOptions; functional-options per teacher convention.
type QueryOption func(*QueryOptions)

// WithAPIKey sets the API-key-derived collection resolution input.
func WithAPIKey(key string) QueryOption { return func(o *QueryOptions) { o.APIKey = key } }

// WithCollectionName overrides collection resolution explicitly.
func WithCollectionName(name string) QueryOption {
	return func(o *QueryOptions) { o.CollectionName = name }
}

// WithReturnResults caps the number of items returned.
func WithReturnResults(n int) QueryOption { return func(o *QueryOptions) { o.ReturnResults = n } }

// ApplyQueryOptions folds opts into a QueryOptions value.
func ApplyQueryOptions(opts ...QueryOption) QueryOptions {
	var o QueryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// VectorBackend is the narrow capability a vector-store driver exposes to
// the shared vector pipeline (spec §4.3). Score is backend-native
// (distance or similarity); the pipeline converts it via ConvertScore.
type VectorBackend interface {
	Connect(ctx context.Context) error
	Close() error
	EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error
	Search(ctx context.Context, collection string, embedding []float32, maxResults int) ([]VectorHit, error)
	ConvertScore(score float32) float32
}

// VectorHit is one raw result from a vector backend search.
type VectorHit struct {
	Document string
	Metadata map[string]any
	Score    float32
}

// SQLBackend is the narrow capability a SQL driver exposes to the shared
// SQL/intent pipeline (spec §4.4).
type SQLBackend interface {
	Connect(ctx context.Context) error
	Close() error
	Execute(ctx context.Context, query string, args ...any) ([]map[string]any, error)
}

// HTTPBackend executes a rendered HTTP request directive for the HTTP
// intent pipeline (spec §4.4).
type HTTPBackend interface {
	Execute(ctx context.Context, request map[string]any) (map[string]any, error)
}

// TemplateStore is a vector index over templates keyed by embedded NL text
// (spec §3, §4.4).
type TemplateStore interface {
	Initialize(ctx context.Context, dimension int) error
	Insert(ctx context.Context, templateID string, embedding []float32, metadata map[string]any) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, threshold float32) ([]schema.TemplateMatch, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
	StoredDimension(ctx context.Context) (int, bool)
}
