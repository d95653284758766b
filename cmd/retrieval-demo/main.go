// Command retrieval-demo wires one SQL-backed intent retriever end to end:
// a SQLite database, an OpenAI embedder, an OpenAI chat model for parameter
// fallback and response synthesis, a small order-tracking domain config, and
// a single GetRelevantContext call. It exists to exercise the retrieval
// package's public surface the way a real deployment would assemble it,
// not as a production entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/lookatitude/beluga-ai/pkg/core"
	"github.com/lookatitude/beluga-ai/pkg/embeddings/providers/openai"
	"github.com/lookatitude/beluga-ai/pkg/llms"
	llmopenai "github.com/lookatitude/beluga-ai/pkg/llms/providers/openai"
	"github.com/lookatitude/beluga-ai/pkg/schema"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/adapters"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/intent"
	retrschema "github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/sqlbackend"
)

// embedderAdapter narrows the framework's context-aware embedding
// dimension lookup to the retrieval package's fixed-dimension Embedder,
// caching the one GetDimension round trip made at construction.
type embedderAdapter struct {
	inner     *openai.OpenAIEmbedder
	dimension int
}

func newEmbedderAdapter(ctx context.Context, inner *openai.OpenAIEmbedder) (*embedderAdapter, error) {
	dim, err := inner.GetDimension(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve embedding dimension: %w", err)
	}
	return &embedderAdapter{inner: inner, dimension: dim}, nil
}

func (e *embedderAdapter) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedQuery(ctx, text)
}

func (e *embedderAdapter) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.inner.EmbedDocuments(ctx, texts)
}

func (e *embedderAdapter) GetDimension() int { return e.dimension }

// chatModel narrows llms/iface.ChatModel to just what llmGenerator needs,
// avoiding a dependency on core.Option's concrete type in this file.
type chatModel interface {
	Generate(ctx context.Context, messages []schema.Message, options ...core.Option) (schema.Message, error)
}

// llmGenerator adapts an llms/iface.ChatModel's multi-turn Generate down to
// the retrieval package's single-prompt iface.Inference, the shape the
// intent pipeline's LLM fallback and response generator both consume.
type llmGenerator struct {
	model chatModel
}

func (a *llmGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := a.model.Generate(ctx, []schema.Message{schema.NewHumanMessage(prompt)})
	if err != nil {
		return "", err
	}
	return msg.GetContent(), nil
}

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Fatal("OPENAI_API_KEY must be set")
	}

	tracer := otel.Tracer("retrieval-demo")
	rawEmbedder, err := openai.NewOpenAIEmbedder(&openai.Config{APIKey: apiKey, Model: "text-embedding-3-small"}, tracer)
	if err != nil {
		logger.Fatal("build embedder", zap.Error(err))
	}
	embedder, err := newEmbedderAdapter(ctx, rawEmbedder)
	if err != nil {
		logger.Fatal("resolve embedder dimension", zap.Error(err))
	}

	chat, err := llmopenai.NewOpenAIProvider(&llms.Config{
		Provider:  "openai",
		ModelName: "gpt-4o-mini",
		APIKey:    apiKey,
		Timeout:   30 * time.Second,
	})
	if err != nil {
		logger.Fatal("build chat model", zap.Error(err))
	}
	inference := &llmGenerator{model: chat}

	domain := buildDemoDomain()
	templates := buildDemoTemplates()

	backend := sqlbackend.NewSQLiteBackend("file:retrieval_demo.db?mode=memory&cache=shared")
	adapter := adapters.NewIntentAdapter("orders_demo_db", domain, templates)
	store := intent.NewMemoryTemplateStore()

	retriever := intent.NewSQLIntentRetriever(backend, embedder, inference, adapter, store,
		intent.WithSQLLogger(logger),
		intent.WithSQLConfidenceThreshold(0.4),
	)

	if err := retriever.Initialize(ctx); err != nil {
		logger.Fatal("initialize retriever", zap.Error(err))
	}
	defer retriever.Close()

	items, err := retriever.GetRelevantContext(ctx, "how many orders did customer 42 place last month?")
	if err != nil {
		logger.Fatal("query failed", zap.Error(err))
	}
	for _, item := range items {
		fmt.Printf("confidence=%.2f content=%s metadata=%v\n", item.Confidence, item.Content, item.Metadata)
	}
}

// buildDemoDomain declares a minimal two-entity order-tracking domain used
// only to exercise the intent pipeline end to end.
func buildDemoDomain() *retrschema.DomainConfig {
	priority := 90
	entities := map[string]*retrschema.Entity{
		"order": {
			Name:             "order",
			EntityType:       "primary",
			TableName:        "orders",
			PrimaryKey:       "id",
			SearchableFields: []string{"customer_id"},
			Fields: map[string]*retrschema.Field{
				"customer_id": {Name: "customer_id", DataType: "integer", Searchable: true, Filterable: true, SemanticType: "identifier", SummaryPriority: &priority},
				"total":       {Name: "total", DataType: "decimal", DisplayFormat: "currency", Aggregatable: true},
				"created_at":  {Name: "created_at", DataType: "date", DisplayFormat: "date"},
			},
		},
	}
	domain := retrschema.NewDomainConfig("orders_demo", "ecommerce", "Demo order-tracking domain", entities, []string{"order"})
	domain.EntitySynonyms["order"] = []string{"orders", "purchase", "purchases"}
	return domain
}

func buildDemoTemplates() retrschema.TemplateLibrary {
	return retrschema.TemplateLibrary{Templates: []retrschema.Template{
		{
			ID:          "order_count_by_customer",
			Description: "Count orders placed by a given customer",
			NLExamples:  []string{"how many orders did customer 42 place", "order count for customer"},
			Tags:        []string{"orders", "count"},
			SemanticTags: retrschema.SemanticTags{
				Action:        "count",
				PrimaryEntity: "order",
			},
			Parameters: []retrschema.Parameter{
				{Name: "customer_id", DataType: "integer", Entity: "order", Field: "customer_id", Required: true},
			},
			SQLTemplate:  "SELECT COUNT(*) AS order_count FROM orders WHERE customer_id = %(customer_id)s",
			ResultFormat: retrschema.ResultFormatSummary,
		},
	}}
}
