package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// PineconeBackend talks to a Pinecone index over its REST API, following
// the teacher's wire-level net/http idiom (pkg/vectorstores/providers/pinecone).
// Pinecone identifies collections as indexes (spec §4.3).
type PineconeBackend struct {
	IndexHost          string // per-index data-plane host, e.g. https://my-index-xxx.svc.pinecone.io
	APIKey             string
	ScoreScalingFactor float32

	httpClient *http.Client
}

// NewPineconeBackend builds a PineconeBackend bound to one index host.
func NewPineconeBackend(indexHost, apiKey string, scoreScalingFactor float32) *PineconeBackend {
	if scoreScalingFactor == 0 {
		scoreScalingFactor = 1
	}
	return &PineconeBackend{
		IndexHost:          indexHost,
		APIKey:             apiKey,
		ScoreScalingFactor: scoreScalingFactor,
		httpClient:         &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *PineconeBackend) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.IndexHost+"/describe_index_stats", nil)
	if err != nil {
		return err
	}
	b.setHeaders(req)
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone unreachable at %s: %w", b.IndexHost, err)
	}
	defer resp.Body.Close()
	return nil
}

func (b *PineconeBackend) Close() error { return nil }

func (b *PineconeBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", b.APIKey)
}

// EnsureCollection is a no-op beyond validating the name: Pinecone indexes
// are provisioned out-of-band and selected by IndexHost, so "collection"
// here is a namespace within the index rather than a new resource.
func (b *PineconeBackend) EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error {
	if name == "" {
		return fmt.Errorf("pinecone namespace must not be empty")
	}
	return nil
}

type pineconeQueryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type pineconeQueryResponse struct {
	Matches []struct {
		Score    float32        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

func (b *PineconeBackend) Search(ctx context.Context, namespace string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	body, err := json.Marshal(pineconeQueryRequest{
		Vector: embedding, TopK: maxResults, Namespace: namespace, IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.IndexHost+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	b.setHeaders(req)
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pinecone query failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed pineconeQueryResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	hits := make([]iface.VectorHit, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		// content is pulled from metadata.content|text|document, in order
		// (spec §4.3 per-backend specifics).
		content, _ := m.Metadata["content"].(string)
		if content == "" {
			content, _ = m.Metadata["text"].(string)
		}
		if content == "" {
			content, _ = m.Metadata["document"].(string)
		}
		hits = append(hits, iface.VectorHit{Document: content, Metadata: m.Metadata, Score: m.Score})
	}
	return hits, nil
}

// ConvertScore: Pinecone similarity is used directly, optionally scaled
// (spec §4.3).
func (b *PineconeBackend) ConvertScore(score float32) float32 {
	return clamp(score*b.ScoreScalingFactor, 0, 1)
}
