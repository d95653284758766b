package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// QdrantBackend talks to a Qdrant server over its REST API, following the
// teacher's wire-level net/http idiom (pkg/vectorstores/providers/qdrant)
// rather than a generated client. Clients are deduplicated process-wide by
// (host, apiKey) as spec §4.3 requires.
type QdrantBackend struct {
	URL    string
	APIKey string

	httpClient *http.Client
	liveMu     sync.Mutex
	checked    bool
}

var qdrantClients = struct {
	sync.Mutex
	byKey map[string]*http.Client
}{byKey: make(map[string]*http.Client)}

// NewQdrantBackend builds a QdrantBackend, sharing one *http.Client per
// (url, apiKey) pair across the process.
func NewQdrantBackend(url, apiKey string) *QdrantBackend {
	key := url + "|" + apiKey
	qdrantClients.Lock()
	client, ok := qdrantClients.byKey[key]
	if !ok {
		client = &http.Client{Timeout: 30 * time.Second}
		qdrantClients.byKey[key] = client
	}
	qdrantClients.Unlock()
	return &QdrantBackend{URL: url, APIKey: apiKey, httpClient: client}
}

func (b *QdrantBackend) Connect(ctx context.Context) error {
	b.liveMu.Lock()
	defer b.liveMu.Unlock()
	if b.checked {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL+"/collections", nil)
	if err != nil {
		return err
	}
	b.setHeaders(req)
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant unreachable at %s: %w", b.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("qdrant unhealthy: status %d", resp.StatusCode)
	}
	b.checked = true
	return nil
}

func (b *QdrantBackend) Close() error { return nil }

func (b *QdrantBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if b.APIKey != "" {
		req.Header.Set("api-key", b.APIKey)
	}
}

func (b *QdrantBackend) EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL+"/collections/"+name, nil)
	if err != nil {
		return err
	}
	b.setHeaders(req)
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode != http.StatusNotFound || !autoCreate {
		return fmt.Errorf("collection %q not found (status %d)", name, resp.StatusCode)
	}

	body, _ := json.Marshal(map[string]any{
		"vectors": map[string]any{"size": dimension, "distance": "Cosine"},
	})
	createReq, err := http.NewRequestWithContext(ctx, http.MethodPut, b.URL+"/collections/"+name, bytes.NewReader(body))
	if err != nil {
		return err
	}
	b.setHeaders(createReq)
	createResp, err := b.httpClient.Do(createReq)
	if err != nil {
		return err
	}
	defer createResp.Body.Close()
	if createResp.StatusCode >= 300 {
		return fmt.Errorf("failed to create collection %q: status %d", name, createResp.StatusCode)
	}
	return nil
}

type qdrantQueryRequest struct {
	Query       []float32 `json:"query"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type qdrantQueryResponse struct {
	Result struct {
		Points []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	} `json:"result"`
}

// Search uses Qdrant's newer query_points API (spec §4.3 per-backend
// specifics: "supports both legacy search and new query_points APIs" —
// this driver standardizes on query_points).
func (b *QdrantBackend) Search(ctx context.Context, collection string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	body, err := json.Marshal(qdrantQueryRequest{Query: embedding, Limit: maxResults, WithPayload: true})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.URL+"/collections/"+collection+"/points/query", bytes.NewReader(body))
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
		return nil, fmt.Errorf("qdrant query failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed qdrantQueryResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	hits := make([]iface.VectorHit, 0, len(parsed.Result.Points))
	for _, p := range parsed.Result.Points {
		content, _ := p.Payload["content"].(string)
		hits = append(hits, iface.VectorHit{Document: content, Metadata: p.Payload, Score: p.Score})
	}
	return hits, nil
}

// ConvertScore: Qdrant's cosine score is already a similarity in [0,1]
// (spec §4.3), used directly.
func (b *QdrantBackend) ConvertScore(score float32) float32 {
	return clamp(score, 0, 1)
}
