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

// ElasticsearchBackend runs a KNN query over a configured vector field,
// wire-level over net/http in the same idiom as the qdrant/pinecone
// drivers (the example pack carries no dedicated Elasticsearch client).
type ElasticsearchBackend struct {
	URL                string
	APIKey             string
	VectorField        string
	ScoreScalingFactor float32

	httpClient *http.Client
}

// NewElasticsearchBackend builds an ElasticsearchBackend targeting a dense
// vector field (default "embedding").
func NewElasticsearchBackend(url, apiKey, vectorField string, scoreScalingFactor float32) *ElasticsearchBackend {
	if vectorField == "" {
		vectorField = "embedding"
	}
	if scoreScalingFactor == 0 {
		scoreScalingFactor = 1
	}
	return &ElasticsearchBackend{
		URL: url, APIKey: apiKey, VectorField: vectorField, ScoreScalingFactor: scoreScalingFactor,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *ElasticsearchBackend) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL+"/_cluster/health", nil)
	if err != nil {
		return err
	}
	b.setHeaders(req)
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("elasticsearch unreachable at %s: %w", b.URL, err)
	}
	defer resp.Body.Close()
	return nil
}

func (b *ElasticsearchBackend) Close() error { return nil }

func (b *ElasticsearchBackend) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if b.APIKey != "" {
		req.Header.Set("Authorization", "ApiKey "+b.APIKey)
	}
}

func (b *ElasticsearchBackend) EnsureCollection(ctx context.Context, index string, dimension int, autoCreate bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, b.URL+"/"+index, nil)
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
	if !autoCreate {
		return fmt.Errorf("index %q not found", index)
	}

	mapping := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				b.VectorField: map[string]any{
					"type":       "dense_vector",
					"dims":       dimension,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}
	body, _ := json.Marshal(mapping)
	createReq, err := http.NewRequestWithContext(ctx, http.MethodPut, b.URL+"/"+index, bytes.NewReader(body))
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
		return fmt.Errorf("failed to create index %q: status %d", index, createResp.StatusCode)
	}
	return nil
}

type esKNNRequest struct {
	KNN struct {
		Field         string    `json:"field"`
		QueryVector   []float32 `json:"query_vector"`
		K             int       `json:"k"`
		NumCandidates int       `json:"num_candidates"`
	} `json:"knn"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float32        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search issues a KNN query with num_candidates = max(2*topK, 100), per
// spec §4.3 per-backend specifics.
func (b *ElasticsearchBackend) Search(ctx context.Context, index string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	numCandidates := 2 * maxResults
	if numCandidates < 100 {
		numCandidates = 100
	}

	var req esKNNRequest
	req.KNN.Field = b.VectorField
	req.KNN.QueryVector = embedding
	req.KNN.K = maxResults
	req.KNN.NumCandidates = numCandidates

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.URL+"/"+index+"/_search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	b.setHeaders(httpReq)
	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("elasticsearch search failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed esSearchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	hits := make([]iface.VectorHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		content, _ := h.Source["content"].(string)
		hits = append(hits, iface.VectorHit{Document: content, Metadata: h.Source, Score: h.Score})
	}
	return hits, nil
}

// ConvertScore: Elasticsearch's KNN score is used directly, optionally
// scaled (spec §4.3).
func (b *ElasticsearchBackend) ConvertScore(score float32) float32 {
	return clamp(score*b.ScoreScalingFactor, 0, 1)
}
