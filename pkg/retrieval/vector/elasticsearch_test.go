package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElasticsearchBackend_Defaults(t *testing.T) {
	b := NewElasticsearchBackend("http://unused", "", "", 0)
	assert.Equal(t, "embedding", b.VectorField)
	assert.Equal(t, float32(1), b.ScoreScalingFactor)
}

func TestElasticsearchBackend_EnsureCollection_ExistingIndexIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewElasticsearchBackend(srv.URL, "", "", 0)
	assert.NoError(t, b.EnsureCollection(context.Background(), "docs", 3, true))
}

func TestElasticsearchBackend_EnsureCollection_CreatesMappingWhenMissing(t *testing.T) {
	var createdBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			createdBody = string(buf)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	b := NewElasticsearchBackend(srv.URL, "", "vec", 0)
	require.NoError(t, b.EnsureCollection(context.Background(), "docs", 128, true))
	assert.Contains(t, createdBody, "dense_vector")
	assert.Contains(t, createdBody, "\"vec\"")
}

func TestElasticsearchBackend_EnsureCollection_MissingWithoutAutoCreateFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	b := NewElasticsearchBackend(srv.URL, "", "", 0)
	assert.Error(t, b.EnsureCollection(context.Background(), "docs", 3, false))
}

func TestElasticsearchBackend_Search_SendsWidenedNumCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/_search", r.URL.Path)
		var sent esKNNRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, 3, sent.KNN.K)
		assert.Equal(t, 100, sent.KNN.NumCandidates, "num_candidates is max(2*k, 100)")
		w.Write([]byte(`{"hits":{"hits":[{"_score":1.5,"_source":{"content":"hello"}}]}}`))
	}))
	defer srv.Close()

	b := NewElasticsearchBackend(srv.URL, "", "", 0)
	hits, err := b.Search(context.Background(), "docs", []float32{0.1}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "hello", hits[0].Document)
}

func TestElasticsearchBackend_Search_UpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewElasticsearchBackend(srv.URL, "", "", 0)
	_, err := b.Search(context.Background(), "docs", []float32{0.1}, 3)
	assert.Error(t, err)
}

func TestElasticsearchBackend_ConvertScore_ScalesAndClamps(t *testing.T) {
	b := NewElasticsearchBackend("http://unused", "", "", 0.5)
	assert.InDelta(t, 0.5, b.ConvertScore(1), 0.0001)
	assert.Equal(t, float32(1), b.ConvertScore(10))
}
