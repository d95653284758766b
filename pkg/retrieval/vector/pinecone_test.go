package vector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPineconeBackend_EnsureCollection_RejectsEmptyNamespace(t *testing.T) {
	b := NewPineconeBackend("http://unused", "", 0)
	assert.Error(t, b.EnsureCollection(context.Background(), "", 3, true))
}

func TestPineconeBackend_EnsureCollection_NonEmptyNamespaceIsNoop(t *testing.T) {
	b := NewPineconeBackend("http://unused", "", 0)
	assert.NoError(t, b.EnsureCollection(context.Background(), "tenant-a", 3, false))
}

func TestPineconeBackend_Search_FallsBackAcrossMetadataKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))
		w.Write([]byte(`{"matches":[
			{"score":0.9,"metadata":{"text":"from text field"}},
			{"score":0.5,"metadata":{"document":"from document field"}},
			{"score":0.3,"metadata":{"content":"from content field"}}
		]}`))
	}))
	defer srv.Close()

	b := NewPineconeBackend(srv.URL, "secret", 0)
	hits, err := b.Search(context.Background(), "ns", []float32{0.1}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "from text field", hits[0].Document)
	assert.Equal(t, "from document field", hits[1].Document)
	assert.Equal(t, "from content field", hits[2].Document)
}

func TestPineconeBackend_Search_UpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad vector"}`))
	}))
	defer srv.Close()

	b := NewPineconeBackend(srv.URL, "", 0)
	_, err := b.Search(context.Background(), "ns", []float32{0.1}, 3)
	assert.Error(t, err)
}

func TestPineconeBackend_ConvertScore_AppliesScalingFactorAndClamps(t *testing.T) {
	b := NewPineconeBackend("http://unused", "", 2)
	assert.Equal(t, float32(1), b.ConvertScore(0.9), "0.9*2 clamps to the 1 ceiling")
	assert.InDelta(t, 0.6, b.ConvertScore(0.3), 0.0001)
}

func TestNewPineconeBackend_DefaultsScalingFactorToOne(t *testing.T) {
	b := NewPineconeBackend("http://unused", "", 0)
	assert.Equal(t, float32(1), b.ScoreScalingFactor)
}
