package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMilvusBackend_DefaultsMetricAndScale(t *testing.T) {
	b := NewMilvusBackend("localhost:19530", "", 0)
	assert.Equal(t, "COSINE", b.Metric)
	assert.Equal(t, float32(1), b.ScaleFactor)
}

func TestNewMilvusBackend_KeepsExplicitMetric(t *testing.T) {
	b := NewMilvusBackend("localhost:19530", "L2", 2)
	assert.Equal(t, "L2", b.Metric)
	assert.Equal(t, float32(2), b.ScaleFactor)
}

func TestMilvusBackend_Close_NilClientIsNoop(t *testing.T) {
	b := NewMilvusBackend("localhost:19530", "", 0)
	assert.NoError(t, b.Close())
}

func TestMilvusBackend_ConvertScore_UsesConfiguredMetric(t *testing.T) {
	b := NewMilvusBackend("localhost:19530", "L2", 1)
	assert.InDelta(t, float64(milvusConfidence("L2", 1, 1)), float64(b.ConvertScore(1)), 0.0001)
}
