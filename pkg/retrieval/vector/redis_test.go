package vector

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisBackend_Defaults(t *testing.T) {
	b := NewRedisBackend(redis.NewClient(&redis.Options{}), "", "", 0)
	assert.Equal(t, "COSINE", b.Metric)
	assert.Equal(t, "embedding", b.VectorField)
	assert.Equal(t, float32(1), b.ScaleFactor)
}

func TestNewRedisBackend_KeepsExplicitFields(t *testing.T) {
	b := NewRedisBackend(redis.NewClient(&redis.Options{}), "L2", "vec", 3)
	assert.Equal(t, "L2", b.Metric)
	assert.Equal(t, "vec", b.VectorField)
	assert.Equal(t, float32(3), b.ScaleFactor)
}

func TestRedisBackend_ConvertScore_UsesConfiguredMetric(t *testing.T) {
	b := NewRedisBackend(redis.NewClient(&redis.Options{}), "IP", "", 1)
	assert.InDelta(t, float64(redisConfidence("IP", 0.4, 1)), float64(b.ConvertScore(0.4)), 0.0001)
}

func TestEncodeVector_ProducesFourBytesPerComponent(t *testing.T) {
	encoded := encodeVector([]float32{1, -2.5})
	assert.Len(t, encoded, 8)
}
