package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// RedisBackend runs a RediSearch KNN query against a float32
// little-endian-bytes vector field (spec §4.3 per-backend specifics),
// via github.com/redis/go-redis/v9.
type RedisBackend struct {
	Metric      string // "COSINE", "L2", or "IP"
	ScaleFactor float32
	VectorField string

	client *redis.Client
}

// NewRedisBackend builds a RedisBackend bound to an existing *redis.Client.
func NewRedisBackend(client *redis.Client, metric, vectorField string, scaleFactor float32) *RedisBackend {
	if metric == "" {
		metric = "COSINE"
	}
	if vectorField == "" {
		vectorField = "embedding"
	}
	if scaleFactor == 0 {
		scaleFactor = 1
	}
	return &RedisBackend{client: client, Metric: metric, VectorField: vectorField, ScaleFactor: scaleFactor}
}

func (b *RedisBackend) Connect(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error { return b.client.Close() }

// EnsureCollection checks for the RediSearch index by name (FT.INFO).
// When it is missing and autoCreate is set, it creates an HNSW index over
// the vector field alone via FT.CREATE; no other fields are indexed.
func (b *RedisBackend) EnsureCollection(ctx context.Context, indexName string, dimension int, autoCreate bool) error {
	res := b.client.Do(ctx, "FT.INFO", indexName)
	if res.Err() != nil {
		if !autoCreate {
			return fmt.Errorf("redisearch index %q not found: %w", indexName, res.Err())
		}
		createArgs := []any{
			"FT.CREATE", indexName, "ON", "HASH", "SCHEMA",
			b.VectorField, "VECTOR", "HNSW", "6",
			"TYPE", "FLOAT32", "DIM", dimension, "DISTANCE_METRIC", b.Metric,
		}
		if err := b.client.Do(ctx, createArgs...).Err(); err != nil {
			return fmt.Errorf("create redisearch index %q: %w", indexName, err)
		}
	}
	return nil
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Search issues an FT.SEARCH KNN query over the encoded query vector.
func (b *RedisBackend) Search(ctx context.Context, indexName string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	queryVec := encodeVector(embedding)
	knn := fmt.Sprintf("*=>[KNN %d @%s $vec AS score]", maxResults, b.VectorField)

	res, err := b.client.Do(ctx, "FT.SEARCH", indexName, knn,
		"PARAMS", "2", "vec", queryVec,
		"SORTBY", "score",
		"DIALECT", "2",
	).Result()
	if err != nil {
		return nil, err
	}

	rows, ok := res.([]any)
	if !ok || len(rows) == 0 {
		return nil, nil
	}

	var hits []iface.VectorHit
	// rows[0] is the total count; remaining alternate key, field-value list.
	for i := 1; i+1 < len(rows); i += 2 {
		fields, ok := rows[i+1].([]any)
		if !ok {
			continue
		}
		meta := make(map[string]any)
		var score float32
		var content string
		for j := 0; j+1 < len(fields); j += 2 {
			key, _ := fields[j].(string)
			val := fields[j+1]
			switch key {
			case "score":
				if s, ok := val.(string); ok {
					fmt.Sscanf(s, "%f", &score)
				}
			case "content":
				content, _ = val.(string)
			default:
				meta[key] = val
			}
		}
		hits = append(hits, iface.VectorHit{Document: content, Metadata: meta, Score: score})
	}
	return hits, nil
}

func (b *RedisBackend) ConvertScore(score float32) float32 {
	return redisConfidence(b.Metric, score, b.ScaleFactor)
}
