package vector

import (
	"context"
	"fmt"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// MilvusBackend uses the official milvus-sdk-go/v2 client (grounded on
// teilomillet-raggo's go.mod), searching a named "embedding" field and
// loading the collection on SetCollection (spec §4.3 per-backend specifics).
type MilvusBackend struct {
	Address     string
	Metric      string // "IP", "COSINE", or "L2"
	ScaleFactor float32

	client  milvusclient.Client
	loaded  map[string]bool
}

// NewMilvusBackend builds a MilvusBackend; metric defaults to "COSINE".
func NewMilvusBackend(address, metric string, scaleFactor float32) *MilvusBackend {
	if metric == "" {
		metric = "COSINE"
	}
	if scaleFactor == 0 {
		scaleFactor = 1
	}
	return &MilvusBackend{Address: address, Metric: metric, ScaleFactor: scaleFactor, loaded: make(map[string]bool)}
}

func (b *MilvusBackend) Connect(ctx context.Context) error {
	c, err := milvusclient.NewGrpcClient(ctx, b.Address)
	if err != nil {
		return fmt.Errorf("milvus connect %s: %w", b.Address, err)
	}
	b.client = c
	return nil
}

func (b *MilvusBackend) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

func (b *MilvusBackend) EnsureCollection(ctx context.Context, name string, dimension int, autoCreate bool) error {
	has, err := b.client.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if !has {
		if !autoCreate {
			return fmt.Errorf("collection %q not found", name)
		}
		schema := &entity.Schema{
			CollectionName: name,
			Fields: []*entity.Field{
				{Name: "id", DataType: entity.FieldTypeInt64, PrimaryKey: true, AutoID: true},
				{Name: "embedding", DataType: entity.FieldTypeFloatVector, TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", dimension),
				}},
			},
		}
		if err := b.client.CreateCollection(ctx, schema, 2); err != nil {
			return fmt.Errorf("create collection %q: %w", name, err)
		}
	}
	if b.loaded[name] {
		return nil
	}
	if err := b.client.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("load collection %q: %w", name, err)
	}
	b.loaded[name] = true
	return nil
}

func (b *MilvusBackend) Search(ctx context.Context, collection string, embedding []float32, maxResults int) ([]iface.VectorHit, error) {
	vec := entity.FloatVector(embedding)
	sp, err := entity.NewIndexFlatSearchParam()
	if err != nil {
		return nil, err
	}
	results, err := b.client.Search(ctx, collection, nil, "", []string{"content"}, []entity.Vector{vec}, "embedding",
		entity.MetricType(b.Metric), maxResults, sp)
	if err != nil {
		return nil, err
	}

	var hits []iface.VectorHit
	for _, r := range results {
		contentCol := r.Fields.GetColumn("content")
		for i := 0; i < r.ResultCount; i++ {
			var content string
			if contentCol != nil {
				if v, err := contentCol.Get(i); err == nil {
					content, _ = v.(string)
				}
			}
			hits = append(hits, iface.VectorHit{
				Document: content,
				Metadata: map[string]any{},
				Score:    r.Scores[i],
			})
		}
	}
	return hits, nil
}

func (b *MilvusBackend) ConvertScore(score float32) float32 {
	return milvusConfidence(b.Metric, score, b.ScaleFactor)
}
