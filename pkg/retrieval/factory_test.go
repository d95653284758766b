package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

type stubRetriever struct{ collection string }

func (r *stubRetriever) Initialize(ctx context.Context) error { return nil }
func (r *stubRetriever) Close() error                         { return nil }
func (r *stubRetriever) SetCollection(ctx context.Context, name string) error {
	r.collection = name
	return nil
}
func (r *stubRetriever) GetRelevantContext(ctx context.Context, query string, opts ...iface.QueryOption) ([]schema.ContextItem, error) {
	return nil, nil
}

func TestRetrieverFactory_RegisterAndCreate(t *testing.T) {
	f := NewRetrieverFactory()
	assert.False(t, f.IsRegistered("sql_intent"))

	f.Register("sql_intent", func(config map[string]any) (iface.Retriever, error) {
		return &stubRetriever{}, nil
	})

	assert.True(t, f.IsRegistered("sql_intent"))
	assert.Equal(t, []string{"sql_intent"}, f.RetrieverTypes())

	r, err := f.CreateRetriever("sql_intent", nil)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRetrieverFactory_CreateRetriever_Unknown(t *testing.T) {
	f := NewRetrieverFactory()
	_, err := f.CreateRetriever("does_not_exist", nil)
	require.Error(t, err)
	assert.Equal(t, KindUnknownType, KindOf(err))
}

func TestRetrieverFactory_Register_Overwrites(t *testing.T) {
	f := NewRetrieverFactory()
	f.Register("t", func(config map[string]any) (iface.Retriever, error) {
		return &stubRetriever{collection: "first"}, nil
	})
	f.Register("t", func(config map[string]any) (iface.Retriever, error) {
		return &stubRetriever{collection: "second"}, nil
	})

	r, err := f.CreateRetriever("t", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", r.(*stubRetriever).collection)
}

func TestGlobalRetrieverFactory_Singleton(t *testing.T) {
	assert.Same(t, GlobalRetrieverFactory(), GlobalRetrieverFactory())
}
