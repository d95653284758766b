package sqlbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteToPositional(t *testing.T) {
	query, args := RewriteToPositional(
		"SELECT * FROM orders WHERE customer_id = %(customer_id)s AND status = %(status)s",
		map[string]any{"customer_id": 7, "status": "shipped"},
	)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = ? AND status = ?", query)
	require.Len(t, args, 2)
	assert.Equal(t, 7, args[0])
	assert.Equal(t, "shipped", args[1])
}

func TestRewriteToDollar(t *testing.T) {
	query, args := RewriteToDollar(
		"SELECT * FROM orders WHERE customer_id = %(customer_id)s AND total > %(min_total)s",
		map[string]any{"customer_id": 7, "min_total": 100},
	)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = $1 AND total > $2", query)
	require.Len(t, args, 2)
	assert.Equal(t, 7, args[0])
	assert.Equal(t, 100, args[1])
}

func TestRewriteToNamed(t *testing.T) {
	query, args := RewriteToNamed(
		"SELECT * FROM orders WHERE customer_id = %(customer_id)s",
		map[string]any{"customer_id": 7},
	)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = :customer_id", query)
	require.Len(t, args, 1)
}

func TestRewriteToNamed_RepeatedPlaceholderBoundOnce(t *testing.T) {
	query, args := RewriteToNamed(
		"SELECT * FROM orders WHERE customer_id = %(customer_id)s OR parent_id = %(customer_id)s",
		map[string]any{"customer_id": 7},
	)
	assert.Equal(t, "SELECT * FROM orders WHERE customer_id = :customer_id OR parent_id = :customer_id", query)
	assert.Len(t, args, 1, "a repeated named placeholder is bound only once")
}

func TestPaginationOrderedArgs_PrefersLimitThenOffset(t *testing.T) {
	args := paginationOrderedArgs("SELECT * FROM orders LIMIT ? OFFSET ?", map[string]any{"limit": 10, "offset": 20, "status": "shipped"})
	require.Len(t, args, 2)
	assert.Equal(t, 10, args[0])
	assert.Equal(t, 20, args[1])
}

func TestPaginationOrderedArgs_FallsBackToSortedRemainingKeys(t *testing.T) {
	args := paginationOrderedArgs("SELECT * FROM orders WHERE a = ? AND b = ?", map[string]any{"b": "second", "a": "first"})
	require.Len(t, args, 2)
	assert.Equal(t, "first", args[0])
	assert.Equal(t, "second", args[1])
}

func TestPaginationOrderedArgs_NoPlaceholdersReturnsNil(t *testing.T) {
	args := paginationOrderedArgs("SELECT * FROM orders", map[string]any{"limit": 10})
	assert.Nil(t, args)
}
