package sqlbackend

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend runs queries against a local SQLite file via
// github.com/mattn/go-sqlite3 (grounded on rcliao-briefly's go.mod).
//
// SQLite templates mix two placeholder idioms (spec §4.4): named
// `%(name)s` parameters, rewritten here to mattn/go-sqlite3's native
// `:name` binding, and bare pagination `?` placeholders, resolved
// against the well-known `limit`/`offset` keys first.
type SQLiteBackend struct {
	Base
}

// NewSQLiteBackend opens a connection pool against a SQLite file path
// (or "file::memory:?cache=shared" for an in-process database).
func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{Base: Base{DriverName: "sqlite3", DSN: path}}
}

// Query rewrites a template-rendered SQL string with %(name)s bindings
// (or bare pagination `?` placeholders) and executes it.
func (b *SQLiteBackend) Query(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if namedParamPattern.MatchString(query) {
		rewritten, args := RewriteToNamed(query, params)
		return b.Execute(ctx, rewritten, args...)
	}
	args := paginationOrderedArgs(query, params)
	return b.Execute(ctx, query, args...)
}
