package sqlbackend

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLBackend runs queries against MySQL/MariaDB via
// github.com/go-sql-driver/mysql, the ecosystem-standard database/sql
// driver for that family (same conventions as lib/pq and mattn/go-sqlite3).
type MySQLBackend struct {
	Base
}

// NewMySQLBackend opens a connection pool against a go-sql-driver/mysql
// DSN ("user:pass@tcp(host:3306)/dbname").
func NewMySQLBackend(dsn string) *MySQLBackend {
	return &MySQLBackend{Base: Base{DriverName: "mysql", DSN: dsn}}
}

// Query rewrites a template-rendered `%(name)s` SQL string into bare `?`
// positional placeholders and executes it.
func (b *MySQLBackend) Query(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	rewritten, args := RewriteToPositional(query, params)
	return b.Execute(ctx, rewritten, args...)
}
