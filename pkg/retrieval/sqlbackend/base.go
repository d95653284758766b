// Package sqlbackend provides the shared SQL-connection plumbing the
// intent pipeline's backend drivers build on (spec §4.4): parameter-style
// rewriting, row-to-map conversion, dead-connection detection, and one
// automatic reconnect-and-retry. Concrete drivers (sqlite, postgresql,
// mysql) embed Base and supply only their placeholder style and DSN
// construction, mirroring the teacher's provider-per-file layout under
// pkg/vectorstores/providers.
package sqlbackend

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// deadConnectionPattern matches driver error text indicating the
// underlying connection is no longer usable, per spec §4.4's
// "detect dead connections by scanning error text" requirement.
var deadConnectionPattern = regexp.MustCompile(`(?i)(connection).*(closed|lost|broken|reset|gone away|bad connection)`)

// isDeadConnectionError reports whether err looks like a dropped
// connection rather than a query-shape problem.
func isDeadConnectionError(err error) bool {
	if err == nil {
		return false
	}
	return deadConnectionPattern.MatchString(err.Error())
}

// Base implements the iface.SQLBackend connection lifecycle shared by
// every SQL driver: open, one reconnect-and-retry on a dead connection,
// and row decoding into map[string]any with JSON-friendly scalar types.
type Base struct {
	DriverName string
	DSN        string

	mu sync.Mutex
	db *sql.DB
}

// Connect opens the pool. database/sql pools lazily, so this call also
// pings to fail fast on unreachable hosts, per the teacher's Connect
// convention across its vectorstore providers.
func (b *Base) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open(ctx)
}

func (b *Base) open(ctx context.Context) error {
	db, err := sql.Open(b.DriverName, b.DSN)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.DriverName, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("ping %s: %w", b.DriverName, err)
	}
	b.db = db
	return nil
}

func (b *Base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Execute runs query with args and decodes every row into a map keyed by
// column name. On a detected dead connection it reopens the pool once
// and retries the query before giving up (spec §4.4).
func (b *Base) Execute(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := b.execute(ctx, query, args...)
	if err != nil && isDeadConnectionError(err) {
		b.mu.Lock()
		reopenErr := b.open(ctx)
		b.mu.Unlock()
		if reopenErr == nil {
			rows, err = b.execute(ctx, query, args...)
		}
	}
	return rows, err
}

func (b *Base) execute(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	b.mu.Lock()
	db := b.db
	b.mu.Unlock()
	if db == nil {
		return nil, fmt.Errorf("%s: connection not initialized", b.DriverName)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		scanDest := make([]any, len(cols))
		scanVals := make([]any, len(cols))
		for i := range scanDest {
			scanDest[i] = &scanVals[i]
		}
		if err := rows.Scan(scanDest...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(scanVals[i])
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// normalizeValue converts driver-returned scalars into JSON-friendly Go
// types: []byte becomes a UTF-8 string (invalid sequences replaced, per
// spec §4.4's "bytes -> utf8-with-replacement" rule).
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return strings.ToValidUTF8(string(val), "�")
	default:
		return v
	}
}

var _ iface.SQLBackend = (*Base)(nil)
