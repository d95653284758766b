package sqlbackend

import (
	"database/sql"
	"regexp"
	"sort"
	"strconv"
)

// namedParamPattern matches the `%(name)s` bind-parameter style the
// template processor emits (spec §4.4, §9 design notes: rendered SQL
// uses Python DB-API named-paramstyle placeholders).
var namedParamPattern = regexp.MustCompile(`%\(([A-Za-z_][A-Za-z0-9_]*)\)s`)

// RewriteToPositional rewrites every `%(name)s` occurrence in query to a
// `?` placeholder, returning the args in occurrence order. Used by the
// MySQL driver, whose database/sql driver binds purely positionally.
func RewriteToPositional(query string, params map[string]any) (string, []any) {
	var args []any
	rewritten := namedParamPattern.ReplaceAllStringFunc(query, func(match string) string {
		name := namedParamPattern.FindStringSubmatch(match)[1]
		args = append(args, params[name])
		return "?"
	})
	return rewritten, args
}

// RewriteToDollar rewrites every `%(name)s` occurrence to a `$N`
// placeholder, in the style lib/pq requires.
func RewriteToDollar(query string, params map[string]any) (string, []any) {
	var args []any
	n := 0
	rewritten := namedParamPattern.ReplaceAllStringFunc(query, func(match string) string {
		name := namedParamPattern.FindStringSubmatch(match)[1]
		args = append(args, params[name])
		n++
		return "$" + strconv.Itoa(n)
	})
	return rewritten, args
}

// RewriteToNamed rewrites every `%(name)s` occurrence to mattn/go-sqlite3's
// `:name` native named-parameter syntax, returning sql.NamedArg bindings.
func RewriteToNamed(query string, params map[string]any) (string, []any) {
	var args []any
	seen := make(map[string]bool)
	rewritten := namedParamPattern.ReplaceAllStringFunc(query, func(match string) string {
		name := namedParamPattern.FindStringSubmatch(match)[1]
		if !seen[name] {
			args = append(args, sql.Named(name, params[name]))
			seen[name] = true
		}
		return ":" + name
	})
	return rewritten, args
}

// positionalPlaceholderPattern matches bare `?` placeholders left after a
// query carries no named params — the pagination-only case SQLite
// templates fall back to (spec §4.4).
var positionalPlaceholderPattern = regexp.MustCompile(`\?`)

// paginationOrderedArgs maps bare `?` placeholders to params, preferring
// the well-known pagination keys "limit" then "offset" in that order and
// falling back to every remaining key sorted for determinism (spec §4.4:
// "maps positional ? to known pagination keys [limit, offset] then to
// all dict values in order").
func paginationOrderedArgs(query string, params map[string]any) []any {
	count := len(positionalPlaceholderPattern.FindAllString(query, -1))
	if count == 0 {
		return nil
	}

	used := make(map[string]bool)
	var args []any
	for _, key := range []string{"limit", "offset"} {
		if len(args) >= count {
			break
		}
		if v, ok := params[key]; ok {
			args = append(args, v)
			used[key] = true
		}
	}

	if len(args) < count {
		remainingKeys := make([]string, 0, len(params))
		for k := range params {
			if !used[k] {
				remainingKeys = append(remainingKeys, k)
			}
		}
		sort.Strings(remainingKeys)
		for _, k := range remainingKeys {
			if len(args) >= count {
				break
			}
			args = append(args, params[k])
		}
	}
	return args
}
