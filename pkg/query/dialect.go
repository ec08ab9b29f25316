package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavor a query is rendered for.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case SQLite, Postgres:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %q", s)
	}
}

// Like returns the case-insensitive pattern match operator.
// SQLite LIKE is case-insensitive for ASCII characters only.
func (d Dialect) Like() string {
	if d == Postgres {
		return "ILIKE"
	}
	return "LIKE"
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Queries are written with ? and rebound once before execution.
func (d Dialect) Rebind(q string) string {
	if d != Postgres || !strings.Contains(q, "?") {
		return q
	}

	var sb strings.Builder
	sb.Grow(len(q) + 8)

	n := 1
	for _, r := range q {
		if r == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
