package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SQLConsole backs the admin query endpoints. It is deliberately read-only:
// instead of blocklisting dangerous keywords it refuses anything that is not
// a single SELECT/WITH/EXPLAIN statement, and every query runs under a
// context timeout.
type SQLConsole struct {
	db      *gorm.DB
	timeout time.Duration
}

type QueryResult struct {
	Columns    []string `json:"columns"`
	Rows       [][]any  `json:"rows"`
	RowCount   int      `json:"row_count"`
	DurationMs int64    `json:"duration_ms"`
}

const defaultQueryTimeout = 10 * time.Second

func NewSQLConsole(db *gorm.DB, timeout time.Duration) *SQLConsole {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &SQLConsole{db: db, timeout: timeout}
}

var (
	lineCommentPattern   = regexp.MustCompile(`--[^\n]*`)
	blockCommentPattern  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringLiteralPattern = regexp.MustCompile(`'[^']*'`)
	nonWordPattern       = regexp.MustCompile(`[^a-z0-9_]+`)
)

var allowedVerbs = map[string]bool{
	"select":  true,
	"with":    true,
	"explain": true,
}

// writeVerbs are rejected anywhere in the statement, not just at the front.
// Postgres can run writes through data-modifying CTEs
// (WITH x AS (DELETE ... RETURNING ...) SELECT ...) and through EXPLAIN
// ANALYZE, so checking the first keyword alone is not enough.
var writeVerbs = map[string]bool{
	"insert":   true,
	"update":   true,
	"delete":   true,
	"drop":     true,
	"truncate": true,
	"alter":    true,
	"create":   true,
	"grant":    true,
	"revoke":   true,
	"merge":    true,
	"copy":     true,
	"call":     true,
	"do":       true,
	"lock":     true,
	"set":      true,
	"vacuum":   true,
	"reindex":  true,
	"refresh":  true,
	"analyze":  true,
}

// sanitize strips comments and the trailing semicolon, and rejects anything
// that is not exactly one read statement.
func sanitize(query string) (string, error) {
	stmt := blockCommentPattern.ReplaceAllString(query, " ")
	stmt = lineCommentPattern.ReplaceAllString(stmt, " ")
	stmt = strings.TrimSpace(stmt)
	stmt = strings.TrimSuffix(stmt, ";")
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return "", ErrQueryNotAllowed
	}

	// Validation runs against a copy with string literals blanked out, so
	// quoted data ("SELECT ';'", a search term containing "update") cannot
	// trip the scan; the statement executed keeps its literals.
	scanned := strings.ToLower(stringLiteralPattern.ReplaceAllString(stmt, " "))
	if strings.Contains(scanned, ";") {
		return "", ErrQueryNotAllowed
	}

	tokens := strings.Fields(nonWordPattern.ReplaceAllString(scanned, " "))
	if len(tokens) == 0 || !allowedVerbs[tokens[0]] {
		return "", ErrQueryNotAllowed
	}
	for _, token := range tokens {
		if writeVerbs[token] {
			return "", ErrQueryNotAllowed
		}
	}
	return stmt, nil
}

func (c *SQLConsole) Execute(ctx context.Context, query string) (*QueryResult, error) {
	stmt, err := sanitize(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	rows, err := c.db.WithContext(ctx).Raw(stmt).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: columns, Rows: [][]any{}}
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for rows.Next() {
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		out := make([]any, len(columns))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				out[i] = string(b)
			} else {
				out[i] = v
			}
		}
		result.Rows = append(result.Rows, out)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = len(result.Rows)
	result.DurationMs = time.Since(started).Milliseconds()
	return result, nil
}

func (c *SQLConsole) Tables(ctx context.Context) ([]string, error) {
	return c.db.WithContext(ctx).Migrator().GetTables()
}

// BrowseTable returns up to limit rows from a table. The name is checked
// against the live schema rather than interpolated blindly.
func (c *SQLConsole) BrowseTable(ctx context.Context, name string, limit int) (*QueryResult, error) {
	tables, err := c.Tables(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range tables {
		if t == name {
			known = true
			break
		}
	}
	if !known {
		return nil, ErrTableNotFound
	}

	if limit < 1 || limit > 200 {
		limit = 50
	}
	return c.Execute(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT %d", name, limit))
}
