package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventzon/eventzon/internal/models"
)

func TestConsoleExecuteSelect(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	seedEvent(t, db, eventSeed{Title: "Tech Conf"})
	console := NewSQLConsole(db, time.Second)

	result, err := console.Execute(context.Background(), "SELECT title FROM events ORDER BY title")
	require.NoError(t, err)

	assert.Equal(t, []string{"title"}, result.Columns)
	assert.Equal(t, 2, result.RowCount)
	assert.Equal(t, "Jazz Night", result.Rows[0][0])
	assert.Equal(t, "Tech Conf", result.Rows[1][0])
	assert.GreaterOrEqual(t, result.DurationMs, int64(0))
}

func TestConsoleExecuteAllowsCTE(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	result, err := console.Execute(context.Background(), "WITH t AS (SELECT 1 AS one) SELECT one FROM t")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func TestConsoleExecuteAllowsTrailingSemicolon(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	result, err := console.Execute(context.Background(), "SELECT 1;")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func TestConsoleRejectsWrites(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	console := NewSQLConsole(db, time.Second)

	queries := []string{
		"INSERT INTO events (title) VALUES ('x')",
		"UPDATE events SET title = 'x'",
		"DELETE FROM events",
		"DROP TABLE events",
		"TRUNCATE TABLE events",
		"ALTER TABLE events ADD COLUMN x TEXT",
		"CREATE TABLE x (y TEXT)",
		"",
		"   ;   ",
	}
	for _, q := range queries {
		_, err := console.Execute(context.Background(), q)
		assert.ErrorIs(t, err, ErrQueryNotAllowed, "query should be rejected: %q", q)
	}
}

func TestConsoleRejectsWritesBuriedInReadStatements(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	console := NewSQLConsole(db, time.Second)

	// Postgres executes writes through data-modifying CTEs and EXPLAIN
	// ANALYZE even though the statement starts with an allowed verb.
	queries := []string{
		"WITH doomed AS (DELETE FROM events RETURNING id) SELECT count(*) FROM doomed",
		"WITH bumped AS (UPDATE events SET title = 'x' RETURNING id) SELECT * FROM bumped",
		"WITH added AS (INSERT INTO events (title) VALUES ('x') RETURNING id) SELECT * FROM added",
		"EXPLAIN ANALYZE DELETE FROM events",
		"EXPLAIN (ANALYZE) UPDATE events SET title = 'x'",
	}
	for _, q := range queries {
		_, err := console.Execute(context.Background(), q)
		assert.ErrorIs(t, err, ErrQueryNotAllowed, "query should be rejected: %q", q)
	}

	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConsoleAllowsWriteVerbsInsideStringLiterals(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	result, err := console.Execute(context.Background(), "SELECT 'delete from events' AS note")
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, "delete from events", result.Rows[0][0])

	// A semicolon inside a literal is data, not a statement separator.
	result, err = console.Execute(context.Background(), "SELECT ';' AS sep")
	require.NoError(t, err)
	assert.Equal(t, ";", result.Rows[0][0])
}

func TestConsoleRejectsMultiStatement(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	_, err := console.Execute(context.Background(), "SELECT 1; DROP TABLE events")
	require.ErrorIs(t, err, ErrQueryNotAllowed)
}

func TestConsoleRejectsCommentDisguises(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	queries := []string{
		"/* harmless */ DELETE FROM events",
		"-- just looking\nDROP TABLE events",
		"/* SELECT */ UPDATE events SET title = 'x'",
	}
	for _, q := range queries {
		_, err := console.Execute(context.Background(), q)
		assert.ErrorIs(t, err, ErrQueryNotAllowed, "query should be rejected: %q", q)
	}
}

func TestConsoleTables(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	tables, err := console.Tables(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tables, "events")
	assert.Contains(t, tables, "bookings")
	assert.Contains(t, tables, "cart_items")
	assert.Contains(t, tables, "users")
}

func TestConsoleBrowseTable(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	console := NewSQLConsole(db, time.Second)

	result, err := console.BrowseTable(context.Background(), "events", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.Contains(t, result.Columns, "title")
}

func TestConsoleBrowseUnknownTable(t *testing.T) {
	db := newTestDB(t)
	console := NewSQLConsole(db, time.Second)

	_, err := console.BrowseTable(context.Background(), "events; DROP TABLE users", 10)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = console.BrowseTable(context.Background(), "no_such_table", 10)
	require.ErrorIs(t, err, ErrTableNotFound)
}
