package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"devevents/migrations"

	_ "modernc.org/sqlite"
)

// NewSQLiteDB opens a private in-memory SQLite database with foreign keys enforced
// and the schema migrated. The pool is capped at one connection because every
// :memory: connection is a separate database.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := migrations.Apply(ctx, db, migrations.DialectSQLite); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return db
}

// TableNames returns the user table names in db, sorted.
func TableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	return names
}
