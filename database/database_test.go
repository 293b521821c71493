package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomyedwab/sqlite-tools/query"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Connect(MemoryPath)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConnectBadPath(t *testing.T) {
	if _, err := Connect("/nonexistent-dir/no-such-file.db"); err == nil {
		t.Error("Connect to an unwritable path succeeded, want error")
	}
}

func TestExecuteWriteAndRead(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecuteWrite(ctx, query.Statement{
		SQL: "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)",
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	mut, err := db.ExecuteWrite(ctx, query.Statement{
		SQL:    "INSERT INTO users (name) VALUES (?)",
		Params: []any{"Alice"},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if mut.Changes != 1 {
		t.Errorf("Changes = %d, want 1", mut.Changes)
	}
	if mut.LastInsertID != 1 {
		t.Errorf("LastInsertID = %d, want 1", mut.LastInsertID)
	}

	rs, err := db.ExecuteRead(ctx, query.Statement{SQL: "SELECT id, name FROM users"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rs.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rs.Rows))
	}
	if rs.Rows[0]["name"] != "Alice" {
		t.Errorf("name = %v (%T), want Alice as string", rs.Rows[0]["name"], rs.Rows[0]["name"])
	}
	if rs.Rows[0]["id"] != int64(1) {
		t.Errorf("id = %v (%T), want int64(1)", rs.Rows[0]["id"], rs.Rows[0]["id"])
	}
}

func TestExecuteReadDriverError(t *testing.T) {
	db := openTestDB(t)

	_, err := db.ExecuteRead(context.Background(), query.Statement{SQL: "SELECT * FROM missing_table"})
	if err == nil {
		t.Fatal("read from missing table succeeded, want error")
	}
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Errorf("error type = %T, want *QueryError", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	setup := []string{
		"CREATE TABLE parents (id INTEGER PRIMARY KEY)",
		"CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER REFERENCES parents(id))",
	}
	for _, sql := range setup {
		if _, err := db.ExecuteWrite(ctx, query.Statement{SQL: sql}); err != nil {
			t.Fatalf("setup %q: %v", sql, err)
		}
	}

	_, err := db.ExecuteWrite(ctx, query.Statement{
		SQL:    "INSERT INTO children (parent_id) VALUES (?)",
		Params: []any{999},
	})
	if err == nil {
		t.Error("insert with dangling foreign key succeeded, want constraint error")
	}
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
