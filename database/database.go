package database

// Database owns the single SQLite handle shared by every transport. It
// executes already-built statements and reports results or driver errors;
// it holds no request state and wraps nothing in transactions.

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomyedwab/sqlite-tools/query"
)

const MemoryPath = ":memory:"

// DefaultQueryTimeout bounds each statement execution so a pathological
// query cannot stall the shared handle forever.
const DefaultQueryTimeout = 30 * time.Second

type Database struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// RowSet is the buffered result of a read statement.
type RowSet struct {
	Rows []map[string]any
}

// Mutation reports the outcome of a write statement.
type Mutation struct {
	Changes      int64
	LastInsertID int64
}

// QueryError wraps an error surfaced by the driver during execution:
// malformed SQL, unknown table or column, constraint or type failure.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Connect opens the SQLite database at path, or an in-memory instance for
// the :memory: sentinel. Foreign key enforcement is always on; file-backed
// databases additionally get WAL journaling and a busy timeout. The pool is
// capped at one connection since the whole process shares one handle.
func Connect(path string) (*Database, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	return &Database{db: db, queryTimeout: DefaultQueryTimeout}, nil
}

func (d *Database) SetQueryTimeout(timeout time.Duration) {
	if timeout > 0 {
		d.queryTimeout = timeout
	}
}

// ExecuteRead runs a read statement and buffers every result row as a
// column-name-to-value map. TEXT cells that the driver surfaces as byte
// slices are normalized to strings so the rows render cleanly as JSON.
func (d *Database) ExecuteRead(ctx context.Context, stmt query.Statement) (*RowSet, error) {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	rows, err := d.db.QueryxContext(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer rows.Close()

	result := make([]map[string]any, 0)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, &QueryError{Err: err}
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: err}
	}
	return &RowSet{Rows: result}, nil
}

// ExecuteWrite runs a write statement and reports affected rows and the
// engine-assigned row ID. Each call is a single autocommit statement.
func (d *Database) ExecuteWrite(ctx context.Context, stmt query.Statement) (*Mutation, error) {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	res, err := d.db.ExecContext(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return &Mutation{Changes: changes, LastInsertID: lastID}, nil
}

// Ping reports whether the handle is still usable. Used by the HTTP health
// endpoint as the liveness signal.
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sqlx.DB {
	return d.db
}
