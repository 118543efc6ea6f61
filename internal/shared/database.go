package shared

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the [sql] driver registered for catalog databases.
//
// It wraps go-sqlite3 with a connect hook that enables foreign key enforcement and
// registers the casefold() SQL function on every pooled connection.
const DriverName = "sqlite3_mixdeck"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{ConnectHook: connectHook})
}

func connectHook(conn *sqlite3.SQLiteConn) error {
	if _, err := conn.Exec("PRAGMA foreign_keys = ON", nil); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := conn.RegisterFunc("casefold", Fold, true); err != nil {
		return fmt.Errorf("failed to register casefold: %w", err)
	}
	return nil
}

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database, which is pinned to a single connection
// since every new connection would otherwise see its own empty database.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if IsMemoryPath(path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Recommended for production use to limit connections and improve performance.
// Non-positive values leave the corresponding setting untouched, as does a pool already pinned to one connection.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if db.Stats().MaxOpenConnections == 1 {
		return
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

// IsMemoryPath reports whether path names an in-memory database.
func IsMemoryPath(path string) bool {
	return path == MemoryPath || strings.Contains(path, "mode=memory")
}

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func dsn(path string) string {
	if IsMemoryPath(path) {
		return path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}
