package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLite connection parameters understood by the modernc driver.
const (
	sqliteForeignKeys = "_pragma=foreign_keys(1)"
	sqliteBusyTimeout = "_pragma=busy_timeout(5000)"
	sqliteTxLock      = "_txlock=immediate"
)

// OpenPostgres opens a pgx-backed pool and verifies it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// OpenSQLite opens a modernc SQLite database with foreign keys enforced.
// In-memory databases are pinned to a single connection, since every new
// connection would otherwise see its own empty database. File databases keep
// a pool, so writers wait on the lock instead of failing with SQLITE_BUSY and
// transactions take the write lock at BEGIN.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	dsn = withSQLiteParam(dsn, "foreign_keys", sqliteForeignKeys)

	memory := IsMemoryDSN(dsn)
	if !memory {
		dsn = withSQLiteParam(dsn, "busy_timeout", sqliteBusyTimeout)
		dsn = withSQLiteParam(dsn, "_txlock", sqliteTxLock)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// withSQLiteParam appends param to dsn unless key is already mentioned.
func withSQLiteParam(dsn, key, param string) string {
	if strings.Contains(dsn, key) {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + param
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
