// Package repomanager vends dialect-specific repositories bound to a DBTX and
// runs the matching schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}

// Openers are seams for tests.
var (
	openPostgres = dbx.OpenPostgres
	openSQLite   = dbx.OpenSQLite
)

// Open connects to the database named by dsn and returns it together with the
// manager for its dialect. postgres:// and postgresql:// select PostgreSQL;
// sqlite: (prefix stripped), file: and :memory: select SQLite.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := openPostgres(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		m, err := NewPostgresRepositoryManager(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, m, nil

	case strings.HasPrefix(dsn, "sqlite:"), strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, ":memory:"):
		db, err := openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite:"))
		if err != nil {
			return nil, nil, err
		}
		m, err := NewSQLiteRepositoryManager(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, m, nil
	}

	return nil, nil, fmt.Errorf("unsupported database dsn scheme: %q", redact(dsn))
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if i := strings.Index(dsn, ":"); i >= 0 {
		return dsn[:i+1] + "..."
	}
	return "..."
}
