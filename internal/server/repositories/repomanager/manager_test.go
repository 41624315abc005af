package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	ctx := context.Background()

	db, m, err := Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	defer db.Close()

	require.IsType(t, &SQLiteRepositoryManager{}, m)
	require.NoError(t, m.RunMigrations(ctx, db))

	_, ok := m.Users(db).(*users.SQLiteRepository)
	assert.True(t, ok)
	_, ok = m.Items(db).(*items.SQLiteRepository)
	assert.True(t, ok)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_PostgresSelectsPostgresManager(t *testing.T) {
	db, _ := newDB(t)

	var gotDSN string
	orig := openPostgres
	openPostgres = func(ctx context.Context, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, nil
	}
	defer func() { openPostgres = orig }()

	dsn := "postgres://u:p@localhost:5432/itemkeeper?sslmode=disable"
	got, m, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, dsn, gotDSN)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
}

func TestOpen_PropagatesOpenError(t *testing.T) {
	orig := openPostgres
	openPostgres = func(ctx context.Context, dsn string) (*sql.DB, error) {
		return nil, errors.New("dial tcp: refused")
	}
	defer func() { openPostgres = orig }()

	_, _, err := Open(context.Background(), "postgresql://localhost/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestOpen_UnsupportedSchemeRedactsCredentials(t *testing.T) {
	_, _, err := Open(context.Background(), "mysql://root:hunter2@db/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql://")
	assert.NotContains(t, err.Error(), "hunter2")
}
