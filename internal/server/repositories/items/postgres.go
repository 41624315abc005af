package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {

	query :=
		`INSERT INTO items (id, title, description, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.OwnerID, item.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	if !dbx.IsCanonicalUUID(id) {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, title, description, owner_id, created_at FROM items
		 WHERE id = $1
		 `

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.Item, error) {
	if limit <= 0 {
		return []*models.Item{}, nil
	}
	if !dbx.IsCanonicalUUID(ownerID) {
		return []*models.Item{}, nil
	}

	query :=
		`SELECT id, title, description, owner_id, created_at FROM items
		 WHERE owner_id = $1
		 ORDER BY seq
		 OFFSET $2 LIMIT $3
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if !dbx.IsCanonicalUUID(item.ID) {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE items SET title = $2, description = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.Description)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !dbx.IsCanonicalUUID(id) {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*models.Item, error) {
	var (
		item models.Item
		desc sql.NullString
	)

	if err := row.Scan(&item.ID, &item.Title, &desc, &item.OwnerID, &item.CreatedAt); err != nil {
		return nil, err
	}

	if desc.Valid {
		item.Description = &desc.String
	}
	item.CreatedAt = item.CreatedAt.UTC()

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]*models.Item, error) {
	result := []*models.Item{}

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
