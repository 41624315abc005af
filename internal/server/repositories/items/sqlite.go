package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// SQLiteRepository keeps created_at as Unix milliseconds. The seq column is
// the table's rowid, so insertion order is the primary key order.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {

	query := `INSERT INTO items (id, title, description, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.OwnerID, item.CreatedAt.UTC().UnixMilli())

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT id, title, description, owner_id, created_at FROM items WHERE id = ?`

	item, err := scanSQLiteItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.Item, error) {
	if limit <= 0 {
		return []*models.Item{}, nil
	}

	query := `SELECT id, title, description, owner_id, created_at FROM items
		WHERE owner_id = ?
		ORDER BY seq
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Item{}
	for rows.Next() {
		item, err := scanSQLiteItem(rows)
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

func (r *SQLiteRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {

	query := `UPDATE items SET title = ?, description = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, item.Title, item.Description, item.ID)
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

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func scanSQLiteItem(row scanner) (*models.Item, error) {
	var (
		item      models.Item
		desc      sql.NullString
		createdAt int64
	)

	if err := row.Scan(&item.ID, &item.Title, &desc, &item.OwnerID, &createdAt); err != nil {
		return nil, err
	}

	if desc.Valid {
		item.Description = &desc.String
	}
	item.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &item, nil
}
