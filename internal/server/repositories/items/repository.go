// Package items is the persistence side of the item store. It performs no
// ownership checks; callers decide who may see a record.
package items

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// Repository stores items in insertion order. FindByID and Update return
// common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)
	// ListByOwner returns at most limit of ownerID's items after skipping
	// offset, oldest first.
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id string) (bool, error)
}
