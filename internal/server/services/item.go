package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/itemkeeper/internal/server/storage"
	"github.com/google/uuid"
)

const (
	msgItemNotFound  = "Item not found"
	msgBlankTitle    = "Title must not be blank"
	msgBadPagination = "skip and limit must not be negative"
)

// Attachment is a presigned URL for the object holding an item's attachment.
type Attachment struct {
	Key string
	URL string
}

// ItemService performs item operations on behalf of an authenticated caller.
// An item that exists but belongs to someone else is reported exactly like a
// missing one, so callers cannot probe for other users' ids.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   storage.ObjectPresigner

	now   func() time.Time
	newID func() string
}

// NewItemService constructs an ItemService. presigner may be nil when no
// object storage is configured; the attachment operations then fail.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager, presigner storage.ObjectPresigner) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
		presigner:   presigner,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Create stores a new item owned by caller. The owner always comes from the
// identity, never from the request.
func (s *ItemService) Create(ctx context.Context, caller *models.Identity, title string, description *string) (*models.Item, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, common.NewPublicError(common.ErrorValidation, msgBlankTitle)
	}

	item := &models.Item{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		OwnerID:     caller.ID,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	created, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return created, nil
}

// List returns a page of caller's own items in insertion order.
func (s *ItemService) List(ctx context.Context, caller *models.Identity, offset, limit int) ([]*models.Item, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, common.NewPublicError(common.ErrorValidation, msgBadPagination)
	}

	list, err := s.repomanager.Items(s.db).ListByOwner(ctx, caller.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return list, nil
}

// Get returns the item with id if caller owns it.
func (s *ItemService) Get(ctx context.Context, caller *models.Identity, id string) (*models.Item, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, s.repomanager.Items(s.db), caller, id)
}

// Update applies patch to caller's item and returns the full record. Fetch,
// check and write share one transaction; an item deleted concurrently
// surfaces as not found.
func (s *ItemService) Update(ctx context.Context, caller *models.Identity, id string, patch models.ItemPatch) (*models.Item, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if patch.Title.Set && strings.TrimSpace(patch.Title.Value) == "" {
		return nil, common.NewPublicError(common.ErrorValidation, msgBlankTitle)
	}

	var updated *models.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)

		item, err := s.findOwned(ctx, repo, caller, id)
		if err != nil {
			return err
		}

		patch.Apply(item)

		updated, err = repo.Update(ctx, item)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewPublicError(common.ErrorNotFound, msgItemNotFound)
			}
			return fmt.Errorf("error updating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes caller's item.
func (s *ItemService) Delete(ctx context.Context, caller *models.Identity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)

		if _, err := s.findOwned(ctx, repo, caller, id); err != nil {
			return err
		}

		ok, err := repo.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("error deleting item: %w", err)
		}
		if !ok {
			return common.NewPublicError(common.ErrorNotFound, msgItemNotFound)
		}
		return nil
	})
}

// AttachmentUploadURL returns a presigned PUT URL for caller's item.
func (s *ItemService) AttachmentUploadURL(ctx context.Context, caller *models.Identity, id string) (*Attachment, error) {
	key, err := s.attachmentKey(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	url, err := s.presigner.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error signing upload url: %w", err)
	}
	return &Attachment{Key: key, URL: url}, nil
}

// AttachmentDownloadURL returns a presigned GET URL for caller's item.
func (s *ItemService) AttachmentDownloadURL(ctx context.Context, caller *models.Identity, id string) (*Attachment, error) {
	key, err := s.attachmentKey(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	url, err := s.presigner.PresignGet(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error signing download url: %w", err)
	}
	return &Attachment{Key: key, URL: url}, nil
}

// attachmentKey runs the same ownership check as Get.
func (s *ItemService) attachmentKey(ctx context.Context, caller *models.Identity, id string) (string, error) {
	item, err := s.Get(ctx, caller, id)
	if err != nil {
		return "", err
	}
	if s.presigner == nil {
		return "", fmt.Errorf("%w: attachment storage is not configured", common.ErrorInternal)
	}
	return storage.ItemObjectKey(item.OwnerID, item.ID), nil
}

// findOwned loads id through repo and hides items caller does not own.
func (s *ItemService) findOwned(ctx context.Context, repo items.Repository, caller *models.Identity, id string) (*models.Item, error) {
	if !dbx.IsCanonicalUUID(id) {
		return nil, common.NewPublicError(common.ErrorNotFound, msgItemNotFound)
	}

	item, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorNotFound, msgItemNotFound)
		}
		return nil, fmt.Errorf("error searching item: %w", err)
	}

	if item.OwnerID != caller.ID {
		return nil, common.NewPublicError(common.ErrorNotFound, msgItemNotFound)
	}

	return item, nil
}

func requireCaller(caller *models.Identity) error {
	if caller == nil || caller.ID == "" {
		return common.NewPublicError(common.ErrorUnauthenticated, msgBadToken)
	}
	return nil
}
