package api

import (
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// DefaultListLimit applies when ListItemsRequest.Limit is absent.
const DefaultListLimit = 100

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Credentials is the body of both Register and Login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Empty struct{}

// UpdateMeRequest carries only the fields the caller wants to change.
type UpdateMeRequest struct {
	models.UserPatch
}

type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type ListItemsRequest struct {
	Offset int  `json:"offset"`
	Limit  *int `json:"limit,omitempty"`
}

// EffectiveLimit returns Limit or DefaultListLimit when it is absent.
func (r *ListItemsRequest) EffectiveLimit() int {
	if r.Limit == nil {
		return DefaultListLimit
	}
	return *r.Limit
}

type ListItemsResponse struct {
	Items []Item `json:"items"`
}

type ItemIDRequest struct {
	ID string `json:"id"`
}

// UpdateItemRequest names the item and carries only the fields to change. A
// description present as null clears it.
type UpdateItemRequest struct {
	ID string `json:"id"`
	models.ItemPatch
}

type AttachmentURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func FromUser(u *models.User) *User {
	return &User{ID: u.ID, Email: u.Email, IsActive: u.IsActive, CreatedAt: u.CreatedAt}
}

func FromItem(it *models.Item) *Item {
	return &Item{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
		CreatedAt:   it.CreatedAt,
	}
}

func FromItems(list []*models.Item) []Item {
	out := make([]Item, 0, len(list))
	for _, it := range list {
		out = append(out, *FromItem(it))
	}
	return out
}
