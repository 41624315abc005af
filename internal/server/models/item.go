package models

import "time"

// Item is a user-owned record. OwnerID is fixed at creation.
type Item struct {
	ID          string
	Title       string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
}

// ItemPatch lists the item fields an update may change. A Description that is
// Set with a nil Value clears the description.
type ItemPatch struct {
	Title       Optional[string]  `json:"title,omitzero"`
	Description Optional[*string] `json:"description,omitzero"`
}

// IsEmpty reports whether no field was provided.
func (p ItemPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set
}

// Apply copies the provided fields onto item. ID, OwnerID and CreatedAt are
// never touched.
func (p ItemPatch) Apply(item *Item) {
	if p.Title.Set {
		item.Title = p.Title.Value
	}
	if p.Description.Set {
		item.Description = p.Description.Value
	}
}
