// Package models defines server-side data models persisted in the database
// and passed between services and transports.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// Identity is the verified caller attached to a request by the auth gate.
type Identity struct {
	ID       string
	Email    string
	IsActive bool
}

// Identity projects the user onto the fields the gate exposes.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}

// UserPatch lists the user fields a profile update may change. Password is the
// new plain-text password; it is hashed before storage.
type UserPatch struct {
	Email    Optional[string] `json:"email,omitzero"`
	Password Optional[string] `json:"password,omitzero"`
	IsActive Optional[bool]   `json:"is_active,omitzero"`
}

// IsEmpty reports whether no field was provided.
func (p UserPatch) IsEmpty() bool {
	return !p.Email.Set && !p.Password.Set && !p.IsActive.Set
}
