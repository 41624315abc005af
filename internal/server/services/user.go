// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile maintenance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TokenResponse is what a successful login hands back to the client.
type TokenResponse struct {
	AccessToken string
	TokenType   string
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints access tokens for a user id.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

// Client-facing messages.
const (
	msgEmailTaken     = "Email already registered"
	msgInvalidEmail   = "Invalid email address"
	msgEmptyPassword  = "Password must not be empty"
	msgBadCredentials = "Incorrect email or password"
	msgUserNotFound   = "User not found"
)

// dummyPassword is hashed once and compared against for unknown emails.
const dummyPassword = "itemkeeper-dummy-password"

// UserService provides account operations:
// - Register: create users with a bcrypt-hashed password
// - Login: verify credentials and mint an access token
// - GetUser / UpdateUser / DeleteUser: profile maintenance
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer

	dummyOnce sync.Once
	dummyHash string

	now   func() time.Time
	newID func() string
}

// NewUserService constructs a UserService on top of the repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Register creates an active user. Uniqueness of the email is enforced by the
// store, so of two concurrent registrations for one email exactly one wins.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.NewPublicError(common.ErrorValidation, msgEmptyPassword)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewPublicError(common.ErrorValidation, msgEmailTaken)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies email and password and returns a bearer token. Unknown
// emails still pay for one bcrypt comparison so that response time does not
// reveal whether an address is registered. Inactive users may log in; the
// gate rejects them on every protected call.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.getDummyHash())
			return nil, common.NewPublicError(common.ErrorUnauthenticated, msgBadCredentials)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.NewPublicError(common.ErrorUnauthenticated, msgBadCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return &TokenResponse{AccessToken: token, TokenType: common.TokenTypeBearer}, nil
}

// GetUser returns the user with id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorNotFound, msgUserNotFound)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// UpdateUser applies patch in one transaction. A provided password is
// re-hashed; a provided email must be valid and free. On any failure the
// stored record is left unchanged.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Email.Set {
		if err := validateEmail(patch.Email.Value); err != nil {
			return nil, err
		}
	}

	var newHash string
	if patch.Password.Set {
		if patch.Password.Value == "" {
			return nil, common.NewPublicError(common.ErrorValidation, msgEmptyPassword)
		}
		h, err := s.hasher.Hash(patch.Password.Value)
		if err != nil {
			return nil, err
		}
		newHash = h
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NewPublicError(common.ErrorNotFound, msgUserNotFound)
			}
			return fmt.Errorf("error searching user: %w", err)
		}

		if patch.Email.Set {
			user.Email = patch.Email.Value
		}
		if patch.Password.Set {
			user.PasswordHash = newHash
		}
		if patch.IsActive.Set {
			user.IsActive = patch.IsActive.Value
		}

		updated, err = repo.Update(ctx, user)
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return common.NewPublicError(common.ErrorValidation, msgEmailTaken)
		case errors.Is(err, common.ErrorNotFound):
			return common.NewPublicError(common.ErrorNotFound, msgUserNotFound)
		case err != nil:
			return fmt.Errorf("error updating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteUser removes the account and, by cascade, all its items. It reports
// whether a record existed.
func (s *UserService) DeleteUser(ctx context.Context, id string) (bool, error) {
	ok, err := s.repomanager.Users(s.db).Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return ok, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

var validate = validator.New()

// validateEmail applies validator's email rule to the whole input.
func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return common.NewPublicError(common.ErrorValidation, msgInvalidEmail)
	}
	return nil
}
