package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

// TokenDecoder verifies a token and returns its subject.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

const (
	msgBadToken     = "Could not validate credentials"
	msgInactiveUser = "Inactive user"
)

// AuthGate turns a presented bearer token into a verified Identity. Both
// transports call AuthenticateActive before every protected operation.
type AuthGate struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenDecoder
}

func NewAuthGate(db *sql.DB, m repomanager.RepositoryManager, tokens TokenDecoder) *AuthGate {
	return &AuthGate{db: db, repomanager: m, tokens: tokens}
}

// Authenticate resolves token to the identity of an existing user. Missing,
// invalid or expired tokens and tokens of deleted users are all
// ErrorUnauthenticated; a store failure is ErrorInternal.
func (g *AuthGate) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.NewPublicError(common.ErrorUnauthenticated, msgBadToken)
	}

	userID, err := g.tokens.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.NewPublicError(common.ErrorUnauthenticated, msgBadToken), err)
	}

	user, err := g.repomanager.Users(g.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorUnauthenticated, msgUserNotFound)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return user.Identity(), nil
}

// RequireActive rejects deactivated accounts with ErrorForbidden.
func (g *AuthGate) RequireActive(identity *models.Identity) (*models.Identity, error) {
	if identity == nil {
		return nil, common.NewPublicError(common.ErrorUnauthenticated, msgBadToken)
	}
	if !identity.IsActive {
		return nil, common.NewPublicError(common.ErrorForbidden, msgInactiveUser)
	}
	return identity, nil
}

// AuthenticateActive is Authenticate followed by RequireActive.
func (g *AuthGate) AuthenticateActive(ctx context.Context, token string) (*models.Identity, error) {
	identity, err := g.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return g.RequireActive(identity)
}
