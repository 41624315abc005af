package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGate(t *testing.T) (*AuthGate, *fakeUsersRepo, *auth.TokenCodec) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	codec := newTestCodec()
	return NewAuthGate(db, &fakeRepoManager{u: repo}, codec), repo, codec
}

func addUser(repo *fakeUsersRepo, id string, active bool) {
	repo.byID[id] = models.User{ID: id, Email: id + "@x.io", IsActive: active, CreatedAt: time.Now().UTC()}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	g, repo, codec := newGate(t)
	addUser(repo, "u1", true)

	tok, err := codec.Issue("u1")
	require.NoError(t, err)

	id, err := g.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{ID: "u1", Email: "u1@x.io", IsActive: true}, id)
}

func TestAuthenticate_Rejections(t *testing.T) {
	g, repo, codec := newGate(t)
	addUser(repo, "u1", true)

	expired := auth.NewTokenCodec(auth.TokenSettings{Secret: []byte("k"), TTL: -time.Second})
	expiredTok, err := expired.Issue("u1")
	require.NoError(t, err)

	foreign := auth.NewTokenCodec(auth.TokenSettings{Secret: []byte("other"), TTL: time.Hour})
	foreignTok, err := foreign.Issue("u1")
	require.NoError(t, err)

	deletedTok, err := codec.Issue("gone")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "abc",
		"expired":   expiredTok,
		"signature": foreignTok,
		"deleted":   deletedTok,
	} {
		_, err := g.Authenticate(context.Background(), tok)
		assert.ErrorIs(t, err, common.ErrorUnauthenticated, name)
	}
}

func TestAuthenticate_DecodeReasonKeptForLogs(t *testing.T) {
	g, _, _ := newGate(t)

	_, err := g.Authenticate(context.Background(), "abc")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.Equal(t, "Could not validate credentials", common.PublicMessage(err, ""))
}

func TestAuthenticate_StoreFailureIsInternal(t *testing.T) {
	g, repo, codec := newGate(t)
	repo.findErr = errors.New("db down")

	tok, err := codec.Issue("u1")
	require.NoError(t, err)

	_, err = g.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestAuthenticateActive(t *testing.T) {
	g, repo, codec := newGate(t)
	addUser(repo, "on", true)
	addUser(repo, "off", false)

	onTok, _ := codec.Issue("on")
	offTok, _ := codec.Issue("off")

	id, err := g.AuthenticateActive(context.Background(), onTok)
	require.NoError(t, err)
	assert.Equal(t, "on", id.ID)

	// inactive users authenticate but fail the active check
	id, err = g.Authenticate(context.Background(), offTok)
	require.NoError(t, err)
	assert.False(t, id.IsActive)

	_, err = g.AuthenticateActive(context.Background(), offTok)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = g.AuthenticateActive(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
}

func TestRequireActive_Nil(t *testing.T) {
	g, _, _ := newGate(t)
	_, err := g.RequireActive(nil)
	assert.ErrorIs(t, err, common.ErrorUnauthenticated)
}
