package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	itemsrepo "github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	usersrepo "github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fastHasher() *auth.PasswordHasher { return auth.NewPasswordHasher(bcrypt.MinCost) }

// fakeUsersRepo is an in-memory users.Repository with error injection.
type fakeUsersRepo struct {
	mu        sync.Mutex
	byID      map[string]models.User
	createErr error
	findErr   error
	updErr    error
	delErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.byID[u.ID] = *u
	return u, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return nil, f.updErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for id, existing := range f.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.byID[u.ID] = *u
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return false, f.delErr
	}
	_, ok := f.byID[id]
	delete(f.byID, id)
	return ok, nil
}

// fakeItemsRepo is an in-memory items.Repository with error injection.
type fakeItemsRepo struct {
	mu      sync.Mutex
	seq     int
	rows    map[string]fakeItemRow
	findErr error
	updErr  error
	delErr  error
	// deleteBeforeUpdate simulates a concurrent delete between fetch and write.
	deleteBeforeUpdate bool
}

type fakeItemRow struct {
	seq  int
	item models.Item
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{rows: map[string]fakeItemRow{}}
}

func (f *fakeItemsRepo) Create(ctx context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.rows[it.ID] = fakeItemRow{seq: f.seq, item: *it}
	return it, nil
}

func (f *fakeItemsRepo) FindByID(ctx context.Context, id string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	it := r.item
	return &it, nil
}

func (f *fakeItemsRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []fakeItemRow
	for _, r := range f.rows {
		if r.item.OwnerID == ownerID {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := []*models.Item{}
	for i := offset; i < len(rows) && len(out) < limit; i++ {
		it := rows[i].item
		out = append(out, &it)
	}
	return out, nil
}

func (f *fakeItemsRepo) Update(ctx context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return nil, f.updErr
	}
	if f.deleteBeforeUpdate {
		delete(f.rows, it.ID)
	}
	r, ok := f.rows[it.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	r.item.Title = it.Title
	r.item.Description = it.Description
	f.rows[it.ID] = r
	out := r.item
	return &out, nil
}

func (f *fakeItemsRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return false, f.delErr
	}
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Items(db dbx.DBTX) itemsrepo.Repository       { return m.i }

// fakePresigner records the keys it signs.
type fakePresigner struct {
	err  error
	keys []string
}

func (p *fakePresigner) PresignPut(ctx context.Context, key string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.keys = append(p.keys, key)
	return "https://s3.test/put/" + key, nil
}

func (p *fakePresigner) PresignGet(ctx context.Context, key string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.keys = append(p.keys, key)
	return "https://s3.test/get/" + key, nil
}

type failingIssuer struct{}

func (failingIssuer) Issue(string) (string, error) { return "", errors.New("sign failed") }
