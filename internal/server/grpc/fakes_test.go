package grpc

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeGate struct {
	identity *models.Identity
	err      error
	gotToken string
}

func (g *fakeGate) AuthenticateActive(ctx context.Context, token string) (*models.Identity, error) {
	g.gotToken = token
	if g.err != nil {
		return nil, g.err
	}
	return g.identity, nil
}

type fakeUsers struct {
	user    *models.User
	token   *services.TokenResponse
	deleted bool
	err     error

	gotID    string
	gotPatch models.UserPatch
}

func (f *fakeUsers) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u1", Email: email, IsActive: true}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.TokenResponse, error) {
	return f.token, f.err
}

func (f *fakeUsers) GetUser(ctx context.Context, id string) (*models.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUsers) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	f.gotID, f.gotPatch = id, patch
	return f.user, f.err
}

func (f *fakeUsers) DeleteUser(ctx context.Context, id string) (bool, error) {
	f.gotID = id
	return f.deleted, f.err
}

type fakeItems struct {
	item *models.Item
	list []*models.Item
	err  error

	gotCaller      *models.Identity
	gotID          string
	gotOffset      int
	gotLimit       int
	gotPatch       models.ItemPatch
	gotTitle       string
	gotDescription *string
}

func (f *fakeItems) Create(ctx context.Context, caller *models.Identity, title string, description *string) (*models.Item, error) {
	f.gotCaller, f.gotTitle, f.gotDescription = caller, title, description
	return f.item, f.err
}

func (f *fakeItems) List(ctx context.Context, caller *models.Identity, offset, limit int) ([]*models.Item, error) {
	f.gotCaller, f.gotOffset, f.gotLimit = caller, offset, limit
	return f.list, f.err
}

func (f *fakeItems) Get(ctx context.Context, caller *models.Identity, id string) (*models.Item, error) {
	f.gotCaller, f.gotID = caller, id
	return f.item, f.err
}

func (f *fakeItems) Update(ctx context.Context, caller *models.Identity, id string, patch models.ItemPatch) (*models.Item, error) {
	f.gotCaller, f.gotID, f.gotPatch = caller, id, patch
	return f.item, f.err
}

func (f *fakeItems) Delete(ctx context.Context, caller *models.Identity, id string) error {
	f.gotCaller, f.gotID = caller, id
	return f.err
}

func (f *fakeItems) AttachmentUploadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error) {
	f.gotCaller, f.gotID = caller, id
	if f.err != nil {
		return nil, f.err
	}
	return &services.Attachment{Key: "users/u1/items/" + id, URL: "https://put"}, nil
}

func (f *fakeItems) AttachmentDownloadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error) {
	f.gotCaller, f.gotID = caller, id
	if f.err != nil {
		return nil, f.err
	}
	return &services.Attachment{Key: "users/u1/items/" + id, URL: "https://get"}, nil
}

var notFound = common.NewPublicError(common.ErrorNotFound, "Item not found")
