package grpc

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

const msgUserNotFound = "User not found"

// caller returns the identity put in ctx by the auth interceptor.
func (s *GRPCServer) caller(ctx context.Context) (*models.Identity, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.NewPublicError(common.ErrorUnauthenticated, "Could not validate credentials"))
	}
	return identity, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "ok"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.Credentials) (*api.User, error) {
	u, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromUser(u), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.Credentials) (*api.Token, error) {
	t, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.Token{AccessToken: t.AccessToken, TokenType: t.TokenType}, nil
}

func (s *GRPCServer) Me(ctx context.Context, req *api.Empty) (*api.User, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUser(ctx, identity.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromUser(u), nil
}

func (s *GRPCServer) UpdateMe(ctx context.Context, req *api.UpdateMeRequest) (*api.User, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.UpdateUser(ctx, identity.ID, req.UserPatch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromUser(u), nil
}

func (s *GRPCServer) DeleteMe(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.users.DeleteUser(ctx, identity.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if !ok {
		return nil, s.toStatus(ctx, common.NewPublicError(common.ErrorNotFound, msgUserNotFound))
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) CreateItem(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Create(ctx, identity, req.Title, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromItem(it), nil
}

func (s *GRPCServer) ListItems(ctx context.Context, req *api.ListItemsRequest) (*api.ListItemsResponse, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.items.List(ctx, identity, req.Offset, req.EffectiveLimit())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListItemsResponse{Items: api.FromItems(list)}, nil
}

func (s *GRPCServer) GetItem(ctx context.Context, req *api.ItemIDRequest) (*api.Item, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, identity, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromItem(it), nil
}

func (s *GRPCServer) UpdateItem(ctx context.Context, req *api.UpdateItemRequest) (*api.Item, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	it, err := s.items.Update(ctx, identity, req.ID, req.ItemPatch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return api.FromItem(it), nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *api.ItemIDRequest) (*api.Empty, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.items.Delete(ctx, identity, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) AttachmentUploadURL(ctx context.Context, req *api.ItemIDRequest) (*api.AttachmentURL, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.items.AttachmentUploadURL(ctx, identity, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.AttachmentURL{Key: a.Key, URL: a.URL}, nil
}

func (s *GRPCServer) AttachmentDownloadURL(ctx context.Context, req *api.ItemIDRequest) (*api.AttachmentURL, error) {
	identity, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.items.AttachmentDownloadURL(ctx, identity, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.AttachmentURL{Key: a.Key, URL: a.URL}, nil
}
