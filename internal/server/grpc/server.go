// Package grpc is the gRPC transport of itemkeeper. It authenticates callers
// with a unary interceptor, calls the services and maps their errors to
// status codes.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account side the handlers need.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// ItemService is the ownership-checked item side the handlers need.
type ItemService interface {
	Create(ctx context.Context, caller *models.Identity, title string, description *string) (*models.Item, error)
	List(ctx context.Context, caller *models.Identity, offset, limit int) ([]*models.Item, error)
	Get(ctx context.Context, caller *models.Identity, id string) (*models.Item, error)
	Update(ctx context.Context, caller *models.Identity, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, caller *models.Identity, id string) error
	AttachmentUploadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error)
	AttachmentDownloadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error)
}

// Authenticator resolves a bearer token to an active identity.
type Authenticator interface {
	AuthenticateActive(ctx context.Context, token string) (*models.Identity, error)
}

type GRPCServer struct {
	address string
	users   UserService
	items   ItemService
	gate    Authenticator
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, is ItemService, gate Authenticator) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		items:   is,
		gate:    gate,
	}
}

// NewServer builds a grpc.Server with the JSON codec, the interceptor chain
// and the service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ForceServerCodec(api.Codec{}),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	}, opts...)

	srv := grpc.NewServer(opts...)
	api.RegisterItemKeeperServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
