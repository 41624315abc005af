package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/netx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Presigned URL transfers, seams for tests.
var (
	uploadToURL   = netx.UploadToS3PresignedURL
	downloadToURL = netx.DownloadFromS3PresignedURL
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.ItemKeeperServiceClient

	mu          sync.RWMutex
	accessToken string
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationHeaderName)
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewItemKeeperClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewItemKeeperServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) IsLoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "ok" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*api.User, error) {
	u, err := s.client.Register(ctx, &api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// Login stores the returned access token for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) error {

	resp, err := s.client.Login(ctx, &api.Credentials{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.AccessToken)

	return nil
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	u, err := s.client.Me(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

func (s *GRPCClient) UpdateMe(ctx context.Context, patch models.UserPatch) (*api.User, error) {
	u, err := s.client.UpdateMe(ctx, &api.UpdateMeRequest{UserPatch: patch})
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// DeleteMe removes the account and forgets the token.
func (s *GRPCClient) DeleteMe(ctx context.Context) error {
	if _, err := s.client.DeleteMe(ctx, &api.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.setToken("")
	return nil
}

func (s *GRPCClient) CreateItem(ctx context.Context, title string, description *string) (*api.Item, error) {
	it, err := s.client.CreateItem(ctx, &api.CreateItemRequest{Title: title, Description: description})
	if err != nil {
		return nil, s.mapError(err)
	}
	return it, nil
}

func (s *GRPCClient) ListItems(ctx context.Context, offset, limit int) ([]api.Item, error) {
	resp, err := s.client.ListItems(ctx, &api.ListItemsRequest{Offset: offset, Limit: &limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Items, nil
}

func (s *GRPCClient) GetItem(ctx context.Context, id string) (*api.Item, error) {
	it, err := s.client.GetItem(ctx, &api.ItemIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return it, nil
}

func (s *GRPCClient) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (*api.Item, error) {
	it, err := s.client.UpdateItem(ctx, &api.UpdateItemRequest{ID: id, ItemPatch: patch})
	if err != nil {
		return nil, s.mapError(err)
	}
	return it, nil
}

func (s *GRPCClient) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.client.DeleteItem(ctx, &api.ItemIDRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// UploadAttachment stores data as the attachment of item id.
func (s *GRPCClient) UploadAttachment(ctx context.Context, id string, data []byte) error {
	resp, err := s.client.AttachmentUploadURL(ctx, &api.ItemIDRequest{ID: id})
	if err != nil {
		return s.mapError(err)
	}
	if err := uploadToURL(ctx, resp.URL, data); err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}
	return nil
}

// DownloadAttachment returns the attachment of item id.
func (s *GRPCClient) DownloadAttachment(ctx context.Context, id string) ([]byte, error) {
	resp, err := s.client.AttachmentDownloadURL(ctx, &api.ItemIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	data, err := downloadToURL(ctx, resp.URL)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	return data, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
