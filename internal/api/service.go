// Package api is the wire contract of the itemkeeper gRPC service: message
// types, the JSON codec, the service descriptor and a typed client.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const ServiceName = "itemkeeper.v1.ItemKeeperService"

// Full method names, as seen by interceptors.
const (
	MethodPing                  = "/" + ServiceName + "/Ping"
	MethodRegister              = "/" + ServiceName + "/Register"
	MethodLogin                 = "/" + ServiceName + "/Login"
	MethodMe                    = "/" + ServiceName + "/Me"
	MethodUpdateMe              = "/" + ServiceName + "/UpdateMe"
	MethodDeleteMe              = "/" + ServiceName + "/DeleteMe"
	MethodCreateItem            = "/" + ServiceName + "/CreateItem"
	MethodListItems             = "/" + ServiceName + "/ListItems"
	MethodGetItem               = "/" + ServiceName + "/GetItem"
	MethodUpdateItem            = "/" + ServiceName + "/UpdateItem"
	MethodDeleteItem            = "/" + ServiceName + "/DeleteItem"
	MethodAttachmentUploadURL   = "/" + ServiceName + "/AttachmentUploadURL"
	MethodAttachmentDownloadURL = "/" + ServiceName + "/AttachmentDownloadURL"
)

// ItemKeeperServiceServer is implemented by the server transport.
type ItemKeeperServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *Credentials) (*User, error)
	Login(context.Context, *Credentials) (*Token, error)
	Me(context.Context, *Empty) (*User, error)
	UpdateMe(context.Context, *UpdateMeRequest) (*User, error)
	DeleteMe(context.Context, *Empty) (*Empty, error)
	CreateItem(context.Context, *CreateItemRequest) (*Item, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	GetItem(context.Context, *ItemIDRequest) (*Item, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*Item, error)
	DeleteItem(context.Context, *ItemIDRequest) (*Empty, error)
	AttachmentUploadURL(context.Context, *ItemIDRequest) (*AttachmentURL, error)
	AttachmentDownloadURL(context.Context, *ItemIDRequest) (*AttachmentURL, error)
}

// unary builds the MethodDesc for one request/response method.
func unary[Req, Resp any](name string, call func(ItemKeeperServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, StatusWithReason(codes.InvalidArgument, msgInvalidBody, ReasonValidation)
			}
			if interceptor == nil {
				return call(srv.(ItemKeeperServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ItemKeeperServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes ItemKeeperService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ItemKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", ItemKeeperServiceServer.Ping),
		unary("Register", ItemKeeperServiceServer.Register),
		unary("Login", ItemKeeperServiceServer.Login),
		unary("Me", ItemKeeperServiceServer.Me),
		unary("UpdateMe", ItemKeeperServiceServer.UpdateMe),
		unary("DeleteMe", ItemKeeperServiceServer.DeleteMe),
		unary("CreateItem", ItemKeeperServiceServer.CreateItem),
		unary("ListItems", ItemKeeperServiceServer.ListItems),
		unary("GetItem", ItemKeeperServiceServer.GetItem),
		unary("UpdateItem", ItemKeeperServiceServer.UpdateItem),
		unary("DeleteItem", ItemKeeperServiceServer.DeleteItem),
		unary("AttachmentUploadURL", ItemKeeperServiceServer.AttachmentUploadURL),
		unary("AttachmentDownloadURL", ItemKeeperServiceServer.AttachmentDownloadURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "itemkeeper/v1/service",
}

// RegisterItemKeeperServiceServer registers srv on s.
func RegisterItemKeeperServiceServer(s grpc.ServiceRegistrar, srv ItemKeeperServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ItemKeeperServiceClient is the typed client of ItemKeeperService.
type ItemKeeperServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*User, error)
	Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*Token, error)
	Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*User, error)
	UpdateMe(ctx context.Context, in *UpdateMeRequest, opts ...grpc.CallOption) (*User, error)
	DeleteMe(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
	GetItem(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*Item, error)
	UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Item, error)
	DeleteItem(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*Empty, error)
	AttachmentUploadURL(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*AttachmentURL, error)
	AttachmentDownloadURL(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*AttachmentURL, error)
}

type itemKeeperServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewItemKeeperServiceClient(cc grpc.ClientConnInterface) ItemKeeperServiceClient {
	return &itemKeeperServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *itemKeeperServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *itemKeeperServiceClient) Register(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodRegister, in, opts)
}

func (c *itemKeeperServiceClient) Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*Token, error) {
	return invoke[Token](ctx, c.cc, MethodLogin, in, opts)
}

func (c *itemKeeperServiceClient) Me(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodMe, in, opts)
}

func (c *itemKeeperServiceClient) UpdateMe(ctx context.Context, in *UpdateMeRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodUpdateMe, in, opts)
}

func (c *itemKeeperServiceClient) DeleteMe(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteMe, in, opts)
}

func (c *itemKeeperServiceClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, MethodCreateItem, in, opts)
}

func (c *itemKeeperServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, MethodListItems, in, opts)
}

func (c *itemKeeperServiceClient) GetItem(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, MethodGetItem, in, opts)
}

func (c *itemKeeperServiceClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, MethodUpdateItem, in, opts)
}

func (c *itemKeeperServiceClient) DeleteItem(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteItem, in, opts)
}

func (c *itemKeeperServiceClient) AttachmentUploadURL(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*AttachmentURL, error) {
	return invoke[AttachmentURL](ctx, c.cc, MethodAttachmentUploadURL, in, opts)
}

func (c *itemKeeperServiceClient) AttachmentDownloadURL(ctx context.Context, in *ItemIDRequest, opts ...grpc.CallOption) (*AttachmentURL, error) {
	return invoke[AttachmentURL](ctx, c.cc, MethodAttachmentDownloadURL, in, opts)
}
