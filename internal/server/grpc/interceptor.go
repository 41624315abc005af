package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// RequestIDHeader carries the per-call id in the response header metadata.
const RequestIDHeader = "x-request-id"

// publicMethods may be called without a token.
var publicMethods = map[string]bool{
	api.MethodPing:     true,
	api.MethodRegister: true,
	api.MethodLogin:    true,
}

// IdentityFromContext returns the caller attached by the auth interceptor.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok && id != nil
}

func withIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			token, _ = auth.ParseBearer(values[0])
		}
	}

	identity, err := s.gate.AuthenticateActive(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(withIdentity(ctx, identity), req)
}

// loggingInterceptor tags the call with a request id, sends it back as header
// metadata and puts a logger carrying it on the context.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	requestID := uuid.NewString()

	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))
	log := s.logger.With("request_id", requestID)
	ctx = logging.NewContext(ctx, log)

	resp, err := handler(ctx, req)

	log.Info(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start).String(),
	)

	return resp, err
}
