package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReasonValidation      = api.ReasonValidation
	ReasonUnauthenticated = api.ReasonUnauthenticated
	ReasonForbidden       = api.ReasonForbidden
	ReasonNotFound        = api.ReasonNotFound
	ReasonInternal        = api.ReasonInternal
)

const msgInternal = "Internal server error"

// toStatus maps a service error to a gRPC status. Unknown errors are logged
// and hidden behind a generic Internal status.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var (
		code     codes.Code
		reason   string
		fallback string
	)

	switch {
	case errors.Is(err, common.ErrorValidation):
		code, reason, fallback = codes.InvalidArgument, ReasonValidation, "Invalid request"
	case errors.Is(err, common.ErrorUnauthenticated):
		code, reason, fallback = codes.Unauthenticated, ReasonUnauthenticated, "Could not validate credentials"
	case errors.Is(err, common.ErrorForbidden):
		code, reason, fallback = codes.PermissionDenied, ReasonForbidden, "Forbidden"
	case errors.Is(err, common.ErrorNotFound):
		code, reason, fallback = codes.NotFound, ReasonNotFound, "Not found"
	default:
		logging.FromContext(ctx, s.logger).Error(ctx, "internal error", "error", err.Error())
		return withReason(codes.Internal, msgInternal, ReasonInternal)
	}

	return withReason(code, common.PublicMessage(err, fallback), reason)
}

func withReason(code codes.Code, msg, reason string) error {
	return api.StatusWithReason(code, msg, reason)
}

// ReasonOf returns the ErrorInfo reason attached to a status error, if any.
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.Reason
		}
	}
	return ""
}
