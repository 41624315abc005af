package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordingLogger struct {
	nopLogger
	errors []string
}

func (r *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	r.errors = append(r.errors, fmt.Sprint(append([]any{msg}, args...)...))
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   codes.Code
		msg    string
		reason string
	}{
		{"validation", common.NewPublicError(common.ErrorValidation, "Email already registered"), codes.InvalidArgument, "Email already registered", ReasonValidation},
		{"unauthenticated", common.NewPublicError(common.ErrorUnauthenticated, "Incorrect email or password"), codes.Unauthenticated, "Incorrect email or password", ReasonUnauthenticated},
		{"forbidden", common.NewPublicError(common.ErrorForbidden, "Inactive user"), codes.PermissionDenied, "Inactive user", ReasonForbidden},
		{"not found", common.NewPublicError(common.ErrorNotFound, "Item not found"), codes.NotFound, "Item not found", ReasonNotFound},
		{"bare sentinel uses fallback", fmt.Errorf("lookup: %w", common.ErrorNotFound), codes.NotFound, "Not found", ReasonNotFound},
		{"unknown", errBoom{}, codes.Internal, "Internal server error", ReasonInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &GRPCServer{logger: nopLogger{}}
			err := s.toStatus(context.Background(), tt.err)
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
			assert.Equal(t, tt.reason, ReasonOf(err))
		})
	}
}

func TestToStatus_InternalDetailOnlyInLog(t *testing.T) {
	l := &recordingLogger{}
	s := &GRPCServer{logger: l}

	err := s.toStatus(context.Background(), fmt.Errorf("db error: %w", errBoom{}))

	assert.NotContains(t, status.Convert(err).Message(), "boom")
	if assert.Len(t, l.errors, 1) {
		assert.Contains(t, l.errors[0], "db error: boom")
	}
}

func TestReasonOf_PlainError(t *testing.T) {
	assert.Equal(t, "", ReasonOf(errBoom{}))
	assert.Equal(t, "", ReasonOf(status.Error(codes.NotFound, "x")))
}
