package api

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain is reported in the ErrorInfo detail of every failed call.
const ErrorDomain = "itemkeeper"

// ErrorInfo reasons.
const (
	ReasonValidation      = "VALIDATION_FAILED"
	ReasonUnauthenticated = "UNAUTHENTICATED"
	ReasonForbidden       = "FORBIDDEN"
	ReasonNotFound        = "NOT_FOUND"
	ReasonInternal        = "INTERNAL"
)

const msgInvalidBody = "Invalid request body"

// StatusWithReason returns a status error with an ErrorInfo detail attached.
func StatusWithReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
