// Package client is the gRPC client of the itemkeeper CLI.
//
// GRPCClient keeps the access token returned by Login and attaches it to
// every call as "authorization: Bearer <token>" through a unary interceptor.
// Status codes returned by the server are mapped to the sentinel errors in
// errors.go, with the server's message kept in the error text:
//
//	Unauthenticated   -> ErrUnauthorized
//	PermissionDenied  -> ErrForbidden
//	NotFound          -> ErrNotFound
//	InvalidArgument   -> ErrInvalid
//	Unavailable, DeadlineExceeded -> ErrUnavailable
//
// Attachment bodies never pass through the server: UploadAttachment and
// DownloadAttachment ask for a presigned URL and then talk to object storage
// directly (see internal/netx).
package client
