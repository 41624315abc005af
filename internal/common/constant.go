package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header, case
// insensitive) that carries the bearer token.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authorization scheme prefix for access tokens.
const BearerScheme = "Bearer"

// TokenTypeBearer is returned to clients as the kind of issued token.
const TokenTypeBearer = "bearer"
