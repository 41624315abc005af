// Package auth implements the credential and token codec: bcrypt password
// hashing and HS256 access tokens carrying the user id as subject.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSettings is the immutable signing configuration shared by the codec.
type TokenSettings struct {
	Secret []byte
	TTL    time.Duration
}

// TokenCodec issues and decodes access tokens. It holds no mutable state and
// is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(s TokenSettings) *TokenCodec {
	secret := make([]byte, len(s.Secret))
	copy(secret, s.Secret)
	return &TokenCodec{secret: secret, ttl: s.TTL, now: time.Now}
}

// Issue returns a signed token for subjectID that expires TTL from now.
func (c *TokenCodec) Issue(subjectID string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies signature, algorithm and expiry and returns the subject.
// Every failure wraps common.ErrInvalidToken; the wrapped reason is for logs only.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, errors.New("empty subject"))
	}

	return claims.Subject, nil
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func ParseBearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
