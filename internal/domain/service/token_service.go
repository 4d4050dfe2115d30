package service

import (
	"errors"
	"time"

	"tasklist/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors for token verification. They distinguish failure modes for
// logging and tests; the delivery layer collapses all of them into one
// generic unauthenticated response so callers cannot probe which check failed.
var (
	// ErrTokenInvalid is returned when the signature or structure of a token is invalid.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired is returned when a structurally valid token has passed its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims defines the payload carried by access tokens. It stays decodable by
// standard JWT tooling: `sub` and `exp` are registered claims, `scopes` is a
// plain string array.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenScopes returns the claim's scopes as domain values, dropping anything
// that is not a known scope.
func (c *Claims) TokenScopes() entity.Scopes {
	return entity.ScopesFromStrings(c.Scopes)
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token carrying the subject (username), the
	// granted scopes and an absolute expiry of now + ttl. A zero ttl falls
	// back to the configured default.
	Issue(subject string, scopes entity.Scopes, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the decoded claims.
	// It returns ErrTokenExpired for expired tokens and ErrTokenInvalid for
	// every other failure. Verification is a pure function of the token and
	// the configured secret; it performs no I/O.
	Verify(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured default lifetime of issued tokens.
	AccessTokenTTL() time.Duration
}
