// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasklist/config"
	"tasklist/internal/domain/entity"
	"tasklist/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret        []byte            // Shared secret for signing and verifying tokens.
	signingMethod jwt.SigningMethod // Configured HMAC signing algorithm.
	accessTTL     time.Duration     // Default time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.JWT.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("jwt algorithm must be an HMAC method (HS256/HS384/HS512)")
	}

	accessTTL := cfg.JWT.AccessTokenTTL
	if accessTTL == 0 {
		accessTTL = 20 * time.Minute
	}

	return &jwtService{
		secret:        []byte(cfg.JWT.Secret),
		signingMethod: method,
		accessTTL:     accessTTL,
	}, nil
}

// Issue creates a signed token for the given subject carrying the granted scopes.
func (s *jwtService) Issue(subject string, scopes entity.Scopes, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.accessTTL
	}

	now := time.Now()
	claims := &service.Claims{
		Scopes: scopes.ToStrings(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(s.signingMethod, claims)

	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token string and returns its claims.
// All failures other than expiry collapse into ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.signingMethod.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	return claims, nil
}

// AccessTokenTTL returns the configured default lifetime of issued tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
