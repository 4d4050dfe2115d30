package middleware

import (
	"strings"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUser is the echo.Context key holding the authenticated user.
	ContextKeyUser = "currentUser"

	// ContextKeyScopes is the echo.Context key holding the token's scopes.
	ContextKeyScopes = "tokenScopes"
)

// AuthMiddleware resolves the bearer token on incoming requests into an
// authenticated user and the scopes the token grants.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// RequireScopes returns middleware that authenticates the request and checks
// that the token carries every one of the required scopes. Scope membership
// is an exact string match, there is no hierarchy between scopes.
//
// Every authentication failure, whether the token is missing, malformed,
// tampered with, expired or names an unknown user, yields the same 401
// response. A valid token lacking a required scope yields 403 instead.
func (m *AuthMiddleware) RequireScopes(required ...entity.Scope) echo.MiddlewareFunc {
	challenge := buildChallenge(required)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, scopes, ok := m.resolve(c)
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)

				return domainerrors.ErrUnauthenticated
			}

			for _, scope := range required {
				if !scopes.Contains(scope) {
					return domainerrors.ErrForbidden
				}
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyScopes, scopes)

			return next(c)
		}
	}
}

// Authenticate only establishes identity without demanding any scope.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireScopes()(next)
}

// resolve walks the verification chain: bearer extraction, token
// verification, subject presence, then user lookup. It reports only whether
// the chain succeeded; the failing step is deliberately not exposed.
func (m *AuthMiddleware) resolve(c echo.Context) (*entity.User, entity.Scopes, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return nil, nil, false
	}

	claims, err := m.tokenSvc.Verify(tokenString)
	if err != nil {
		return nil, nil, false
	}

	if claims.Subject == "" {
		return nil, nil, false
	}

	user, err := m.userRepo.FindByUsername(c.Request().Context(), claims.Subject)
	if err != nil {
		return nil, nil, false
	}

	return user, claims.TokenScopes(), true
}

// CurrentUser returns the authenticated user stored by RequireScopes.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*entity.User)

	return user, ok
}

// buildChallenge renders the WWW-Authenticate value, naming the scopes the
// operation demands when there are any.
func buildChallenge(required []entity.Scope) string {
	if len(required) == 0 {
		return "Bearer"
	}

	return `Bearer scope="` + strings.Join(entity.Scopes(required).ToStrings(), " ") + `"`
}
