package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasklist/config"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"
	"tasklist/internal/infra/auth"
	mockRepo "tasklist/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := auth.NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret:         "test-secret-key",
			Algorithm:      "HS256",
			AccessTokenTTL: 20 * time.Minute,
		},
	})
	require.NoError(t, err)

	return svc
}

// invoke runs a request through the middleware chain and returns the error
// the chain produced. nextCalled reports whether the inner handler ran.
func invoke(t *testing.T, m *AuthMiddleware, required []entity.Scope, authHeader string) (rec *httptest.ResponseRecorder, nextCalled bool, err error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.RequireScopes(required...)(func(c echo.Context) error {
		nextCalled = true

		return c.NoContent(http.StatusOK)
	})

	err = handler(c)

	return rec, nextCalled, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(user, nil)

	token, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	_, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeBasic}, "Bearer "+token)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_SetsUserOnContext(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(user, nil)

	token, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Authenticate(func(c echo.Context) error {
		got, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, got.ID)

		scopes, ok := c.Get(ContextKeyScopes).(entity.Scopes)
		require.True(t, ok)
		assert.True(t, scopes.Contains(entity.ScopeBasic))

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	rec, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeBasic}, "")

	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
	assert.Equal(t, `Bearer scope="basic"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_NotBearerScheme(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	_, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeBasic}, "Basic dXNlcjpwYXNz")

	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

// Tampered, expired and unknown-subject tokens must all produce the exact
// same error value; a caller cannot tell which verification step failed.
func TestAuthMiddleware_FailureModesAreIndistinguishable(t *testing.T) {
	tokenSvc := newTestTokenService(t)

	otherSvc, err := auth.NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret:         "a-different-secret",
			Algorithm:      "HS256",
			AccessTokenTTL: 20 * time.Minute,
		},
	})
	require.NoError(t, err)

	wrongSecretToken, err := otherSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	expiredToken, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, -time.Minute)
	require.NoError(t, err)

	ghostToken, err := tokenSvc.Issue("ghost", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	cases := []struct {
		name       string
		authHeader string
		wantLookup bool
	}{
		{name: "malformed token", authHeader: "Bearer not.a.jwt"},
		{name: "wrong secret", authHeader: "Bearer " + wrongSecretToken},
		{name: "expired token", authHeader: "Bearer " + expiredToken},
		{name: "unknown subject", authHeader: "Bearer " + ghostToken, wantLookup: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := mockRepo.NewMockUserRepository(t)
			if tc.wantLookup {
				userRepo.EXPECT().
					FindByUsername(mock.Anything, "ghost").
					Return(nil, repository.ErrUserNotFound)
			}
			m := NewAuthMiddleware(tokenSvc, userRepo)

			_, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeBasic}, tc.authHeader)

			assert.False(t, nextCalled)
			assert.Equal(t, domainerrors.ErrUnauthenticated, err)
		})
	}
}

func TestAuthMiddleware_MissingScope(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	userRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(user, nil)

	token, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	_, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeAdmin}, "Bearer "+token)

	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

// Scope membership has no hierarchy: admin does not imply basic.
func TestAuthMiddleware_ScopesAreExactMatch(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	user := &entity.User{ID: uuid.New(), Username: "root"}
	userRepo.EXPECT().FindByUsername(mock.Anything, "root").Return(user, nil)

	token, err := tokenSvc.Issue("root", entity.Scopes{entity.ScopeAdmin}, 0)
	require.NoError(t, err)

	_, nextCalled, err := invoke(t, m, []entity.Scope{entity.ScopeBasic}, "Bearer "+token)

	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAuthMiddleware_ChallengeNamesAllRequiredScopes(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	rec, _, _ := invoke(t, m, []entity.Scope{entity.ScopeBasic, entity.ScopeAdmin}, "")

	assert.Equal(t, `Bearer scope="basic admin"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_NoScopesPlainChallenge(t *testing.T) {
	tokenSvc := newTestTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	m := NewAuthMiddleware(tokenSvc, userRepo)

	rec, _, _ := invoke(t, m, nil, "")

	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}
