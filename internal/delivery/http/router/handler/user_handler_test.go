package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tasklist/internal/delivery/http/validator"
	"tasklist/internal/domain/entity"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUsecase lets each test plug in just the behavior it needs.
type stubUserUsecase struct {
	registerFn func(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error)
	loginFn    func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)
}

func (s *stubUserUsecase) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubUserUsecase) ListUsers(ctx context.Context, input *usecase.ListUsersInput) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserUsecase) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_RegisterUser_HidesPasswordHash(t *testing.T) {
	uc := &stubUserUsecase{
		registerFn: func(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
			return &usecase.RegisterOutput{User: &entity.User{
				ID:           uuid.New(),
				Username:     "alice",
				PasswordHash: "$2a$12$secret",
			}}, nil
		},
	}
	h := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newTestContext(http.MethodPost, "/auth/register", `{"username":"alice","password":"Password123!"}`)

	require.NoError(t, h.RegisterUser(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"username":"alice"`)
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, body, "PasswordHash")
}

func TestUserHandler_Login_ReturnsBearerToken(t *testing.T) {
	uc := &stubUserUsecase{
		loginFn: func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
			assert.Equal(t, "alice", input.Username)

			return &usecase.LoginOutput{AccessToken: "signed.jwt.token", TokenType: "bearer"}, nil
		},
	}
	h := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"Password123!"}`)

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"access_token":"signed.jwt.token"`)
	assert.Contains(t, body, `"token_type":"bearer"`)
}

func TestUserHandler_Login_AcceptsFormCredentials(t *testing.T) {
	uc := &stubUserUsecase{
		loginFn: func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
			assert.Equal(t, "alice", input.Username)
			assert.Equal(t, "Password123!", input.Password)

			return &usecase.LoginOutput{AccessToken: "signed.jwt.token", TokenType: "bearer"}, nil
		},
	}
	h := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "Password123!")

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"signed.jwt.token"`)
}

func TestUserHandler_RegisterUser_ValidationError(t *testing.T) {
	uc := &stubUserUsecase{
		registerFn: func(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
			t.Fatal("usecase must not be reached for invalid input")

			return nil, nil
		},
	}
	h := NewUserHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, _ := newTestContext(http.MethodPost, "/auth/register", `{"username":"alice"}`)

	err := h.RegisterUser(c)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
