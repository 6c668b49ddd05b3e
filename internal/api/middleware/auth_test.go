package middleware

import (
	"bytes"
	"context"
	"lending-api/internal/config"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, userID int64) (*user.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func signToken(t *testing.T, secret string, subject string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	secret := "testsecret"
	cfg := config.AuthConfig{Enabled: true, JWTSecret: secret}
	customer := &user.User{ID: 42, Email: "nika@mail.ge", Role: user.RoleCustomer}

	var seen *user.User
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("should reject request with missing Authorization header", func(t *testing.T) {
		users := new(MockAuthenticator)
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("should reject request with invalid token", func(t *testing.T) {
		users := new(MockAuthenticator)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalidtoken")
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token signed with another key", func(t *testing.T) {
		users := new(MockAuthenticator)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other", "42", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token with non-numeric subject", func(t *testing.T) {
		users := new(MockAuthenticator)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "nika", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject subject that no longer exists", func(t *testing.T) {
		users := new(MockAuthenticator)
		users.On("Authenticate", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotAuthenticated)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "42", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should return 503 when the user store is down", func(t *testing.T) {
		users := new(MockAuthenticator)
		users.On("Authenticate", mock.Anything, int64(42)).Return(nil, apperrors.ErrDatabase)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "42", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("should attach the caller for a valid token", func(t *testing.T) {
		seen = nil
		users := new(MockAuthenticator)
		users.On("Authenticate", mock.Anything, int64(42)).Return(customer, nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, strconv.FormatInt(customer.ID, 10), jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, customer, seen)
		users.AssertExpectations(t)
	})

	t.Run("should reject tokens signed with an empty key when no secret is configured", func(t *testing.T) {
		users := new(MockAuthenticator)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "", "7", jwt.SigningMethodHS256))
		rec := httptest.NewRecorder()

		AuthMiddleware(config.AuthConfig{Enabled: true}, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("should use the user id header when token auth is disabled", func(t *testing.T) {
		seen = nil
		users := new(MockAuthenticator)
		users.On("Authenticate", mock.Anything, int64(42)).Return(customer, nil)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(UserIDHeader, "42")
		rec := httptest.NewRecorder()

		AuthMiddleware(config.AuthConfig{Enabled: false}, users, logger)(nextHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, customer, seen)
	})

	t.Run("should reject a missing user id header when token auth is disabled", func(t *testing.T) {
		users := new(MockAuthenticator)
		rec := httptest.NewRecorder()

		AuthMiddleware(config.AuthConfig{Enabled: false}, users, logger)(nextHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestActorFromContext(t *testing.T) {
	assert.Nil(t, ActorFromContext(context.Background()))

	u := &user.User{ID: 3}
	assert.Same(t, u, ActorFromContext(WithActor(context.Background(), u)))
}
