package middleware

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/config"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDHeader names the caller when token authentication is disabled.
const UserIDHeader = "X-User-ID"

type actorKey struct{}

type Authenticator interface {
	Authenticate(ctx context.Context, userID int64) (*user.User, error)
}

// Claims is the token payload issued by the token endpoint. Subject holds the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func WithActor(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// ActorFromContext returns the authenticated caller, or nil for anonymous requests.
func ActorFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(actorKey{}).(*user.User)
	return u
}

func AuthMiddleware(cfg config.AuthConfig, users Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				userID int64
				err    error
			)
			if cfg.Enabled {
				userID, err = userIDFromToken(r, cfg.JWTSecret)
			} else {
				userID, err = userIDFromHeader(r)
			}
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected unauthenticated request", "path", r.URL.Path, "error", err)
				http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
				return
			}

			actor, err := users.Authenticate(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotAuthenticated) {
					logger.WarnContext(r.Context(), "Token subject does not resolve to a user", "userID", userID)
					http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(r.Context(), "Failed to resolve caller", "userID", userID, "error", err)
				http.Error(w, `{"error":{"message":"Service temporarily unavailable"}}`, http.StatusServiceUnavailable)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

var errMissingSecret = errors.New("no signing secret configured")

func userIDFromToken(r *http.Request, secret string) (int64, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return 0, errors.New("invalid Authorization header format")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
		if secret == "" {
			return nil, errMissingSecret
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	return parseUserID(claims.Subject)
}

func userIDFromHeader(r *http.Request) (int64, error) {
	return parseUserID(r.Header.Get(UserIDHeader))
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
