package handler

import (
	"context"
	"fmt"
	"lending-api/internal/api/handler/dto"
	"lending-api/internal/api/middleware"
	"lending-api/internal/config"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "lending-api"

type UserLookup interface {
	GetUser(ctx context.Context, userID int64) (*user.User, error)
}

type AuthHandler struct {
	cfg    config.AuthConfig
	users  UserLookup
	logger *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, users UserLookup, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		users:  users,
		logger: l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken issues a signed token for an existing user.
//
// @Summary Generate a JWT bearer token
// @Description Issues a development token whose subject is an existing user id. Only mounted when server.auth.devTokens is set; there is no credential check.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "User to issue the token for"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 404 {object} dto.ErrorResponse "User not found or endpoint disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.DevTokens {
		respondError(w, fmt.Errorf("%w: token endpoint is disabled", apperrors.ErrNotFound))
		return
	}
	if h.cfg.JWTSecret == "" {
		h.logger.ErrorContext(r.Context(), "Refusing to issue token without a signing secret")
		respondError(w, fmt.Errorf("%w: token signing is not configured", apperrors.ErrInternalServer))
		return
	}

	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if req.UserID <= 0 {
		respondError(w, apperrors.NewValidationError("userId", "userId must be a positive number"))
		return
	}

	u, err := h.users.GetUser(r.Context(), req.UserID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to resolve token subject", slog.Int64("userID", req.UserID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := middleware.Claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", slog.Int64("userID", u.ID))
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString, ExpiresIn: int64(ttl.Seconds())})
}
