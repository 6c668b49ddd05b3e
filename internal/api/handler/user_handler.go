package handler

import (
	"context"
	"lending-api/internal/api/handler/dto"
	"lending-api/internal/domain/user"
	"lending-api/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	service user.Service
	logger  *slog.Logger
}

func NewUserHandler(s user.Service, l *slog.Logger) *UserHandler {
	if s == nil {
		panic("user service cannot be nil")
	}
	return &UserHandler{
		service: s,
		logger:  l.With("component", "UserHandler"),
	}
}

// Me handles GET /users/me
// @Summary Current user profile
// @Tags Users
// @Produce json
// @Success 200 {object} dto.UserResponse "Authenticated caller"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /users/me [get]
// @Security BearerAuth
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, dto.NewUserResponse(actor))
}

// FindByEmail handles GET /users?email=
// @Summary Look up a user by email
// @Description Accountants may look up anyone, customers only themselves.
// @Tags Users
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} dto.UserResponse "User found"
// @Failure 400 {object} dto.ErrorResponse "Missing email"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users [get]
// @Security BearerAuth
func (h *UserHandler) FindByEmail(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		respondError(w, apperrors.NewValidationError("email", "email query parameter is required"))
		return
	}

	u, err := h.service.GetUserByEmail(r.Context(), actor, email)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to look up user", slog.Int64("actorID", actor.ID), slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewUserResponse(u))
}

// BlockUser handles POST /users/{email}/block
// @Summary Block a user
// @Description Blocked users cannot request new loans.
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.UserResponse "Updated user"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an accountant"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email}/block [post]
// @Security BearerAuth
func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.administer(w, r, "block", h.service.BlockUser)
}

// UnblockUser handles POST /users/{email}/unblock
// @Summary Unblock a user
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.UserResponse "Updated user"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an accountant"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email}/unblock [post]
// @Security BearerAuth
func (h *UserHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.administer(w, r, "unblock", h.service.UnblockUser)
}

// MakeAccountant handles POST /users/{email}/make-accountant
// @Summary Promote a user to accountant
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.UserResponse "Updated user"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an accountant"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{email}/make-accountant [post]
// @Security BearerAuth
func (h *UserHandler) MakeAccountant(w http.ResponseWriter, r *http.Request) {
	h.administer(w, r, "make-accountant", h.service.MakeAccountant)
}

func (h *UserHandler) administer(w http.ResponseWriter, r *http.Request, operation string, apply func(context.Context, *user.User, string) (*user.User, error)) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		respondError(w, apperrors.NewValidationError("email", "email path parameter is required"))
		return
	}

	u, err := apply(r.Context(), actor, email)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to administer user", slog.String("operation", operation), slog.Int64("actorID", actor.ID), slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User updated", slog.String("operation", operation), slog.Int64("userID", u.ID), slog.Int64("actorID", actor.ID))
	respondJSON(w, http.StatusOK, dto.NewUserResponse(u))
}
