package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/middleware"
	"github.com/mcoot/gamehub-go/internal/api/request"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/services/auth"
	"github.com/mcoot/gamehub-go/internal/services/progress"
)

// UserHandler handles the authenticated user's own endpoints
type UserHandler struct {
	authService     *auth.Service
	progressService *progress.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, progressService *progress.Service) *UserHandler {
	return &UserHandler{
		authService:     authService,
		progressService: progressService,
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// UpdateProfile handles PUT /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	if req.Username == "" || req.Email == "" {
		apierr.WriteError(w, apierr.NewValidationError("username and email are required"))
		return
	}

	creds, err := h.authService.UpdateProfile(r.Context(), user.ID, req.Username, req.Email, req.Avatar)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		User:  response.UserFromModel(creds.User),
		Token: creds.Token,
	})
}

// ChangePassword handles PUT /api/user/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		apierr.WriteError(w, apierr.NewValidationError("current and new passwords are required"))
		return
	}
	if len(req.NewPassword) < MinPasswordLength {
		apierr.WriteError(w, apierr.NewValidationError("password must be at least 6 characters"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Success{Success: true})
}

// GetProgress handles GET /api/user/progress
func (h *UserHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	entries, err := h.progressService.ListForUser(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressEntriesFromModel(entries))
}

// GetStats handles GET /api/user/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	stats, err := h.progressService.UserStats(r.Context(), user.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserStatsFromModel(stats))
}
