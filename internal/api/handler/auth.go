package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/request"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/services/auth"
)

// MinPasswordLength applies to registration and password changes
const MinPasswordLength = 6

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewValidationError("username, email and password are required"))
		return
	}
	if len(req.Password) < MinPasswordLength {
		apierr.WriteError(w, apierr.NewValidationError("password must be at least 6 characters"))
		return
	}

	creds, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponse{
		User:  response.UserFromModel(creds.User),
		Token: creds.Token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	if req.Identifier == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewValidationError("identifier and password are required"))
		return
	}

	creds, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		User:  response.UserFromModel(creds.User),
		Token: creds.Token,
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this
// is a no-op the client uses to clear its stored credentials.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Success{Success: true})
}
