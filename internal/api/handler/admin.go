package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/middleware"
	"github.com/mcoot/gamehub-go/internal/api/request"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/services/auth"
	"github.com/mcoot/gamehub-go/internal/services/catalog"
	"github.com/mcoot/gamehub-go/internal/services/progress"
)

// AdminHandler handles administrative CRUD endpoints
type AdminHandler struct {
	authService     *auth.Service
	catalogService  *catalog.Service
	progressService *progress.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *auth.Service, catalogService *catalog.Service, progressService *progress.Service) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		catalogService:  catalogService,
		progressService: progressService,
	}
}

// ListGames handles GET /api/admin/games. Unlike the public listing,
// an empty catalog is returned as-is.
func (h *AdminHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogService.AllGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// CreateGame handles POST /api/admin/games
func (h *AdminHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req request.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	if req.Title == nil || *req.Title == "" {
		apierr.WriteError(w, apierr.NewValidationError("title is required"))
		return
	}
	if req.Path == nil || *req.Path == "" {
		apierr.WriteError(w, apierr.NewValidationError("path is required"))
		return
	}

	game := &model.Game{Title: *req.Title}
	if req.Description != nil {
		game.Description = *req.Description
	}
	if req.Icon != nil {
		game.Icon = *req.Icon
	}
	if req.Category != nil {
		game.Category = *req.Category
	}
	if req.Difficulty != nil {
		game.Difficulty = *req.Difficulty
	}
	if req.Path != nil {
		game.Path = *req.Path
	}
	if req.Color != nil {
		game.Color = *req.Color
	}
	if req.Status != nil {
		game.Status = *req.Status
	}

	created, err := h.catalogService.CreateGame(r.Context(), game)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// GetGame handles GET /api/admin/game/:id
func (h *AdminHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	game, err := h.catalogService.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// UpdateGame handles PUT /api/admin/game/:id
func (h *AdminHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	game, err := h.catalogService.UpdateGame(r.Context(), id, model.GameUpdate{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Path:        req.Path,
		Color:       req.Color,
		Status:      req.Status,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// DeleteGame handles DELETE /api/admin/game/:id
func (h *AdminHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.catalogService.DeleteGame(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Success{Success: true})
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// GetUser handles GET /api/admin/user/:id
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// UpdateUser handles PUT /api/admin/user/:id
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetUser(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	user, err := h.authService.UpdateUser(r.Context(), actor.ID, id, model.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// DeleteUser handles DELETE /api/admin/user/:id
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.MustGetUser(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.authService.DeleteUser(r.Context(), actor.ID, id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Success{Success: true})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progressService.PlatformStats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlatformStatsFromModel(stats))
}
