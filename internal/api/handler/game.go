package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/middleware"
	"github.com/mcoot/gamehub-go/internal/api/request"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/router"
	"github.com/mcoot/gamehub-go/internal/services/catalog"
	"github.com/mcoot/gamehub-go/internal/services/progress"
)

// GameHandler handles the public game catalog and progress recording
type GameHandler struct {
	catalogService  *catalog.Service
	progressService *progress.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(catalogService *catalog.Service, progressService *progress.Service) *GameHandler {
	return &GameHandler{
		catalogService:  catalogService,
		progressService: progressService,
	}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogService.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/game/:id
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// SaveProgress handles POST /api/game/:id/progress
func (h *GameHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewValidationError("invalid request body"))
		return
	}

	p, err := h.progressService.Save(r.Context(), user.ID, id, req.Score, req.Completed)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(p))
}

// pathID parses a numeric :name path parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := router.Param(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierr.NewValidationError("invalid " + name)
	}
	return id, nil
}
