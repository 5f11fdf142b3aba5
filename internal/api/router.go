package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/handler"
	apimiddleware "github.com/mcoot/gamehub-go/internal/api/middleware"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/dependencies/clock"
	"github.com/mcoot/gamehub-go/internal/middleware"
	"github.com/mcoot/gamehub-go/internal/router"
	"github.com/mcoot/gamehub-go/internal/services/auth"
	"github.com/mcoot/gamehub-go/internal/services/catalog"
	"github.com/mcoot/gamehub-go/internal/services/progress"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Clock           clock.Clock
	AuthService     *auth.Service
	CatalogService  *catalog.Service
	ProgressService *progress.Service
	// Static serves anything that matches no API route; nil means
	// unmatched non-API paths get a JSON 404 too
	Static http.Handler
}

// NewRouter creates the route table with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	t := router.New()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService, cfg.ProgressService)
	gameHandler := handler.NewGameHandler(cfg.CatalogService, cfg.ProgressService)
	adminHandler := handler.NewAdminHandler(cfg.AuthService, cfg.CatalogService, cfg.ProgressService)

	authRequired := apimiddleware.Auth(cfg.AuthService)
	adminRequired := apimiddleware.Admin()

	protected := func(h http.HandlerFunc) http.Handler {
		return authRequired(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authRequired(adminRequired(h))
	}

	// Public routes
	t.MustHandle(http.MethodGet, "/api/health", healthHandler(cfg.Clock))
	t.MustHandle(http.MethodGet, "/api/games", http.HandlerFunc(gameHandler.List))
	t.MustHandle(http.MethodGet, "/api/game/:id", http.HandlerFunc(gameHandler.Get))
	t.MustHandle(http.MethodPost, "/api/auth/register", http.HandlerFunc(authHandler.Register))
	t.MustHandle(http.MethodPost, "/api/auth/login", http.HandlerFunc(authHandler.Login))
	t.MustHandle(http.MethodPost, "/api/auth/logout", http.HandlerFunc(authHandler.Logout))

	// Routes requiring a bearer token
	t.MustHandle(http.MethodGet, "/api/user/profile", protected(userHandler.GetProfile))
	t.MustHandle(http.MethodPut, "/api/user/profile", protected(userHandler.UpdateProfile))
	t.MustHandle(http.MethodPut, "/api/user/password", protected(userHandler.ChangePassword))
	t.MustHandle(http.MethodGet, "/api/user/progress", protected(userHandler.GetProgress))
	t.MustHandle(http.MethodGet, "/api/user/stats", protected(userHandler.GetStats))
	t.MustHandle(http.MethodPost, "/api/game/:id/progress", protected(gameHandler.SaveProgress))

	// Admin routes
	t.MustHandle(http.MethodGet, "/api/admin/games", admin(adminHandler.ListGames))
	t.MustHandle(http.MethodPost, "/api/admin/games", admin(adminHandler.CreateGame))
	t.MustHandle(http.MethodGet, "/api/admin/game/:id", admin(adminHandler.GetGame))
	t.MustHandle(http.MethodPut, "/api/admin/game/:id", admin(adminHandler.UpdateGame))
	t.MustHandle(http.MethodDelete, "/api/admin/game/:id", admin(adminHandler.DeleteGame))
	t.MustHandle(http.MethodGet, "/api/admin/users", admin(adminHandler.ListUsers))
	t.MustHandle(http.MethodGet, "/api/admin/user/:id", admin(adminHandler.GetUser))
	t.MustHandle(http.MethodPut, "/api/admin/user/:id", admin(adminHandler.UpdateUser))
	t.MustHandle(http.MethodDelete, "/api/admin/user/:id", admin(adminHandler.DeleteUser))
	t.MustHandle(http.MethodGet, "/api/admin/stats", admin(adminHandler.Stats))

	t.SetFallback(fallbackHandler(cfg.Static))

	var h http.Handler = t
	h = apimiddleware.CORS()(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = apimiddleware.Recovery(cfg.Logger)(h)
	return h
}

// fallbackHandler routes unmatched requests: unknown API paths get a
// JSON 404, anything else goes to the static responder
func fallbackHandler(static http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
			apierr.WriteError(w, apierr.NewNotFoundError("endpoint not found"))
			return
		}
		if static != nil {
			static.ServeHTTP(w, r)
			return
		}
		apierr.WriteError(w, apierr.NewNotFoundError("not found"))
	})
}

func healthHandler(clk clock.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status:    "healthy",
			Message:   "server works",
			Timestamp: clk.Now(),
			Version:   Version,
		})
	})
}
