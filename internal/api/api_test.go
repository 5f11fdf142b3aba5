package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub-go/internal/api/apierr"
	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/factory"
	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	router := NewRouter(RouterConfig{
		Logger:          testutil.NopLogger(),
		Clock:           s.app.MockClock,
		AuthService:     s.app.AuthService,
		CatalogService:  s.app.CatalogService,
		ProgressService: s.app.ProgressService,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

// do performs a request, optionally with a bearer token and JSON body,
// and decodes the JSON response into out (when non-nil)
func (s *APISuite) do(method, path, token string, body any, out any) *http.Response {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)

	if out != nil {
		defer resp.Body.Close()
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *APISuite) register(username, email string) response.AuthResponse {
	var auth response.AuthResponse
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	}, &auth)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return auth
}

// registerAdmin creates a user and promotes it directly in storage
func (s *APISuite) registerAdmin() response.AuthResponse {
	auth := s.register("admin", "admin@example.com")
	role := model.RoleAdmin
	s.Require().NoError(s.app.Storage.UpdateUser(
		context.Background(), auth.User.ID, model.UserUpdate{Role: &role}))
	return auth
}

func (s *APISuite) createGame(adminToken, title string) response.Game {
	var game response.Game
	resp := s.do(http.MethodPost, "/api/admin/games", adminToken, map[string]string{
		"title":    title,
		"path":     "/games/math-quiz/",
		"category": "math",
		"status":   "active",
	}, &game)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return game
}

// Health

func (s *APISuite) TestHealth() {
	var health response.Health
	resp := s.do(http.MethodGet, "/api/health", "", nil, &health)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("healthy", health.Status)
	s.Equal(Version, health.Version)
}

// Auth flow

func (s *APISuite) TestRegisterLoginFlow() {
	auth := s.register("alice", "alice@example.com")
	s.NotEmpty(auth.Token)
	s.Equal("alice", auth.User.Username)

	var login response.AuthResponse
	resp := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "alice@example.com",
		"password":   "password123",
	}, &login)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(login.Token)
}

func (s *APISuite) TestRegisterResponseOmitsPasswordHash() {
	var raw map[string]any
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, &raw)
	s.Equal(http.StatusCreated, resp.StatusCode)

	user, ok := raw["user"].(map[string]any)
	s.Require().True(ok)
	s.NotContains(user, "password_hash")
	s.NotContains(user, "PasswordHash")
}

func (s *APISuite) TestRegisterValidation() {
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
	}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestRegisterDuplicateConflict() {
	s.register("alice", "alice@example.com")

	var errResp map[string]string
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	}, &errResp)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.NotEmpty(errResp["error"])
}

func (s *APISuite) TestLoginFailuresAreUniform() {
	s.register("alice", "alice@example.com")

	var wrongPass map[string]string
	resp := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "alice",
		"password":   "wrong",
	}, &wrongPass)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var unknown map[string]string
	resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "nobody",
		"password":   "password123",
	}, &unknown)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	s.Equal(wrongPass["error"], unknown["error"])
}

func (s *APISuite) TestLogout() {
	resp := s.do(http.MethodPost, "/api/auth/logout", "", nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

// Profile

func (s *APISuite) TestProfileRequiresAuth() {
	resp := s.do(http.MethodGet, "/api/user/profile", "", nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestProfileRejectsGarbageToken() {
	resp := s.do(http.MethodGet, "/api/user/profile", "garbage", nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestGetProfile() {
	auth := s.register("alice", "alice@example.com")

	var user response.User
	resp := s.do(http.MethodGet, "/api/user/profile", auth.Token, nil, &user)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("alice", user.Username)
}

func (s *APISuite) TestUpdateProfileReissuesToken() {
	auth := s.register("alice", "alice@example.com")

	var updated response.AuthResponse
	resp := s.do(http.MethodPut, "/api/user/profile", auth.Token, map[string]string{
		"username": "alicia",
		"email":    "alicia@example.com",
		"avatar":   "🦊",
	}, &updated)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("alicia", updated.User.Username)
	s.NotEmpty(updated.Token)

	var user response.User
	resp = s.do(http.MethodGet, "/api/user/profile", updated.Token, nil, &user)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("alicia", user.Username)
}

func (s *APISuite) TestChangePassword() {
	auth := s.register("alice", "alice@example.com")

	resp := s.do(http.MethodPut, "/api/user/password", auth.Token, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword",
	}, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "alice",
		"password":   "newpassword",
	}, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APISuite) TestExpiredTokenRejected() {
	auth := s.register("alice", "alice@example.com")

	s.app.MockClock.Advance(8 * 24 * time.Hour)

	resp := s.do(http.MethodGet, "/api/user/profile", auth.Token, nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// Games and progress

func (s *APISuite) TestListGamesPlaceholderWhenEmpty() {
	var games []response.Game
	resp := s.do(http.MethodGet, "/api/games", "", nil, &games)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(games, 1)
	s.Equal("demo 1", games[0].Title)
}

func (s *APISuite) TestGetGameBindsPathParam() {
	admin := s.registerAdmin()
	game := s.createGame(admin.Token, "Math Quiz")

	var got response.Game
	resp := s.do(http.MethodGet, fmt.Sprintf("/api/game/%d", game.ID), "", nil, &got)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(game.ID, got.ID)
}

func (s *APISuite) TestGetGameExtraSegmentIs404() {
	resp := s.do(http.MethodGet, "/api/game/42/extra", "", nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestGetGameNotFound() {
	resp := s.do(http.MethodGet, "/api/game/9999", "", nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestSaveProgressFlow() {
	admin := s.registerAdmin()
	game := s.createGame(admin.Token, "Math Quiz")
	auth := s.register("alice", "alice@example.com")

	path := fmt.Sprintf("/api/game/%d/progress", game.ID)

	var p response.Progress
	resp := s.do(http.MethodPost, path, auth.Token, map[string]any{"score": 5, "completed": false}, &p)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(1, p.Attempts)

	resp = s.do(http.MethodPost, path, auth.Token, map[string]any{"score": 3, "completed": false}, &p)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2, p.Attempts)
	s.Equal(5, p.MaxScore)

	resp = s.do(http.MethodPost, path, auth.Token, map[string]any{"score": 8, "completed": true}, &p)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(8, p.Score)
	s.Equal(8, p.MaxScore)
	s.Equal(3, p.Attempts)
	s.True(p.Completed)

	var entries []response.ProgressEntry
	resp = s.do(http.MethodGet, "/api/user/progress", auth.Token, nil, &entries)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(entries, 1)
	s.Equal("Math Quiz", entries[0].Title)

	var stats response.UserStats
	resp = s.do(http.MethodGet, "/api/user/stats", auth.Token, nil, &stats)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(1, stats.GamesPlayed)
	s.Equal(3, stats.TotalAttempts)
	s.Equal(8, stats.BestScore)
}

func (s *APISuite) TestSaveProgressUnknownGame() {
	auth := s.register("alice", "alice@example.com")

	resp := s.do(http.MethodPost, "/api/game/9999/progress", auth.Token,
		map[string]any{"score": 5, "completed": false}, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestSaveProgressRequiresAuth() {
	resp := s.do(http.MethodPost, "/api/game/1/progress", "",
		map[string]any{"score": 5, "completed": false}, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// Admin

func (s *APISuite) TestAdminEndpointsRejectNonAdmin() {
	auth := s.register("alice", "alice@example.com")

	resp := s.do(http.MethodGet, "/api/admin/users", auth.Token, nil, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/admin/games", auth.Token,
		map[string]string{"title": "Sneaky"}, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	var games []response.Game
	resp = s.do(http.MethodGet, "/api/games", "", nil, &games)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("demo 1", games[0].Title) // nothing was created
}

func (s *APISuite) TestAdminEndpointsRejectMissingToken() {
	resp := s.do(http.MethodGet, "/api/admin/stats", "", nil, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APISuite) TestAdminCreateGameRequiresTitleAndPath() {
	admin := s.registerAdmin()

	var errResp apierr.ErrorResponse
	resp := s.do(http.MethodPost, "/api/admin/games", admin.Token,
		map[string]string{"path": "/games/untitled/"}, &errResp)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("title is required", errResp.Error)

	resp = s.do(http.MethodPost, "/api/admin/games", admin.Token,
		map[string]string{"title": "No Path Game"}, &errResp)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("path is required", errResp.Error)
}

func (s *APISuite) TestAdminGameCRUD() {
	admin := s.registerAdmin()
	game := s.createGame(admin.Token, "Math Quiz")

	status := "in-development"
	var updated response.Game
	resp := s.do(http.MethodPut, fmt.Sprintf("/api/admin/game/%d", game.ID), admin.Token,
		map[string]string{"status": status}, &updated)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(status, updated.Status)
	s.Equal("Math Quiz", updated.Title)

	resp = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/game/%d", game.ID), admin.Token, nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, fmt.Sprintf("/api/game/%d", game.ID), "", nil, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestAdminUserManagement() {
	alice := s.register("alice", "alice@example.com")
	admin := s.registerAdmin()

	var users []response.User
	resp := s.do(http.MethodGet, "/api/admin/users", admin.Token, nil, &users)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(users, 2)

	var promoted response.User
	resp = s.do(http.MethodPut, fmt.Sprintf("/api/admin/user/%d", alice.User.ID), admin.Token,
		map[string]string{"role": "admin"}, &promoted)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(model.RoleAdmin, promoted.Role)

	resp = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/user/%d", alice.User.ID), admin.Token, nil, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *APISuite) TestAdminCannotDemoteSelf() {
	admin := s.registerAdmin()

	resp := s.do(http.MethodPut, fmt.Sprintf("/api/admin/user/%d", admin.User.ID), admin.Token,
		map[string]string{"role": "user"}, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var user response.User
	resp = s.do(http.MethodGet, fmt.Sprintf("/api/admin/user/%d", admin.User.ID), admin.Token, nil, &user)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(model.RoleAdmin, user.Role)
}

func (s *APISuite) TestAdminCannotDeleteSelf() {
	admin := s.registerAdmin()

	resp := s.do(http.MethodDelete, fmt.Sprintf("/api/admin/user/%d", admin.User.ID), admin.Token, nil, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestAdminStats() {
	admin := s.registerAdmin()
	game := s.createGame(admin.Token, "Math Quiz")
	alice := s.register("alice", "alice@example.com")

	resp := s.do(http.MethodPost, fmt.Sprintf("/api/game/%d/progress", game.ID), alice.Token,
		map[string]any{"score": 5, "completed": true}, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var stats response.PlatformStats
	resp = s.do(http.MethodGet, "/api/admin/stats", admin.Token, nil, &stats)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2, stats.Users)
	s.Equal(1, stats.Games)
	s.Equal(1, stats.Plays)
	s.Equal(1, stats.Completed)
}

// Transport behavior

func (s *APISuite) TestCORSHeaders() {
	resp := s.do(http.MethodGet, "/api/health", "", nil, nil)
	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestOptionsPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/api/games", nil)
	s.Require().NoError(err)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestUnknownAPIPathIsJSON404() {
	var errResp map[string]string
	resp := s.do(http.MethodGet, "/api/nope", "", nil, &errResp)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.NotEmpty(errResp["error"])
}
