package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete player journey from registration to stats
func (s *IntegrationSuite) TestCompletePlayerFlow() {
	// Step 1: An admin seeds the catalog
	game, err := s.app.CatalogService.CreateGame(s.ctx, &model.Game{
		Title:    "Math Quiz",
		Path:     "/games/math-quiz/",
		Category: "math",
		Status:   model.GameStatusActive,
	})
	s.Require().NoError(err)

	// Step 2: A player registers and receives a token
	creds, err := s.app.AuthService.Register(s.ctx, "alice", "alice@example.com", "hunter22")
	s.Require().NoError(err)
	s.NotEmpty(creds.Token)

	// Step 3: The token resolves back to the same user
	user, err := s.app.AuthService.GetUserFromToken(s.ctx, creds.Token)
	s.Require().NoError(err)
	s.Equal(creds.User.ID, user.ID)

	// Step 4: The player plays a few rounds
	for _, save := range []struct {
		score     int
		completed bool
	}{
		{5, false},
		{3, false},
		{8, true},
	} {
		_, err = s.app.ProgressService.Save(s.ctx, user.ID, game.ID, save.score, save.completed)
		s.Require().NoError(err)
	}

	// Step 5: Progress accumulated across saves
	entries, err := s.app.ProgressService.ListForUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(8, entries[0].MaxScore)
	s.Equal(3, entries[0].Attempts)
	s.True(entries[0].Completed)
	s.Equal("Math Quiz", entries[0].Title)

	// Step 6: Stats reflect the session
	stats, err := s.app.ProgressService.UserStats(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, stats.GamesPlayed)
	s.Equal(1, stats.GamesCompleted)
	s.Equal(8, stats.BestScore)
}

func (s *IntegrationSuite) TestTokenExpiryAcrossLogin() {
	creds, err := s.app.AuthService.Register(s.ctx, "bob", "bob@example.com", "secret1")
	s.Require().NoError(err)

	// Token is valid within its lifetime
	_, err = s.app.AuthService.VerifyToken(creds.Token)
	s.Require().NoError(err)

	// A week later the token has expired, but logging in issues a fresh one
	s.app.MockClock.Advance(8 * 24 * time.Hour)
	_, err = s.app.AuthService.VerifyToken(creds.Token)
	s.ErrorIs(err, model.ErrInvalidToken)

	fresh, err := s.app.AuthService.Login(s.ctx, "bob", "secret1")
	s.Require().NoError(err)
	_, err = s.app.AuthService.VerifyToken(fresh.Token)
	s.NoError(err)
}

func (s *IntegrationSuite) TestRoleChangeTakesEffectImmediately() {
	admin, err := s.app.AuthService.Register(s.ctx, "root", "root@example.com", "rootpw")
	s.Require().NoError(err)
	role := model.RoleAdmin
	s.Require().NoError(s.app.Storage.UpdateUser(s.ctx, admin.User.ID, model.UserUpdate{Role: &role}))

	target, err := s.app.AuthService.Register(s.ctx, "carol", "carol@example.com", "carolpw")
	s.Require().NoError(err)

	// Demoting carol does not invalidate her token, but the resolved
	// user carries the current role
	demoted := model.RoleUser
	_, err = s.app.AuthService.UpdateUser(s.ctx, admin.User.ID, target.User.ID, model.UserUpdate{Role: &demoted})
	s.Require().NoError(err)

	user, err := s.app.AuthService.GetUserFromToken(s.ctx, target.Token)
	s.Require().NoError(err)
	s.False(user.IsAdmin())

	// Deleting her invalidates the token outright
	s.Require().NoError(s.app.AuthService.DeleteUser(s.ctx, admin.User.ID, target.User.ID))
	_, err = s.app.AuthService.GetUserFromToken(s.ctx, target.Token)
	s.ErrorIs(err, model.ErrInvalidToken)
}
