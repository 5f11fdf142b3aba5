package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newUser(username, email string) *model.User {
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Avatar:       model.DefaultAvatar,
		Role:         model.RoleUser,
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *StorageSuite) newGame(title string) *model.Game {
	game := &model.Game{Title: title, Path: "/games/" + title + "/"}
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
	return game
}

func (s *StorageSuite) TestCreateUserAssignsID() {
	a := s.newUser("alice", "alice@example.com")
	b := s.newUser("bob", "bob@example.com")
	s.Equal(int64(1), a.ID)
	s.Equal(int64(2), b.ID)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateUsername() {
	s.newUser("alice", "alice@example.com")
	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", Email: "other@example.com"})
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *StorageSuite) TestCreateUserRejectsDuplicateEmail() {
	s.newUser("alice", "alice@example.com")
	err := s.storage.CreateUser(s.ctx, &model.User{Username: "other", Email: "alice@example.com"})
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *StorageSuite) TestGetUserByLoginMatchesUsernameAndEmail() {
	user := s.newUser("alice", "alice@example.com")

	byName, err := s.storage.GetUserByLogin(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)

	byEmail, err := s.storage.GetUserByLogin(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)

	_, err = s.storage.GetUserByLogin(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserPartial() {
	user := s.newUser("alice", "alice@example.com")

	role := model.RoleAdmin
	s.Require().NoError(s.storage.UpdateUser(s.ctx, user.ID, model.UserUpdate{Role: &role}))

	got, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, got.Role)
	s.Equal("alice", got.Username) // untouched
}

func (s *StorageSuite) TestDeleteUserCascadesProgress() {
	user := s.newUser("alice", "alice@example.com")
	game := s.newGame("math")
	_, err := s.storage.SaveProgress(s.ctx, user.ID, game.ID, 5, false)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteUser(s.ctx, user.ID))

	_, err = s.storage.GetProgress(s.ctx, user.ID, game.ID)
	s.ErrorIs(err, model.ErrProgressNotFound)
}

func (s *StorageSuite) TestDeleteGameCascadesProgress() {
	user := s.newUser("alice", "alice@example.com")
	game := s.newGame("math")
	_, err := s.storage.SaveProgress(s.ctx, user.ID, game.ID, 5, false)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.DeleteGame(s.ctx, game.ID))

	_, err = s.storage.GetProgress(s.ctx, user.ID, game.ID)
	s.ErrorIs(err, model.ErrProgressNotFound)

	entries, err := s.storage.ListProgressForUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestSaveProgressUpsertInvariants() {
	user := s.newUser("alice", "alice@example.com")
	game := s.newGame("math")

	p, err := s.storage.SaveProgress(s.ctx, user.ID, game.ID, 5, false)
	s.Require().NoError(err)
	s.Equal(1, p.Attempts)
	s.Equal(5, p.MaxScore)

	p, err = s.storage.SaveProgress(s.ctx, user.ID, game.ID, 3, false)
	s.Require().NoError(err)
	s.Equal(2, p.Attempts)
	s.Equal(3, p.Score)
	s.Equal(5, p.MaxScore)
	s.False(p.Completed)

	p, err = s.storage.SaveProgress(s.ctx, user.ID, game.ID, 8, true)
	s.Require().NoError(err)
	s.Equal(3, p.Attempts)
	s.Equal(8, p.Score)
	s.Equal(8, p.MaxScore)
	s.True(p.Completed)

	// completed is sticky
	p, err = s.storage.SaveProgress(s.ctx, user.ID, game.ID, 1, false)
	s.Require().NoError(err)
	s.True(p.Completed)
	s.Equal(8, p.MaxScore)
}

func (s *StorageSuite) TestListProgressForUserJoinsGames() {
	user := s.newUser("alice", "alice@example.com")
	game := s.newGame("math")
	_, err := s.storage.SaveProgress(s.ctx, user.ID, game.ID, 5, false)
	s.Require().NoError(err)

	entries, err := s.storage.ListProgressForUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("math", entries[0].Title)
	s.Equal(game.ID, entries[0].GameID)
}

func (s *StorageSuite) TestUserStatsAggregates() {
	user := s.newUser("alice", "alice@example.com")
	g1 := s.newGame("math")
	g2 := s.newGame("memory")

	_, err := s.storage.SaveProgress(s.ctx, user.ID, g1.ID, 10, true)
	s.Require().NoError(err)
	_, err = s.storage.SaveProgress(s.ctx, user.ID, g1.ID, 4, false)
	s.Require().NoError(err)
	_, err = s.storage.SaveProgress(s.ctx, user.ID, g2.ID, 6, false)
	s.Require().NoError(err)

	stats, err := s.storage.UserStats(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(2, stats.GamesPlayed)
	s.Equal(3, stats.TotalAttempts)
	s.Equal(1, stats.GamesCompleted)
	s.Equal(10, stats.BestScore)
	s.InDelta(8.0, stats.AvgScore, 0.001)
	s.NotNil(stats.LastPlayed)
}

func (s *StorageSuite) TestPlatformStats() {
	user := s.newUser("alice", "alice@example.com")
	game := s.newGame("math")
	_, err := s.storage.SaveProgress(s.ctx, user.ID, game.ID, 5, true)
	s.Require().NoError(err)

	stats, err := s.storage.PlatformStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Users)
	s.Equal(1, stats.Games)
	s.Equal(1, stats.Plays)
	s.Equal(1, stats.Completed)
}
