package progress

import (
	"context"

	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/storage"
)

// Service records play results and computes aggregate statistics
type Service struct {
	storage storage.Storage
}

// New creates a new progress Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Save records a play of the given game. The underlying upsert keeps
// one row per (user, game) pair: attempts accumulate, max score and
// completion only ever move forward.
func (s *Service) Save(ctx context.Context, userID, gameID int64, score int, completed bool) (*model.Progress, error) {
	if _, err := s.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.storage.SaveProgress(ctx, userID, gameID, score, completed)
}

// ListForUser returns the user's progress joined with game display
// fields, most recently played first
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*model.ProgressEntry, error) {
	return s.storage.ListProgressForUser(ctx, userID)
}

// UserStats aggregates a single user's play history
func (s *Service) UserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	return s.storage.UserStats(ctx, userID)
}

// PlatformStats aggregates counts across the whole platform
func (s *Service) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	return s.storage.PlatformStats(ctx)
}
