package catalog

import (
	"context"

	"github.com/mcoot/gamehub-go/internal/dependencies/clock"
	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/storage"
)

// Defaults applied to freshly created games
const (
	DefaultIcon       = "🎮"
	DefaultDifficulty = "beginner"
	DefaultColor      = "#3498db"
)

// Service manages the game catalog
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new catalog Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{storage: storage, clock: clock}
}

// ListGames returns all games ordered by id. An empty catalog yields a
// single placeholder row so the frontend always has something to show.
func (s *Service) ListGames(ctx context.Context) ([]*model.Game, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return []*model.Game{placeholderGame()}, nil
	}
	return games, nil
}

// AllGames returns the stored catalog without the placeholder fallback
func (s *Service) AllGames(ctx context.Context) ([]*model.Game, error) {
	return s.storage.ListGames(ctx)
}

// GetGame returns a single game by id
func (s *Service) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// CreateGame adds a game to the catalog, filling in display defaults
// for omitted fields
func (s *Service) CreateGame(ctx context.Context, game *model.Game) (*model.Game, error) {
	if game.Icon == "" {
		game.Icon = DefaultIcon
	}
	if game.Difficulty == "" {
		game.Difficulty = DefaultDifficulty
	}
	if game.Color == "" {
		game.Color = DefaultColor
	}
	if game.Status == "" {
		game.Status = model.GameStatusPlanned
	}
	game.CreatedAt = s.clock.Now()

	if err := s.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateGame applies a partial update and returns the updated row
func (s *Service) UpdateGame(ctx context.Context, id int64, upd model.GameUpdate) (*model.Game, error) {
	if err := s.storage.UpdateGame(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.storage.GetGame(ctx, id)
}

// DeleteGame removes a game and all progress recorded against it
func (s *Service) DeleteGame(ctx context.Context, id int64) error {
	return s.storage.DeleteGame(ctx, id)
}

func placeholderGame() *model.Game {
	return &model.Game{
		ID:          1,
		Title:       "demo 1",
		Description: "demo-1",
		Icon:        "D",
		Category:    "demo",
		Difficulty:  "none",
		Path:        "none",
		Color:       DefaultColor,
		Status:      model.GameStatusActive,
	}
}
