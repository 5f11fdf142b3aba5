package storage

import (
	"context"

	"github.com/mcoot/gamehub-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// GetUserByLogin matches the identifier against username or email
	GetUserByLogin(ctx context.Context, identifier string) (*model.User, error)
	// FindUserByUsernameOrEmail returns a user holding either value
	// (case-sensitive exact match), used for duplicate checks
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserProfile(ctx context.Context, id int64, username, email, avatar string) error
	UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	// TouchLastLogin stamps the last-login time; callers treat failures
	// as best-effort
	TouchLastLogin(ctx context.Context, id int64) error
	// DeleteUser removes the user and all their progress rows
	DeleteUser(ctx context.Context, id int64) error

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id int64) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	UpdateGame(ctx context.Context, id int64, upd model.GameUpdate) error
	// DeleteGame removes the game and all progress rows referencing it
	DeleteGame(ctx context.Context, id int64) error

	// Progress operations
	//
	// SaveProgress is an atomic upsert on the unique (user, game) pair:
	// attempts increments by one, max_score never decreases, completed
	// never reverts to false. Returns the row as written.
	SaveProgress(ctx context.Context, userID, gameID int64, score int, completed bool) (*model.Progress, error)
	GetProgress(ctx context.Context, userID, gameID int64) (*model.Progress, error)
	// ListProgressForUser returns progress joined with game display
	// fields, most recently played first
	ListProgressForUser(ctx context.Context, userID int64) ([]*model.ProgressEntry, error)

	// Aggregates
	UserStats(ctx context.Context, userID int64) (*model.UserStats, error)
	PlatformStats(ctx context.Context) (*model.PlatformStats, error)
}
