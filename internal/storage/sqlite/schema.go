package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamehub-go/internal/model"
)

// statements executed on every startup; all idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT 'default',
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		game_id INTEGER NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		max_score INTEGER NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT 0,
		last_played DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE,
		UNIQUE(user_id, game_id)
	)`,
	// Present in the schema for forward compatibility; no operations
	// target it yet
	`CREATE TABLE IF NOT EXISTS achievements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		game_id INTEGER,
		achievement_type TEXT NOT NULL,
		achieved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
	)`,
}

// demoPassword is the shared password for seeded demo accounts
const demoPassword = "password123"

// Init creates the schema and seeds demo rows. Seeding runs inside a
// single transaction gated by count checks, so concurrent cold starts
// cannot double-insert.
func (s *Storage) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return s.seed(ctx)
}

func (s *Storage) seed(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.seedUsers(ctx, tx); err != nil {
		return err
	}
	if err := s.seedGames(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func (s *Storage) seedUsers(ctx context.Context, tx *sqlx.Tx) error {
	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	now := s.now()
	demoUsers := []struct {
		username, email, role string
	}{
		{"admin", "admin@example.com", model.RoleAdmin},
		{"demo", "demo@example.com", model.RoleUser},
		{"test", "test@example.com", model.RoleUser},
	}
	for _, u := range demoUsers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, email, password_hash, avatar, role, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			u.username, u.email, string(hash), model.DefaultAvatar, u.role, now)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}
	return nil
}

func (s *Storage) seedGames(ctx context.Context, tx *sqlx.Tx) error {
	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM games`); err != nil {
		return fmt.Errorf("count games: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.now()
	demoGames := []model.Game{
		{
			Title:       "Math Quiz",
			Description: "Time-limited mental arithmetic problems",
			Icon:        "+",
			Category:    "maths",
			Difficulty:  "beginner",
			Path:        "/games/math-quiz/",
			Color:       "#3498db",
			Status:      model.GameStatusActive,
		},
		{
			Title:       "Memory Training",
			Description: "Memory-based match seeking",
			Icon:        "*",
			Category:    "memory",
			Difficulty:  "intermediate",
			Path:        "/games/memory/",
			Color:       "#9b59b6",
			Status:      model.GameStatusInDevelopment,
		},
	}
	for _, g := range demoGames {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO games (title, description, icon, category, difficulty, path, color, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.Title, g.Description, g.Icon, g.Category, g.Difficulty, g.Path, g.Color, g.Status, now)
		if err != nil {
			return fmt.Errorf("seed game %s: %w", g.Title, err)
		}
	}
	return nil
}
