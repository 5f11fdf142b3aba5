// Package sqlite is the SQLite-backed persistence gateway. A single
// local database file holds all durable state; connection access is
// serialized through one pooled connection since SQLite allows only one
// writer at a time.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/storage"
)

// Storage is a SQLite implementation of the storage interface
type Storage struct {
	db  *sqlx.DB
	cfg Config
}

// New opens (creating if necessary) the database file
func New(cfg Config) (*Storage, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time; also keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Storage{db: db, cfg: cfg}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) now() time.Time {
	return time.Now().UTC()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if user.Avatar == "" {
		user.Avatar = model.DefaultAvatar
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.CreatedAt = s.now()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, avatar, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.Avatar, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user id: %w", err)
	}
	user.ID = id
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Storage) GetUserByLogin(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE username = ? OR email = ?`, identifier, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return &user, nil
}

func (s *Storage) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE username = ? OR email = ?`, username, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Storage) UpdateUserProfile(ctx context.Context, id int64, username, email, avatar string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, avatar = ? WHERE id = ?`,
		username, email, avatar, id)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserExists
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return affectedOr(res, model.ErrUserNotFound)
}

func (s *Storage) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET
			username = COALESCE(?, username),
			email = COALESCE(?, email),
			role = COALESCE(?, role)
		 WHERE id = ?`,
		upd.Username, upd.Email, upd.Role, id)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return affectedOr(res, model.ErrUserNotFound)
}

func (s *Storage) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return affectedOr(res, model.ErrUserNotFound)
}

func (s *Storage) TouchLastLogin(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`, s.now(), id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return affectedOr(res, model.ErrUserNotFound)
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	// user_progress rows go with the user via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return affectedOr(res, model.ErrUserNotFound)
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	if game.Status == "" {
		game.Status = model.GameStatusPlanned
	}
	game.CreatedAt = s.now()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (title, description, icon, category, difficulty, path, color, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.Title, game.Description, game.Icon, game.Category,
		game.Difficulty, game.Path, game.Color, game.Status, game.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert game id: %w", err)
	}
	game.ID = id
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	var game model.Game
	err := s.db.GetContext(ctx, &game, `SELECT * FROM games WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	if err := s.db.SelectContext(ctx, &games, `SELECT * FROM games ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id int64, upd model.GameUpdate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			icon = COALESCE(?, icon),
			category = COALESCE(?, category),
			difficulty = COALESCE(?, difficulty),
			path = COALESCE(?, path),
			color = COALESCE(?, color),
			status = COALESCE(?, status)
		 WHERE id = ?`,
		upd.Title, upd.Description, upd.Icon, upd.Category,
		upd.Difficulty, upd.Path, upd.Color, upd.Status, id)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return affectedOr(res, model.ErrGameNotFound)
}

func (s *Storage) DeleteGame(ctx context.Context, id int64) error {
	// progress rows referencing the game go via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return affectedOr(res, model.ErrGameNotFound)
}

// Progress operations

// SaveProgress upserts in a single statement, guarded by the unique
// (user_id, game_id) constraint: no read-modify-write window exists,
// so concurrent saves cannot lose an attempt increment.
func (s *Storage) SaveProgress(ctx context.Context, userID, gameID int64, score int, completed bool) (*model.Progress, error) {
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, game_id, score, max_score, attempts, completed, last_played, created_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?, ?)
		 ON CONFLICT(user_id, game_id) DO UPDATE SET
			score = excluded.score,
			max_score = MAX(user_progress.max_score, excluded.score),
			attempts = user_progress.attempts + 1,
			completed = MAX(user_progress.completed, excluded.completed),
			last_played = excluded.last_played`,
		userID, gameID, score, score, completed, now, now)
	if err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return s.GetProgress(ctx, userID, gameID)
}

func (s *Storage) GetProgress(ctx context.Context, userID, gameID int64) (*model.Progress, error) {
	var p model.Progress
	err := s.db.GetContext(ctx, &p,
		`SELECT * FROM user_progress WHERE user_id = ? AND game_id = ?`, userID, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

func (s *Storage) ListProgressForUser(ctx context.Context, userID int64) ([]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	err := s.db.SelectContext(ctx, &entries,
		`SELECT up.id, up.user_id, up.game_id, up.score, up.max_score, up.attempts,
			up.completed, up.last_played, up.created_at,
			g.title, g.icon, g.category
		 FROM user_progress up
		 JOIN games g ON up.game_id = g.id
		 WHERE up.user_id = ?
		 ORDER BY up.last_played DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return entries, nil
}

// Aggregates

func (s *Storage) UserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	var stats model.UserStats
	err := s.db.GetContext(ctx, &stats,
		`SELECT
			COUNT(DISTINCT game_id) AS games_played,
			COALESCE(SUM(attempts), 0) AS total_attempts,
			COALESCE(SUM(completed), 0) AS games_completed,
			COALESCE(AVG(max_score), 0) AS avg_score,
			COALESCE(MAX(max_score), 0) AS best_score
		 FROM user_progress WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	// Selected separately so the column's DATETIME declared type is
	// preserved and the driver returns a time value
	var lastPlayed sql.NullTime
	err = s.db.GetContext(ctx, &lastPlayed,
		`SELECT last_played FROM user_progress
		 WHERE user_id = ? ORDER BY last_played DESC LIMIT 1`, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no plays yet
	case err != nil:
		return nil, fmt.Errorf("user stats last played: %w", err)
	case lastPlayed.Valid:
		stats.LastPlayed = &lastPlayed.Time
	}
	return &stats, nil
}

func (s *Storage) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	var stats model.PlatformStats
	err := s.db.GetContext(ctx, &stats,
		`SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM games) AS games,
			(SELECT COUNT(*) FROM user_progress) AS plays,
			(SELECT COUNT(*) FROM user_progress WHERE completed = 1) AS completed`)
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	return &stats, nil
}

func affectedOr(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
