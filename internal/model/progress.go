package model

import "time"

// Progress is a per-user, per-game cumulative record.
// At most one row exists per (UserID, GameID) pair.
//
// Invariants maintained by the storage layer:
//   - Attempts increases by exactly one per save
//   - MaxScore is monotonically non-decreasing
//   - Completed is sticky: once true it never reverts
type Progress struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	GameID     int64     `db:"game_id"`
	Score      int       `db:"score"`
	MaxScore   int       `db:"max_score"`
	Attempts   int       `db:"attempts"`
	Completed  bool      `db:"completed"`
	LastPlayed time.Time `db:"last_played"`
	CreatedAt  time.Time `db:"created_at"`
}

// ProgressEntry is a progress row joined with its game's display fields
type ProgressEntry struct {
	Progress
	Title    string `db:"title"`
	Icon     string `db:"icon"`
	Category string `db:"category"`
}

// UserStats aggregates a single user's progress rows
type UserStats struct {
	GamesPlayed    int        `db:"games_played"`
	TotalAttempts  int        `db:"total_attempts"`
	GamesCompleted int        `db:"games_completed"`
	AvgScore       float64    `db:"avg_score"`
	BestScore      int        `db:"best_score"`
	LastPlayed     *time.Time `db:"last_played"`
}

// PlatformStats aggregates platform-wide counts for the admin dashboard
type PlatformStats struct {
	Users     int `db:"users"`
	Games     int `db:"games"`
	Plays     int `db:"plays"`
	Completed int `db:"completed"`
}
