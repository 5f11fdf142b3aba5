package model

import "time"

// Game lifecycle states
const (
	GameStatusActive        = "active"
	GameStatusInDevelopment = "in-development"
	GameStatusPlanned       = "planned"
)

// Game is a catalog entry for a playable mini-game
type Game struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	Category    string    `db:"category"`
	Difficulty  string    `db:"difficulty"`
	Path        string    `db:"path"`
	Color       string    `db:"color"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

// GameUpdate describes a partial update of a game row
// Nil fields keep their current value
type GameUpdate struct {
	Title       *string
	Description *string
	Icon        *string
	Category    *string
	Difficulty  *string
	Path        *string
	Color       *string
	Status      *string
}
