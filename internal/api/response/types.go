package response

import (
	"time"

	"github.com/mcoot/gamehub-go/internal/model"
)

// User is the public user projection. It never carries the password
// hash.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// UsersFromModel converts a slice of users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, UserFromModel(u))
	}
	return out
}

// AuthResponse is the response for register, login and profile updates
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Game represents a game in API responses
type Game struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Path        string    `json:"path"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Icon:        g.Icon,
		Category:    g.Category,
		Difficulty:  g.Difficulty,
		Path:        g.Path,
		Color:       g.Color,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, GameFromModel(g))
	}
	return out
}

// Progress represents a progress row in API responses
type Progress struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	GameID     int64     `json:"game_id"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"max_score"`
	Attempts   int       `json:"attempts"`
	Completed  bool      `json:"completed"`
	LastPlayed time.Time `json:"last_played"`
}

// ProgressFromModel converts a model.Progress
func ProgressFromModel(p *model.Progress) Progress {
	return Progress{
		ID:         p.ID,
		UserID:     p.UserID,
		GameID:     p.GameID,
		Score:      p.Score,
		MaxScore:   p.MaxScore,
		Attempts:   p.Attempts,
		Completed:  p.Completed,
		LastPlayed: p.LastPlayed,
	}
}

// ProgressEntry is a progress row joined with game display fields
type ProgressEntry struct {
	Progress
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// ProgressEntriesFromModel converts a slice of joined progress rows
func ProgressEntriesFromModel(entries []*model.ProgressEntry) []ProgressEntry {
	out := make([]ProgressEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProgressEntry{
			Progress: ProgressFromModel(&e.Progress),
			Title:    e.Title,
			Icon:     e.Icon,
			Category: e.Category,
		})
	}
	return out
}

// UserStats is a user's aggregate play statistics
type UserStats struct {
	GamesPlayed    int        `json:"games_played"`
	TotalAttempts  int        `json:"total_attempts"`
	GamesCompleted int        `json:"games_completed"`
	AvgScore       float64    `json:"avg_score"`
	BestScore      int        `json:"best_score"`
	LastPlayed     *time.Time `json:"last_played"`
}

// UserStatsFromModel converts model.UserStats
func UserStatsFromModel(s *model.UserStats) UserStats {
	return UserStats{
		GamesPlayed:    s.GamesPlayed,
		TotalAttempts:  s.TotalAttempts,
		GamesCompleted: s.GamesCompleted,
		AvgScore:       s.AvgScore,
		BestScore:      s.BestScore,
		LastPlayed:     s.LastPlayed,
	}
}

// PlatformStats is the admin dashboard aggregate
type PlatformStats struct {
	Users     int `json:"users"`
	Games     int `json:"games"`
	Plays     int `json:"plays"`
	Completed int `json:"completed"`
}

// PlatformStatsFromModel converts model.PlatformStats
func PlatformStatsFromModel(s *model.PlatformStats) PlatformStats {
	return PlatformStats{
		Users:     s.Users,
		Games:     s.Games,
		Plays:     s.Plays,
		Completed: s.Completed,
	}
}

// Health is the liveness check response
type Health struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Success is a bare success acknowledgement
type Success struct {
	Success bool `json:"success"`
}
