package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case []User:
		for i, u := range v {
			if i > 0 {
				fmt.Println()
			}
			o.printUser(u)
		}
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case []Game:
		for i, g := range v {
			if i > 0 {
				fmt.Println()
			}
			o.printGame(g)
		}
	case Progress:
		o.printProgress(v)
	case []ProgressEntry:
		o.printProgressEntries(v)
	case UserStats:
		o.printUserStats(v)
	case PlatformStats:
		o.printPlatformStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Game response type
type Game struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Path        string `json:"path"`
	Color       string `json:"color"`
	Status      string `json:"status"`
}

// Progress response type
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

// ProgressEntry is progress joined with game display fields
type ProgressEntry struct {
	Progress
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// UserStats response type
type UserStats struct {
	GamesPlayed    int        `json:"games_played"`
	TotalAttempts  int        `json:"total_attempts"`
	GamesCompleted int        `json:"games_completed"`
	AvgScore       float64    `json:"avg_score"`
	BestScore      int        `json:"best_score"`
	LastPlayed     *time.Time `json:"last_played"`
}

// PlatformStats response type
type PlatformStats struct {
	Users     int `json:"users"`
	Games     int `json:"games"`
	Plays     int `json:"plays"`
	Completed int `json:"completed"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s %s (#%d)\n", u.Avatar, u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	if u.LastLogin != nil {
		fmt.Printf("Last Login: %s\n", u.LastLogin.Format(time.RFC3339))
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s %s (#%d)\n", g.Icon, g.Title, g.ID)
	if g.Description != "" {
		fmt.Printf("Description: %s\n", g.Description)
	}
	fmt.Printf("Category: %s\n", g.Category)
	fmt.Printf("Difficulty: %s\n", g.Difficulty)
	fmt.Printf("Status: %s\n", g.Status)
}

func (o *Output) printProgress(p Progress) {
	fmt.Printf("Game #%d: score %d (best %d)\n", p.GameID, p.Score, p.MaxScore)
	fmt.Printf("Attempts: %d\n", p.Attempts)
	completedStr := "no"
	if p.Completed {
		completedStr = "yes"
	}
	fmt.Printf("Completed: %s\n", completedStr)
}

func (o *Output) printProgressEntries(entries []ProgressEntry) {
	if len(entries) == 0 {
		fmt.Println("No progress recorded")
		return
	}
	for _, e := range entries {
		completedStr := ""
		if e.Completed {
			completedStr = " [completed]"
		}
		fmt.Printf("%s %s: score %d (best %d, %d attempts)%s\n",
			e.Icon, e.Title, e.Score, e.MaxScore, e.Attempts, completedStr)
	}
}

func (o *Output) printUserStats(s UserStats) {
	fmt.Printf("Games Played: %d\n", s.GamesPlayed)
	fmt.Printf("Total Attempts: %d\n", s.TotalAttempts)
	fmt.Printf("Games Completed: %d\n", s.GamesCompleted)
	fmt.Printf("Average Score: %.1f\n", s.AvgScore)
	fmt.Printf("Best Score: %d\n", s.BestScore)
	if s.LastPlayed != nil {
		fmt.Printf("Last Played: %s\n", s.LastPlayed.Format(time.RFC3339))
	}
}

func (o *Output) printPlatformStats(s PlatformStats) {
	fmt.Printf("Users: %d\n", s.Users)
	fmt.Printf("Games: %d\n", s.Games)
	fmt.Printf("Plays: %d\n", s.Plays)
	fmt.Printf("Completed: %d\n", s.Completed)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s (%s)\n", h.Status, h.Version)
	if h.Message != "" {
		fmt.Printf("Message: %s\n", h.Message)
	}
}
