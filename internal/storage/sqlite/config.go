package sqlite

import "time"

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file path; ":memory:" gives an in-process
	// database (used by tests)
	Path string

	// BusyTimeout bounds how long a statement waits on a locked database
	BusyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:        "gamehub.db",
		BusyTimeout: 5 * time.Second,
	}
}
