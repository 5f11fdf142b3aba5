package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/gamehub-go/internal/dependencies/clock"
	"github.com/mcoot/gamehub-go/internal/services/auth"
	"github.com/mcoot/gamehub-go/internal/services/catalog"
	"github.com/mcoot/gamehub-go/internal/services/progress"
	"github.com/mcoot/gamehub-go/internal/services/token"
	"github.com/mcoot/gamehub-go/internal/storage"
	"github.com/mcoot/gamehub-go/internal/storage/memory"
	sqlitestorage "github.com/mcoot/gamehub-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	TokenMaker      *token.Maker
	AuthService     *auth.Service
	CatalogService  *catalog.Service
	ProgressService *progress.Service
}

// Config holds configuration for the application factory
type Config struct {
	// TokenConfig holds token signing settings; Secret is required
	TokenConfig token.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "sqlite")
	// If empty, defaults to "sqlite"
	StorageType string
	// SQLiteConfig holds database settings (used when StorageType is "sqlite")
	// If nil, defaults to sqlite.DefaultConfig()
	SQLiteConfig *sqlitestorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.TokenConfig.Secret == "" {
		return nil, errors.New("TokenConfig.Secret is required")
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		sqliteStore, err := sqlitestorage.New(sqliteCfg)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sqlite'")
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg.TokenConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, tokenCfg token.Config, logger *slog.Logger) *App {
	tokenMaker := token.New(tokenCfg, clk)
	authService := auth.New(store, tokenMaker, clk, logger)
	catalogService := catalog.New(store, clk)
	progressService := progress.New(store)

	return &App{
		Storage:         store,
		Clock:           clk,
		TokenMaker:      tokenMaker,
		AuthService:     authService,
		CatalogService:  catalogService,
		ProgressService: progressService,
	}
}
