package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The mutex is held across every multi-step mutation, so the progress
// upsert is atomic per instance.
type Storage struct {
	mu sync.RWMutex

	users      map[int64]*model.User
	games      map[int64]*model.Game
	progress   map[progressKey]*model.Progress
	nextUserID int64
	nextGameID int64
	nextProgID int64
}

type progressKey struct {
	userID int64
	gameID int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:    make(map[int64]*model.User),
		games:    make(map[int64]*model.Game),
		progress: make(map[progressKey]*model.Progress),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return model.ErrUserExists
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *Storage) GetUserByLogin(ctx context.Context, identifier string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == identifier || user.Email == identifier {
			cp := *user
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username || user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Storage) UpdateUserProfile(ctx context.Context, id int64, username, email, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	for _, other := range s.users {
		if other.ID == id {
			continue
		}
		if other.Username == username || other.Email == email {
			return model.ErrUserExists
		}
	}
	user.Username = username
	user.Email = email
	user.Avatar = avatar
	return nil
}

func (s *Storage) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	username, email := user.Username, user.Email
	if upd.Username != nil {
		username = *upd.Username
	}
	if upd.Email != nil {
		email = *upd.Email
	}
	for _, other := range s.users {
		if other.ID == id {
			continue
		}
		if other.Username == username || other.Email == email {
			return model.ErrUserExists
		}
	}
	user.Username = username
	user.Email = email
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	return nil
}

func (s *Storage) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *Storage) TouchLastLogin(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	now := time.Now().UTC()
	user.LastLogin = &now
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, id)
	for key := range s.progress {
		if key.userID == id {
			delete(s.progress, key)
		}
	}
	return nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGameID++
	game.ID = s.nextGameID
	cp := *game
	s.games[game.ID] = &cp
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id int64) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	cp := *game
	return &cp, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		cp := *game
		games = append(games, &cp)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id int64, upd model.GameUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&game.Title, upd.Title)
	apply(&game.Description, upd.Description)
	apply(&game.Icon, upd.Icon)
	apply(&game.Category, upd.Category)
	apply(&game.Difficulty, upd.Difficulty)
	apply(&game.Path, upd.Path)
	apply(&game.Color, upd.Color)
	apply(&game.Status, upd.Status)
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.games, id)
	for key := range s.progress {
		if key.gameID == id {
			delete(s.progress, key)
		}
	}
	return nil
}

// Progress operations

func (s *Storage) SaveProgress(ctx context.Context, userID, gameID int64, score int, completed bool) (*model.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := progressKey{userID: userID, gameID: gameID}

	existing, ok := s.progress[key]
	if !ok {
		s.nextProgID++
		p := &model.Progress{
			ID:         s.nextProgID,
			UserID:     userID,
			GameID:     gameID,
			Score:      score,
			MaxScore:   score,
			Attempts:   1,
			Completed:  completed,
			LastPlayed: now,
			CreatedAt:  now,
		}
		s.progress[key] = p
		cp := *p
		return &cp, nil
	}

	existing.Score = score
	if score > existing.MaxScore {
		existing.MaxScore = score
	}
	existing.Attempts++
	existing.Completed = existing.Completed || completed
	existing.LastPlayed = now
	cp := *existing
	return &cp, nil
}

func (s *Storage) GetProgress(ctx context.Context, userID, gameID int64) (*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[progressKey{userID: userID, gameID: gameID}]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListProgressForUser(ctx context.Context, userID int64) ([]*model.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []*model.ProgressEntry
	for key, p := range s.progress {
		if key.userID != userID {
			continue
		}
		game, ok := s.games[key.gameID]
		if !ok {
			continue
		}
		entries = append(entries, &model.ProgressEntry{
			Progress: *p,
			Title:    game.Title,
			Icon:     game.Icon,
			Category: game.Category,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastPlayed.After(entries[j].LastPlayed)
	})
	return entries, nil
}

// Aggregates

func (s *Storage) UserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &model.UserStats{}
	var scoreSum int
	for key, p := range s.progress {
		if key.userID != userID {
			continue
		}
		stats.GamesPlayed++
		stats.TotalAttempts += p.Attempts
		if p.Completed {
			stats.GamesCompleted++
		}
		scoreSum += p.MaxScore
		if p.MaxScore > stats.BestScore {
			stats.BestScore = p.MaxScore
		}
		if stats.LastPlayed == nil || p.LastPlayed.After(*stats.LastPlayed) {
			lp := p.LastPlayed
			stats.LastPlayed = &lp
		}
	}
	if stats.GamesPlayed > 0 {
		stats.AvgScore = float64(scoreSum) / float64(stats.GamesPlayed)
	}
	return stats, nil
}

func (s *Storage) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &model.PlatformStats{
		Users: len(s.users),
		Games: len(s.games),
		Plays: len(s.progress),
	}
	for _, p := range s.progress {
		if p.Completed {
			stats.Completed++
		}
	}
	return stats, nil
}
