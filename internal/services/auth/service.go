package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamehub-go/internal/dependencies/clock"
	"github.com/mcoot/gamehub-go/internal/model"
	"github.com/mcoot/gamehub-go/internal/services/token"
	"github.com/mcoot/gamehub-go/internal/storage"
)

// Credentials pairs a user with a freshly issued access token
type Credentials struct {
	User  *model.User
	Token string
}

// Service handles accounts, login and user administration
type Service struct {
	storage storage.Storage
	tokens  *token.Maker
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, tokens *token.Maker, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		clock:   clock,
		logger:  logger,
	}
}

// Register creates a new account and logs it in
func (s *Service) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	existing, err := s.storage.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       model.DefaultAvatar,
		Role:         model.RoleUser,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login authenticates by username or email and password
func (s *Service) Login(ctx context.Context, identifier, password string) (*Credentials, error) {
	user, err := s.storage.GetUserByLogin(ctx, identifier)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := s.storage.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	} else {
		now := s.clock.Now()
		user.LastLogin = &now
	}

	return s.issue(user)
}

// VerifyToken validates a token and returns its claims
func (s *Service) VerifyToken(tokenString string) (*token.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// GetUserFromToken validates a token and loads the current user record.
// The stored row wins over the claims, so role and profile changes made
// after the token was issued are reflected.
func (s *Service) GetUserFromToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.storage.GetUser(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidToken
	}
	return user, err
}

// UpdateProfile changes a user's own profile fields and reissues a token
// so the claims match the new identity
func (s *Service) UpdateProfile(ctx context.Context, userID int64, username, email, avatar string) (*Credentials, error) {
	if err := s.storage.UpdateUserProfile(ctx, userID, username, email, avatar); err != nil {
		return nil, err
	}
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ChangePassword verifies the current password before setting a new one
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, updated string) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.storage.UpdateUserPassword(ctx, userID, string(hash))
}

// ListUsers returns every account, for administrators
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.storage.ListUsers(ctx)
}

// GetUser returns a single account by id
func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// UpdateUser applies an administrative update. An admin cannot demote
// their own account.
func (s *Service) UpdateUser(ctx context.Context, actorID, id int64, upd model.UserUpdate) (*model.User, error) {
	if actorID == id && upd.Role != nil && *upd.Role != model.RoleAdmin {
		return nil, model.ErrSelfModification
	}
	if err := s.storage.UpdateUser(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.storage.GetUser(ctx, id)
}

// DeleteUser removes an account. An admin cannot delete their own.
func (s *Service) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return model.ErrSelfModification
	}
	return s.storage.DeleteUser(ctx, id)
}

func (s *Service) issue(user *model.User) (*Credentials, error) {
	tok, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &Credentials{User: user, Token: tok}, nil
}
