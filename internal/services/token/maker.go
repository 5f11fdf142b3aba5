package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/gamehub-go/internal/dependencies/clock"
	"github.com/mcoot/gamehub-go/internal/model"
)

// Claims is the payload carried by an access token
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds configuration for the token maker
type Config struct {
	Secret string
	TTL    time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		TTL: 7 * 24 * time.Hour,
	}
}

// Maker issues and verifies signed access tokens
type Maker struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// New creates a new token Maker
func New(cfg Config, clock clock.Clock) *Maker {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Maker{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		clock:  clock,
	}
}

// Generate issues a signed token for the given user
func (m *Maker) Generate(user *model.User) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims
func (m *Maker) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return nil, model.ErrInvalidToken
	}
	return claims, nil
}
