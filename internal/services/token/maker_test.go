package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub-go/internal/dependencies/mocks"
	"github.com/mcoot/gamehub-go/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleUser,
	}
}

func TestGenerateAndVerify(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	maker := New(Config{Secret: "test-secret"}, clk)

	tok, err := maker.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := maker.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	maker := New(Config{Secret: "test-secret"}, clk)

	_, err := maker.Verify("not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	maker := New(Config{Secret: "test-secret"}, clk)
	other := New(Config{Secret: "other-secret"}, clk)

	tok, err := maker.Generate(testUser())
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	maker := New(Config{Secret: "test-secret"}, clk)

	tok, err := maker.Generate(testUser())
	require.NoError(t, err)

	clk.Advance(7*24*time.Hour + time.Minute)

	_, err = maker.Verify(tok)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestVerifyAcceptsTokenBeforeExpiry(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	maker := New(Config{Secret: "test-secret"}, clk)

	tok, err := maker.Generate(testUser())
	require.NoError(t, err)

	clk.Advance(6 * 24 * time.Hour)

	_, err = maker.Verify(tok)
	assert.NoError(t, err)
}
