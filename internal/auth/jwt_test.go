package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yamakawa/task-board-api/internal/auth"
	"github.com/yamakawa/task-board-api/internal/models"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{ID: 42, Role: models.RoleModerator}

	token, err := auth.GenerateToken(testSecret, time.Hour, user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, models.RoleModerator, claims.Role)
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}

	token, err := auth.GenerateToken("another-secret", time.Hour, user)
	assert.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}

	token, err := auth.GenerateToken(testSecret, -time.Hour, user)
	assert.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
