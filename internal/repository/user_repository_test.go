package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/yamakawa/task-board-api/internal/models"
	"github.com/yamakawa/task-board-api/internal/repository"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "is_deleted", "created_at", "updated_at"}).
		AddRow(user.ID, user.Name, user.Email, user.Role, user.PasswordHash, user.IsDeleted, time.Now(), time.Now())
}

func TestUserRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	user := &models.User{
		Name:         "Test User",
		Email:        "test@example.com",
		Role:         models.RoleUser,
		PasswordHash: "hashed_password",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := userRepo.Create(user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindActiveByEmail_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	stored := models.User{
		ID:           1,
		Name:         "Test User",
		Email:        "test@example.com",
		Role:         models.RoleUser,
		PasswordHash: "hashed_password",
	}

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+) AND is_deleted = (.+)").
		WithArgs("test@example.com", false, 1).
		WillReturnRows(userRows(stored))

	user, err := userRepo.FindActiveByEmail("test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, stored.Email, user.Email)
	assert.False(t, user.IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindActiveByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	// A soft-deleted record under the email does not satisfy the
	// active lookup: the query filters on is_deleted and comes back
	// empty.
	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+) AND is_deleted = (.+)").
		WithArgs("deleted@example.com", false, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "is_deleted", "created_at", "updated_at"}))

	user, err := userRepo.FindActiveByEmail("deleted@example.com")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_IncludesDeleted(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	stored := models.User{
		ID:           2,
		Name:         "Deleted User",
		Email:        "deleted@example.com",
		Role:         models.RoleUser,
		PasswordHash: "hashed_password",
		IsDeleted:    true,
	}

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+)").
		WithArgs("deleted@example.com", 1).
		WillReturnRows(userRows(stored))

	user, err := userRepo.FindByEmail("deleted@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.True(t, user.IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
