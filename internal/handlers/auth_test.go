package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yamakawa/task-board-api/internal/database"
	"github.com/yamakawa/task-board-api/internal/dto"
	"github.com/yamakawa/task-board-api/internal/models"
	"github.com/yamakawa/task-board-api/internal/repository"
	"github.com/yamakawa/task-board-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, testJWTSecret, time.Hour)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/forgotPassword", handler.ForgotPassword)
	r.DELETE("/api/auth/deleteAccount", handler.DeleteAccount)
	r.GET("/api/auth/getAllUsers", handler.GetAllUsers)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) request(t *testing.T, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":            "New User",
		"email":           "new@example.com",
		"password":        "supersecret",
		"confirmPassword": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new@example.com", response.Email)
	require.Equal(t, models.RoleUser, response.Role, "role defaults to User")
	require.False(t, response.IsDeleted)
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":            "New User",
		"email":           "new@example.com",
		"password":        "supersecret",
		"confirmPassword": "different",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":            "New User",
		"email":           "new@example.com",
		"role":            "Superuser",
		"password":        "supersecret",
		"confirmPassword": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid role")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"name":            "First",
		"email":           "taken@example.com",
		"password":        "supersecret",
		"confirmPassword": "supersecret",
	}

	w := env.request(t, http.MethodPost, "/api/auth/register", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "User already exists")
}

func TestAuthHandler_Register_AfterSoftDelete(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Old Account",
		Email:    "recycled@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.authService.DeleteAccount("recycled@example.com")
	require.NoError(t, err)

	// A soft-deleted account does not block re-registration.
	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":            "Fresh Account",
		"email":           "recycled@example.com",
		"password":        "supersecret",
		"confirmPassword": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.User.Email)
	require.NotEmpty(t, response.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAuthHandler_Login_DeletedAccount(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Removed",
		Email:    "removed@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.authService.DeleteAccount("removed@example.com")
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "removed@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Account not found")
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Forgetful",
		Email:    "forgetful@example.com",
		Password: "oldpassword",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/api/auth/forgotPassword", map[string]string{
		"email":    "forgetful@example.com",
		"password": "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The old credential no longer works; the new one does.
	_, err = env.authService.Login(services.LoginInput{
		Email:    "forgetful@example.com",
		Password: "oldpassword",
	})
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = env.authService.Login(services.LoginInput{
		Email:    "forgetful@example.com",
		Password: "newpassword",
	})
	require.NoError(t, err)
}

func TestAuthHandler_ForgotPassword_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/forgotPassword", map[string]string{
		"email":    "nobody@example.com",
		"password": "newpassword",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "User not found")
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Doomed",
		Email:    "doomed@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.request(t, http.MethodDelete, "/api/auth/deleteAccount", map[string]string{
		"email": "doomed@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "doomed@example.com").First(&user).Error)
	require.True(t, user.IsDeleted)

	// Deleting again reports the account as already deleted.
	w = env.request(t, http.MethodDelete, "/api/auth/deleteAccount", map[string]string{
		"email": "doomed@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "User already deleted")
}

func TestAuthHandler_GetAllUsers_Pagination(t *testing.T) {
	env := setupAuthTestEnv(t)

	for i := 0; i < 15; i++ {
		user := &models.User{
			Name:         "User",
			Email:        "user" + string(rune('a'+i)) + "@example.com",
			Role:         models.RoleUser,
			PasswordHash: "hashed",
		}
		require.NoError(t, env.db.Create(user).Error)
	}

	w := env.request(t, http.MethodGet, "/api/auth/getAllUsers?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 10)
	require.Equal(t, int64(15), response.Pagination.Total)
	require.Equal(t, 2, response.Pagination.TotalPages)
	require.True(t, response.Pagination.HasNextPage)
	require.False(t, response.Pagination.HasPrevPage)

	w = env.request(t, http.MethodGet, "/api/auth/getAllUsers?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 5)
	require.False(t, response.Pagination.HasNextPage)
	require.True(t, response.Pagination.HasPrevPage)
}

func TestAuthHandler_GetAllUsers_RoleFilter(t *testing.T) {
	env := setupAuthTestEnv(t)

	seed := []models.User{
		{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: "hashed"},
		{Name: "Mod", Email: "mod@example.com", Role: models.RoleModerator, PasswordHash: "hashed"},
		{Name: "Plain", Email: "plain@example.com", Role: models.RoleUser, PasswordHash: "hashed"},
	}
	for i := range seed {
		require.NoError(t, env.db.Create(&seed[i]).Error)
	}

	w := env.request(t, http.MethodGet, "/api/auth/getAllUsers?role=Moderator", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Users, 1)
	require.Equal(t, models.RoleModerator, response.Users[0].Role)
	require.Equal(t, int64(1), response.Pagination.Total)
}
