package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yamakawa/task-board-api/internal/auth"
	"github.com/yamakawa/task-board-api/internal/constants"
	"github.com/yamakawa/task-board-api/internal/dto"
	apierrors "github.com/yamakawa/task-board-api/internal/errors"
	"github.com/yamakawa/task-board-api/internal/models"
	"github.com/yamakawa/task-board-api/internal/services"
	"github.com/yamakawa/task-board-api/internal/utils"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	jwtSecret   string
	jwtExpiry   time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name            string      `json:"name" binding:"required"`
		Email           string      `json:"email" binding:"required,email"`
		Role            models.Role `json:"role"`
		Password        string      `json:"password" binding:"required,min=6"`
		ConfirmPassword string      `json:"confirmPassword" binding:"required,eqfield=Password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Login authenticates a user and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, h.jwtExpiry, user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// ForgotPassword overwrites the password for the account registered
// under the given email.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	type ForgotPasswordRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.ResetPassword(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteAccount soft-deletes the account registered under the given
// email. Admin only.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	type DeleteAccountRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.DeleteAccount(req.Email)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// GetAllUsers returns a paginated list of users. Admin only.
func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var roleFilter *models.Role
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.Role(roleStr)
		roleFilter = &role
	}

	users, total, err := h.authService.ListUsers(services.ListUsersInput{
		Role:     roleFilter,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, utils.NewPaginationResponse(params, total)))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Invalid role")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.BadRequest(c, "Invalid credentials")
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.BadRequest(c, "Account not found")
	case errors.Is(err, services.ErrUserAlreadyDeleted):
		apierrors.Conflict(c, "User already deleted")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.BadRequest(c, "User not found")
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
