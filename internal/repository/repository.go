package repository

import (
	"github.com/yamakawa/task-board-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email, soft-deleted records included
	FindByEmail(email string) (*models.User, error)

	// FindActiveByEmail finds a non-deleted user by email
	FindActiveByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role     *models.Role
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateStatus sets the task status
	UpdateStatus(task *models.Task, status models.TaskStatus) error

	// Delete removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	CreatedBy  *uint64
	AssignedTo *uint64
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}
