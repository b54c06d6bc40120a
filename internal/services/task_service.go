package services

import (
	"errors"
	"fmt"

	"github.com/yamakawa/task-board-api/internal/models"
	"github.com/yamakawa/task-board-api/internal/policy"
	"github.com/yamakawa/task-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assigned user not found")
	ErrInvalidAssignee  = errors.New("cannot assign task to admin or moderator")
	ErrAccessDenied     = errors.New("access denied")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Caller identifies the authenticated actor for a request. Identity is
// passed explicitly into every operation; nothing is read from ambient
// state.
type Caller struct {
	ID   uint64
	Role models.Role
}

// TaskService handles task business logic. Authorization decisions are
// delegated to the policy package; this service only persists what the
// policy allows.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  uint64
}

// CreateTask creates a task assigned to a plain User. The creator and
// assignee references are fixed here and never change afterwards.
func (s *TaskService) CreateTask(caller Caller, input CreateTaskInput) (*models.Task, error) {
	assignee, err := s.userRepo.FindByID(input.AssignedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	if assignee.IsDeleted {
		return nil, ErrAssigneeNotFound
	}

	if decision := policy.CanCreateTask(assignee.Role); !decision.Allowed {
		return nil, ErrInvalidAssignee
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusAssigned,
		CreatedBy:   caller.ID,
		AssignedTo:  input.AssignedTo,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Page     int
	PageSize int
}

// ListTasks returns the tasks visible to the caller: all of them for
// an Admin, created-by-caller for a Moderator, assigned-to-caller for
// a User.
func (s *TaskService) ListTasks(caller Caller, input ListTasksInput) ([]models.Task, int64, error) {
	scope := policy.ReadScope(caller.Role, caller.ID)

	filter := repository.TaskFilter{
		CreatedBy:  scope.CreatedBy,
		AssignedTo: scope.AssignedTo,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateStatus transitions a task to the requested status if the
// policy permits the caller to do so.
func (s *TaskService) UpdateStatus(caller Caller, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	decision := policy.CanTransition(caller.Role, caller.ID, *task, status)
	if !decision.Allowed {
		if decision.Reason == policy.ReasonInvalidStatus {
			return nil, ErrInvalidStatus
		}
		return nil, ErrAccessDenied
	}

	if err := s.taskRepo.UpdateStatus(task, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task if the policy permits the caller to do so.
func (s *TaskService) DeleteTask(caller Caller, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if decision := policy.CanDelete(caller.Role, caller.ID, *task); !decision.Allowed {
		return ErrAccessDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
