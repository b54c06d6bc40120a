package policy

import "github.com/yamakawa/task-board-api/internal/models"

// Status targets each role may set. Acceptance and rejection belong to
// the creator/admin side; progress and completion belong to the
// assignee side. Admins are unrestricted.

// moderatorMaySet reports whether a Moderator may set the target
// status on a task they created.
func moderatorMaySet(target models.TaskStatus) bool {
	switch target {
	case models.TaskStatusCompleted, models.TaskStatusInProgress:
		return false
	default:
		return true
	}
}

// userMaySet reports whether a User may set the target status on a
// task assigned to them.
func userMaySet(target models.TaskStatus) bool {
	switch target {
	case models.TaskStatusAccepted, models.TaskStatusRejected:
		return false
	default:
		return true
	}
}
