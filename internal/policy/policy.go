// Package policy is the authorization core. Every function is a pure
// decision over the caller's identity, the target task and the
// requested action; persistence happens in the services after a
// decision is made.
package policy

import "github.com/yamakawa/task-board-api/internal/models"

// Reason explains why a Decision denied an action.
type Reason string

const (
	ReasonInvalidAssignee Reason = "INVALID_ASSIGNEE"
	ReasonAccessDenied    Reason = "ACCESS_DENIED"
	ReasonInvalidStatus   Reason = "INVALID_STATUS"
)

// Decision is the tagged outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanCreateTask decides whether a task may be assigned to a user with
// the given role. Tasks are only ever assigned to plain Users.
func CanCreateTask(assigneeRole models.Role) Decision {
	switch assigneeRole {
	case models.RoleUser:
		return Allow()
	case models.RoleAdmin, models.RoleModerator:
		return Deny(ReasonInvalidAssignee)
	default:
		return Deny(ReasonInvalidAssignee)
	}
}

// TaskScope narrows a task listing to what the caller may see. A nil
// field means no constraint on that column.
type TaskScope struct {
	CreatedBy  *uint64
	AssignedTo *uint64
}

// ReadScope returns the visibility filter for the caller: Admins see
// everything, Moderators see tasks they created, Users see tasks
// assigned to them.
func ReadScope(callerRole models.Role, callerID uint64) TaskScope {
	switch callerRole {
	case models.RoleAdmin:
		return TaskScope{}
	case models.RoleModerator:
		return TaskScope{CreatedBy: &callerID}
	case models.RoleUser:
		return TaskScope{AssignedTo: &callerID}
	default:
		// Unknown roles see nothing they do not own.
		return TaskScope{CreatedBy: &callerID, AssignedTo: &callerID}
	}
}

// CanReadTask is the single-task form of ReadScope.
func CanReadTask(callerRole models.Role, callerID uint64, task models.Task) bool {
	switch callerRole {
	case models.RoleAdmin:
		return true
	case models.RoleModerator:
		return task.CreatedBy == callerID
	case models.RoleUser:
		return task.AssignedTo == callerID
	default:
		return false
	}
}

// CanTransition decides whether the caller may set the task to the
// target status. The target must be a known status; beyond that the
// matrix gates the target value by role and the task by ownership. No
// ordering is imposed between statuses.
func CanTransition(callerRole models.Role, callerID uint64, task models.Task, target models.TaskStatus) Decision {
	if !target.Valid() {
		return Deny(ReasonInvalidStatus)
	}

	switch callerRole {
	case models.RoleAdmin:
		return Allow()
	case models.RoleModerator:
		if task.CreatedBy != callerID {
			return Deny(ReasonAccessDenied)
		}
		if !moderatorMaySet(target) {
			return Deny(ReasonAccessDenied)
		}
		return Allow()
	case models.RoleUser:
		if task.AssignedTo != callerID {
			return Deny(ReasonAccessDenied)
		}
		if !userMaySet(target) {
			return Deny(ReasonAccessDenied)
		}
		return Allow()
	default:
		return Deny(ReasonAccessDenied)
	}
}

// CanDelete decides whether the caller may delete the task. Admins may
// delete anything, Moderators only tasks they created, Users nothing.
func CanDelete(callerRole models.Role, callerID uint64, task models.Task) Decision {
	switch callerRole {
	case models.RoleAdmin:
		return Allow()
	case models.RoleModerator:
		if task.CreatedBy == callerID {
			return Allow()
		}
		return Deny(ReasonAccessDenied)
	case models.RoleUser:
		return Deny(ReasonAccessDenied)
	default:
		return Deny(ReasonAccessDenied)
	}
}
