package models

import "time"

type TaskStatus string

const (
	TaskStatusAssigned   TaskStatus = "Assigned"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusAccepted   TaskStatus = "Accepted"
	TaskStatusRejected   TaskStatus = "Rejected"
)

// Valid reports whether the status is one of the five known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusAccepted, TaskStatusRejected:
		return true
	default:
		return false
	}
}

// Task is a unit of assignable work. CreatedBy and AssignedTo are set
// once at creation; only Status changes afterwards.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'Assigned'" json:"status"`
	CreatedBy   uint64     `gorm:"not null" json:"created_by"`
	AssignedTo  uint64     `gorm:"not null" json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Creator  User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignee User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
