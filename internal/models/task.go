// Package models defines the persistent shapes the scheduling core
// operates on: Task, Report, and their derived summaries.
package models

import (
	"time"

	"github.com/taskforge/scheduler/internal/id"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusBreak      Status = "break"
)

// Task is a single unit of work belonging to a user.
type Task struct {
	ID          id.ID  `gorm:"primarykey;type:char(36)" json:"id"`
	UserID      id.ID  `gorm:"type:char(36);not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Priority        int    `gorm:"not null" json:"priority"`
	Status          Status `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Deadline *time.Time `json:"deadline,omitempty"`

	Dependencies []id.ID `gorm:"-" json:"dependencies,omitempty"`

	ScheduledStartTime *time.Time `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *time.Time `json:"scheduled_end_time,omitempty"`

	ActualStartTime *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `json:"actual_end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the gorm table name so the join table below can
// reference it explicitly.
func (Task) TableName() string { return "tasks" }

// TaskDependency is the join-table row recording that Task depends on
// DependsOnID, modeled the way the teacher project models
// task_assignments: a composite-key row with no independent identity.
type TaskDependency struct {
	TaskID      id.ID `gorm:"primarykey;type:char(36)"`
	DependsOnID id.ID `gorm:"primarykey;type:char(36)"`
}

func (TaskDependency) TableName() string { return "task_dependencies" }

// IsScheduled reports whether the task currently has a placed interval.
func (t *Task) IsScheduled() bool {
	return t.ScheduledStartTime != nil && t.ScheduledEndTime != nil
}

// IsBreak reports whether the task is a break block rather than
// user-authored work.
func (t *Task) IsBreak() bool {
	return t.Status == StatusBreak
}

// ClearSchedule wipes the placed interval, used before a fresh packing
// pass (spec.md §4.3: generation is idempotent within the window).
func (t *Task) ClearSchedule() {
	t.ScheduledStartTime = nil
	t.ScheduledEndTime = nil
}

// Duration returns the task's duration as a time.Duration.
func (t *Task) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}
