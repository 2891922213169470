package httpapi

import (
	"time"

	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
)

const dateLayout = "2006-01-02"

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	SchedulingZone string `json:"scheduling_zone"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{ID: u.ID.String(), Username: u.Username, SchedulingZone: u.SchedulingZone}
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Priority        int        `json:"priority"`
	Status          string     `json:"status"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Dependencies    []string   `json:"dependencies,omitempty"`

	ScheduledStartTime *time.Time `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *time.Time `json:"scheduled_end_time,omitempty"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTaskDTO(t models.Task) TaskDTO {
	deps := make([]string, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		deps = append(deps, d.String())
	}
	return TaskDTO{
		ID:                 t.ID.String(),
		Name:               t.Name,
		Description:        t.Description,
		DurationMinutes:    t.DurationMinutes,
		Priority:           t.Priority,
		Status:             string(t.Status),
		Deadline:           t.Deadline,
		Dependencies:       deps,
		ScheduledStartTime: t.ScheduledStartTime,
		ScheduledEndTime:   t.ScheduledEndTime,
		ActualStartTime:    t.ActualStartTime,
		ActualEndTime:      t.ActualEndTime,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out
}

// CreateTaskRequest is the body for POST /tasks.
type CreateTaskRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes" binding:"required"`
	Priority        int        `json:"priority"`
	Deadline        *time.Time `json:"deadline"`
	Dependencies    []string   `json:"dependencies"`
}

// UpdateTaskRequest is the body for PUT /tasks/{id}. Pointer/nil-slice
// fields distinguish "not sent" from "cleared".
type UpdateTaskRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	DurationMinutes *int       `json:"duration_minutes"`
	Priority        *int       `json:"priority"`
	Deadline        *time.Time `json:"deadline"`
	ClearDeadline   bool       `json:"clear_deadline"`
	Dependencies    []string   `json:"dependencies"`
}

// ExecutionPatchRequest is the body for the execution-tracker endpoint.
type ExecutionPatchRequest struct {
	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`
	Status          *string    `json:"status"`
}

// GenerateRequest is the body for POST /scheduler/generate.
type GenerateRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Algorithm string `json:"algorithm"`
}

// InsertBreakRequest is the body for POST /scheduler/breaks.
type InsertBreakRequest struct {
	AfterTaskID     string `json:"after_task_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}

// ReportDTO represents a report in API responses.
type ReportDTO struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Date      string                      `json:"date"`
	CreatedAt time.Time                   `json:"created_at"`
	Tasks     []models.TaskSummary        `json:"tasks"`
	Metrics   models.ProductivityMetrics  `json:"metrics"`
	AISummary string                      `json:"ai_summary,omitempty"`
}

func toReportDTO(r models.Report) ReportDTO {
	summary := ""
	if r.AISummary != nil {
		summary = *r.AISummary
	}
	return ReportDTO{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Date:      r.Date.Format(dateLayout),
		CreatedAt: r.CreatedAt,
		Tasks:     r.Tasks,
		Metrics:   r.Metrics,
		AISummary: summary,
	}
}

func parseIDs(raw []string) ([]id.ID, error) {
	out := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		parsed, err := id.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}
