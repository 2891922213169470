package models

import (
	"time"

	"github.com/taskforge/scheduler/internal/id"
)

// TaskSummary is a derived, immutable-once-stored row describing one
// task's planned vs. actual execution for a report.
type TaskSummary struct {
	TaskID id.ID  `json:"task_id"`
	Name   string `json:"name"`

	ScheduledDuration int  `json:"scheduled_duration"`
	ActualDuration    *int `json:"actual_duration,omitempty"`

	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`

	Status   Status `json:"status"`
	Priority int    `json:"priority"`

	// Delay is signed minutes; positive means the task started late.
	// Nil when either the scheduled or actual start is missing.
	Delay *int `json:"delay,omitempty"`
}

// ProductivityMetrics is the derived, immutable-once-stored metrics
// record computed over the non-break subset of a day's tasks. Every
// field is documented in spec.md §4.8.
type ProductivityMetrics struct {
	CompletionRate float64 `json:"completion_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
	AvgDelay       float64 `json:"avg_delay"`

	TotalScheduledTime int `json:"total_scheduled_time"`
	TotalActualTime    int `json:"total_actual_time"`

	TimeEfficiency    float64 `json:"time_efficiency"`
	ProductivityScore float64 `json:"productivity_score"`
}

// Report is the immutable record produced for a (user, date) pair.
// Reports are never mutated after creation; regenerating requires the
// caller to delete the existing report first (spec.md §3 Lifecycle).
type Report struct {
	ID        id.ID     `gorm:"primarykey;type:char(36)" json:"id"`
	UserID    id.ID     `gorm:"type:char(36);not null;index" json:"user_id"`
	Date      time.Time `gorm:"index" json:"date"`
	CreatedAt time.Time `json:"created_at"`

	Tasks   []TaskSummary        `gorm:"serializer:json" json:"tasks"`
	Metrics ProductivityMetrics  `gorm:"embedded;embeddedPrefix:metrics_" json:"metrics"`
	AISummary *string            `json:"ai_summary,omitempty"`
}

func (Report) TableName() string { return "reports" }
