// Package store declares the document-store interfaces the scheduling
// core consumes but does not implement (spec.md §1: the Task Store is an
// external collaborator). Concrete adapters live under
// internal/store/gormstore; the core only ever imports this package.
package store

import (
	"context"
	"time"

	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
)

// TaskFilter holds the field-level filters the core needs when querying
// tasks, mirroring the shape of the teacher project's
// repository.TaskFilter but generalized to this domain's fields.
type TaskFilter struct {
	UserID id.ID

	Statuses []models.Status

	// DeadlineFrom/DeadlineTo bound tasks by deadline, inclusive-exclusive.
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time

	// ScheduledFrom/ScheduledTo bound tasks whose scheduled interval
	// intersects the given range.
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time

	// CreatedFrom/CreatedTo bound tasks by creation time.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// IncludeBreaks, when false (the default), excludes status=break rows.
	IncludeBreaks bool
}

// TaskStore is the document-store interface for tasks: create/read/
// update/delete by id, plus a filterable query, exactly as spec.md §2.1
// describes the external Task Store collaborator.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id id.ID) (*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id id.ID) error

	// Dependencies returns the ids a task depends on.
	Dependencies(ctx context.Context, taskID id.ID) ([]id.ID, error)
	// SetDependencies replaces the full dependency set for a task.
	SetDependencies(ctx context.Context, taskID id.ID, dependsOn []id.ID) error
}

// UserStore is the document-store interface for user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id id.ID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ReportFilter holds the filters the Report Generator needs.
type ReportFilter struct {
	UserID id.ID
	Date   *time.Time
}

// ReportStore is the document-store interface for reports.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id id.ID) (*models.Report, error)
	FindByUserAndDate(ctx context.Context, userID id.ID, date time.Time) (*models.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	Delete(ctx context.Context, id id.ID) error
}
