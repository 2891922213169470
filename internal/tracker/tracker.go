// Package tracker implements the Execution Tracker from spec.md §4.5: it
// applies patches to actual_start_time, actual_end_time, and status,
// enforcing the field-level invariants and the status transition DAG.
package tracker

import (
	"context"
	"time"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/metrics"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
	"go.uber.org/zap"
)

// Patch is the tagged variant of fields an execution update may set, per
// the design note in spec.md §9: a struct of optional fields, with
// invariant checks run per field, rather than an open-ended map.
type Patch struct {
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	Status          *models.Status

	// FromScheduler authorizes the one transition an external caller may
	// not make directly: any -> break, reserved for the Schedule Service.
	FromScheduler bool
}

// allowedTransitions is the status DAG from spec.md §4.5.
var allowedTransitions = map[models.Status]map[models.Status]bool{
	models.StatusPending: {
		models.StatusInProgress: true,
		models.StatusCancelled:  true,
	},
	models.StatusInProgress: {
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	},
}

// Tracker applies patches to tasks via a Task Store.
type Tracker struct {
	store  store.TaskStore
	logger *zap.Logger
}

// New constructs an Execution Tracker.
func New(taskStore store.TaskStore, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: taskStore, logger: logger}
}

// Apply validates and applies patch to the task identified by taskID,
// persisting the result.
func (t *Tracker) Apply(ctx context.Context, taskID id.ID, patch Patch) (*models.Task, error) {
	const op = "tracker.Apply"

	task, err := t.store.FindByID(ctx, taskID)
	if err != nil {
		return nil, errs.NotFound(op, "task not found")
	}

	if patch.Status != nil {
		if err := validateTransition(op, task.Status, *patch.Status, patch.FromScheduler); err != nil {
			return nil, err
		}
	}

	newStart, newEnd := task.ActualStartTime, task.ActualEndTime
	if patch.ActualStartTime != nil {
		newStart = patch.ActualStartTime
	}
	if patch.ActualEndTime != nil {
		newEnd = patch.ActualEndTime
	}
	if newStart != nil && newEnd != nil && newEnd.Before(*newStart) {
		return nil, errs.Validation(op, "actual_end_time", "actual end must not precede actual start")
	}

	task.ActualStartTime = newStart
	task.ActualEndTime = newEnd
	if patch.Status != nil {
		task.Status = *patch.Status
		metrics.StatusTransitions.WithLabelValues(string(*patch.Status)).Inc()
	}

	if err := t.store.Update(ctx, task); err != nil {
		return nil, errs.Wrap(op, err)
	}

	t.logger.Info("applied execution patch",
		zap.String("task_id", taskID.String()),
		zap.String("status", string(task.Status)))

	return task, nil
}

func validateTransition(op string, from, to models.Status, fromScheduler bool) error {
	if from == to {
		return nil
	}
	if to == models.StatusBreak {
		if fromScheduler {
			return nil
		}
		return errs.IllegalTransition(op, string(from), string(to))
	}
	if allowedTransitions[from][to] {
		return nil
	}
	return errs.IllegalTransition(op, string(from), string(to))
}
