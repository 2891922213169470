// Package storetest provides an in-memory store.TaskStore and
// store.ReportStore for exercising internal/scheduler, internal/tracker,
// internal/report, and internal/httpapi without a database, mirroring the teacher
// project's habit of testing services against small hand-rolled fakes
// rather than mocking generated interfaces.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
)

// TaskStore is an in-memory implementation of store.TaskStore.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[id.ID]models.Task
	deps  map[id.ID][]id.ID
}

// NewTaskStore constructs an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[id.ID]models.Task),
		deps:  make(map[id.ID][]id.ID),
	}
}

func (s *TaskStore) Create(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID.IsNil() {
		task.ID = id.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	s.tasks[task.ID] = *task
	if len(task.Dependencies) > 0 {
		s.deps[task.ID] = append([]id.ID(nil), task.Dependencies...)
	}
	return nil
}

func (s *TaskStore) FindByID(_ context.Context, taskID id.ID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, errs.NotFound("storetest.FindByID", "task not found")
	}
	cp := t
	cp.Dependencies = append([]id.ID(nil), s.deps[taskID]...)
	return &cp, nil
}

func (s *TaskStore) List(_ context.Context, filter store.TaskFilter) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Task
	for _, t := range s.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if !filter.IncludeBreaks && t.IsBreak() {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
			continue
		}
		if filter.DeadlineFrom != nil && (t.Deadline == nil || t.Deadline.Before(*filter.DeadlineFrom)) {
			continue
		}
		if filter.DeadlineTo != nil && (t.Deadline == nil || !t.Deadline.Before(*filter.DeadlineTo)) {
			continue
		}
		if filter.ScheduledFrom != nil && filter.ScheduledTo != nil {
			if t.ScheduledStartTime == nil || t.ScheduledEndTime == nil {
				continue
			}
			if !t.ScheduledEndTime.After(*filter.ScheduledFrom) || !t.ScheduledStartTime.Before(*filter.ScheduledTo) {
				continue
			}
		}
		if filter.CreatedFrom != nil && t.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !t.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		cp := t
		cp.Dependencies = append([]id.ID(nil), s.deps[t.ID]...)
		out = append(out, cp)
	}
	return out, nil
}

func (s *TaskStore) Update(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return errs.NotFound("storetest.Update", "task not found")
	}
	task.UpdatedAt = time.Now().UTC()
	s.tasks[task.ID] = *task
	return nil
}

func (s *TaskStore) Delete(_ context.Context, taskID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, taskID)
	delete(s.deps, taskID)
	return nil
}

func (s *TaskStore) Dependencies(_ context.Context, taskID id.ID) ([]id.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]id.ID(nil), s.deps[taskID]...), nil
}

func (s *TaskStore) SetDependencies(_ context.Context, taskID id.ID, dependsOn []id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deps[taskID] = append([]id.ID(nil), dependsOn...)
	return nil
}

func containsStatus(statuses []models.Status, s models.Status) bool {
	for _, x := range statuses {
		if x == s {
			return true
		}
	}
	return false
}

// ReportStore is an in-memory implementation of store.ReportStore.
type ReportStore struct {
	mu      sync.Mutex
	reports map[id.ID]models.Report
}

// NewReportStore constructs an empty in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[id.ID]models.Report)}
}

func (s *ReportStore) Create(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID.IsNil() {
		report.ID = id.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	s.reports[report.ID] = *report
	return nil
}

func (s *ReportStore) FindByID(_ context.Context, reportID id.ID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, errs.NotFound("storetest.FindByID", "report not found")
	}
	return &r, nil
}

func (s *ReportStore) FindByUserAndDate(_ context.Context, userID id.ID, date time.Time) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.UserID == userID && sameDate(r.Date, date) {
			cp := r
			return &cp, nil
		}
	}
	return nil, errs.NotFound("storetest.FindByUserAndDate", "report not found")
}

func (s *ReportStore) List(_ context.Context, filter store.ReportFilter) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Report
	for _, r := range s.reports {
		if r.UserID != filter.UserID {
			continue
		}
		if filter.Date != nil && !sameDate(r.Date, *filter.Date) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *ReportStore) Delete(_ context.Context, reportID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, reportID)
	return nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
