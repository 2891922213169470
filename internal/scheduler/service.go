// Package scheduler implements the Schedule Service from spec.md §4.4:
// it orchestrates the Dependency Resolver, Ordering Policies, and
// Timeline Packer against a Task Store, and owns break insertion with
// forward-shift reflow.
package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/taskforge/scheduler/internal/dependency"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/lock"
	"github.com/taskforge/scheduler/internal/metrics"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/ordering"
	"github.com/taskforge/scheduler/internal/packer"
	"github.com/taskforge/scheduler/internal/store"
	"go.uber.org/zap"
)

const minBreakDuration = 5

// Clock is the minimal time source the service needs.
type Clock interface {
	Now() time.Time
}

// Service is the Schedule Service.
type Service struct {
	store  store.TaskStore
	clock  Clock
	locks  *lock.Keyed
	logger *zap.Logger
}

// New constructs a Schedule Service.
func New(taskStore store.TaskStore, clock Clock, locks *lock.Keyed, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: taskStore, clock: clock, locks: locks, logger: logger}
}

// GenerateInput carries the parameters for Generate.
type GenerateInput struct {
	UserID      id.ID
	Date        time.Time // any instant on the target date, in the scheduling zone
	WindowStart time.Time
	WindowEnd   time.Time
	Policy      ordering.Policy
}

// Generate implements spec.md §4.4 generate(): clear, select candidates,
// admit, order, pack, persist, and return the placed tasks in scheduled
// order.
func (s *Service) Generate(ctx context.Context, in GenerateInput) ([]models.Task, error) {
	const op = "scheduler.Generate"

	if !in.Policy.Valid() {
		if in.Policy == "" {
			in.Policy = ordering.Default
		} else {
			return nil, errs.Validation(op, "algorithm", "unknown ordering policy")
		}
	}

	s.locks.Lock(in.UserID)
	defer s.locks.Unlock(in.UserID)

	if _, err := s.clearScheduledForDate(ctx, op, in.UserID, in.Date); err != nil {
		return nil, err
	}

	candidates, err := s.selectCandidates(ctx, in.UserID, in.Date)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}

	admitted, err := s.admissible(ctx, op, candidates)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ordering.Sort(in.Policy, now, admitted)

	rank := make(map[id.ID]int, len(admitted))
	for i, t := range admitted {
		rank[t.ID] = i
	}
	less := func(a, b id.ID) bool { return rank[a] < rank[b] }

	nodes := make([]dependency.Node, len(admitted))
	admittedSet := make(map[id.ID]bool, len(admitted))
	for _, t := range admitted {
		admittedSet[t.ID] = true
	}
	byID := make(map[id.ID]models.Task, len(admitted))
	for i, t := range admitted {
		var deps []id.ID
		for _, d := range t.Dependencies {
			if admittedSet[d] {
				deps = append(deps, d)
			}
		}
		nodes[i] = dependency.Node{ID: t.ID, Dependencies: deps}
		byID[t.ID] = t
	}

	orderedIDs, err := dependency.Resolve(op, nodes, less)
	if err != nil {
		return nil, err
	}

	orderedTasks := make([]models.Task, len(orderedIDs))
	for i, tid := range orderedIDs {
		orderedTasks[i] = byID[tid]
	}

	window := packer.Window{Start: in.WindowStart, End: in.WindowEnd}
	placements := packer.Pack(window, orderedTasks)

	placedTasks := make([]models.Task, 0, len(placements))
	for i, p := range placements {
		t := orderedTasks[i]
		packer.Apply(&t, p)
		if err := s.store.Update(ctx, &t); err != nil {
			return nil, errs.Wrap(op, err)
		}
		if p.Placed {
			placedTasks = append(placedTasks, t)
			metrics.TasksPlaced.Inc()
		} else {
			metrics.TasksSkipped.Inc()
		}
	}

	metrics.SchedulesGenerated.Inc()
	s.logger.Info("generated schedule",
		zap.String("user_id", in.UserID.String()),
		zap.String("policy", string(in.Policy)),
		zap.Int("candidates", len(candidates)),
		zap.Int("admitted", len(admitted)),
		zap.Int("placed", len(placedTasks)))

	return placedTasks, nil
}

// selectCandidates fetches status in {pending, in_progress} tasks for
// the user whose deadline falls on date or is absent (spec.md §4.4 step 2).
func (s *Service) selectCandidates(ctx context.Context, userID id.ID, date time.Time) ([]models.Task, error) {
	tasks, err := s.store.List(ctx, store.TaskFilter{
		UserID:   userID,
		Statuses: []models.Status{models.StatusPending, models.StatusInProgress},
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deadline == nil || sameDate(*t.Deadline, date) {
			out = append(out, t)
		}
	}
	return out, nil
}

// admissible filters candidates to those whose dependencies are either
// in the candidate set (resolved by topological order later) or already
// completed (spec.md §4.4 step 3 / §4.1).
func (s *Service) admissible(ctx context.Context, op string, candidates []models.Task) ([]models.Task, error) {
	candidateSet := make(map[id.ID]bool, len(candidates))
	for i := range candidates {
		deps, err := s.store.Dependencies(ctx, candidates[i].ID)
		if err != nil {
			return nil, errs.Wrap(op, err)
		}
		candidates[i].Dependencies = deps
		candidateSet[candidates[i].ID] = true
	}

	admitted := make([]models.Task, 0, len(candidates))
	for _, t := range candidates {
		ok := true
		for _, dep := range t.Dependencies {
			if candidateSet[dep] {
				continue
			}
			depTask, err := s.store.FindByID(ctx, dep)
			if err != nil || depTask.Status != models.StatusCompleted {
				ok = false
				break
			}
		}
		if ok {
			admitted = append(admitted, t)
		}
	}
	return admitted, nil
}

// clearScheduledForDate clears scheduled_* for every user task whose
// scheduled interval intersects date, persisting each clear.
func (s *Service) clearScheduledForDate(ctx context.Context, op string, userID id.ID, date time.Time) (int, error) {
	dayStart, dayEnd := dayBounds(date)
	tasks, err := s.store.List(ctx, store.TaskFilter{
		UserID:        userID,
		ScheduledFrom: &dayStart,
		ScheduledTo:   &dayEnd,
		IncludeBreaks: true,
	})
	if err != nil {
		return 0, errs.Wrap(op, err)
	}

	cleared := 0
	for i := range tasks {
		if !tasks[i].IsScheduled() {
			continue
		}
		tasks[i].ClearSchedule()
		if err := s.store.Update(ctx, &tasks[i]); err != nil {
			return cleared, errs.Wrap(op, err)
		}
		cleared++
	}
	return cleared, nil
}

// Reset implements spec.md §4.4 reset().
func (s *Service) Reset(ctx context.Context, userID id.ID, date time.Time) (int, error) {
	const op = "scheduler.Reset"
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	return s.clearScheduledForDate(ctx, op, userID, date)
}

// Daily implements spec.md §4.4 daily(): all tasks whose scheduled
// interval intersects date, ordered by scheduled_start_time.
func (s *Service) Daily(ctx context.Context, userID id.ID, date time.Time) ([]models.Task, error) {
	const op = "scheduler.Daily"
	dayStart, dayEnd := dayBounds(date)

	tasks, err := s.store.List(ctx, store.TaskFilter{
		UserID:        userID,
		ScheduledFrom: &dayStart,
		ScheduledTo:   &dayEnd,
		IncludeBreaks: true,
	})
	if err != nil {
		return nil, errs.Wrap(op, err)
	}

	sort.Slice(tasks, func(i, j int) bool {
		si, sj := tasks[i].ScheduledStartTime, tasks[j].ScheduledStartTime
		if si == nil || sj == nil {
			return si != nil
		}
		return si.Before(*sj)
	})

	return tasks, nil
}

func sameDate(t, date time.Time) bool {
	ty, tm, td := t.Date()
	dy, dm, dd := date.Date()
	return ty == dy && tm == dm && td == dd
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)
	return start, end
}
