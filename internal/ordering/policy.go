// Package ordering implements the pluggable pre-topological ordering
// policies from spec.md §4.2. A Policy is a value (a tagged constant),
// not a class hierarchy, per the spec's design notes.
package ordering

import (
	"time"

	"github.com/taskforge/scheduler/internal/models"
)

// Policy names one of the five required ordering strategies.
type Policy string

const (
	RoundRobin Policy = "round_robin"
	FCFS       Policy = "fcfs"
	SJF        Policy = "sjf"
	LJF        Policy = "ljf"
	Priority   Policy = "priority"
)

// Valid reports whether p is a recognized policy.
func (p Policy) Valid() bool {
	switch p {
	case RoundRobin, FCFS, SJF, LJF, Priority:
		return true
	}
	return false
}

// Default is the policy used when the caller does not specify one.
const Default = RoundRobin

// CompositeScore computes the round_robin composite score S from
// spec.md §4.2: S = priority*10 + deadline_pressure.
func CompositeScore(task models.Task, now time.Time) float64 {
	return float64(task.Priority)*10 + DeadlinePressure(task.Deadline, now)
}

// DeadlinePressure returns the deadline_pressure term: a value in
// [0, 10] that increases as a future deadline approaches within the
// next 24 hours, and 0 if there is no deadline or it has passed.
func DeadlinePressure(deadline *time.Time, now time.Time) float64 {
	if deadline == nil || !deadline.After(now) {
		return 0
	}
	hoursUntil := deadline.Sub(now).Hours()
	pressure := 10 - hoursUntil/2.4
	if pressure < 0 {
		return 0
	}
	if pressure > 10 {
		return 10
	}
	return pressure
}

// Comparator returns a function that reports whether task a should be
// ordered before task b under policy, given the reference instant now
// used to evaluate deadline pressure.
func Comparator(policy Policy, now time.Time) func(a, b models.Task) bool {
	switch policy {
	case FCFS:
		return func(a, b models.Task) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID.Less(b.ID)
		}
	case SJF:
		return func(a, b models.Task) bool {
			if a.DurationMinutes != b.DurationMinutes {
				return a.DurationMinutes < b.DurationMinutes
			}
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID.Less(b.ID)
		}
	case LJF:
		return func(a, b models.Task) bool {
			if a.DurationMinutes != b.DurationMinutes {
				return a.DurationMinutes > b.DurationMinutes
			}
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID.Less(b.ID)
		}
	case Priority:
		return func(a, b models.Task) bool {
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			if !earlierDeadline(a.Deadline, b.Deadline) && !earlierDeadline(b.Deadline, a.Deadline) {
				if !a.CreatedAt.Equal(b.CreatedAt) {
					return a.CreatedAt.Before(b.CreatedAt)
				}
				return a.ID.Less(b.ID)
			}
			return earlierDeadline(a.Deadline, b.Deadline)
		}
	case RoundRobin, "":
		fallthrough
	default:
		return func(a, b models.Task) bool {
			sa, sb := CompositeScore(a, now), CompositeScore(b, now)
			if sa != sb {
				return sa > sb
			}
			if !earlierDeadline(a.Deadline, b.Deadline) && !earlierDeadline(b.Deadline, a.Deadline) {
				if !a.CreatedAt.Equal(b.CreatedAt) {
					return a.CreatedAt.Before(b.CreatedAt)
				}
				return a.ID.Less(b.ID)
			}
			return earlierDeadline(a.Deadline, b.Deadline)
		}
	}
}

// earlierDeadline reports whether a's deadline is strictly earlier than
// b's, treating a nil deadline as infinitely distant.
func earlierDeadline(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// Sort orders tasks in place according to policy.
func Sort(policy Policy, now time.Time, tasks []models.Task) {
	less := Comparator(policy, now)
	insertionSortStable(tasks, less)
}

// insertionSortStable is a stable sort; used instead of sort.Slice so
// that equal-ranked tasks keep their input order as an additional,
// deterministic tie-break beneath the comparator's own tie-breaks.
func insertionSortStable(tasks []models.Task, less func(a, b models.Task) bool) {
	for i := 1; i < len(tasks); i++ {
		j := i
		for j > 0 && less(tasks[j], tasks[j-1]) {
			tasks[j], tasks[j-1] = tasks[j-1], tasks[j]
			j--
		}
	}
}
