// Package packer implements the Timeline Packer from spec.md §4.3: it
// places an already-ordered list of tasks end-to-end into a working
// window, skipping whatever does not fit.
package packer

import (
	"time"

	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
)

// Window is the working window [Start, End] on a given date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Placement is the outcome for one task: either scheduled into an
// interval, or skipped because it did not fit.
type Placement struct {
	TaskID  id.ID
	Placed  bool
	Start   time.Time
	End     time.Time
}

// Pack places tasks, in the order given, into window using the
// cursor-advance algorithm from spec.md §4.3. A task whose dependency
// (also present in tasks) was itself skipped is skipped too, rather
// than packed into the gap the skip left behind: spec.md §4.4 step 3
// admits a task once its dependency is in the same ordered set, but
// admission is not placement, and a dependent packed ahead of an
// unplaced dependency would contradict "placed earlier in this
// generation." It does not mutate the input tasks; callers apply the
// returned placements themselves.
func Pack(window Window, tasks []models.Task) []Placement {
	placements := make([]Placement, 0, len(tasks))
	cursor := window.Start

	inSet := make(map[id.ID]bool, len(tasks))
	for _, t := range tasks {
		inSet[t.ID] = true
	}
	skipped := make(map[id.ID]bool, len(tasks))

	for _, t := range tasks {
		blockedByDependency := false
		for _, dep := range t.Dependencies {
			if inSet[dep] && skipped[dep] {
				blockedByDependency = true
				break
			}
		}

		if !blockedByDependency {
			end := cursor.Add(t.Duration())
			if !end.After(window.End) {
				placements = append(placements, Placement{
					TaskID: t.ID,
					Placed: true,
					Start:  cursor,
					End:    end,
				})
				cursor = end
				continue
			}
		}

		placements = append(placements, Placement{TaskID: t.ID, Placed: false})
		skipped[t.ID] = true
	}

	return placements
}

// Apply writes a placement's interval onto the matching task, or clears
// it if the placement records a skip.
func Apply(task *models.Task, p Placement) {
	if !p.Placed {
		task.ClearSchedule()
		return
	}
	start, end := p.Start, p.End
	task.ScheduledStartTime = &start
	task.ScheduledEndTime = &end
}
