package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store/storetest"
	"github.com/taskforge/scheduler/internal/summary"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 5, hour, min, 0, 0, time.UTC)
}

func newGenerator() (*Generator, *storetest.TaskStore, *storetest.ReportStore) {
	ts := storetest.NewTaskStore()
	rs := storetest.NewReportStore()
	gen := New(ts, rs, summary.NewFallback(nil, nil), nil)
	return gen, ts, rs
}

// TestGenerateDailyReport_S5_Metrics mirrors spec.md scenario S5's
// worked example for productivity metrics.
func TestGenerateDailyReport_S5_Metrics(t *testing.T) {
	gen, ts, _ := newGenerator()
	ctx := context.Background()
	userID := id.New()

	a := models.Task{
		ID:                 id.New(),
		UserID:             userID,
		Name:               "A",
		DurationMinutes:    60,
		Status:             models.StatusCompleted,
		ScheduledStartTime: ptrTime(at(9, 0)),
		ScheduledEndTime:   ptrTime(at(10, 0)),
		ActualStartTime:    ptrTime(at(9, 15)),
		ActualEndTime:      ptrTime(at(10, 20)),
		CreatedAt:          at(0, 0),
	}
	b := models.Task{
		ID:                 id.New(),
		UserID:             userID,
		Name:               "B",
		DurationMinutes:    30,
		Status:             models.StatusCompleted,
		ScheduledStartTime: ptrTime(at(10, 0)),
		ScheduledEndTime:   ptrTime(at(10, 30)),
		ActualStartTime:    ptrTime(at(10, 30)),
		ActualEndTime:      ptrTime(at(10, 55)),
		CreatedAt:          at(0, 0),
	}
	require.NoError(t, ts.Create(ctx, &a))
	require.NoError(t, ts.Create(ctx, &b))

	rpt, err := gen.GenerateDailyReport(ctx, userID, at(0, 0))
	require.NoError(t, err)

	assert.InDelta(t, 100, rpt.Metrics.CompletionRate, 0.001)
	assert.InDelta(t, 0, rpt.Metrics.OnTimeRate, 0.001)
	assert.InDelta(t, 22.5, rpt.Metrics.AvgDelay, 0.001)
	assert.Equal(t, 90, rpt.Metrics.TotalScheduledTime)
	assert.Equal(t, 90, rpt.Metrics.TotalActualTime)
	assert.InDelta(t, 1.0, rpt.Metrics.TimeEfficiency, 0.001)
	assert.InDelta(t, 60, rpt.Metrics.ProductivityScore, 0.001)
	assert.NotEmpty(t, rpt.AISummary)
}

func TestGenerateDailyReport_NoCandidates_ReturnsNoTasksForDate(t *testing.T) {
	gen, _, _ := newGenerator()
	_, err := gen.GenerateDailyReport(context.Background(), id.New(), at(0, 0))
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNoTasksForDate, kind)
}

// TestGenerateDailyReport_IsImmutableOnceStored is property P8: calling
// generate twice for the same (user, date) returns the same stored
// report rather than recomputing.
func TestGenerateDailyReport_IsImmutableOnceStored(t *testing.T) {
	gen, ts, _ := newGenerator()
	ctx := context.Background()
	userID := id.New()

	task := models.Task{
		ID:                 id.New(),
		UserID:             userID,
		Name:               "A",
		DurationMinutes:    30,
		Status:             models.StatusCompleted,
		ScheduledStartTime: ptrTime(at(9, 0)),
		ScheduledEndTime:   ptrTime(at(9, 30)),
		ActualStartTime:    ptrTime(at(9, 0)),
		ActualEndTime:      ptrTime(at(9, 30)),
		CreatedAt:          at(0, 0),
	}
	require.NoError(t, ts.Create(ctx, &task))

	first, err := gen.GenerateDailyReport(ctx, userID, at(0, 0))
	require.NoError(t, err)

	// Mutate the underlying task after the report was generated; a
	// regenerated report must not reflect this change.
	task.Name = "changed"
	require.NoError(t, ts.Update(ctx, &task))

	second, err := gen.GenerateDailyReport(ctx, userID, at(0, 0))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Tasks, 1)
	assert.Equal(t, "A", second.Tasks[0].Name)
}

func TestGenerateDailyReport_ExcludesBreaksFromMetrics(t *testing.T) {
	gen, ts, _ := newGenerator()
	ctx := context.Background()
	userID := id.New()

	work := models.Task{
		ID:                 id.New(),
		UserID:             userID,
		Name:               "work",
		DurationMinutes:    30,
		Status:             models.StatusCompleted,
		ScheduledStartTime: ptrTime(at(9, 0)),
		ScheduledEndTime:   ptrTime(at(9, 30)),
		ActualStartTime:    ptrTime(at(9, 0)),
		ActualEndTime:      ptrTime(at(9, 30)),
		CreatedAt:          at(0, 0),
	}
	brk := models.Task{
		ID:                 id.New(),
		UserID:             userID,
		Name:               "Break",
		DurationMinutes:    15,
		Status:             models.StatusBreak,
		ScheduledStartTime: ptrTime(at(9, 30)),
		ScheduledEndTime:   ptrTime(at(9, 45)),
		CreatedAt:          at(0, 0),
	}
	require.NoError(t, ts.Create(ctx, &work))
	require.NoError(t, ts.Create(ctx, &brk))

	rpt, err := gen.GenerateDailyReport(ctx, userID, at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 30, rpt.Metrics.TotalScheduledTime)
	assert.InDelta(t, 100, rpt.Metrics.CompletionRate, 0.001)
}

// TestGenerateDailyReport_TasksAreOrderedByScheduledStart guards spec.md
// §3's "ordered sequence of TaskSummary": selectCandidates unions three
// separate store queries into a map, so without an explicit sort the row
// order would depend on map iteration and vary from run to run.
func TestGenerateDailyReport_TasksAreOrderedByScheduledStart(t *testing.T) {
	gen, ts, _ := newGenerator()
	ctx := context.Background()
	userID := id.New()

	late := models.Task{
		ID: id.New(), UserID: userID, Name: "late", DurationMinutes: 15,
		Status: models.StatusPending, CreatedAt: at(0, 0),
		ScheduledStartTime: ptrTime(at(11, 0)), ScheduledEndTime: ptrTime(at(11, 15)),
	}
	early := models.Task{
		ID: id.New(), UserID: userID, Name: "early", DurationMinutes: 15,
		Status: models.StatusPending, CreatedAt: at(0, 0),
		ScheduledStartTime: ptrTime(at(9, 0)), ScheduledEndTime: ptrTime(at(9, 15)),
	}
	middle := models.Task{
		ID: id.New(), UserID: userID, Name: "middle", DurationMinutes: 15,
		Status: models.StatusPending, CreatedAt: at(0, 0),
		ScheduledStartTime: ptrTime(at(10, 0)), ScheduledEndTime: ptrTime(at(10, 15)),
	}
	unscheduled := models.Task{
		ID: id.New(), UserID: userID, Name: "unscheduled", DurationMinutes: 15,
		Status: models.StatusPending, CreatedAt: at(9, 0),
	}
	require.NoError(t, ts.Create(ctx, &late))
	require.NoError(t, ts.Create(ctx, &early))
	require.NoError(t, ts.Create(ctx, &middle))
	require.NoError(t, ts.Create(ctx, &unscheduled))

	rpt, err := gen.GenerateDailyReport(ctx, userID, at(0, 0))
	require.NoError(t, err)

	require.Len(t, rpt.Tasks, 4)
	assert.Equal(t, "early", rpt.Tasks[0].Name)
	assert.Equal(t, "middle", rpt.Tasks[1].Name)
	assert.Equal(t, "late", rpt.Tasks[2].Name)
	assert.Equal(t, "unscheduled", rpt.Tasks[3].Name)
}

func ptrTime(t time.Time) *time.Time { return &t }
