// Package report implements the Report Generator from spec.md §4.8: it
// derives TaskSummary rows and a ProductivityMetrics record from a
// day's planned vs. actual intervals, and obtains a narrative summary
// from a pluggable Summary Provider.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/metrics"
	"github.com/taskforge/scheduler/internal/models"
	"github.com/taskforge/scheduler/internal/store"
	"github.com/taskforge/scheduler/internal/summary"
	"go.uber.org/zap"
)

// Generator is the Report Generator.
type Generator struct {
	tasks    store.TaskStore
	reports  store.ReportStore
	provider summary.Provider
	logger   *zap.Logger
}

// New constructs a Report Generator. provider is typically a
// *summary.Fallback so that provider failures degrade deterministically.
func New(tasks store.TaskStore, reports store.ReportStore, provider summary.Provider, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{tasks: tasks, reports: reports, provider: provider, logger: logger}
}

// GenerateDailyReport implements spec.md §4.8.
func (g *Generator) GenerateDailyReport(ctx context.Context, userID id.ID, date time.Time) (*models.Report, error) {
	const op = "report.GenerateDailyReport"

	if existing, err := g.reports.FindByUserAndDate(ctx, userID, date); err == nil && existing != nil {
		return existing, nil
	}

	candidates, err := g.selectCandidates(ctx, userID, date)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}
	if len(candidates) == 0 {
		return nil, errs.NoTasksForDate(op)
	}

	summaries := make([]models.TaskSummary, 0, len(candidates))
	for _, t := range candidates {
		summaries = append(summaries, toTaskSummary(t))
	}

	productive := metricsSubset(candidates, summaries)
	m := computeMetrics(productive)

	text, err := g.provider.Summarize(ctx, m, summaries)
	if err != nil {
		// Provider is expected to be a summary.Fallback which never
		// errors; this branch guards a bare provider misconfiguration.
		g.logger.Warn("summary provider returned error with no fallback wired", zap.Error(err))
		text, _ = summary.TemplateProvider{}.Summarize(ctx, m, summaries)
	}

	rpt := &models.Report{
		ID:        id.New(),
		UserID:    userID,
		Date:      normalizeDate(date),
		Tasks:     summaries,
		Metrics:   m,
		AISummary: &text,
	}

	if err := g.reports.Create(ctx, rpt); err != nil {
		return nil, errs.Wrap(op, err)
	}

	metrics.ReportsGenerated.WithLabelValues(providerLabel(g.provider)).Inc()
	g.logger.Info("generated daily report",
		zap.String("user_id", userID.String()),
		zap.Time("date", rpt.Date),
		zap.Int("tasks", len(summaries)))

	return rpt, nil
}

// selectCandidates fetches the union of tasks whose scheduled interval
// intersects date, whose deadline falls on date, or that were created
// on date (spec.md §4.8 step 2).
func (g *Generator) selectCandidates(ctx context.Context, userID id.ID, date time.Time) ([]models.Task, error) {
	dayStart, dayEnd := dayBounds(date)

	byID := make(map[id.ID]models.Task)

	scheduled, err := g.tasks.List(ctx, store.TaskFilter{
		UserID: userID, ScheduledFrom: &dayStart, ScheduledTo: &dayEnd, IncludeBreaks: true,
	})
	if err != nil {
		return nil, err
	}
	for _, t := range scheduled {
		byID[t.ID] = t
	}

	deadlined, err := g.tasks.List(ctx, store.TaskFilter{
		UserID: userID, DeadlineFrom: &dayStart, DeadlineTo: &dayEnd,
	})
	if err != nil {
		return nil, err
	}
	for _, t := range deadlined {
		byID[t.ID] = t
	}

	created, err := g.tasks.List(ctx, store.TaskFilter{
		UserID: userID, CreatedFrom: &dayStart, CreatedTo: &dayEnd,
	})
	if err != nil {
		return nil, err
	}
	for _, t := range created {
		byID[t.ID] = t
	}

	out := make([]models.Task, 0, len(byID))
	for _, t := range byID {
		out = append(out, t)
	}

	// byID is a map, so range order is nondeterministic; spec.md §3
	// calls Report.Tasks an ordered sequence, so regenerating a deleted
	// report from identical data must come back with the same row
	// order. Sort by scheduled start (unscheduled tasks last), then id.
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].ScheduledStartTime, out[j].ScheduledStartTime
		if si == nil && sj == nil {
			return out[i].ID.Less(out[j].ID)
		}
		if si == nil || sj == nil {
			return sj == nil
		}
		if !si.Equal(*sj) {
			return si.Before(*sj)
		}
		return out[i].ID.Less(out[j].ID)
	})

	return out, nil
}

func toTaskSummary(t models.Task) models.TaskSummary {
	ts := models.TaskSummary{
		TaskID:            t.ID,
		Name:              t.Name,
		ScheduledDuration: t.DurationMinutes,
		ScheduledStart:    t.ScheduledStartTime,
		ScheduledEnd:      t.ScheduledEndTime,
		ActualStart:       t.ActualStartTime,
		ActualEnd:         t.ActualEndTime,
		Status:            t.Status,
		Priority:          t.Priority,
	}

	if t.ActualStartTime != nil && t.ActualEndTime != nil {
		mins := int(t.ActualEndTime.Sub(*t.ActualStartTime).Minutes())
		ts.ActualDuration = &mins
	}

	if t.ScheduledStartTime != nil && t.ActualStartTime != nil {
		delay := int(t.ActualStartTime.Sub(*t.ScheduledStartTime).Minutes())
		ts.Delay = &delay
	}

	return ts
}

// metricsSubset returns the non-break task summaries, aligned by index
// with their source tasks having been filtered identically.
func metricsSubset(tasks []models.Task, summaries []models.TaskSummary) []models.TaskSummary {
	out := make([]models.TaskSummary, 0, len(summaries))
	for i, t := range tasks {
		if t.IsBreak() {
			continue
		}
		out = append(out, summaries[i])
	}
	return out
}

func computeMetrics(n []models.TaskSummary) models.ProductivityMetrics {
	var m models.ProductivityMetrics
	if len(n) == 0 {
		return m
	}

	completed := 0
	onTime := 0
	var delaySum float64
	delayCount := 0
	var actualSum int

	for _, t := range n {
		m.TotalScheduledTime += t.ScheduledDuration
		if t.ActualDuration != nil {
			actualSum += *t.ActualDuration
		}
		if t.Status == models.StatusCompleted {
			completed++
			if t.Delay == nil || *t.Delay <= 0 {
				onTime++
			}
			if t.Delay != nil {
				delaySum += float64(*t.Delay)
				delayCount++
			}
		}
	}

	m.CompletionRate = 100 * float64(completed) / float64(len(n))
	m.OnTimeRate = 100 * float64(onTime) / float64(len(n))
	if delayCount > 0 {
		m.AvgDelay = delaySum / float64(delayCount)
	}
	m.TotalActualTime = actualSum

	if m.TotalActualTime > 0 {
		m.TimeEfficiency = float64(m.TotalScheduledTime) / float64(m.TotalActualTime)
	}

	efficiencyTerm := m.TimeEfficiency
	if efficiencyTerm > 2 {
		efficiencyTerm = 2
	}
	score := m.CompletionRate*0.5 + m.OnTimeRate*0.3 + (efficiencyTerm/2)*100*0.2
	m.ProductivityScore = clamp(score, 0, 100)

	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	y, mo, d := date.Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)
	return start, end
}

func normalizeDate(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, date.Location())
}

func providerLabel(p summary.Provider) string {
	if fb, ok := p.(*summary.Fallback); ok && fb.Primary != nil {
		if _, ok := fb.Primary.(*summary.OpenAIProvider); ok {
			return "openai"
		}
	}
	return "template"
}
