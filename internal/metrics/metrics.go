// Package metrics exposes the Prometheus instrumentation for scheduling
// operations, in the same promauto-vars style the reference corpus's
// task-queue project uses for its own counters/gauges/histograms.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SchedulesGenerated counts completed generate() calls.
	SchedulesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskforge_schedules_generated_total",
		Help: "Total number of successful schedule generations.",
	})

	// TasksPlaced counts tasks the packer successfully placed.
	TasksPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskforge_tasks_placed_total",
		Help: "Total number of tasks placed into a working window.",
	})

	// TasksSkipped counts tasks the packer could not fit.
	TasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskforge_tasks_skipped_total",
		Help: "Total number of tasks skipped because they did not fit the window.",
	})

	// BreaksInserted counts insert_break() calls that created a break.
	BreaksInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskforge_breaks_inserted_total",
		Help: "Total number of break tasks inserted.",
	})

	// ReflowShiftSeconds observes the magnitude of forward shifts caused
	// by break insertion.
	ReflowShiftSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "taskforge_break_reflow_shift_seconds",
		Help:    "Distribution of forward-shift magnitudes applied during break reflow.",
		Buckets: []float64{60, 300, 600, 900, 1800, 3600, 7200},
	})

	// ReportsGenerated counts successful report generations, labeled by
	// the configured primary summary provider ("openai" or "template").
	// A report whose OpenAI call fell back to the template still counts
	// under "openai"; SummaryFallbacks counts those fallbacks.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskforge_reports_generated_total",
		Help: "Total number of productivity reports generated.",
	}, []string{"summary_provider"})

	// SummaryFallbacks counts times the deterministic template summary
	// was used because the pluggable Summary Provider failed or timed out.
	SummaryFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskforge_summary_fallbacks_total",
		Help: "Total number of report generations that fell back to the deterministic template summary.",
	})

	// StatusTransitions counts execution-tracker status transitions,
	// labeled by the resulting status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskforge_task_status_transitions_total",
		Help: "Total number of task status transitions applied by the execution tracker.",
	}, []string{"to"})
)
