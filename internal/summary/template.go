package summary

import (
	"context"
	"fmt"

	"github.com/taskforge/scheduler/internal/models"
)

// TemplateProvider is the deterministic fallback mandated by spec.md
// §4.8/§4.9: a pure function of its inputs, always available, used
// whenever no external provider is configured or the external provider
// fails or times out.
type TemplateProvider struct{}

// Summarize renders a short paragraph from counts, percentages, and an
// encouragement tier based on the productivity score thresholds 80/60
// named in spec.md §4.8.
func (TemplateProvider) Summarize(_ context.Context, m models.ProductivityMetrics, tasks []models.TaskSummary) (string, error) {
	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}

	tier := encouragementTier(m.ProductivityScore)

	return fmt.Sprintf(
		"You completed %d of %d scheduled tasks (%.0f%% completion, %.0f%% on time). "+
			"Average delay was %.1f minutes and time efficiency was %.2fx. %s",
		completed, len(tasks), m.CompletionRate, m.OnTimeRate, m.AvgDelay, m.TimeEfficiency, tier,
	), nil
}

func encouragementTier(score float64) string {
	switch {
	case score >= 80:
		return "Excellent day — keep this pace up."
	case score >= 60:
		return "Solid progress, with room to tighten up timing."
	default:
		return "A rough day for the plan; consider lighter scheduling tomorrow."
	}
}
