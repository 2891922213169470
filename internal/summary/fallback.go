package summary

import (
	"context"

	"github.com/taskforge/scheduler/internal/metrics"
	"github.com/taskforge/scheduler/internal/models"
	"go.uber.org/zap"
)

// Fallback wraps a primary Provider so that any error degrades to
// TemplateProvider, per spec.md's rule that the core never blocks a
// report on provider failure. Primary may be nil, in which case
// Fallback always uses the template.
type Fallback struct {
	Primary Provider
	logger  *zap.Logger
}

// NewFallback builds a Fallback around primary, logging degraded paths
// through logger.
func NewFallback(primary Provider, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{Primary: primary, logger: logger}
}

// Summarize tries Primary first, if set, and falls back to
// TemplateProvider on any error.
func (f *Fallback) Summarize(ctx context.Context, m models.ProductivityMetrics, tasks []models.TaskSummary) (string, error) {
	if f.Primary != nil {
		text, err := f.Primary.Summarize(ctx, m, tasks)
		if err == nil {
			return text, nil
		}
		f.logger.Warn("summary provider failed, using deterministic fallback", zap.Error(err))
		metrics.SummaryFallbacks.Inc()
	}
	return TemplateProvider{}.Summarize(ctx, m, tasks)
}
