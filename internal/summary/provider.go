// Package summary implements the pluggable Summary Provider from
// spec.md §4.9: a single-method capability interface, with a mandatory
// deterministic template fallback and an OpenAI-backed adapter.
package summary

import (
	"context"

	"github.com/taskforge/scheduler/internal/models"
)

// Provider produces a short natural-language paragraph from a day's
// metrics and task summaries. Implementations must be idempotent and,
// when backed by an external call, respect ctx's deadline.
type Provider interface {
	Summarize(ctx context.Context, metrics models.ProductivityMetrics, tasks []models.TaskSummary) (string, error)
}
