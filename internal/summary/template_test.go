package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskforge/scheduler/internal/models"
)

func TestTemplateProvider_IsDeterministic(t *testing.T) {
	m := models.ProductivityMetrics{CompletionRate: 100, OnTimeRate: 50, AvgDelay: 5, TimeEfficiency: 1.1, ProductivityScore: 85}
	tasks := []models.TaskSummary{{Status: models.StatusCompleted}}

	first, err := TemplateProvider{}.Summarize(context.Background(), m, tasks)
	assert.NoError(t, err)
	second, err := TemplateProvider{}.Summarize(context.Background(), m, tasks)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateProvider_EncouragementTiers(t *testing.T) {
	tasks := []models.TaskSummary{{Status: models.StatusCompleted}}

	high, _ := TemplateProvider{}.Summarize(context.Background(), models.ProductivityMetrics{ProductivityScore: 90}, tasks)
	assert.Contains(t, high, "Excellent day")

	mid, _ := TemplateProvider{}.Summarize(context.Background(), models.ProductivityMetrics{ProductivityScore: 65}, tasks)
	assert.Contains(t, mid, "Solid progress")

	low, _ := TemplateProvider{}.Summarize(context.Background(), models.ProductivityMetrics{ProductivityScore: 20}, tasks)
	assert.Contains(t, low, "rough day")
}

func TestTemplateProvider_CountsCompletedTasks(t *testing.T) {
	tasks := []models.TaskSummary{
		{Status: models.StatusCompleted},
		{Status: models.StatusCancelled},
	}
	text, err := TemplateProvider{}.Summarize(context.Background(), models.ProductivityMetrics{}, tasks)
	assert.NoError(t, err)
	assert.Contains(t, text, "1 of 2 scheduled tasks")
}
