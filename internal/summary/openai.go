package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/taskforge/scheduler/internal/models"
)

// OpenAIProvider produces the report narrative with a chat completion,
// the way the teacher project's AIService drives its own OpenAI call:
// build a prompt, request a completion, parse the result.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider constructs a provider bound to apiKey. If apiKey is
// empty, callers should use TemplateProvider instead; this constructor
// does not itself fall back.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

// Summarize asks the model for a short productivity paragraph. Any
// failure is returned to the caller, who is expected to fall back to
// TemplateProvider per spec.md §4.8 step 5.
func (p *OpenAIProvider) Summarize(ctx context.Context, m models.ProductivityMetrics, tasks []models.TaskSummary) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("summary: OpenAI client not initialized")
	}

	payload, err := json.Marshal(struct {
		Metrics models.ProductivityMetrics `json:"metrics"`
		Tasks   []models.TaskSummary       `json:"tasks"`
	}{m, tasks})
	if err != nil {
		return "", fmt.Errorf("summary: failed to encode report data: %w", err)
	}

	prompt := fmt.Sprintf(`You are a productivity coach. Given the following JSON metrics and
task summaries for one day, write a short (2-4 sentence) encouraging
but honest paragraph summarizing how the day went. Do not restate raw
numbers verbatim; interpret them.

Data:
%s`, string(payload))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("summary: OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summary: no response from OpenAI")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("summary: empty response from OpenAI")
	}
	return text, nil
}
