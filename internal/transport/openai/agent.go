package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	"github.com/kovan-labs/chatdock/internal/metrics"
)

const systemPrompt = `You are a task execution agent. You are given a task ` +
	`and the outcomes of your previous steps. Decide the single next step, ` +
	`perform it, and reply with a short description of what you did and ` +
	`found. When the task is complete, prefix your final reply with "DONE: " ` +
	`followed by the overall result.`

const doneMarker = "DONE:"

// Stepper drives a delegated task one chat completion at a time against an
// OpenAI-compatible API.
type Stepper struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the agent provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewStepper creates an OpenAI-compatible agent stepper.
func NewStepper(cfg *Config) *Stepper {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Stepper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Step implements agent.Stepper: one completion round, with prior step
// outcomes replayed as assistant turns.
func (s *Stepper) Step(
	ctx context.Context, task string, prior []domain.AgentStepResult,
) (domain.AgentStepResult, error) {
	req := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: buildMessages(task, prior),
	}

	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, req)

	metrics.AgentRequestDuration.WithLabelValues(s.model).Observe(time.Since(start).Seconds())

	if err != nil {
		return domain.AgentStepResult{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return domain.AgentStepResult{}, fmt.Errorf("empty completion response: %w", domain.ErrAgentProviderError)
	}

	return parseStepReply(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (s *Stepper) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func buildMessages(task string, prior []domain.AgentStepResult) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(prior)+2)
	msgs = append(msgs,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: task},
	)
	for _, p := range prior {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: p.Content,
		})
	}
	return msgs
}

// parseStepReply maps a completion reply onto the explicit step result
// schema. A "DONE:" prefix marks the final step.
func parseStepReply(content string) domain.AgentStepResult {
	trimmed := strings.TrimSpace(content)
	if rest, ok := strings.CutPrefix(trimmed, doneMarker); ok {
		return domain.AgentStepResult{Content: strings.TrimSpace(rest), Done: true}
	}
	return domain.AgentStepResult{Content: trimmed}
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAgentProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrAgentProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("agent API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("agent API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("agent API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("agent request: %v: %w", err, wrap)
}

func extractDetail(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return payload.Detail
}
