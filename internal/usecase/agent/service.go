package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	"github.com/kovan-labs/chatdock/internal/logger"
	"github.com/kovan-labs/chatdock/internal/metrics"
)

// Service runs delegated tasks as a bounded step loop. maxSteps caps the
// total number of completed steps; maxFailures caps step failures across the
// whole run, each retried after retryDelay. No other time-boxing is applied
// here; callers bound the run via ctx.
type Service struct {
	stepper     Stepper
	maxSteps    int
	maxFailures int
	retryDelay  time.Duration
}

// New creates an agent task service.
func New(stepper Stepper, maxSteps, maxFailures int, retryDelay time.Duration) *Service {
	return &Service{
		stepper:     stepper,
		maxSteps:    maxSteps,
		maxFailures: maxFailures,
		retryDelay:  retryDelay,
	}
}

// Run executes the task step by step until a step reports done, the step
// budget runs out, or the failure budget is exhausted. Results of completed
// steps are returned in execution order.
func (s *Service) Run(ctx context.Context, task string) ([]domain.AgentStepResult, error) {
	if strings.TrimSpace(task) == "" {
		return nil, domain.ErrEmptyTask
	}

	var results []domain.AgentStepResult
	failures := 0

	for step := 1; step <= s.maxSteps; {
		res, err := s.stepper.Step(ctx, task, results)
		if err != nil {
			failures++
			if failures > s.maxFailures {
				metrics.AgentRunsTotal.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("agent task failed after %d step failures: %w", failures, err)
			}
			metrics.AgentStepRetriesTotal.Inc()
			logger.FromContext(ctx).Warn("agent step failed, retrying",
				zap.Int("step", step),
				zap.Int("failures", failures),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				metrics.AgentRunsTotal.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("agent run canceled: %w", ctx.Err())
			case <-time.After(s.retryDelay):
			}
			continue
		}

		metrics.AgentStepsTotal.Inc()
		res.Step = step
		results = append(results, res)
		if res.Done {
			break
		}
		step++
	}

	metrics.AgentRunsTotal.WithLabelValues("success").Inc()
	return results, nil
}
