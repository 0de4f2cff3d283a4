package agent

import (
	"context"

	"github.com/kovan-labs/chatdock/internal/domain"
)

// Stepper executes one step of a delegated task. prior carries the results
// of earlier steps so the executor can continue where it left off.
//
// Every outcome, including a scalar one, must be returned as a populated
// AgentStepResult; the contract deliberately leaves no room for
// reflection-serialized step payloads.
type Stepper interface {
	Step(ctx context.Context, task string, prior []domain.AgentStepResult) (domain.AgentStepResult, error)
}
