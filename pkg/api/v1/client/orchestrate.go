package client

import (
	"context"
	"fmt"

	"github.com/Jdubz/resume-pipeline/internal/services"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
)

// StepCallback is invoked after every executed step with the updated
// execution state, including any document URLs published so far.
type StepCallback func(exec services.StepExecution)

// RunGeneration starts a generation request and drives it to a terminal
// state, one step per call. The callback, when non-nil, observes each
// intermediate state. A failed request is not an error here; the caller
// inspects the returned execution status.
func RunGeneration(ctx context.Context, c Client, params handlers.GenerationStartParams, onStep StepCallback) (services.StepExecution, error) {
	start, err := c.StartGeneration(ctx, params)
	if err != nil {
		return services.StepExecution{}, fmt.Errorf("failed to start generation: %w", err)
	}

	var exec services.StepExecution
	for {
		select {
		case <-ctx.Done():
			return exec, ctx.Err()
		default:
		}

		exec, err = c.ExecuteStep(ctx, start.RequestID)
		if err != nil {
			return exec, fmt.Errorf("failed to execute step for %s: %w", start.RequestID, err)
		}

		if onStep != nil {
			onStep(exec)
		}

		if exec.Status.IsTerminal() {
			return exec, nil
		}
	}
}
