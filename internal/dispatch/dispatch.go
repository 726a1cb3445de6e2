// Package dispatch executes parsed action plans against the tool registry.
package dispatch

import (
	"context"
	"fmt"

	"ib-assistant/internal/logger"
	"ib-assistant/internal/tools"
	"ib-assistant/internal/trace"
	"ib-assistant/internal/types"
)

// Session is the per-session state threaded through every dispatch. The
// connected flag mirrors the broker session and feeds the next turn's
// prompt; only successful connect/disconnect actions may flip it.
type Session struct {
	Connected bool
}

// Run executes the plan strictly in order, one action fully completing
// before the next begins. Failures are per-step: an unknown tool or a
// capability error produces a failed outcome and the plan continues.
func Run(ctx context.Context, p types.Plan, reg *tools.Registry, sess *Session) []types.StepResult {
	results := make([]types.StepResult, 0, len(p.Actions))
	for _, action := range p.Actions {
		outcome := runOne(ctx, action, reg)
		applyConnectionState(action.Name, outcome, sess)
		results = append(results, types.StepResult{Action: action, Outcome: outcome})
	}
	return results
}

func runOne(ctx context.Context, action types.Action, reg *tools.Registry) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "dispatch."+action.Name)
	defer span.End()

	capability, ok := reg.Get(action.Name)
	if !ok {
		return types.Failed(fmt.Sprintf("Unknown tool: %s", action.Name))
	}

	logger.Info(ctx, fmt.Sprintf("Activate tool: %s, with arguments: %v", action.Name, action.Parameters))

	outcome, err := capability.Execute(ctx, action.Parameters)
	if err != nil {
		return types.Failed(fmt.Sprintf("Error executing %s: %v", action.Name, err))
	}
	return outcome
}

func applyConnectionState(name string, outcome types.Outcome, sess *Session) {
	if !outcome.OK() {
		return
	}
	switch name {
	case "connect":
		sess.Connected = true
	case "disconnect":
		sess.Connected = false
	}
}
