// Package session runs the interactive read-eval loop: read an utterance,
// ask the model for a plan, dispatch it, and echo tool results.
package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ib-assistant/internal/actionlog"
	"ib-assistant/internal/dispatch"
	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/logger"
	"ib-assistant/internal/plan"
	"ib-assistant/internal/prompt"
	"ib-assistant/internal/tools"
	"ib-assistant/internal/trace"
)

// Params wires the session loop's collaborators.
type Params struct {
	In        io.Reader
	Out       io.Writer
	Completer interfaces.Completer
	Registry  *tools.Registry
}

// Run reads utterances until EOF or "exit". Every turn is independent:
// a failed completion or a malformed plan is reported and the loop
// continues. Returns when input is exhausted, exit is typed, or the
// context is cancelled.
func Run(ctx context.Context, p Params) error {
	sess := &dispatch.Session{}
	scanner := bufio.NewScanner(p.In)

	fmt.Fprintln(p.Out, "Financial Assistant: How can I help you today? (type 'exit' to quit)")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprint(p.Out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}

		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}
		if strings.EqualFold(utterance, "exit") {
			fmt.Fprintln(p.Out, "Goodbye!")
			return nil
		}

		runTurn(ctx, p, sess, utterance)
	}
}

func runTurn(ctx context.Context, p Params, sess *dispatch.Session, utterance string) {
	ctx, span := trace.StartSpan(ctx, "session.turn")
	defer span.End()

	logger.Turn(ctx, utterance, sess.Connected)

	systemPrompt := prompt.Build(sess.Connected, p.Registry.Schemas())
	response, err := p.Completer.Complete(ctx, systemPrompt, utterance)
	if err != nil {
		fmt.Fprintf(p.Out, "Error processing response: %v\n", err)
		logger.ErrorWithErr(ctx, "Completion failed", err)
		return
	}

	parsed, err := plan.Parse(response)
	if err != nil {
		fmt.Fprintf(p.Out, "Error processing response: %v\n", err)
		logger.ErrorWithErr(ctx, "Plan parse failed", err, "response_len", len(response))
		return
	}

	if len(parsed.Actions) == 0 {
		fmt.Fprintln(p.Out, "Assistant: No actions returned by the LLM.")
		return
	}

	results := dispatch.Run(ctx, parsed, p.Registry, sess)
	for _, step := range results {
		fmt.Fprintf(p.Out, "Tool Result (%s): %s\n", step.Action.Name, renderOutcome(step.Outcome))
		logger.ToolResult(ctx, step.Action.Name, step.Outcome.Result)

		if err := actionlog.Append(actionlog.Entry{
			Utterance: utterance,
			Tool:      step.Action.Name,
			Result:    step.Outcome.Result,
			Params:    step.Action.Parameters,
			Message:   step.Outcome.Message,
		}); err != nil {
			logger.Warn(ctx, "Action log append failed", "error", err)
		}
	}
}

func renderOutcome(o any) string {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Sprintf("%v", o)
	}
	return string(b)
}
