package llmobs

import (
	"context"
	"time"

	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/logger"
	"ib-assistant/internal/trace"
)

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer) interfaces.Completer {
	return &observableCompleter{
		completer: completer,
	}
}

func (oc *observableCompleter) Complete(ctx context.Context, systemPrompt, userUtterance string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	logger.Debug(ctx, "Requesting completion",
		"prompt_len", len(systemPrompt),
		"utterance_len", len(userUtterance),
	)

	start := time.Now()
	response, err := oc.completer.Complete(ctx, systemPrompt, userUtterance)
	if err != nil {
		logger.ErrorWithErr(ctx, "Completion failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.Info(ctx, "Completion received",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_len", len(response),
	)
	return response, nil
}
