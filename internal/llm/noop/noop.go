package noop

import (
	"context"

	"ib-assistant/internal/logger"
)

// NoopCompleter is the fallback used when no LLM provider is configured.
// It always returns an empty plan, so every turn reports "no actions".
type NoopCompleter struct{}

func NewNoopCompleter() *NoopCompleter {
	return &NoopCompleter{}
}

func (c *NoopCompleter) Complete(ctx context.Context, systemPrompt, userUtterance string) (string, error) {
	logger.Debug(ctx, "Noop completer called - always returns an empty plan")
	return "{'actions': []}", nil
}
