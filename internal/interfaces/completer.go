package interfaces

import "context"

// Completer sends one system prompt plus user utterance to a text
// completion service and returns the accumulated response text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userUtterance string) (string, error)
}
