// Package openai streams chat completions through the official OpenAI SDK
// and accumulates the fragments into the single response string the plan
// parser consumes. Each fragment is echoed to the operator console as it
// arrives so the response is visible while it streams.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/trace"
)

// ErrEmptyResponse reports a stream that produced no usable text.
// Fatal to the turn, not to the session.
var ErrEmptyResponse = errors.New("empty response from streaming LLM")

type Params struct {
	APIKey      string
	BaseURL     string // optional proxy/compatible endpoint
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type Client struct {
	params Params
	client openai.Client
	echo   io.Writer
}

var _ interfaces.Completer = (*Client)(nil)

type Option func(*Client)

// WithEcho redirects the streamed fragment echo (default os.Stdout).
func WithEcho(w io.Writer) Option {
	return func(c *Client) { c.echo = w }
}

func New(p Params, opts ...Option) (*Client, error) {
	if p.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY missing")
	}
	if p.Model == "" {
		return nil, errors.New("model missing")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(p.APIKey)}
	if p.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(p.BaseURL))
	}
	if p.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(p.Timeout))
	}

	c := &Client{
		params: p,
		client: openai.NewClient(reqOpts...),
		echo:   os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete performs one streaming round-trip. Fragments are concatenated
// in arrival order; the context bounds the whole stream, so cancelling it
// aborts an in-flight response.
func (c *Client) Complete(ctx context.Context, systemPrompt, userUtterance string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userUtterance),
		},
		Temperature: openai.Float(c.params.Temperature),
	})
	defer stream.Close()

	var b strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		for _, choice := range chunk.Choices {
			fragment := choice.Delta.Content
			if fragment == "" {
				continue
			}
			b.WriteString(fragment)
			fmt.Fprint(c.echo, fragment)
		}
	}
	fmt.Fprintln(c.echo)

	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("completion stream: %w", err)
	}

	full := strings.TrimSpace(b.String())
	if full == "" {
		return "", ErrEmptyResponse
	}
	return full, nil
}
