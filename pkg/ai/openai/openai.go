package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	NAME = "openai"

	defaultTimeout = time.Second * 60
)

// Driver speaks to any OpenAI-compatible completion endpoint.
type Driver struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func New(token, proxy, model string, timeout time.Duration) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Driver{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (s *Driver) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Debug("Complete", slog.String("driver", NAME), slog.String("model", s.model))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai.CreateChatCompletion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai.CreateChatCompletion: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}
