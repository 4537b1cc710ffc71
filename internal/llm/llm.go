package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"autoblog/internal/metrics"
)

// Client wraps the chat-completion API behind the single call shape the
// pipeline needs: a system instruction, a user prompt, a temperature.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

func newClientWithConfig(cfg openai.ClientConfig, model string) *Client {
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Complete sends one chat completion and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	metrics.Global.IncrementLLMRequests()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		metrics.Global.IncrementLLMErrors()
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.Global.IncrementLLMErrors()
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
