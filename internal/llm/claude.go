package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/quillforge/winnow/internal/core/common"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey, model, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.1)
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		Temperature: &temp,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		// A 50-scenario chunk review echoes the whole chunk back.
		MaxTokens: 8192,
	})
	if err != nil {
		return "", classifyClaudeError(err)
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}

// classifyClaudeError maps API failures onto the run's error taxonomy, same
// role as classifyAPIError on the OpenAI side.
func classifyClaudeError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimitErr():
			return fmt.Errorf("%w: %v", common.ErrRateLimited, err)
		case apiErr.IsApiErr(), apiErr.IsOverloadedErr():
			return fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
		}
		return err
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.StatusCode == 429:
			return fmt.Errorf("%w: %v", common.ErrRateLimited, err)
		case reqErr.StatusCode == 0 || reqErr.StatusCode >= 500:
			return fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	// No structured API error at all means the request never completed.
	return fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
}
