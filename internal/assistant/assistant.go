package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

// Client generates text with the Gemini API, retrying transient failures
// with exponential backoff.
//
// Client is safe for concurrent use.
type Client struct {
	client *genai.Client
	model  string
	retry  RetryConfig
	logger *slog.Logger
}

// New creates a Client for the given model.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
		retry:  DefaultRetryConfig(),
		logger: logger,
	}, nil
}

// Generate sends a single prompt with a system instruction and returns the
// model's text response.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var lastErr error
	delay := c.retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		resp, err := c.client.Models.GenerateContent(ctx, c.model,
			genai.Text(prompt), config)
		if err == nil {
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("empty model response")
			}
			c.logger.Debug("generation succeeded",
				"attempts", attempt+1,
				"elapsed", time.Since(start))
			return text, nil
		}

		lastErr = err

		if !retryableError(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}
		if attempt == c.retry.MaxRetries {
			break
		}

		c.logger.Debug("retrying after transient error",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context canceled during retry: %w", ctx.Err())
		case <-time.After(delay):
			delay = min(delay*2, c.retry.MaxInterval)
		}
	}

	return "", fmt.Errorf("generate content after %d retries (elapsed: %v): %w",
		c.retry.MaxRetries, time.Since(start), lastErr)
}
