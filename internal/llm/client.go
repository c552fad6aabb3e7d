package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finsight/pkg/config"

	"go.uber.org/zap"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. The base
// URL is configurable so OpenRouter or a local proxy can stand in for OpenAI.
type Client struct {
	cfg        *config.LLMConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// Request is a single chat-completion call. System may be empty; MaxTokens
// bounds the reply length provider-side.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

func NewClient(cfg *config.LLMConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Model reports the configured model identifier, recorded on stored replies.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Complete sends one chat-completion request and returns the reply text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	var messages []map[string]string
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.User})

	body := map[string]interface{}{
		"model":       c.cfg.Model,
		"messages":    messages,
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)

	c.logger.Info("Completion received",
		zap.String("model", c.cfg.Model),
		zap.Int("reply_length", len(content)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	return content, nil
}
