package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"socialmetrics-backend/internal/llm"
)

const quotaCode = "insufficient_quota"

// Client implements llm.Generator using OpenAI Chat Completions.
type Client struct {
	api   *goopenai.Client
	model string
}

// Option customizes a Client.
type Option func(*goopenai.ClientConfig)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(cfg *goopenai.ClientConfig) {
		if strings.TrimSpace(baseURL) != "" {
			cfg.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *goopenai.ClientConfig) {
		if hc != nil {
			cfg.HTTPClient = hc
		}
	}
}

// NewClient constructs a new OpenAI client. model is used when a request leaves Model empty.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

// Generate issues one chat completion bounded by req.MaxOutputTokens.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = c.model
	}
	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxOutputTokens,
	})
	if err != nil {
		return llm.Response{}, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return llm.Response{}, fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	return llm.Response{
		Text:             content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// CheckStatus verifies the credential with a one-token completion.
func (c *Client) CheckStatus(ctx context.Context) error {
	_, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []goopenai.ChatCompletionMessage{{Role: goopenai.ChatMessageRoleUser, Content: "Hi"}},
		MaxTokens: 1,
	})
	if err != nil {
		return classifyError(err)
	}
	return nil
}

func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		code := ""
		if apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		if code == quotaCode || apiErr.Type == quotaCode {
			return fmt.Errorf("openai %s (status %d): %w", quotaCode, apiErr.HTTPStatusCode, llm.ErrQuotaExhausted)
		}
		return fmt.Errorf("openai error: %s (%s, status %d)", apiErr.Message, apiErr.Type, apiErr.HTTPStatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return fmt.Errorf("openai request timeout: %w", err)
	}
	return fmt.Errorf("openai request: %w", err)
}

var (
	_ llm.Generator     = (*Client)(nil)
	_ llm.StatusChecker = (*Client)(nil)
)
