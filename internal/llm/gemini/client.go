package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"socialmetrics-backend/internal/llm"
)

// DefaultModel is used when neither the request nor the client names a model.
const DefaultModel = "gemini-1.5-flash"

// Client implements llm.Generator using the Gemini API.
type Client struct {
	api   *genai.Client
	model string
}

// NewClient constructs a Gemini client. Extra options are passed to the SDK.
func NewClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultModel
	}
	api, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{api: api, model: model}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Generate issues one content generation bounded by req.MaxOutputTokens.
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	name := req.Model
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "gpt-") {
		name = c.model
	}
	model := c.api.GenerativeModel(name)
	model.SetTemperature(req.Temperature)
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxOutputTokens))
	}
	if strings.TrimSpace(req.System) != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return llm.Response{}, classifyError(err)
	}
	text, err := textFromResponse(resp)
	if err != nil {
		return llm.Response{}, err
	}
	out := llm.Response{Text: text}
	if resp.UsageMetadata != nil {
		out.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		out.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// CheckStatus verifies the credential with a one-token generation.
func (c *Client) CheckStatus(ctx context.Context) error {
	model := c.api.GenerativeModel(c.model)
	model.SetMaxOutputTokens(1)
	if _, err := model.GenerateContent(ctx, genai.Text("Hi")); err != nil {
		return classifyError(err)
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("gemini response empty content (finish reason %s)", cand.FinishReason)
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

func classifyError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("gemini resource exhausted: %s: %w", gerr.Message, llm.ErrQuotaExhausted)
	}
	if llm.IsQuotaExhausted(err) {
		return fmt.Errorf("gemini resource exhausted: %v: %w", err, llm.ErrQuotaExhausted)
	}
	return fmt.Errorf("gemini request: %w", err)
}

var (
	_ llm.Generator     = (*Client)(nil)
	_ llm.StatusChecker = (*Client)(nil)
)
