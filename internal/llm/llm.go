package llm

import (
	"context"
	"errors"
)

// Generator abstracts text-generation providers used for strategy generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// StatusChecker is implemented by providers that can verify their credential with a minimal call.
type StatusChecker interface {
	CheckStatus(ctx context.Context) error
}

// Request captures a single model call.
type Request struct {
	Model           string
	System          string
	Prompt          string
	MaxOutputTokens int
	Temperature     float32
}

// Response is the model reply and its token accounting.
type Response struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrNotConfigured is returned by the Unconfigured generator.
var ErrNotConfigured = errors.New("llm provider not configured")

// Unconfigured stands in when no model credential is available.
type Unconfigured struct{}

// Generate returns ErrNotConfigured.
func (Unconfigured) Generate(context.Context, Request) (Response, error) {
	return Response{}, ErrNotConfigured
}

// CheckStatus returns ErrNotConfigured.
func (Unconfigured) CheckStatus(context.Context) error {
	return ErrNotConfigured
}
