package llm

import (
	"context"
	"time"

	"socialmetrics-backend/internal/shared/metrics"
	"socialmetrics-backend/internal/shared/telemetry"
)

type throttledGenerator struct {
	base    Generator
	limiter *WindowLimiter
}

// Throttled waits on limiter before every call to base.
func Throttled(base Generator, limiter *WindowLimiter) Generator {
	if base == nil || limiter == nil {
		return base
	}
	return throttledGenerator{base: base, limiter: limiter}
}

func (t throttledGenerator) Generate(ctx context.Context, req Request) (Response, error) {
	if err := t.limiter.Acquire(ctx); err != nil {
		return Response{}, err
	}
	return t.base.Generate(ctx, req)
}

func (t throttledGenerator) CheckStatus(ctx context.Context) error {
	checker, ok := t.base.(StatusChecker)
	if !ok {
		return ErrNotConfigured
	}
	return checker.CheckStatus(ctx)
}

// UsageRecorder persists consumed token counts.
type UsageRecorder interface {
	Track(ctx context.Context, tokens int) (int, error)
}

type trackedGenerator struct {
	base     Generator
	recorder UsageRecorder
	provider string
}

// Tracked logs every call and records token usage of successful ones.
// Recording failures are logged and never fail the call.
func Tracked(base Generator, provider string, recorder UsageRecorder) Generator {
	if base == nil {
		return nil
	}
	return trackedGenerator{base: base, recorder: recorder, provider: provider}
}

func (t trackedGenerator) Generate(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := t.base.Generate(ctx, req)
	elapsed := time.Since(start)
	metrics.ObserveLLMDurationMs(float64(elapsed.Microseconds()) / 1000.0)

	fields := map[string]any{
		"provider":          t.provider,
		"model":             req.Model,
		"max_output_tokens": req.MaxOutputTokens,
		"duration_ms":       float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		fields["error"] = err.Error()
		fields["quota_exhausted"] = IsQuotaExhausted(err)
		telemetry.Error("llm.call", fields)
		return resp, err
	}
	fields["prompt_tokens"] = resp.PromptTokens
	fields["completion_tokens"] = resp.CompletionTokens
	fields["total_tokens"] = resp.TotalTokens
	telemetry.Info("llm.call", fields)

	metrics.AddLLMTokens(resp.TotalTokens)
	if t.recorder != nil && resp.TotalTokens > 0 {
		if _, recErr := t.recorder.Track(ctx, resp.TotalTokens); recErr != nil {
			telemetry.Error("usage.track_failed", map[string]any{"error": recErr.Error()})
		}
	}
	return resp, nil
}

func (t trackedGenerator) CheckStatus(ctx context.Context) error {
	checker, ok := t.base.(StatusChecker)
	if !ok {
		return ErrNotConfigured
	}
	return checker.CheckStatus(ctx)
}
