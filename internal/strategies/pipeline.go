package strategies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"socialmetrics-backend/internal/llm"
	"socialmetrics-backend/internal/shared/metrics"
	"socialmetrics-backend/internal/shared/telemetry"
	"socialmetrics-backend/internal/shared/util"
)

// DefaultLadder lists the output-token budgets tried in order.
var DefaultLadder = []int{3000, 2048, 1024}

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = float32(0.7)
)

// Pipeline generates strategies with the model, degrading to heuristics or rules.
type Pipeline struct {
	Gen         llm.Generator
	Ladder      []int
	Model       string
	Temperature float32
	Tracer      trace.Tracer
}

// NewPipeline wires a pipeline. An empty ladder uses DefaultLadder.
func NewPipeline(gen llm.Generator, model string, temperature float32, ladder []int) *Pipeline {
	if len(ladder) == 0 {
		ladder = DefaultLadder
	}
	if model == "" {
		model = DefaultModel
	}
	return &Pipeline{
		Gen:         gen,
		Ladder:      append([]int(nil), ladder...),
		Model:       model,
		Temperature: temperature,
		Tracer:      otel.Tracer("socialmetrics-backend/strategies"),
	}
}

// Generate never returns fewer than SetSize strategies unless the request is invalid.
func (p *Pipeline) Generate(ctx context.Context, in ReportData) Outcome {
	prompt, err := p.prompt(in)
	if err != nil {
		return Outcome{Kind: KindInvalid, Err: fmt.Errorf("%w: %v", ErrInvalidRequest, err)}
	}

	gen := p.Gen
	if gen == nil {
		gen = llm.Unconfigured{}
	}
	ladder := p.Ladder
	if len(ladder) == 0 {
		ladder = DefaultLadder
	}
	tracer := p.Tracer
	if tracer == nil {
		tracer = otel.Tracer("socialmetrics-backend/strategies")
	}
	promptHash := util.PromptHash(prompt)

	var lastErr error
	for k, budget := range ladder {
		attempt := k + 1
		attemptCtx, span := tracer.Start(ctx, "strategies.attempt", trace.WithAttributes(
			attribute.Int("attempt", attempt),
			attribute.Int("max_output_tokens", budget),
			attribute.String("model", p.Model),
		))
		resp, err := gen.Generate(attemptCtx, llm.Request{
			Model:           p.Model,
			System:          llm.StrategySystemPrompt,
			Prompt:          prompt,
			MaxOutputTokens: budget,
			Temperature:     p.Temperature,
		})
		if err != nil {
			quota := llm.IsQuotaExhausted(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.Bool("quota_exhausted", quota))
			span.End()

			outcome := "error"
			if quota {
				outcome = "quota_exhausted"
			}
			metrics.IncLLMAttempt(outcome)
			telemetry.Warn("strategies.attempt", map[string]any{
				"attempt":           attempt,
				"max_output_tokens": budget,
				"outcome":           outcome,
				"prompt_hash":       promptHash,
				"error":             err.Error(),
			})

			lastErr = err
			if quota && attempt < len(ladder) {
				continue
			}
			reason := ReasonModelUnavailable
			if quota {
				reason = ReasonQuotaExhausted
			}
			return p.fallback(in, reason, lastErr, attempt)
		}
		span.End()
		metrics.IncLLMAttempt("ok")
		telemetry.Info("strategies.attempt", map[string]any{
			"attempt":           attempt,
			"max_output_tokens": budget,
			"outcome":           "ok",
			"prompt_hash":       promptHash,
			"total_tokens":      resp.TotalTokens,
		})
		return fromReply(resp.Text, attempt)
	}
	// unreachable with a non-empty ladder
	return p.fallback(in, ReasonModelUnavailable, lastErr, len(ladder))
}

func (p *Pipeline) prompt(in ReportData) (string, error) {
	profiles := in.Profiles
	if len(bytes.TrimSpace(profiles)) == 0 && in.Data != nil {
		raw, err := json.Marshal(in.Data)
		if err != nil {
			return "", err
		}
		profiles = raw
	}
	return llm.BuildStrategyPrompt(llm.StrategyPromptInput{
		Profiles:     profiles,
		OKR:          in.OKR,
		CustomPrompt: in.CustomPrompt,
	})
}

func fromReply(text string, attempts int) Outcome {
	parsed, err := ParseSet(text)
	if err != nil {
		metrics.IncStrategyGeneration(string(SourceHeuristic))
		telemetry.Warn("strategies.fallback", map[string]any{
			"reason":   ReasonUnstructuredReply,
			"attempts": attempts,
		})
		return Outcome{
			Kind:       KindDegraded,
			Source:     SourceHeuristic,
			Strategies: ExtractHeuristic(text),
			Reason:     ReasonUnstructuredReply,
			Err:        err,
			Attempts:   attempts,
		}
	}
	metrics.IncStrategyGeneration(string(SourceModel))
	return Outcome{
		Kind:       KindSuccess,
		Source:     SourceModel,
		Strategies: Normalize(parsed, Catalogue()),
		Attempts:   attempts,
	}
}

func (p *Pipeline) fallback(in ReportData, reason string, cause error, attempts int) Outcome {
	_, set := RuleBasedFromPeriods(in.Data)
	fields := map[string]any{
		"reason":   reason,
		"attempts": attempts,
	}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	telemetry.Warn("strategies.fallback", fields)
	metrics.IncStrategyGeneration(string(SourceFallback))
	return Outcome{
		Kind:       KindDegraded,
		Source:     SourceFallback,
		Strategies: Normalize(set, nil),
		Reason:     reason,
		Err:        cause,
		Attempts:   attempts,
	}
}
