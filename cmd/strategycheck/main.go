package main

// Check credentials, compare the trailing windows of a profile and generate strategies:
//   go run ./cmd/strategycheck -profile 123456 -days 90 -out strategy.json

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"socialmetrics-backend/internal/analytics"
	"socialmetrics-backend/internal/llm"
	"socialmetrics-backend/internal/shared/config"
	"socialmetrics-backend/internal/shared/server"
	"socialmetrics-backend/internal/shared/telemetry"
	"socialmetrics-backend/internal/strategies"
)

type report struct {
	Previous       string                               `json:"previous_period"`
	Current        string                               `json:"current_period"`
	Comparison     map[string]analytics.ComparisonEntry `json:"comparison"`
	Strategies     []strategies.Strategy                `json:"strategies"`
	Source         strategies.Source                    `json:"source"`
	DegradedReason string                               `json:"degraded_reason,omitempty"`
}

func main() {
	cfg := config.Load()

	profileID := flag.String("profile", "", "Sprout Social profile ID (prompted when empty)")
	days := flag.Int("days", 90, "Length of each compared window in days")
	outPath := flag.String("out", "", "Path to write the JSON report (optional)")
	skipStatus := flag.Bool("skip-status", false, "Skip the model credential check")
	flag.Parse()

	ctx := context.Background()
	deps, cleanup := server.BuildDeps(ctx, cfg)
	defer cleanup()
	defer telemetry.Sync()

	if !*skipStatus {
		if err := checkStatus(ctx, deps.Generator); err != nil {
			exitErr(fmt.Sprintf("API key validation failed: %v", err))
		}
	}

	id := strings.TrimSpace(*profileID)
	if id == "" {
		id = promptProfileID()
	}
	if id == "" {
		exitErr("profile id is required")
	}
	if *days <= 0 {
		exitErr("days must be positive")
	}

	svc := analytics.NewService(deps.Provider)
	cmp, err := svc.CompareTrailing(ctx, id, *days)
	if err != nil {
		exitErr(fmt.Sprintf("fetch stats: %v", err))
	}

	summary, err := json.Marshal(cmp.Comparison)
	if err != nil {
		exitErr(fmt.Sprintf("encode comparison: %v", err))
	}
	pipeline := strategies.NewPipeline(deps.Generator, cfg.LLMModel, cfg.LLMTemperature, cfg.LLMTokenLadder)
	out := pipeline.Generate(ctx, strategies.ReportData{
		CustomPrompt: "Quarter-to-quarter comparison shows the following changes: " + string(summary),
		Data:         &cmp.Periods,
	})
	if out.Kind == strategies.KindInvalid {
		exitErr(fmt.Sprintf("generate strategies: %v", out.Err))
	}

	pretty, err := prettyJSON(report{
		Previous:       cmp.Previous.StartString() + ".." + cmp.Previous.EndString(),
		Current:        cmp.Current.StartString() + ".." + cmp.Current.EndString(),
		Comparison:     cmp.Comparison,
		Strategies:     out.Strategies,
		Source:         out.Source,
		DegradedReason: out.Reason,
	})
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func checkStatus(ctx context.Context, gen llm.Generator) error {
	checker, ok := gen.(llm.StatusChecker)
	if !ok {
		return llm.ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return checker.CheckStatus(ctx)
}

func promptProfileID() string {
	_, _ = fmt.Fprint(os.Stderr, "Enter your Sprout Social profile ID: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
