package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	strategyGenerations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "strategy_generation_total",
		Help: "Strategy result sets produced, by source path",
	}, []string{"source"})

	llmAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_attempts_total",
		Help: "Generative model attempts, by outcome",
	}, []string{"outcome"})

	llmTokens = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Tokens consumed by successful generative model calls",
	})

	llmDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "llm_call_duration_ms",
		Help:    "Generative model call duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})

	providerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "Analytics provider requests, by endpoint and status class",
	}, []string{"endpoint", "status"})
)

func init() {
	registry.MustRegister(
		strategyGenerations,
		llmAttempts,
		llmTokens,
		llmDuration,
		providerRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncStrategyGeneration counts a produced result set for the given source (model, heuristic, fallback).
func IncStrategyGeneration(source string) {
	strategyGenerations.WithLabelValues(source).Inc()
}

// IncLLMAttempt counts a model attempt by outcome (ok, quota_exhausted, error).
func IncLLMAttempt(outcome string) {
	llmAttempts.WithLabelValues(outcome).Inc()
}

// AddLLMTokens adds consumed tokens.
func AddLLMTokens(n int) {
	if n <= 0 {
		return
	}
	llmTokens.Add(float64(n))
}

// ObserveLLMDurationMs records a model call duration in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
}

// IncProviderRequest counts an analytics provider request.
func IncProviderRequest(endpoint, status string) {
	providerRequests.WithLabelValues(endpoint, status).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
