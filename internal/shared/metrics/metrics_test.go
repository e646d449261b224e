package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStrategyGenerationCounter(t *testing.T) {
	before := testutil.ToFloat64(strategyGenerations.WithLabelValues("fallback"))
	IncStrategyGeneration("fallback")
	after := testutil.ToFloat64(strategyGenerations.WithLabelValues("fallback"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestAddLLMTokensIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(llmTokens)
	AddLLMTokens(0)
	AddLLMTokens(-5)
	AddLLMTokens(42)
	if got := testutil.ToFloat64(llmTokens) - before; got != 42 {
		t.Fatalf("expected 42 tokens added, got %v", got)
	}
}

func TestHandlerRendersExposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncLLMAttempt("quota")

	r := gin.New()
	r.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `llm_attempts_total{outcome="quota"}`) {
		t.Fatalf("expected llm_attempts_total in output")
	}
}
