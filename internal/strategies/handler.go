package strategies

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/analytics"
	"socialmetrics-backend/internal/llm"
	"socialmetrics-backend/internal/shared/server/respond"
)

const (
	sourceHeader       = "X-Strategy-Source"
	statusCheckTimeout = 15 * time.Second
)

var (
	errMissingReportData = errors.New("report_data is required")
	errMissingData       = errors.New("data is required")
)

// Handler exposes strategy endpoints.
type Handler struct {
	Pipeline *Pipeline
	Status   llm.StatusChecker
	Provider string
}

// NewHandler constructs a Handler. status may be nil when no provider is configured.
func NewHandler(p *Pipeline, status llm.StatusChecker, provider string) *Handler {
	return &Handler{Pipeline: p, Status: status, Provider: provider}
}

// RegisterRoutes attaches strategy routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/generate_strategy", h.generate)
	rg.POST("/strategy", h.generate)
	rg.POST("/analyze", h.analyze)
	rg.GET("/api_status", h.apiStatus)
}

type generateRequest struct {
	ReportData *ReportData `json:"report_data"`
}

type analyzeRequest struct {
	Data *analytics.Periods `json:"data"`
}

type metaResponse struct {
	Strategies     []Strategy `json:"strategies"`
	Source         Source     `json:"source"`
	DegradedReason string     `json:"degraded_reason,omitempty"`
}

type analyzeResponse struct {
	Metrics    analytics.Report `json:"metrics"`
	Strategies []Strategy       `json:"strategies"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "validation_error", err)
		return
	}
	if req.ReportData == nil {
		respond.BadRequest(c, "validation_error", errMissingReportData)
		return
	}

	out := h.Pipeline.Generate(c.Request.Context(), *req.ReportData)
	if out.Kind == KindInvalid {
		respond.BadRequest(c, "validation_error", out.Err)
		return
	}

	c.Set("strategySource", string(out.Source))
	c.Header(sourceHeader, string(out.Source))
	if c.Query("include_meta") == "1" {
		respond.OK(c, metaResponse{Strategies: out.Strategies, Source: out.Source, DegradedReason: out.Reason})
		return
	}
	respond.OK(c, Set{Strategies: out.Strategies})
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "validation_error", err)
		return
	}
	if req.Data == nil {
		respond.BadRequest(c, "validation_error", errMissingData)
		return
	}
	report, set := RuleBasedFromPeriods(req.Data)
	c.Set("strategySource", string(SourceFallback))
	respond.OK(c, analyzeResponse{Metrics: report, Strategies: set})
}

func (h *Handler) apiStatus(c *gin.Context) {
	provider := h.Provider
	if provider == "" {
		provider = "openai"
	}
	if h.Status == nil {
		respond.OK(c, gin.H{provider: false, "error": llm.ErrNotConfigured.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusCheckTimeout)
	defer cancel()
	if err := h.Status.CheckStatus(ctx); err != nil {
		body := gin.H{provider: false, "error": err.Error()}
		if llm.IsQuotaExhausted(err) {
			body["quota_exhausted"] = true
		}
		respond.JSON(c, http.StatusOK, body)
		return
	}
	respond.OK(c, gin.H{provider: true})
}
