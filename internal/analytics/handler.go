package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/shared/server/respond"
)

// Handler exposes analytics endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/profiles", h.profiles)
	rg.GET("/customer", h.customer)
	rg.POST("/profile_stats", h.profileStats)
	rg.POST("/quarter_stats", h.quarterStats)
	rg.POST("/compare_quarters", h.compareQuarters)
}

type statsRequest struct {
	ProfileID string `json:"profile_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type quarterStatsRequest struct {
	ProfileID string `json:"profile_id"`
	Quarter   string `json:"quarter"`
}

type compareRequest struct {
	StatsQ1 map[string]any `json:"stats_q1"`
	StatsQ2 map[string]any `json:"stats_q2"`
}

var errMissingStats = errors.New("stats_q1 and stats_q2 are required")

func (h *Handler) profiles(c *gin.Context) {
	raw, err := h.Svc.Profiles(c.Request.Context())
	if err != nil {
		respond.BadRequest(c, "provider_error", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *Handler) customer(c *gin.Context) {
	id, err := h.Svc.CustomerID(c.Request.Context())
	if err != nil {
		respond.BadRequest(c, "provider_error", err)
		return
	}
	respond.OK(c, gin.H{"customer_id": id})
}

func (h *Handler) profileStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "validation_error", err)
		return
	}
	if strings.TrimSpace(req.ProfileID) == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "profile_id, start_date and end_date are required", nil)
		return
	}
	c.Set("profileId", req.ProfileID)
	raw, err := h.Svc.ProfileStats(c.Request.Context(), req.ProfileID, req.StartDate, req.EndDate)
	if err != nil {
		respond.BadRequest(c, "provider_error", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *Handler) quarterStats(c *gin.Context) {
	var req quarterStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "validation_error", err)
		return
	}
	if strings.TrimSpace(req.ProfileID) == "" || strings.TrimSpace(req.Quarter) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Profile ID and quarter are required", nil)
		return
	}
	c.Set("profileId", req.ProfileID)
	stats, err := h.Svc.QuarterStats(c.Request.Context(), req.ProfileID, req.Quarter)
	if err != nil {
		respond.BadRequest(c, "provider_error", err)
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) compareQuarters(c *gin.Context) {
	var req compareRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		respond.BadRequest(c, "validation_error", err)
		return
	}
	if req.StatsQ1 == nil || req.StatsQ2 == nil {
		respond.BadRequest(c, "validation_error", errMissingStats)
		return
	}
	respond.OK(c, CompareQuarters(req.StatsQ1, req.StatsQ2))
}
