package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/service"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// AnalyticsHandler exposes the aggregate statistics endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	metrics   *service.MetricsService
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, metrics: metrics}
}

// Overview godoc
// @Summary Institution overview
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	requests, avgMs := h.metrics.RequestStats()
	response.JSON(c, http.StatusOK, h.analytics.Snapshot(c.Request.Context()), nil, map[string]interface{}{
		"requests_served": requests,
		"avg_request_ms":  avgMs,
	})
}

// Report godoc
// @Summary Render institution report text
// @Tags Analytics
// @Produce plain
// @Success 200 {string} string
// @Router /analytics/report [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	c.String(http.StatusOK, h.analytics.Report(c.Request.Context()))
}
