package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type activityHandler struct {
	activityService portssvc.ActivitySvc
}

// RegisterActivityRoutes registers the recent activity feed.
func RegisterActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvc) {
	h := &activityHandler{activityService: activityService}
	rg.GET("/activity", h.getRecentActivity)
}

// getRecentActivity godoc
// @Summary Recent activity feed
// @Description Changes to status, PTP date, collected amount and demand calling status, newest first
// @Tags activity
// @Produce json
// @Param loanId query string false "Restrict to one loan"
// @Param ledgerId query int false "Restrict to one ledger entry"
// @Param limit query int false "Maximum number of events (1-500)" default(50)
// @Param sinceDays query int false "Look-back window in days (1-365)" default(30)
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) getRecentActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ActivityQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetRecentActivity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	events, err := h.activityService.GetRecentActivity(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build activity feed")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(events))
}
