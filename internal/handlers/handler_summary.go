package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// summaryHandler serves the dashboard aggregations.
type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

// RegisterSummaryRoutes registers dashboard summary routes.
func RegisterSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := &summaryHandler{summaryService: summaryService}

	summary := rg.Group("/summary")
	{
		summary.GET("", h.getSummary)
		summary.GET("/filters", h.getFilterOptions)
	}
}

// getSummary godoc
// @Summary Count ledger entries per repayment status
// @Description Every filter is optional and filters combine with AND
// @Tags summary
// @Produce json
// @Param period query string false "Billing month, e.g. Jul-25"
// @Param branch query string false "Branch name"
// @Param dealer query string false "Dealer name"
// @Param lender query string false "Lender name"
// @Param rm query string false "Relationship manager"
// @Param tl query string false "Team leader"
// @Param status query string false "Repayment status"
// @Param ptpBucket query string false "overdue, today, tomorrow, future or noPtp"
// @Param ledgerId query int false "Ledger ID"
// @Param demandNum query int false "Demand number"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getFilterOptions godoc
// @Summary Dashboard filter options
// @Tags summary
// @Produce json
// @Success 200 {object} dto.FilterOptionsResponse
// @Security BearerAuth
// @Router /summary/filters [get]
func (h *summaryHandler) getFilterOptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	opts, err := h.summaryService.GetFilterOptions(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to load filter options")
		return
	}
	c.JSON(http.StatusOK, dto.ToFilterOptionsResponse(opts))
}
