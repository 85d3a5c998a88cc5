package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusHandler handles HTTP requests on ledger status, billing periods and the call log.
type statusHandler struct {
	statusService portssvc.StatusSvcFacade
}

func newStatusHandler(ss portssvc.StatusSvcFacade) *statusHandler {
	return &statusHandler{statusService: ss}
}

// RegisterStatusRoutes registers ledger status, period and call log routes.
func RegisterStatusRoutes(rg *gin.RouterGroup, statusService portssvc.StatusSvcFacade) {
	h := newStatusHandler(statusService)

	ledgers := rg.Group("/ledgers/:ledgerID")
	{
		ledgers.GET("/status", h.getStatusByLedger)
		ledgers.PUT("/status", h.updateStatusByLedger)
		ledgers.POST("/calls", h.recordCall)
		ledgers.GET("/calls/latest", h.latestStatus)
	}

	loans := rg.Group("/loans/:loanID")
	{
		loans.GET("/periods", h.listPeriods)
		loans.GET("/periods/:demandDate/status", h.getStatusByPeriod)
		loans.PUT("/periods/:demandDate/status", h.updateStatusByPeriod)
	}
}

// parseLedgerID reads the :ledgerID path parameter, answering 400 itself when it is malformed.
func parseLedgerID(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("ledgerID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid ledger ID in path", slog.String("ledger_id", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ledger ID"})
		return 0, false
	}
	return id, true
}

// periodSelector builds a selector from the :loanID and :demandDate path parameters.
func periodSelector(c *gin.Context, logger *slog.Logger) (domain.LedgerSelector, bool) {
	raw := c.Param("demandDate")
	date, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		logger.Warn("Invalid demand date in path", slog.String("demand_date", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid demand date, expected YYYY-MM-DD"})
		return domain.LedgerSelector{}, false
	}
	return domain.LedgerSelector{LoanID: c.Param("loanID"), DemandDate: &date}, true
}

// getStatusByLedger godoc
// @Summary Get the status of a ledger entry
// @Description Returns the ledger fields with the latest demand and contact calling statuses
// @Tags status
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Param loanId query string false "Loan ID cross-check"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string "Invalid ledger ID or loan mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve status"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/status [get]
func (h *statusHandler) getStatusByLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	h.getStatus(c, logger, domain.LedgerSelector{LedgerID: ledgerID, LoanID: c.Query("loanId")})
}

// getStatusByPeriod godoc
// @Summary Get the status of a loan for one billing period
// @Tags status
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param demandDate path string true "Demand date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string "Invalid demand date or ambiguous period"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Security BearerAuth
// @Router /loans/{loanID}/periods/{demandDate}/status [get]
func (h *statusHandler) getStatusByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	selector, ok := periodSelector(c, logger)
	if !ok {
		return
	}
	h.getStatus(c, logger, selector)
}

func (h *statusHandler) getStatus(c *gin.Context, logger *slog.Logger, selector domain.LedgerSelector) {
	snap, err := h.statusService.GetStatus(c.Request.Context(), selector)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve status")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatusResponse(snap))
}

// updateStatusByLedger godoc
// @Summary Update the status of a ledger entry
// @Description Applies a sparse update; omitted fields are left untouched. Calling statuses are appended to the call log.
// @Tags status
// @Accept json
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Param loanId query string false "Loan ID cross-check"
// @Param update body dto.UpdateStatusRequest true "Fields to update"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Failure 409 {object} map[string]string "Concurrent update"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/status [put]
func (h *statusHandler) updateStatusByLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	h.updateStatus(c, logger, domain.LedgerSelector{LedgerID: ledgerID, LoanID: c.Query("loanId")})
}

// updateStatusByPeriod godoc
// @Summary Update the status of a loan for one billing period
// @Tags status
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param demandDate path string true "Demand date (YYYY-MM-DD)"
// @Param update body dto.UpdateStatusRequest true "Fields to update"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Failure 409 {object} map[string]string "Concurrent update"
// @Security BearerAuth
// @Router /loans/{loanID}/periods/{demandDate}/status [put]
func (h *statusHandler) updateStatusByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	selector, ok := periodSelector(c, logger)
	if !ok {
		return
	}
	h.updateStatus(c, logger, selector)
}

func (h *statusHandler) updateStatus(c *gin.Context, logger *slog.Logger, selector domain.LedgerSelector) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snap, err := h.statusService.UpdateStatus(c.Request.Context(), selector, req, actorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatusResponse(snap))
}

// listPeriods godoc
// @Summary List the billing periods of a loan
// @Description Returns the month dropdown; periods within 30 days of today are flagged as current
// @Tags status
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Loan has no ledger entries"
// @Security BearerAuth
// @Router /loans/{loanID}/periods [get]
func (h *statusHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periods, err := h.statusService.ListPeriods(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// recordCall godoc
// @Summary Record a call attempt
// @Tags calls
// @Accept json
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Param call body dto.RecordCallRequest true "Call details"
// @Success 201 {object} dto.CallLogResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/calls [post]
func (h *statusHandler) recordCall(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	var req dto.RecordCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordCall", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	call, err := h.statusService.RecordCall(c.Request.Context(), ledgerID, req, callerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record call")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCallLogResponse(call))
}

// latestStatus godoc
// @Summary Get the latest calling status for a channel and role
// @Tags calls
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Param channel query string true "ContactCalling or DemandCalling"
// @Param role query string false "Contact role, defaults to Applicant"
// @Success 200 {object} dto.LatestStatusResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/calls/latest [get]
func (h *statusHandler) latestStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	var query dto.LatestStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query params for LatestStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	role := domain.RoleApplicant
	if query.Role != "" {
		role, _ = domain.ParseContactRole(query.Role)
	}
	channel := domain.CallingChannel(query.Channel)

	status, found, err := h.statusService.LatestStatus(c.Request.Context(), ledgerID, channel, role)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve latest status")
		return
	}
	resp := dto.LatestStatusResponse{
		LedgerID: ledgerID,
		Channel:  string(channel),
		Role:     string(role),
		Found:    found,
	}
	if found {
		resp.Status = &status
	}
	c.JSON(http.StatusOK, resp)
}
