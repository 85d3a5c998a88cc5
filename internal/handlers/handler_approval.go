package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/SscSPs/repayment_tracker/internal/utils"
	"github.com/SscSPs/repayment_tracker/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests of the payment approval workflow.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
	posthogClient   *utils.PosthogClientWrapper
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade, posthogClient *utils.PosthogClientWrapper) *approvalHandler {
	return &approvalHandler{approvalService: as, posthogClient: posthogClient}
}

// RegisterApprovalRoutes registers approval decision, pending list and export routes.
// posthogClient may be nil.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newApprovalHandler(approvalService, posthogClient)

	rg.POST("/ledgers/:ledgerID/approval", h.processApproval)
	rg.GET("/ledgers/:ledgerID/approvals", h.listDecisions)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPendingApprovals)
		approvals.GET("/pending/export", h.exportPendingApprovals)
	}
}

// processApproval godoc
// @Summary Accept or reject a payment awaiting approval
// @Description Accept moves the entry to Paid. Reject moves it to Partially Paid when money was collected, otherwise to PaidRejected.
// @Tags approvals
// @Accept json
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Param decision body dto.ApprovalRequest true "Decision"
// @Success 200 {object} dto.ApprovalResponse
// @Failure 400 {object} map[string]string "Invalid action"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Failure 409 {object} map[string]string "Entry is not pending approval, or concurrent update"
// @Failure 500 {object} map[string]string "Failed to process approval"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/approval [post]
func (h *approvalHandler) processApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessApproval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("ledger_id", ledgerID), slog.String("action", req.Action))
	logger.Info("Received approval decision")

	result, err := h.approvalService.ProcessApproval(c.Request.Context(), ledgerID, req, actorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to process approval")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "approval_decided", map[string]any{
		"action":          string(result.Action),
		"previous_status": string(result.PreviousStatus),
		"new_status":      string(result.NewStatus),
	})
	c.JSON(http.StatusOK, dto.ToApprovalResponse(result))
}

// listDecisions godoc
// @Summary List the approval decisions of a ledger entry
// @Tags approvals
// @Produce json
// @Param ledgerID path int true "Ledger ID"
// @Success 200 {array} dto.ApprovalResponse
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/approvals [get]
func (h *approvalHandler) listDecisions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID, ok := parseLedgerID(c, logger)
	if !ok {
		return
	}
	decisions, err := h.approvalService.ListDecisions(c.Request.Context(), ledgerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list approval decisions")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponses(decisions))
}

// listPendingApprovals godoc
// @Summary List entries awaiting approval
// @Tags approvals
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPendingApprovalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or token"
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPendingApprovalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPendingApprovals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.approvalService.ListPendingApprovals(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list pending approvals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportPendingApprovals godoc
// @Summary Export every entry awaiting approval as a spreadsheet
// @Tags approvals
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string "Failed to export pending approvals"
// @Security BearerAuth
// @Router /approvals/pending/export [get]
func (h *approvalHandler) exportPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	items, err := h.approvalService.ListAllPendingApprovals(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to export pending approvals")
		return
	}

	c.Header("Content-Type", export.ContentTypeXLSX)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pending_approvals_%s.xlsx", time.Now().Format("20060102")))
	c.Status(http.StatusOK)
	if err := export.WritePendingApprovals(c.Writer, items); err != nil {
		logger.Error("Failed to write pending approvals workbook", slog.String("error", err.Error()))
		return
	}
	logger.Info("Pending approvals exported", slog.Int("count", len(items)))
}
