package services

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

// ApprovalReaderSvc defines read operations of the approval workflow
type ApprovalReaderSvc interface {
	// ListPendingApprovals retrieves a page of entries awaiting approval.
	ListPendingApprovals(ctx context.Context, params dto.ListPendingApprovalsParams) (*dto.ListPendingApprovalsResponse, error)

	// ListAllPendingApprovals walks every page; used by the spreadsheet export.
	ListAllPendingApprovals(ctx context.Context) ([]domain.PendingApproval, error)

	// ListDecisions returns the decision history of a ledger entry, newest first.
	ListDecisions(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error)
}

// ApprovalWriterSvc defines the decision operation of the approval workflow
type ApprovalWriterSvc interface {
	ProcessApproval(ctx context.Context, ledgerID int64, req dto.ApprovalRequest, actorID string) (*domain.ApprovalResult, error)
}

// ApprovalSvcFacade combines all approval service interfaces
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalWriterSvc
}
