package mapping

import (
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/models"
)

// ToModelApprovalDecision converts a domain ApprovalResult to a model ApprovalDecision
func ToModelApprovalDecision(d domain.ApprovalResult) models.ApprovalDecision {
	return models.ApprovalDecision{
		LedgerID:       d.LedgerID,
		LoanID:         d.LoanID,
		Action:         string(d.Action),
		PreviousStatus: string(d.PreviousStatus),
		NewStatus:      string(d.NewStatus),
		Message:        d.Message,
		Comments:       d.Comments,
		DecidedBy:      d.DecidedBy,
		DecidedAt:      d.UpdatedAt,
	}
}

// ToDomainApprovalResult converts a model ApprovalDecision to a domain ApprovalResult
func ToDomainApprovalResult(m models.ApprovalDecision) domain.ApprovalResult {
	return domain.ApprovalResult{
		LedgerID:       m.LedgerID,
		LoanID:         m.LoanID,
		Action:         domain.ApprovalAction(m.Action),
		PreviousStatus: domain.RepaymentStatus(m.PreviousStatus),
		NewStatus:      domain.RepaymentStatus(m.NewStatus),
		Message:        m.Message,
		Comments:       m.Comments,
		DecidedBy:      m.DecidedBy,
		UpdatedAt:      m.DecidedAt,
	}
}
