package dto

import (
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
)

// ApprovalRequest is the decision on a Paid(PendingApproval) entry.
type ApprovalRequest struct {
	Action   string  `json:"action" binding:"required,approval_action" example:"reject"`
	Comments *string `json:"comments" binding:"omitempty,max=1000"`
}

// ApprovalResponse defines the data returned after an approval decision.
type ApprovalResponse struct {
	LedgerID       int64     `json:"ledgerID"`
	LoanID         string    `json:"loanID"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Message        string    `json:"message"`
	Comments       *string   `json:"comments,omitempty"`
	DecidedBy      string    `json:"decidedBy"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListPendingApprovalsParams defines query parameters for listing entries awaiting approval.
type ListPendingApprovalsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// PendingApprovalResponse is an entry awaiting approval with its facet names.
type PendingApprovalResponse struct {
	Ledger        LedgerResponse `json:"ledger"`
	ApplicantName string         `json:"applicantName"`
	Branch        string         `json:"branch"`
	Dealer        string         `json:"dealer"`
	Lender        string         `json:"lender"`
	RMName        string         `json:"rmName"`
	TLName        string         `json:"tlName"`
}

// ListPendingApprovalsResponse is a page of entries awaiting approval.
type ListPendingApprovalsResponse struct {
	Items     []PendingApprovalResponse `json:"items"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToApprovalResponse converts a domain.ApprovalResult to ApprovalResponse DTO.
func ToApprovalResponse(r *domain.ApprovalResult) ApprovalResponse {
	return ApprovalResponse{
		LedgerID:       r.LedgerID,
		LoanID:         r.LoanID,
		Action:         string(r.Action),
		PreviousStatus: string(r.PreviousStatus),
		NewStatus:      string(r.NewStatus),
		Message:        r.Message,
		Comments:       r.Comments,
		DecidedBy:      r.DecidedBy,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToApprovalResponses converts a decision history to DTOs.
func ToApprovalResponses(results []domain.ApprovalResult) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(results))
	for i := range results {
		responses[i] = ToApprovalResponse(&results[i])
	}
	return responses
}

// ToPendingApprovalResponses converts pending entries to DTOs.
func ToPendingApprovalResponses(items []domain.PendingApproval) []PendingApprovalResponse {
	responses := make([]PendingApprovalResponse, len(items))
	for i := range items {
		p := items[i]
		responses[i] = PendingApprovalResponse{
			Ledger:        ToLedgerResponse(&p.Ledger),
			ApplicantName: p.ApplicantName,
			Branch:        p.Branch,
			Dealer:        p.Dealer,
			Lender:        p.Lender,
			RMName:        p.RMName,
			TLName:        p.TLName,
		}
	}
	return responses
}
