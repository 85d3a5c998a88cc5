package models

import "time"

// ApprovalDecision is a row of approval_decisions.
type ApprovalDecision struct {
	DecisionID     int64     `json:"decisionID"`
	LedgerID       int64     `json:"ledgerID"`
	LoanID         string    `json:"loanID"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Message        string    `json:"message"`
	Comments       *string   `json:"comments"`
	DecidedBy      string    `json:"decidedBy"`
	DecidedAt      time.Time `json:"decidedAt"`
}
