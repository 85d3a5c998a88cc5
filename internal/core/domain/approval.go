package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ApprovalAction is the decision taken on a Paid(PendingApproval) entry.
type ApprovalAction string

const (
	ApprovalAccept ApprovalAction = "accept"
	ApprovalReject ApprovalAction = "reject"
)

// ParseApprovalAction is case-insensitive.
func ParseApprovalAction(s string) (ApprovalAction, bool) {
	switch ApprovalAction(strings.ToLower(strings.TrimSpace(s))) {
	case ApprovalAccept:
		return ApprovalAccept, true
	case ApprovalReject:
		return ApprovalReject, true
	}
	return "", false
}

// ErrNotPendingApproval is returned by DecideApproval when the entry is not awaiting approval.
var ErrNotPendingApproval = errors.New("ledger entry is not pending approval")

// ApprovalDecision is the outcome computed for an entry before it is persisted.
type ApprovalDecision struct {
	Previous RepaymentStatus
	Next     RepaymentStatus
	Message  string
}

// DecideApproval applies the accept/reject branch to entry.
// A reject keeps the entry as Partially Paid when money was collected, otherwise it becomes PaidRejected.
func DecideApproval(entry LedgerEntry, action ApprovalAction) (ApprovalDecision, error) {
	current := entry.StatusName()
	if entry.RepaymentStatus == nil || *entry.RepaymentStatus != StatusPaidPendingApproval {
		if current == "" {
			current = "none"
		}
		return ApprovalDecision{}, fmt.Errorf("%w: current status is %q, not %q", ErrNotPendingApproval, current, StatusPaidPendingApproval)
	}

	d := ApprovalDecision{Previous: StatusPaidPendingApproval}
	switch action {
	case ApprovalAccept:
		d.Next = StatusPaid
		d.Message = "Payment approved. Status changed to Paid."
	case ApprovalReject:
		if entry.HasCollectedAmount() {
			d.Next = StatusPartiallyPaid
			d.Message = fmt.Sprintf("Payment rejected. Status changed to Partially Paid due to collected amount %s.", entry.AmountCollected.StringFixed(2))
		} else {
			d.Next = StatusPaidRejected
			d.Message = "Payment rejected. Status changed to PaidRejected as no amount was collected."
		}
	default:
		return ApprovalDecision{}, fmt.Errorf("unknown approval action %q", action)
	}
	return d, nil
}

// ApprovalResult is returned to the caller after a decision has been persisted.
type ApprovalResult struct {
	LedgerID       int64
	LoanID         string
	Action         ApprovalAction
	PreviousStatus RepaymentStatus
	NewStatus      RepaymentStatus
	Message        string
	Comments       *string
	DecidedBy      string
	UpdatedAt      time.Time
}

// PendingApproval is a ledger entry awaiting approval together with its facet names.
type PendingApproval struct {
	Ledger        LedgerEntry
	ApplicantName string
	Branch        string
	Dealer        string
	Lender        string
	RMName        string
	TLName        string
}
