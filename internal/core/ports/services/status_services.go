package services

import (
	"context"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

// StatusReaderSvc defines read operations on the status of ledger entries
type StatusReaderSvc interface {
	// GetStatus returns the ledger fields together with the latest calling statuses.
	GetStatus(ctx context.Context, selector domain.LedgerSelector) (*domain.StatusSnapshot, error)

	// ListPeriods returns the billing month dropdown of a loan.
	ListPeriods(ctx context.Context, loanID string) ([]domain.BillingPeriod, error)
}

// StatusWriterSvc defines write operations on the status of ledger entries
type StatusWriterSvc interface {
	// UpdateStatus applies a sparse update atomically and returns the resulting status.
	UpdateStatus(ctx context.Context, selector domain.LedgerSelector, req dto.UpdateStatusRequest, actorID string) (*domain.StatusSnapshot, error)

	// SweepOverdue moves Future entries whose demand date is before asOf to Overdue.
	SweepOverdue(ctx context.Context, asOf time.Time) (*domain.SweepResult, error)
}

// CallLogSvc defines operations on the append-only call log
type CallLogSvc interface {
	RecordCall(ctx context.Context, ledgerID int64, req dto.RecordCallRequest, callerID string) (*domain.CallLogEntry, error)

	// LatestStatus returns the latest status for (channel, role) and whether one exists.
	LatestStatus(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (string, bool, error)
}

// StatusSvcFacade combines all status-related service interfaces
type StatusSvcFacade interface {
	StatusReaderSvc
	StatusWriterSvc
	CallLogSvc
}
