package repositories

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CallLogReader defines read operations for the call log
type CallLogReader interface {
	// ListCallsByLedger returns every call of a ledger entry ordered by (called_at, id).
	ListCallsByLedger(ctx context.Context, ledgerID int64) ([]domain.CallLogEntry, error)

	// FindLatestCall returns the latest call for (channel, role), or apperrors.ErrNotFound.
	FindLatestCall(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (*domain.CallLogEntry, error)

	// ListDemandCallHistory returns the full DemandCalling history of every ledger entry
	// that matches filter and has at least one demand call at or after filter.Since.
	ListDemandCallHistory(ctx context.Context, filter domain.ActivityFilter) ([]domain.CallLogEntry, error)
}

// CallLogWriter defines append operations for the call log
type CallLogWriter interface {
	// AppendCall inserts a single call and returns it with its id.
	AppendCall(ctx context.Context, call domain.CallLogEntry) (*domain.CallLogEntry, error)

	// AppendCallsInTx inserts calls within the given transaction and returns them with their ids.
	AppendCallsInTx(ctx context.Context, tx pgx.Tx, calls []domain.CallLogEntry) ([]domain.CallLogEntry, error)
}

// CallLogRepositoryFacade combines all call log repository interfaces
type CallLogRepositoryFacade interface {
	CallLogReader
	CallLogWriter
}
