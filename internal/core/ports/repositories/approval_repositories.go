package repositories

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ApprovalRepositoryFacade persists and reads back approval decisions
type ApprovalRepositoryFacade interface {
	SaveDecisionInTx(ctx context.Context, tx pgx.Tx, result domain.ApprovalResult) error

	// ListDecisionsByLedger returns the decision history of a ledger entry, newest first.
	ListDecisionsByLedger(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error)
}
