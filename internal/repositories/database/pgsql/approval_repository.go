package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/repayment_tracker/internal/models"
	"github.com/SscSPs/repayment_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApprovalRepository struct {
	BaseRepository
}

// newPgxApprovalRepository creates a new repository for approval decisions.
func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryFacade
var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

// SaveDecisionInTx records an approval decision within tx.
func (r *PgxApprovalRepository) SaveDecisionInTx(ctx context.Context, tx pgx.Tx, result domain.ApprovalResult) error {
	m := mapping.ToModelApprovalDecision(result)
	query := `
		INSERT INTO approval_decisions (
			ledger_id, loan_id, action, previous_status, new_status, message, comments, decided_by, decided_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.LedgerID,
		m.LoanID,
		m.Action,
		m.PreviousStatus,
		m.NewStatus,
		m.Message,
		m.Comments,
		m.DecidedBy,
		m.DecidedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to save approval decision for ledger entry %d", result.LedgerID), err)
	}
	return nil
}

// ListDecisionsByLedger returns the decision history of a ledger entry, newest first.
func (r *PgxApprovalRepository) ListDecisionsByLedger(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error) {
	query := `
		SELECT id, ledger_id, loan_id, action, previous_status, new_status, message, comments, decided_by, decided_at
		FROM approval_decisions
		WHERE ledger_id = $1
		ORDER BY decided_at DESC, id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to list approval decisions for ledger entry %d", ledgerID), err)
	}
	defer rows.Close()

	results := []domain.ApprovalResult{}
	for rows.Next() {
		var m models.ApprovalDecision
		if err := rows.Scan(
			&m.DecisionID,
			&m.LedgerID,
			&m.LoanID,
			&m.Action,
			&m.PreviousStatus,
			&m.NewStatus,
			&m.Message,
			&m.Comments,
			&m.DecidedBy,
			&m.DecidedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval decision", err)
		}
		results = append(results, mapping.ToDomainApprovalResult(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approval decisions", err)
	}
	return results, nil
}
