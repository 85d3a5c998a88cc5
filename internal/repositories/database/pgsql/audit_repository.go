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

// trackedFieldChanged matches audit rows where at least one field of the activity feed differs.
// Amounts are compared numerically so "1500" and "1500.00" are the same value.
const trackedFieldChanged = `(
	a.old_data->'repayment_status' IS DISTINCT FROM a.new_data->'repayment_status'
	OR a.old_data->'ptp_date' IS DISTINCT FROM a.new_data->'ptp_date'
	OR (a.old_data->>'amount_collected')::numeric IS DISTINCT FROM (a.new_data->>'amount_collected')::numeric)`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for ledger audit snapshots.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// ListAudits returns audit pairs matching filter, newest first.
func (r *PgxAuditRepository) ListAudits(ctx context.Context, filter domain.ActivityFilter) ([]domain.AuditRecord, error) {
	query := `
		SELECT a.id, a.ledger_id, a.loan_id, a.action, a.old_data, a.new_data, a.changed_by, a.changed_at
		FROM ledger_audit a
		WHERE a.changed_at >= $1 AND ` + trackedFieldChanged
	args := []any{filter.Since}

	if filter.LoanID != "" {
		args = append(args, filter.LoanID)
		query += fmt.Sprintf(` AND a.loan_id = $%d`, len(args))
	}
	if filter.LedgerID > 0 {
		args = append(args, filter.LedgerID)
		query += fmt.Sprintf(` AND a.ledger_id = $%d`, len(args))
	}
	query += ` ORDER BY a.changed_at DESC, a.id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger audits", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.LedgerAudit
		if err := rows.Scan(
			&m.AuditID,
			&m.LedgerID,
			&m.LoanID,
			&m.Action,
			&m.OldData,
			&m.NewData,
			&m.ChangedBy,
			&m.ChangedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger audit", err)
		}
		rec, err := mapping.ToDomainAuditRecord(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode ledger audit", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger audits", err)
	}
	return records, nil
}

// SaveAuditInTx records one before/after snapshot pair within tx.
func (r *PgxAuditRepository) SaveAuditInTx(ctx context.Context, tx pgx.Tx, rec domain.AuditRecord) error {
	m, err := mapping.ToModelLedgerAudit(rec)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode ledger audit", err)
	}
	query := `
		INSERT INTO ledger_audit (ledger_id, loan_id, action, old_data, new_data, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		m.LedgerID,
		m.LoanID,
		m.Action,
		m.OldData,
		m.NewData,
		m.ChangedBy,
		m.ChangedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to save audit for ledger entry %d", rec.LedgerID), err)
	}
	return nil
}
