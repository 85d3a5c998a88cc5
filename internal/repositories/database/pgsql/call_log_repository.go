package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/repayment_tracker/internal/models"
	"github.com/SscSPs/repayment_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertCallQuery = `
	INSERT INTO call_log (ledger_id, channel, contact_role, status, caller_id, called_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
`

type PgxCallLogRepository struct {
	BaseRepository
}

// newPgxCallLogRepository creates a new repository for the append-only call log.
func newPgxCallLogRepository(pool *pgxpool.Pool) portsrepo.CallLogRepositoryFacade {
	return &PgxCallLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCallLogRepository implements portsrepo.CallLogRepositoryFacade
var _ portsrepo.CallLogRepositoryFacade = (*PgxCallLogRepository)(nil)

func scanCall(row pgx.Row, m *models.CallLog) error {
	return row.Scan(
		&m.CallID,
		&m.LedgerID,
		&m.Channel,
		&m.ContactRole,
		&m.Status,
		&m.CallerID,
		&m.CalledAt,
		&m.LoanID,
	)
}

func (r *PgxCallLogRepository) queryCalls(ctx context.Context, query string, args ...any) ([]domain.CallLogEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query call log", err)
	}
	defer rows.Close()

	calls := []models.CallLog{}
	for rows.Next() {
		var m models.CallLog
		if err := scanCall(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan call log entry", err)
		}
		calls = append(calls, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating call log", err)
	}
	return mapping.ToDomainCallLogSlice(calls), nil
}

// ListCallsByLedger returns every call of a ledger entry ordered by (called_at, id).
func (r *PgxCallLogRepository) ListCallsByLedger(ctx context.Context, ledgerID int64) ([]domain.CallLogEntry, error) {
	query := `
		SELECT c.id, c.ledger_id, c.channel, c.contact_role, c.status, c.caller_id, c.called_at, l.loan_id
		FROM call_log c
		JOIN ledger_entries l ON l.id = c.ledger_id
		WHERE c.ledger_id = $1
		ORDER BY c.called_at, c.id;
	`
	return r.queryCalls(ctx, query, ledgerID)
}

// FindLatestCall returns the latest call for (channel, role). Equal timestamps are broken by the higher id.
func (r *PgxCallLogRepository) FindLatestCall(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (*domain.CallLogEntry, error) {
	query := `
		SELECT c.id, c.ledger_id, c.channel, c.contact_role, c.status, c.caller_id, c.called_at, l.loan_id
		FROM call_log c
		JOIN ledger_entries l ON l.id = c.ledger_id
		WHERE c.ledger_id = $1 AND c.channel = $2 AND c.contact_role = $3
		ORDER BY c.called_at DESC, c.id DESC
		LIMIT 1;
	`
	var m models.CallLog
	err := scanCall(r.Pool.QueryRow(ctx, query, ledgerID, string(channel), string(role)), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %s call for %s on ledger entry %d", channel, role, ledgerID))
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find latest call for ledger entry %d", ledgerID), err)
	}
	call := mapping.ToDomainCallLog(m)
	return &call, nil
}

// ListDemandCallHistory returns the DemandCalling history needed to diff the window starting at filter.Since:
// every call inside the window plus, per ledger entry, the calls at the last timestamp before it.
func (r *PgxCallLogRepository) ListDemandCallHistory(ctx context.Context, filter domain.ActivityFilter) ([]domain.CallLogEntry, error) {
	query := `
		SELECT c.id, c.ledger_id, c.channel, c.contact_role, c.status, c.caller_id, c.called_at, l.loan_id
		FROM call_log c
		JOIN ledger_entries l ON l.id = c.ledger_id
		WHERE c.channel = $1
		  AND c.ledger_id IN (
		      SELECT w.ledger_id FROM call_log w WHERE w.channel = $1 AND w.called_at >= $2)
		  AND c.called_at >= COALESCE((
		      SELECT MAX(p.called_at) FROM call_log p
		      WHERE p.ledger_id = c.ledger_id AND p.channel = $1 AND p.called_at < $2), $2)`
	args := []any{string(domain.ChannelDemandCalling), filter.Since}

	if filter.LoanID != "" {
		args = append(args, filter.LoanID)
		query += fmt.Sprintf(` AND l.loan_id = $%d`, len(args))
	}
	if filter.LedgerID > 0 {
		args = append(args, filter.LedgerID)
		query += fmt.Sprintf(` AND c.ledger_id = $%d`, len(args))
	}
	query += ` ORDER BY c.ledger_id, c.called_at, c.id;`

	return r.queryCalls(ctx, query, args...)
}

// AppendCall inserts a single call and returns it with its id.
func (r *PgxCallLogRepository) AppendCall(ctx context.Context, call domain.CallLogEntry) (*domain.CallLogEntry, error) {
	m := mapping.ToModelCallLog(call)
	err := r.Pool.QueryRow(ctx, insertCallQuery,
		m.LedgerID,
		m.Channel,
		m.ContactRole,
		m.Status,
		m.CallerID,
		m.CalledAt,
	).Scan(&m.CallID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to append call for ledger entry %d", call.LedgerID), err)
	}
	saved := mapping.ToDomainCallLog(m)
	return &saved, nil
}

// AppendCallsInTx inserts calls in one batch within tx and returns them with their ids.
func (r *PgxCallLogRepository) AppendCallsInTx(ctx context.Context, tx pgx.Tx, calls []domain.CallLogEntry) ([]domain.CallLogEntry, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, call := range calls {
		m := mapping.ToModelCallLog(call)
		batch.Queue(insertCallQuery,
			m.LedgerID,
			m.Channel,
			m.ContactRole,
			m.Status,
			m.CallerID,
			m.CalledAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	saved := make([]domain.CallLogEntry, len(calls))
	for i, call := range calls {
		if err := br.QueryRow().Scan(&call.CallID); err != nil {
			br.Close()
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to append call for ledger entry %d", call.LedgerID), err)
		}
		saved[i] = call
	}
	// Close the batch results to surface errors from any command.
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute call log batch", err)
	}
	return saved, nil
}
