package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/repayment_tracker/internal/models"
	"github.com/SscSPs/repayment_tracker/internal/utils/mapping"
	"github.com/SscSPs/repayment_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerColumns is the column list scanned by scanLedger, aliased on l.
const ledgerColumns = `
	l.id, l.loan_id, l.demand_date, l.demand_num, l.demand_amount, l.principal_amount, l.interest_amount,
	l.amount_collected, l.ptp_date, l.repayment_status, l.payment_date, l.payment_mode,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, l.version`

// facetJoins attaches the loan facets to ledger_entries l. Entries without a loan row keep null facets.
const facetJoins = `
	LEFT JOIN loans lo ON lo.loan_id = l.loan_id
	LEFT JOIN branches b ON b.id = lo.branch_id
	LEFT JOIN dealers d ON d.id = lo.dealer_id
	LEFT JOIN lenders le ON le.id = lo.lender_id
	LEFT JOIN staff rm ON rm.id = lo.rm_id
	LEFT JOIN staff tl ON tl.id = lo.tl_id`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for repayment ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// scanLedger scans ledgerColumns followed by any extra destinations.
func scanLedger(row pgx.Row, m *models.LedgerEntry, extra ...any) error {
	dest := []any{
		&m.LedgerID,
		&m.LoanID,
		&m.DemandDate,
		&m.DemandNum,
		&m.DemandAmount,
		&m.PrincipalAmount,
		&m.InterestAmount,
		&m.AmountCollected,
		&m.PTPDate,
		&m.RepaymentStatus,
		&m.PaymentDate,
		&m.PaymentMode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	}
	return row.Scan(append(dest, extra...)...)
}

// FindLedgerByID retrieves a ledger entry by its surrogate id.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID int64) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries l WHERE l.id = $1;`

	var m models.LedgerEntry
	err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ledger entry %d", ledgerID))
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find ledger entry %d", ledgerID), err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindLedgerByLoanAndDate retrieves the entry of a loan for one billing date.
func (r *PgxLedgerRepository) FindLedgerByLoanAndDate(ctx context.Context, loanID string, demandDate time.Time) (*domain.LedgerEntry, error) {
	// Two rows are enough to detect an ambiguous selector.
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries l
		WHERE l.loan_id = $1 AND l.demand_date = $2
		ORDER BY l.id
		LIMIT 2;
	`
	rows, err := r.Pool.Query(ctx, query, loanID, domain.CivilDate(demandDate))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entry for loan "+loanID, err)
	}
	defer rows.Close()

	var found []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := scanLedger(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry for loan "+loanID, err)
		}
		found = append(found, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entries for loan "+loanID, err)
	}

	switch len(found) {
	case 0:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ledger entry for loan %s on %s", loanID, demandDate.Format(domain.DateLayout)))
	case 1:
		entry := mapping.ToDomainLedgerEntry(found[0])
		return &entry, nil
	default:
		return nil, apperrors.NewValidationError("loan %s has more than one ledger entry on %s, select it by ledger id", loanID, demandDate.Format(domain.DateLayout))
	}
}

// ListLedgersByLoan returns every entry of a loan ordered by demand date.
func (r *PgxLedgerRepository) ListLedgersByLoan(ctx context.Context, loanID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries l
		WHERE l.loan_id = $1
		ORDER BY l.demand_date, l.id;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger entries for loan "+loanID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := scanLedger(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry for loan "+loanID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entries for loan "+loanID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListPendingApprovals retrieves a page of Paid(PendingApproval) entries using token-based pagination.
// Pages are ordered by (demand_date, id); the token holds the last pair of the previous page.
func (r *PgxLedgerRepository) ListPendingApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.PendingApproval, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + ledgerColumns + `,
		       lo.applicant_name, b.name, d.name, le.name, rm.name, tl.name
		FROM ledger_entries l` + facetJoins + `
		WHERE l.repayment_status = $1`
	args := []any{string(domain.StatusPaidPendingApproval)}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeLedgerCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (l.demand_date, l.id) > ($2, $3)`
		args = append(args, lastDate, lastID)
	}
	query += fmt.Sprintf(` ORDER BY l.demand_date, l.id LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list pending approvals", err)
	}
	defer rows.Close()

	page := make([]models.PendingApproval, 0, fetchLimit)
	for rows.Next() {
		var m models.PendingApproval
		if err := scanLedger(rows, &m.LedgerEntry,
			&m.ApplicantName, &m.Branch, &m.Dealer, &m.Lender, &m.RMName, &m.TLName,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan pending approval", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating pending approvals", err)
	}

	var nextTokenVal *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeLedgerCursor(last.DemandDate, last.LedgerID)
		nextTokenVal = &token
		page = page[:limit]
	}

	result := make([]domain.PendingApproval, len(page))
	for i, m := range page {
		result[i] = mapping.ToDomainPendingApproval(m)
	}
	return result, nextTokenVal, nil
}

// ListOverdueCandidates returns ids of Future entries whose demand date is before asOf.
func (r *PgxLedgerRepository) ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]int64, error) {
	query := `
		SELECT id
		FROM ledger_entries
		WHERE repayment_status = $1 AND demand_date < $2
		ORDER BY demand_date, id;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.StatusFuture), domain.CivilDate(asOf))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list overdue candidates", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan overdue candidates", err)
	}
	return ids, nil
}

// FindLedgerByIDForUpdate retrieves a ledger entry and locks its row until tx ends.
func (r *PgxLedgerRepository) FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID int64) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries l WHERE l.id = $1 FOR UPDATE;`

	var m models.LedgerEntry
	err := scanLedger(tx.QueryRow(ctx, query, ledgerID), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ledger entry %d", ledgerID))
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock ledger entry %d", ledgerID), err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// UpdateLedgerInTx writes the mutable fields of entry guarded by its version.
func (r *PgxLedgerRepository) UpdateLedgerInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, expectedVersion int64) (*domain.LedgerEntry, error) {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		UPDATE ledger_entries
		SET amount_collected = $2,
		    ptp_date = $3,
		    repayment_status = $4,
		    payment_date = $5,
		    payment_mode = $6,
		    last_updated_at = $7,
		    last_updated_by = $8,
		    version = version + 1
		WHERE id = $1 AND version = $9
		RETURNING version;
	`
	var newVersion int64
	err := tx.QueryRow(ctx, query,
		m.LedgerID,
		m.AmountCollected,
		m.PTPDate,
		m.RepaymentStatus,
		m.PaymentDate,
		m.PaymentMode,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		expectedVersion,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ledger entry %d changed since version %d", apperrors.ErrConflict, entry.LedgerID, expectedVersion)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to update ledger entry %d", entry.LedgerID), err)
	}

	updated := entry
	updated.Version = newVersion
	return &updated, nil
}
