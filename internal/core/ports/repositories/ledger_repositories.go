package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for repayment ledger entries
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger entry by its surrogate id.
	FindLedgerByID(ctx context.Context, ledgerID int64) (*domain.LedgerEntry, error)

	// FindLedgerByLoanAndDate retrieves the entry of a loan for one billing date.
	// More than one matching row is reported as a validation error.
	FindLedgerByLoanAndDate(ctx context.Context, loanID string, demandDate time.Time) (*domain.LedgerEntry, error)

	// ListLedgersByLoan returns every entry of a loan ordered by demand date.
	ListLedgersByLoan(ctx context.Context, loanID string) ([]domain.LedgerEntry, error)

	// ListPendingApprovals retrieves a page of entries in Paid(PendingApproval) joined to their facet names.
	// It returns the entries, a token for the next page, and an error.
	ListPendingApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.PendingApproval, *string, error)

	// ListOverdueCandidates returns ids of Future entries whose demand date is before asOf.
	ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]int64, error)
}

// LedgerWriter defines write operations for ledger entries. Every method runs inside the given transaction.
type LedgerWriter interface {
	// FindLedgerByIDForUpdate retrieves a ledger entry and locks its row until the transaction ends.
	FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID int64) (*domain.LedgerEntry, error)

	// UpdateLedgerInTx persists the mutable fields of entry if its stored version still equals expectedVersion.
	// A version mismatch is reported as apperrors.ErrConflict. The returned entry carries the new version.
	UpdateLedgerInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, expectedVersion int64) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
