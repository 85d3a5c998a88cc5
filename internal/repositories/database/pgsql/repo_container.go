package pgsql

import (
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. The summary cache and
// ledger locker are left nil; callers attach Redis-backed ones when Redis is configured.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		CallLogRepo:  newPgxCallLogRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		SummaryRepo:  newPgxSummaryRepository(dbPool),
	}
}
