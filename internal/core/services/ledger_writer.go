package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// ledgerMutation computes the next state of a locked ledger entry. It returns the entry to
// persist, or nil to leave the row untouched, and the calls to append in the same transaction.
type ledgerMutation func(ctx context.Context, tx pgx.Tx, current domain.LedgerEntry) (*domain.LedgerEntry, []domain.CallLogEntry, error)

// ledgerWriter is the single write path for ledger entries. Writers of one entry are
// serialized by the optional distributed lock, the row lock and the version check.
type ledgerWriter struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	callRepo   portsrepo.CallLogWriter
	auditRepo  portsrepo.AuditWriter
	cache      portsrepo.SummaryCache
	locker     portsrepo.LedgerLocker
}

func newLedgerWriter(repos portsrepo.RepositoryProvider) ledgerWriter {
	return ledgerWriter{
		ledgerRepo: repos.LedgerRepo,
		callRepo:   repos.CallLogRepo,
		auditRepo:  repos.AuditRepo,
		cache:      repos.SummaryCache,
		locker:     repos.Locker,
	}
}

// mutate runs fn on the locked entry and commits its result together with an audit snapshot.
// It returns the entry as stored after the transaction and the appended calls.
func (w *ledgerWriter) mutate(ctx context.Context, ledgerID int64, actorID string, fn ledgerMutation) (*domain.LedgerEntry, []domain.CallLogEntry, error) {
	if w.locker != nil {
		release, err := w.locker.Lock(ctx, ledgerID)
		if err != nil {
			return nil, nil, err
		}
		// Release even when the request context is already cancelled.
		defer release(context.WithoutCancel(ctx))
	}

	tx, err := w.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Ignored once the transaction has been committed
	defer w.ledgerRepo.Rollback(ctx, tx)

	current, err := w.ledgerRepo.FindLedgerByIDForUpdate(ctx, tx, ledgerID)
	if err != nil {
		return nil, nil, err
	}

	next, calls, err := fn(ctx, tx, *current)
	if err != nil {
		return nil, nil, err
	}

	result := current
	if next != nil {
		updated, err := w.ledgerRepo.UpdateLedgerInTx(ctx, tx, *next, current.Version)
		if err != nil {
			return nil, nil, err
		}
		audit := domain.AuditRecord{
			LedgerID:  current.LedgerID,
			LoanID:    current.LoanID,
			Old:       current.Snapshot(),
			New:       updated.Snapshot(),
			ChangedBy: actorID,
			ChangedAt: updated.LastUpdatedAt,
		}
		if err := w.auditRepo.SaveAuditInTx(ctx, tx, audit); err != nil {
			return nil, nil, err
		}
		result = updated
	}

	var saved []domain.CallLogEntry
	if len(calls) > 0 {
		if saved, err = w.callRepo.AppendCallsInTx(ctx, tx, calls); err != nil {
			return nil, nil, err
		}
	}

	if err := w.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	if next != nil {
		w.invalidateSummaries(ctx)
	}
	return result, saved, nil
}

// invalidateSummaries drops cached summaries after a committed ledger write.
// A failure only delays freshness until the cache TTL expires.
func (w *ledgerWriter) invalidateSummaries(ctx context.Context) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Invalidate(ctx); err != nil {
		w.LogWarn(ctx, "Failed to invalidate summary cache", slog.String("error", err.Error()))
	}
}
