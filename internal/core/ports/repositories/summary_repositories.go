package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
)

// SummaryRepository defines the aggregation queries behind the dashboard
type SummaryRepository interface {
	// CountByStatus groups the entries matching filter by repayment status. A nil status is its own group.
	CountByStatus(ctx context.Context, filter domain.SummaryFilter) ([]domain.StatusCount, error)

	// GetFilterOptions returns the distinct values offered by the dashboard filters.
	GetFilterOptions(ctx context.Context, today time.Time) (*domain.FilterOptions, error)
}

// SummaryCache stores computed summaries. Invalidate drops every cached entry.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*domain.Summary, bool, error)
	Set(ctx context.Context, key string, summary domain.Summary) error
	Invalidate(ctx context.Context) error
}

// LedgerLocker serializes writers of the same ledger entry across processes.
// Lock returns a release function, or apperrors.ErrConflict when the lock could not be obtained.
type LedgerLocker interface {
	Lock(ctx context.Context, ledgerID int64) (release func(context.Context), err error)
}
