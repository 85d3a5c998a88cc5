package repositories

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditReader defines read operations for ledger audit snapshots
type AuditReader interface {
	// ListAudits returns audit pairs matching filter, newest first. Only pairs in which at least
	// one tracked field differs are returned, so filter.Limit bounds useful rows.
	ListAudits(ctx context.Context, filter domain.ActivityFilter) ([]domain.AuditRecord, error)
}

// AuditWriter defines write operations for ledger audit snapshots
type AuditWriter interface {
	SaveAuditInTx(ctx context.Context, tx pgx.Tx, rec domain.AuditRecord) error
}

// AuditRepositoryFacade combines all audit repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
