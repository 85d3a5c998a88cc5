package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/models"
)

// ToModelLedgerAudit converts a domain AuditRecord to a model LedgerAudit, encoding both snapshots as JSON
func ToModelLedgerAudit(d domain.AuditRecord) (models.LedgerAudit, error) {
	oldData, err := json.Marshal(d.Old)
	if err != nil {
		return models.LedgerAudit{}, fmt.Errorf("failed to encode old snapshot: %w", err)
	}
	newData, err := json.Marshal(d.New)
	if err != nil {
		return models.LedgerAudit{}, fmt.Errorf("failed to encode new snapshot: %w", err)
	}
	m := models.LedgerAudit{
		AuditID:   d.AuditID,
		LedgerID:  d.LedgerID,
		LoanID:    d.LoanID,
		Action:    models.AuditActionUpdate,
		OldData:   oldData,
		NewData:   newData,
		ChangedAt: d.ChangedAt,
	}
	if d.ChangedBy != "" {
		by := d.ChangedBy
		m.ChangedBy = &by
	}
	return m, nil
}

// ToDomainAuditRecord converts a model LedgerAudit to a domain AuditRecord. Empty snapshots decode to all-null fields.
func ToDomainAuditRecord(m models.LedgerAudit) (domain.AuditRecord, error) {
	d := domain.AuditRecord{
		AuditID:   m.AuditID,
		LedgerID:  m.LedgerID,
		LoanID:    m.LoanID,
		ChangedBy: deref(m.ChangedBy),
		ChangedAt: m.ChangedAt,
	}
	if len(m.OldData) > 0 {
		if err := json.Unmarshal(m.OldData, &d.Old); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("failed to decode old snapshot of audit %d: %w", m.AuditID, err)
		}
	}
	if len(m.NewData) > 0 {
		if err := json.Unmarshal(m.NewData, &d.New); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("failed to decode new snapshot of audit %d: %w", m.AuditID, err)
		}
	}
	return d, nil
}
