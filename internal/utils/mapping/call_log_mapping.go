package mapping

import (
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/models"
)

// ToModelCallLog converts a domain CallLogEntry to a model CallLog
func ToModelCallLog(d domain.CallLogEntry) models.CallLog {
	return models.CallLog{
		CallID:      d.CallID,
		LedgerID:    d.LedgerID,
		Channel:     string(d.Channel),
		ContactRole: string(d.Role),
		Status:      d.Status,
		CallerID:    d.CallerID,
		CalledAt:    d.CalledAt,
		LoanID:      d.LoanID,
	}
}

// ToDomainCallLog converts a model CallLog to a domain CallLogEntry
func ToDomainCallLog(m models.CallLog) domain.CallLogEntry {
	return domain.CallLogEntry{
		CallID:   m.CallID,
		LedgerID: m.LedgerID,
		Channel:  domain.CallingChannel(m.Channel),
		Role:     domain.ContactRole(m.ContactRole),
		Status:   m.Status,
		CallerID: m.CallerID,
		CalledAt: m.CalledAt,
		LoanID:   m.LoanID,
	}
}

// ToDomainCallLogSlice converts a slice of model CallLogs to domain CallLogEntries
func ToDomainCallLogSlice(ms []models.CallLog) []domain.CallLogEntry {
	ds := make([]domain.CallLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCallLog(m)
	}
	return ds
}
