package mapping

import (
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		LedgerID:        d.LedgerID,
		LoanID:          d.LoanID,
		DemandDate:      d.DemandDate,
		DemandNum:       d.DemandNum,
		DemandAmount:    d.DemandAmount,
		PrincipalAmount: d.PrincipalAmount,
		InterestAmount:  d.InterestAmount,
		PTPDate:         d.PTPDate,
		PaymentDate:     d.PaymentDate,
		PaymentMode:     d.PaymentMode,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.AmountCollected != nil {
		m.AmountCollected = decimal.NewNullDecimal(*d.AmountCollected)
	}
	if d.RepaymentStatus != nil {
		s := string(*d.RepaymentStatus)
		m.RepaymentStatus = &s
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		LedgerID:        m.LedgerID,
		LoanID:          m.LoanID,
		DemandDate:      m.DemandDate,
		DemandNum:       m.DemandNum,
		DemandAmount:    m.DemandAmount,
		PrincipalAmount: m.PrincipalAmount,
		InterestAmount:  m.InterestAmount,
		PTPDate:         m.PTPDate,
		PaymentDate:     m.PaymentDate,
		PaymentMode:     m.PaymentMode,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.AmountCollected.Valid {
		amount := m.AmountCollected.Decimal
		d.AmountCollected = &amount
	}
	if m.RepaymentStatus != nil {
		s := domain.RepaymentStatus(*m.RepaymentStatus)
		d.RepaymentStatus = &s
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainPendingApproval converts a joined model row to a domain PendingApproval
func ToDomainPendingApproval(m models.PendingApproval) domain.PendingApproval {
	return domain.PendingApproval{
		Ledger:        ToDomainLedgerEntry(m.LedgerEntry),
		ApplicantName: deref(m.ApplicantName),
		Branch:        deref(m.Branch),
		Dealer:        deref(m.Dealer),
		Lender:        deref(m.Lender),
		RMName:        deref(m.RMName),
		TLName:        deref(m.TLName),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
