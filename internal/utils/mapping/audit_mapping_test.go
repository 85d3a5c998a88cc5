package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAuditRoundTrip(t *testing.T) {
	overdue, pending := domain.StatusOverdue, domain.StatusPaidPendingApproval
	ptp := "2025-09-10"
	amount := decimal.RequireFromString("1500.50")
	changedAt := time.Date(2025, 9, 5, 10, 30, 0, 0, time.UTC)

	rec := domain.AuditRecord{
		LedgerID:  7,
		LoanID:    "LN-7",
		Old:       domain.LedgerSnapshot{RepaymentStatus: &overdue},
		New:       domain.LedgerSnapshot{RepaymentStatus: &pending, PTPDate: &ptp, AmountCollected: &amount},
		ChangedBy: "agent-1",
		ChangedAt: changedAt,
	}

	m, err := ToModelLedgerAudit(rec)
	require.NoError(t, err)
	assert.Equal(t, models.AuditActionUpdate, m.Action)
	assert.JSONEq(t, `{"repayment_status":"Overdue","ptp_date":null,"amount_collected":null}`, string(m.OldData))
	require.NotNil(t, m.ChangedBy)

	back, err := ToDomainAuditRecord(m)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", back.ChangedBy)
	assert.Equal(t, overdue, *back.Old.RepaymentStatus)
	assert.Nil(t, back.Old.PTPDate)
	assert.Equal(t, pending, *back.New.RepaymentStatus)
	assert.Equal(t, ptp, *back.New.PTPDate)
	require.NotNil(t, back.New.AmountCollected)
	assert.True(t, amount.Equal(*back.New.AmountCollected))
}

func TestToDomainAuditRecord_SystemRowAndEmptySnapshot(t *testing.T) {
	back, err := ToDomainAuditRecord(models.LedgerAudit{
		AuditID: 3,
		NewData: []byte(`{"repayment_status":"Overdue"}`),
	})
	require.NoError(t, err)
	assert.Empty(t, back.ChangedBy)
	assert.Equal(t, domain.LedgerSnapshot{}, back.Old)
	assert.Equal(t, domain.StatusOverdue, *back.New.RepaymentStatus)
}

func TestToDomainAuditRecord_CorruptSnapshot(t *testing.T) {
	_, err := ToDomainAuditRecord(models.LedgerAudit{AuditID: 9, OldData: []byte(`{not json`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit 9")
}
