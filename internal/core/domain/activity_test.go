package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestDiffAudit(t *testing.T) {
	at := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		old, new  domain.LedgerSnapshot
		wantKinds []domain.ActivityKind
	}{
		{
			name:      "nothing changed",
			old:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			new:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			wantKinds: nil,
		},
		{
			name:      "null to null is not a change",
			old:       domain.LedgerSnapshot{},
			new:       domain.LedgerSnapshot{},
			wantKinds: nil,
		},
		{
			name:      "status and ptp changed",
			old:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			new:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusPartiallyPaid), PTPDate: strPtr("2025-09-10")},
			wantKinds: []domain.ActivityKind{domain.ActivityStatus, domain.ActivityPTPDate},
		},
		{
			name:      "equal amounts with different scale",
			old:       domain.LedgerSnapshot{AmountCollected: decimalPtr(decimal.RequireFromString("1500"))},
			new:       domain.LedgerSnapshot{AmountCollected: decimalPtr(decimal.RequireFromString("1500.00"))},
			wantKinds: nil,
		},
		{
			name:      "amount set from null",
			old:       domain.LedgerSnapshot{},
			new:       domain.LedgerSnapshot{AmountCollected: decimalPtr(decimal.NewFromInt(200))},
			wantKinds: []domain.ActivityKind{domain.ActivityAmountCollected},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := domain.DiffAudit(domain.AuditRecord{AuditID: 9, LedgerID: 4, LoanID: "LN-4", Old: tc.old, New: tc.new, ChangedAt: at})

			var kinds []domain.ActivityKind
			for _, ev := range events {
				kinds = append(kinds, ev.Kind)
				assert.Equal(t, "audit-9", ev.ID)
				assert.Equal(t, domain.SystemActor, ev.Actor)
				assert.Equal(t, at, ev.Timestamp)
			}
			assert.Equal(t, tc.wantKinds, kinds)
		})
	}
}

func TestDiffAudit_FormatsAmounts(t *testing.T) {
	events := domain.DiffAudit(domain.AuditRecord{
		AuditID:   1,
		ChangedBy: "agent-7",
		Old:       domain.LedgerSnapshot{AmountCollected: decimalPtr(decimal.NewFromInt(100))},
		New:       domain.LedgerSnapshot{AmountCollected: decimalPtr(decimal.RequireFromString("250.5"))},
	})

	require.Len(t, events, 1)
	assert.Equal(t, "agent-7", events[0].Actor)
	assert.Equal(t, "100.00", *events[0].From)
	assert.Equal(t, "250.50", *events[0].To)
}

func TestDiffDemandCalls(t *testing.T) {
	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	before := since.Add(-24 * time.Hour)

	demand := func(id, ledger int64, status domain.DemandCallingStatus, at time.Time) domain.CallLogEntry {
		return domain.CallLogEntry{CallID: id, LedgerID: ledger, LoanID: "LN", Channel: domain.ChannelDemandCalling, Role: domain.RoleApplicant, Status: string(status), CallerID: "agent", CalledAt: at}
	}

	calls := []domain.CallLogEntry{
		demand(1, 10, domain.DemandNoResponse, before),
		demand(2, 10, domain.DemandNoResponse, since.Add(time.Hour)),
		demand(3, 10, domain.DemandPTPTaken, since.Add(2*time.Hour)),
		demand(4, 20, domain.DemandCashCollected, since.Add(3*time.Hour)),
		{CallID: 5, LedgerID: 10, Channel: domain.ChannelContactCalling, Role: domain.RoleApplicant, Status: string(domain.ContactAnswered), CalledAt: since.Add(4 * time.Hour)},
	}

	events := domain.DiffDemandCalls(calls, since)

	require.Len(t, events, 2)

	byID := map[string]domain.ActivityEvent{}
	for _, ev := range events {
		byID[ev.ID] = ev
		assert.Equal(t, domain.ActivityCallingStatus, ev.Kind)
	}

	// Call 2 repeats the pre-window status and is not a change.
	require.Contains(t, byID, "call-3")
	assert.Equal(t, string(domain.DemandNoResponse), *byID["call-3"].From)
	assert.Equal(t, string(domain.DemandPTPTaken), *byID["call-3"].To)

	require.Contains(t, byID, "call-4")
	assert.Nil(t, byID["call-4"].From)
}

func TestMergeActivity_SortedDescendingWithoutNoOps(t *testing.T) {
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	audits := []domain.ActivityEvent{
		{ID: "audit-1", Kind: domain.ActivityStatus, From: strPtr("Future"), To: strPtr("Overdue"), Timestamp: base.Add(time.Hour)},
		{ID: "audit-2", Kind: domain.ActivityPTPDate, From: strPtr("2025-09-10"), To: strPtr("2025-09-10"), Timestamp: base.Add(5 * time.Hour)},
		{ID: "audit-3", Kind: domain.ActivityPTPDate, From: nil, To: nil, Timestamp: base.Add(6 * time.Hour)},
	}
	calls := []domain.ActivityEvent{
		{ID: "call-1", Kind: domain.ActivityCallingStatus, From: nil, To: strPtr("PTP taken"), Timestamp: base.Add(3 * time.Hour)},
		{ID: "call-2", Kind: domain.ActivityCallingStatus, From: strPtr("PTP taken"), To: strPtr("no response"), Timestamp: base.Add(2 * time.Hour)},
	}

	merged := domain.MergeActivity(10, audits, calls)

	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i].Timestamp.After(merged[i-1].Timestamp), "feed must be non-increasing")
	}
	for _, ev := range merged {
		if ev.From != nil && ev.To != nil {
			assert.NotEqual(t, *ev.From, *ev.To)
		}
	}
	assert.Equal(t, "call-1", merged[0].ID)

	assert.Len(t, domain.MergeActivity(2, audits, calls), 2)
}

func TestMergeActivity_TiesKeepSourceOrder(t *testing.T) {
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	audits := []domain.ActivityEvent{
		{ID: "audit-7", Kind: domain.ActivityStatus, From: strPtr("Overdue"), To: strPtr("Partially Paid"), Timestamp: at},
		{ID: "audit-7", Kind: domain.ActivityAmountCollected, From: nil, To: strPtr("1500.00"), Timestamp: at},
	}
	calls := []domain.ActivityEvent{
		{ID: "call-9", Kind: domain.ActivityCallingStatus, From: nil, To: strPtr("PTP taken"), Timestamp: at},
	}

	merged := domain.MergeActivity(10, audits, calls)

	require.Len(t, merged, 3)
	assert.Equal(t, domain.ActivityStatus, merged[0].Kind)
	assert.Equal(t, domain.ActivityAmountCollected, merged[1].Kind)
	assert.Equal(t, "call-9", merged[2].ID)

	truncated := domain.MergeActivity(2, audits, calls)
	require.Len(t, truncated, 2)
	assert.Equal(t, "audit-7", truncated[1].ID)
}
