package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/repayment_tracker/internal/core/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActivityService(now time.Time) (*MockAuditRepository, *MockCallLogRepository, func(dto.ActivityQueryParams) ([]domain.ActivityEvent, error)) {
	auditRepo := new(MockAuditRepository)
	callRepo := new(MockCallLogRepository)
	svc := services.NewActivityService(portsrepo.RepositoryProvider{AuditRepo: auditRepo, CallLogRepo: callRepo},
		services.WithClock(func() time.Time { return now }),
		services.WithActivityDefaults(50, 30))
	return auditRepo, callRepo, func(p dto.ActivityQueryParams) ([]domain.ActivityEvent, error) {
		return svc.GetRecentActivity(context.Background(), p)
	}
}

func TestGetRecentActivity_Bounds(t *testing.T) {
	now := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		params dto.ActivityQueryParams
	}{
		{"limit zero", dto.ActivityQueryParams{Limit: intPtr(0)}},
		{"limit too large", dto.ActivityQueryParams{Limit: intPtr(501)}},
		{"since zero", dto.ActivityQueryParams{SinceDays: intPtr(0)}},
		{"since too large", dto.ActivityQueryParams{SinceDays: intPtr(366)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auditRepo, _, get := newActivityService(now)
			_, err := get(tc.params)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			auditRepo.AssertNotCalled(t, "ListAudits", mock.Anything, mock.Anything)
		})
	}
}

func TestGetRecentActivity_DefaultsAndWindow(t *testing.T) {
	now := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	auditRepo, callRepo, get := newActivityService(now)

	want := domain.ActivityFilter{LoanID: "LN-1", Since: now.Add(-30 * 24 * time.Hour), Limit: 50}
	auditRepo.On("ListAudits", mock.Anything, want).Return([]domain.AuditRecord{}, nil).Once()
	callRepo.On("ListDemandCallHistory", mock.Anything, want).Return([]domain.CallLogEntry{}, nil).Once()

	events, err := get(dto.ActivityQueryParams{LoanID: "LN-1"})

	require.NoError(t, err)
	assert.Empty(t, events)
	auditRepo.AssertExpectations(t)
	callRepo.AssertExpectations(t)
}

func TestGetRecentActivity_MergesSourcesNewestFirst(t *testing.T) {
	now := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	auditRepo, callRepo, get := newActivityService(now)

	amount := decimal.NewFromInt(1500)
	audits := []domain.AuditRecord{
		{
			AuditID:   1,
			LedgerID:  10,
			LoanID:    "LN-1",
			Old:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			New:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusPaidPendingApproval), AmountCollected: &amount},
			ChangedBy: "agent-1",
			ChangedAt: now.Add(-2 * time.Hour),
		},
		{
			// Only untracked fields changed.
			AuditID:   2,
			LedgerID:  10,
			LoanID:    "LN-1",
			Old:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			New:       domain.LedgerSnapshot{RepaymentStatus: statusPtr(domain.StatusOverdue)},
			ChangedAt: now.Add(-3 * time.Hour),
		},
	}
	calls := []domain.CallLogEntry{
		{CallID: 5, LedgerID: 10, LoanID: "LN-1", Channel: domain.ChannelDemandCalling, Role: domain.RoleApplicant, Status: "no response", CallerID: "agent-2", CalledAt: now.Add(-40 * 24 * time.Hour)},
		{CallID: 6, LedgerID: 10, LoanID: "LN-1", Channel: domain.ChannelDemandCalling, Role: domain.RoleApplicant, Status: "no response", CallerID: "agent-2", CalledAt: now.Add(-5 * time.Hour)},
		{CallID: 7, LedgerID: 10, LoanID: "LN-1", Channel: domain.ChannelDemandCalling, Role: domain.RoleApplicant, Status: "PTP taken", CallerID: "agent-2", CalledAt: now.Add(-1 * time.Hour)},
	}
	auditRepo.On("ListAudits", mock.Anything, mock.Anything).Return(audits, nil).Once()
	callRepo.On("ListDemandCallHistory", mock.Anything, mock.Anything).Return(calls, nil).Once()

	events, err := get(dto.ActivityQueryParams{})

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.ActivityCallingStatus, events[0].Kind)
	assert.Equal(t, "no response", *events[0].From)
	assert.Equal(t, "PTP taken", *events[0].To)
	for i, ev := range events {
		if i > 0 {
			assert.False(t, ev.Timestamp.After(events[i-1].Timestamp), "feed is newest first")
		}
		if ev.From != nil && ev.To != nil {
			assert.NotEqual(t, *ev.From, *ev.To)
		}
	}
}

func TestGetRecentActivity_Truncates(t *testing.T) {
	now := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	auditRepo, callRepo, get := newActivityService(now)

	var audits []domain.AuditRecord
	for i := 0; i < 5; i++ {
		d := decimal.NewFromInt(int64(100 * (i + 1)))
		audits = append(audits, domain.AuditRecord{
			AuditID:   int64(i + 1),
			LedgerID:  1,
			New:       domain.LedgerSnapshot{AmountCollected: &d},
			ChangedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	auditRepo.On("ListAudits", mock.Anything, mock.Anything).Return(audits, nil).Once()
	callRepo.On("ListDemandCallHistory", mock.Anything, mock.Anything).Return(nil, nil).Once()

	events, err := get(dto.ActivityQueryParams{Limit: intPtr(2)})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "audit-1", events[0].ID)
	assert.Equal(t, domain.SystemActor, events[0].Actor)
}
