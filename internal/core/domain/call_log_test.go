package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactCall(id int64, role domain.ContactRole, status domain.ContactCallingStatus, at time.Time) domain.CallLogEntry {
	return domain.CallLogEntry{
		CallID:   id,
		LedgerID: 3,
		Channel:  domain.ChannelContactCalling,
		Role:     role,
		Status:   string(status),
		CallerID: "agent-1",
		CalledAt: at,
	}
}

func TestLatestCallStatus_MaxTimestampWins(t *testing.T) {
	t1 := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	// Insertion order deliberately differs from time order.
	calls := []domain.CallLogEntry{
		contactCall(1, domain.RoleApplicant, domain.ContactNotCalled, t1),
		contactCall(3, domain.RoleApplicant, domain.ContactAnswered, t3),
		contactCall(2, domain.RoleApplicant, domain.ContactNotAnswered, t2),
	}

	status, ok := domain.LatestCallStatus(calls, domain.ChannelContactCalling, domain.RoleApplicant)
	require.True(t, ok)
	assert.Equal(t, string(domain.ContactAnswered), status)
}

func TestLatestCallStatus_TieBreaksOnHighestID(t *testing.T) {
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	calls := []domain.CallLogEntry{
		contactCall(8, domain.RoleGuarantor, domain.ContactAnswered, at),
		contactCall(7, domain.RoleGuarantor, domain.ContactNotAnswered, at),
	}

	status, ok := domain.LatestCallStatus(calls, domain.ChannelContactCalling, domain.RoleGuarantor)
	require.True(t, ok)
	assert.Equal(t, string(domain.ContactAnswered), status)
}

func TestLatestCallStatus_KeysAreIndependent(t *testing.T) {
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	calls := []domain.CallLogEntry{
		contactCall(1, domain.RoleApplicant, domain.ContactAnswered, at),
		contactCall(2, domain.RoleReference, domain.ContactNotAnswered, at.Add(time.Minute)),
		{CallID: 3, LedgerID: 3, Channel: domain.ChannelDemandCalling, Role: domain.RoleApplicant, Status: string(domain.DemandPTPTaken), CalledAt: at.Add(2 * time.Minute)},
	}

	tests := []struct {
		name    string
		channel domain.CallingChannel
		role    domain.ContactRole
		want    string
		found   bool
	}{
		{"applicant contact", domain.ChannelContactCalling, domain.RoleApplicant, string(domain.ContactAnswered), true},
		{"reference contact", domain.ChannelContactCalling, domain.RoleReference, string(domain.ContactNotAnswered), true},
		{"guarantor never called", domain.ChannelContactCalling, domain.RoleGuarantor, "", false},
		{"demand applicant", domain.ChannelDemandCalling, domain.RoleApplicant, string(domain.DemandPTPTaken), true},
		{"demand other role is empty, not an error", domain.ChannelDemandCalling, domain.RoleCoApplicant, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := domain.LatestCallStatus(calls, tc.channel, tc.role)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildStatusSnapshot_FillsEveryRole(t *testing.T) {
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	entry := domain.LedgerEntry{LedgerID: 3, LoanID: "LN-3"}
	calls := []domain.CallLogEntry{
		contactCall(1, domain.RoleCoApplicant, domain.ContactAnswered, at),
	}

	snap := domain.BuildStatusSnapshot(entry, calls)

	assert.Nil(t, snap.DemandCalling)
	require.Len(t, snap.ContactCalling, len(domain.ContactRoles))
	require.NotNil(t, snap.ContactCalling[domain.RoleCoApplicant])
	assert.Equal(t, int64(1), snap.ContactCalling[domain.RoleCoApplicant].CallID)
	assert.Nil(t, snap.ContactCalling[domain.RoleApplicant])
}
