package domain

import "time"

// CallLogEntry records one call attempt. Entries are only ever inserted.
type CallLogEntry struct {
	CallID   int64          `json:"callID"`
	LedgerID int64          `json:"ledgerID"`
	Channel  CallingChannel `json:"channel"`
	Role     ContactRole    `json:"role"`
	Status   string         `json:"status"`
	CallerID string         `json:"callerID"`
	CalledAt time.Time      `json:"calledAt"`
	// LoanID is filled on reads that join the ledger; it is not stored on the call row.
	LoanID string `json:"loanID,omitempty"`
}

// After orders call entries by timestamp, then by id for entries logged in the same instant.
func (c CallLogEntry) After(other CallLogEntry) bool {
	if !c.CalledAt.Equal(other.CalledAt) {
		return c.CalledAt.After(other.CalledAt)
	}
	return c.CallID > other.CallID
}

// Matches reports whether the entry belongs to the (channel, role) key.
func (c CallLogEntry) Matches(channel CallingChannel, role ContactRole) bool {
	return c.Channel == channel && c.Role == role
}

// LatestCall returns the most recent entry for (channel, role), or nil.
// DemandCalling only ever targets the applicant, so any other role yields nil.
func LatestCall(entries []CallLogEntry, channel CallingChannel, role ContactRole) *CallLogEntry {
	if channel == ChannelDemandCalling && role != RoleApplicant {
		return nil
	}
	var latest *CallLogEntry
	for i := range entries {
		e := entries[i]
		if !e.Matches(channel, role) {
			continue
		}
		if latest == nil || e.After(*latest) {
			latest = &e
		}
	}
	return latest
}

// LatestCallStatus is LatestCall reduced to the status string.
func LatestCallStatus(entries []CallLogEntry, channel CallingChannel, role ContactRole) (string, bool) {
	latest := LatestCall(entries, channel, role)
	if latest == nil {
		return "", false
	}
	return latest.Status, true
}

// BuildStatusSnapshot derives the current calling statuses of every channel and role.
func BuildStatusSnapshot(entry LedgerEntry, calls []CallLogEntry) StatusSnapshot {
	snap := StatusSnapshot{
		Ledger:         entry,
		DemandCalling:  LatestCall(calls, ChannelDemandCalling, RoleApplicant),
		ContactCalling: make(map[ContactRole]*CallLogEntry, len(ContactRoles)),
	}
	for _, role := range ContactRoles {
		snap.ContactCalling[role] = LatestCall(calls, ChannelContactCalling, role)
	}
	return snap
}
