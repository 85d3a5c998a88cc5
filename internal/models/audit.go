package models

import "time"

// AuditActionUpdate is the only action written to ledger_audit.
const AuditActionUpdate = "UPDATE"

// LedgerAudit is a row of ledger_audit. OldData and NewData hold JSONB snapshots.
type LedgerAudit struct {
	AuditID   int64     `json:"auditID"`
	LedgerID  int64     `json:"ledgerID"`
	LoanID    string    `json:"loanID"`
	Action    string    `json:"action"`
	OldData   []byte    `json:"oldData"`
	NewData   []byte    `json:"newData"`
	ChangedBy *string   `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}
