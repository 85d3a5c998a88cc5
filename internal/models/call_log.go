package models

import "time"

// CallLog is a row of call_log. Rows are never updated.
type CallLog struct {
	CallID      int64     `json:"callID"`
	LedgerID    int64     `json:"ledgerID"`
	Channel     string    `json:"channel"`
	ContactRole string    `json:"contactRole"`
	Status      string    `json:"status"`
	CallerID    string    `json:"callerID"`
	CalledAt    time.Time `json:"calledAt"`
	LoanID      string    `json:"loanID"` // Joined from ledger_entries on reads
}
