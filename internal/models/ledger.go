package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of ledger_entries.
type LedgerEntry struct {
	LedgerID        int64               `json:"ledgerID"`
	LoanID          string              `json:"loanID"`
	DemandDate      time.Time           `json:"demandDate"`
	DemandNum       int                 `json:"demandNum"`
	DemandAmount    decimal.Decimal     `json:"demandAmount"`
	PrincipalAmount decimal.Decimal     `json:"principalAmount"`
	InterestAmount  decimal.Decimal     `json:"interestAmount"`
	AmountCollected decimal.NullDecimal `json:"amountCollected"` // Nullable
	PTPDate         *time.Time          `json:"ptpDate"`         // Nullable
	RepaymentStatus *string             `json:"repaymentStatus"` // Nullable; CHECK constrained
	PaymentDate     *time.Time          `json:"paymentDate"`     // Nullable
	PaymentMode     *string             `json:"paymentMode"`     // Nullable
	AuditFields
}

// PendingApproval is a ledger_entries row joined to its loan facets.
type PendingApproval struct {
	LedgerEntry
	ApplicantName *string
	Branch        *string
	Dealer        *string
	Lender        *string
	RMName        *string
	TLName        *string
}
