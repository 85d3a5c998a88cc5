package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the wire format for calendar dates (PTP, demand and payment dates).
	DateLayout = "2006-01-02"
	// PeriodLayout is the billing-month label, e.g. "Jul-25".
	PeriodLayout = "Jan-06"
)

// LedgerEntry is one billing-period record for one loan.
type LedgerEntry struct {
	LedgerID        int64            `json:"ledgerID"`
	LoanID          string           `json:"loanID"`
	DemandDate      time.Time        `json:"demandDate"`
	DemandNum       int              `json:"demandNum"`
	DemandAmount    decimal.Decimal  `json:"demandAmount"`
	PrincipalAmount decimal.Decimal  `json:"principalAmount"`
	InterestAmount  decimal.Decimal  `json:"interestAmount"`
	AmountCollected *decimal.Decimal `json:"amountCollected,omitempty"`
	PTPDate         *time.Time       `json:"ptpDate,omitempty"`
	RepaymentStatus *RepaymentStatus `json:"repaymentStatus,omitempty"`
	PaymentDate     *time.Time       `json:"paymentDate,omitempty"`
	PaymentMode     *string          `json:"paymentMode,omitempty"`
	AuditFields
}

// PeriodLabel formats the billing month as "Jan-06".
func (e LedgerEntry) PeriodLabel() string {
	return e.DemandDate.Format(PeriodLayout)
}

// StatusName returns the repayment status or "" when none is set.
func (e LedgerEntry) StatusName() string {
	if e.RepaymentStatus == nil {
		return ""
	}
	return string(*e.RepaymentStatus)
}

// HasCollectedAmount treats a null amount the same as zero.
func (e LedgerEntry) HasCollectedAmount() bool {
	return e.AmountCollected != nil && e.AmountCollected.GreaterThan(decimal.Zero)
}

// Snapshot extracts the tracked fields used by the activity feed.
func (e LedgerEntry) Snapshot() LedgerSnapshot {
	s := LedgerSnapshot{
		RepaymentStatus: e.RepaymentStatus,
		AmountCollected: e.AmountCollected,
	}
	if e.PTPDate != nil {
		d := e.PTPDate.Format(DateLayout)
		s.PTPDate = &d
	}
	return s
}

// LedgerSelector resolves a ledger entry either by id or by loan and billing date.
// When both are set the loan id acts as a cross-check against the resolved row.
type LedgerSelector struct {
	LedgerID   int64
	LoanID     string
	DemandDate *time.Time
}

// ByLedgerID reports whether the selector carries a surrogate id.
func (s LedgerSelector) ByLedgerID() bool {
	return s.LedgerID > 0
}

// LedgerUpdate is a sparse, already validated update request. Nil fields are left untouched.
type LedgerUpdate struct {
	RepaymentStatus      *RepaymentStatus
	PTPDate              *time.Time
	AmountCollected      *decimal.Decimal
	PaymentDate          *time.Time
	PaymentMode          *string
	DemandCallingStatus  *DemandCallingStatus
	ContactCallingStatus *ContactCallingStatus
	ContactRole          ContactRole
}

// TouchesLedger reports whether any field stored on the ledger row is set.
func (u LedgerUpdate) TouchesLedger() bool {
	return u.RepaymentStatus != nil || u.PTPDate != nil || u.AmountCollected != nil ||
		u.PaymentDate != nil || u.PaymentMode != nil
}

// IsEmpty reports whether the update carries nothing at all.
func (u LedgerUpdate) IsEmpty() bool {
	return !u.TouchesLedger() && u.DemandCallingStatus == nil && u.ContactCallingStatus == nil
}

// UpdatedFields names the provided fields, in request order.
func (u LedgerUpdate) UpdatedFields() []string {
	var fields []string
	if u.PTPDate != nil {
		fields = append(fields, "ptp_date")
	}
	if u.AmountCollected != nil {
		fields = append(fields, "amount_collected")
	}
	if u.RepaymentStatus != nil {
		fields = append(fields, "repayment_status")
	}
	if u.PaymentDate != nil {
		fields = append(fields, "payment_date")
	}
	if u.PaymentMode != nil {
		fields = append(fields, "payment_mode")
	}
	if u.DemandCallingStatus != nil {
		fields = append(fields, "demand_calling_status")
	}
	if u.ContactCallingStatus != nil {
		fields = append(fields, "contact_calling_status")
	}
	return fields
}

// ApplyTo returns a copy of e with the ledger fields of u written onto it.
// Calling statuses are not part of the ledger row; see Calls.
func (u LedgerUpdate) ApplyTo(e LedgerEntry, actorID string, now time.Time) LedgerEntry {
	next := e
	if u.RepaymentStatus != nil {
		s := *u.RepaymentStatus
		next.RepaymentStatus = &s
	}
	if u.PTPDate != nil {
		d := *u.PTPDate
		next.PTPDate = &d
	}
	if u.AmountCollected != nil {
		a := *u.AmountCollected
		next.AmountCollected = &a
	}
	if u.PaymentDate != nil {
		d := *u.PaymentDate
		next.PaymentDate = &d
	}
	if u.PaymentMode != nil {
		m := *u.PaymentMode
		next.PaymentMode = &m
	}
	next.LastUpdatedAt = now
	next.LastUpdatedBy = actorID
	return next
}

// Calls builds the call log entries implied by the calling fields of u.
func (u LedgerUpdate) Calls(ledgerID int64, actorID string, now time.Time) []CallLogEntry {
	var calls []CallLogEntry
	if u.DemandCallingStatus != nil {
		calls = append(calls, CallLogEntry{
			LedgerID: ledgerID,
			Channel:  ChannelDemandCalling,
			Role:     RoleApplicant,
			Status:   string(*u.DemandCallingStatus),
			CallerID: actorID,
			CalledAt: now,
		})
	}
	if u.ContactCallingStatus != nil {
		role := u.ContactRole
		if role == "" {
			role = RoleApplicant
		}
		calls = append(calls, CallLogEntry{
			LedgerID: ledgerID,
			Channel:  ChannelContactCalling,
			Role:     role,
			Status:   string(*u.ContactCallingStatus),
			CallerID: actorID,
			CalledAt: now,
		})
	}
	return calls
}

// StatusSnapshot is the read model returned by GetStatus and UpdateStatus.
type StatusSnapshot struct {
	Ledger         LedgerEntry
	DemandCalling  *CallLogEntry
	ContactCalling map[ContactRole]*CallLogEntry
	// PTPBucket is the bucket the summary would count this entry under today.
	PTPBucket PTPBucket
}

// BillingPeriod is one entry of a loan's month dropdown.
type BillingPeriod struct {
	LedgerID   int64
	Label      string
	DemandDate time.Time
	IsCurrent  bool
}

// currentPeriodWindow bounds how far a demand date may be from today and still count as current.
const currentPeriodWindow = 30 * 24 * time.Hour

// BillingPeriods builds the dropdown for a loan's entries, which must be ordered by demand date.
func BillingPeriods(entries []LedgerEntry, today time.Time) []BillingPeriod {
	periods := make([]BillingPeriod, 0, len(entries))
	for _, e := range entries {
		diff := CivilDate(today).Sub(CivilDate(e.DemandDate))
		if diff < 0 {
			diff = -diff
		}
		periods = append(periods, BillingPeriod{
			LedgerID:   e.LedgerID,
			Label:      e.PeriodLabel(),
			DemandDate: e.DemandDate,
			IsCurrent:  diff <= currentPeriodWindow,
		})
	}
	return periods
}

// SweepResult reports one overdue sweep run.
type SweepResult struct {
	AsOf       time.Time `json:"asOf"`
	Candidates int       `json:"candidates"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}
