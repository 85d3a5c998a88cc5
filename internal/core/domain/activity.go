package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind names the tracked field an activity event reports on.
type ActivityKind string

const (
	ActivityStatus          ActivityKind = "Status"
	ActivityCallingStatus   ActivityKind = "Calling Status"
	ActivityPTPDate         ActivityKind = "PTP Date"
	ActivityAmountCollected ActivityKind = "Amount Collected"
)

// SystemActor attributes changes that carry no user.
const SystemActor = "System"

// LedgerSnapshot holds the tracked fields of a ledger entry at one point in time.
// It is persisted as JSON in the audit table.
type LedgerSnapshot struct {
	RepaymentStatus *RepaymentStatus `json:"repayment_status"`
	PTPDate         *string          `json:"ptp_date"`
	AmountCollected *decimal.Decimal `json:"amount_collected"`
}

// AuditRecord is one before/after pair written alongside a ledger update.
type AuditRecord struct {
	AuditID   int64
	LedgerID  int64
	LoanID    string
	Old       LedgerSnapshot
	New       LedgerSnapshot
	ChangedBy string
	ChangedAt time.Time
}

// ActivityEvent is one detected change of a tracked field.
type ActivityEvent struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	From      *string      `json:"from"`
	To        *string      `json:"to"`
	Actor     string       `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	LoanID    string       `json:"loanID"`
	LedgerID  int64        `json:"ledgerID"`
}

// ActivityFilter narrows the activity feed. Zero values mean "no constraint".
type ActivityFilter struct {
	LoanID   string
	LedgerID int64
	Since    time.Time
	Limit    int
}

// DiffAudit compares the tracked fields of one audit pair and emits an event per changed field.
func DiffAudit(rec AuditRecord) []ActivityEvent {
	actor := rec.ChangedBy
	if actor == "" {
		actor = SystemActor
	}
	base := ActivityEvent{
		ID:        fmt.Sprintf("audit-%d", rec.AuditID),
		Actor:     actor,
		Timestamp: rec.ChangedAt,
		LoanID:    rec.LoanID,
		LedgerID:  rec.LedgerID,
	}

	var events []ActivityEvent
	emit := func(kind ActivityKind, from, to *string) {
		ev := base
		ev.Kind = kind
		ev.From = from
		ev.To = to
		events = append(events, ev)
	}

	oldStatus, newStatus := statusString(rec.Old.RepaymentStatus), statusString(rec.New.RepaymentStatus)
	if !equalStrings(oldStatus, newStatus) {
		emit(ActivityStatus, oldStatus, newStatus)
	}
	if !equalStrings(rec.Old.PTPDate, rec.New.PTPDate) {
		emit(ActivityPTPDate, rec.Old.PTPDate, rec.New.PTPDate)
	}
	if !equalDecimals(rec.Old.AmountCollected, rec.New.AmountCollected) {
		emit(ActivityAmountCollected, amountString(rec.Old.AmountCollected), amountString(rec.New.AmountCollected))
	}
	return events
}

// DiffDemandCalls walks each ledger's DemandCalling history in call order and emits an event
// whenever the status differs from the previous call. The first call is compared against no status.
// Only changes at or after since are returned, but earlier calls still seed the comparison.
func DiffDemandCalls(calls []CallLogEntry, since time.Time) []ActivityEvent {
	byLedger := make(map[int64][]CallLogEntry)
	var order []int64
	for _, c := range calls {
		if c.Channel != ChannelDemandCalling {
			continue
		}
		if _, seen := byLedger[c.LedgerID]; !seen {
			order = append(order, c.LedgerID)
		}
		byLedger[c.LedgerID] = append(byLedger[c.LedgerID], c)
	}

	var events []ActivityEvent
	for _, ledgerID := range order {
		history := byLedger[ledgerID]
		sort.SliceStable(history, func(i, j int) bool {
			return history[j].After(history[i])
		})

		var prev *string
		for _, c := range history {
			status := c.Status
			if !equalStrings(prev, &status) && !c.CalledAt.Before(since) {
				actor := c.CallerID
				if actor == "" {
					actor = SystemActor
				}
				events = append(events, ActivityEvent{
					ID:        fmt.Sprintf("call-%d", c.CallID),
					Kind:      ActivityCallingStatus,
					From:      prev,
					To:        &status,
					Actor:     actor,
					Timestamp: c.CalledAt,
					LoanID:    c.LoanID,
					LedgerID:  c.LedgerID,
				})
			}
			prev = &status
		}
	}
	return events
}

// MergeActivity combines event sources into one feed, newest first, truncated to limit.
// Events whose from and to are equal are dropped. Equal timestamps keep source order.
func MergeActivity(limit int, sources ...[]ActivityEvent) []ActivityEvent {
	var merged []ActivityEvent
	for _, src := range sources {
		for _, ev := range src {
			if equalStrings(ev.From, ev.To) {
				continue
			}
			merged = append(merged, ev)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func statusString(s *RepaymentStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func amountString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	v := d.StringFixed(2)
	return &v
}

func equalStrings(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalDecimals(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
