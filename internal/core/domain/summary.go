package domain

import (
	"fmt"
	"strings"
	"time"
)

// PTPBucket classifies a promise-to-pay date relative to today.
type PTPBucket string

const (
	PTPOverdue  PTPBucket = "overdue"
	PTPToday    PTPBucket = "today"
	PTPTomorrow PTPBucket = "tomorrow"
	PTPFuture   PTPBucket = "future"
	PTPNone     PTPBucket = "noPtp"
)

// PTPBuckets lists every bucket; together they partition all ledger entries.
var PTPBuckets = []PTPBucket{PTPOverdue, PTPToday, PTPTomorrow, PTPFuture, PTPNone}

// ParsePTPBucket accepts the canonical names and "no_ptp".
func ParsePTPBucket(s string) (PTPBucket, bool) {
	if strings.EqualFold(s, "no_ptp") {
		return PTPNone, true
	}
	for _, b := range PTPBuckets {
		if strings.EqualFold(s, string(b)) {
			return b, true
		}
	}
	return "", false
}

// CivilDate drops the clock and zone of t, keeping its calendar date.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyPTP puts a PTP date into exactly one bucket.
func ClassifyPTP(ptp *time.Time, today time.Time) PTPBucket {
	if ptp == nil {
		return PTPNone
	}
	d := CivilDate(*ptp)
	t := CivilDate(today)
	tomorrow := t.AddDate(0, 0, 1)
	switch {
	case d.Before(t):
		return PTPOverdue
	case d.Equal(t):
		return PTPToday
	case d.Equal(tomorrow):
		return PTPTomorrow
	default:
		return PTPFuture
	}
}

// ParsePeriod parses a billing month label such as "Jul-25" into the first day of that month.
func ParsePeriod(s string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q, expected e.g. Jul-25", s)
	}
	return t, nil
}

// SummaryFilter holds the conjunctive filters of the aggregation engine.
type SummaryFilter struct {
	Period    *time.Time
	Branch    string
	Dealer    string
	Lender    string
	RMName    string
	TLName    string
	Status    *RepaymentStatus
	PTPBucket *PTPBucket
	LedgerID  int64
	DemandNum *int
	// Today anchors the PTP buckets; it is set by the service, not the caller.
	Today time.Time
}

// CacheKey is a stable textual form of the filter, including the day it was evaluated on.
func (f SummaryFilter) CacheKey() string {
	var b strings.Builder
	if f.Period != nil {
		b.WriteString("period=" + f.Period.Format(PeriodLayout) + ";")
	}
	for _, kv := range [][2]string{
		{"branch", f.Branch}, {"dealer", f.Dealer}, {"lender", f.Lender}, {"rm", f.RMName}, {"tl", f.TLName},
	} {
		if kv[1] != "" {
			b.WriteString(kv[0] + "=" + kv[1] + ";")
		}
	}
	if f.Status != nil {
		b.WriteString("status=" + string(*f.Status) + ";")
	}
	if f.PTPBucket != nil {
		b.WriteString("ptp=" + string(*f.PTPBucket) + ";")
	}
	if f.LedgerID > 0 {
		fmt.Fprintf(&b, "ledger=%d;", f.LedgerID)
	}
	if f.DemandNum != nil {
		fmt.Fprintf(&b, "demand=%d;", *f.DemandNum)
	}
	b.WriteString("today=" + CivilDate(f.Today).Format(DateLayout))
	return b.String()
}

// StatusCount is the number of matching entries carrying one status. Status is nil for entries without one.
type StatusCount struct {
	Status *string
	Count  int64
}

// Summary is the fixed-shape result of the aggregation engine.
type Summary struct {
	Total               int64 `json:"total"`
	Future              int64 `json:"future"`
	Overdue             int64 `json:"overdue"`
	PartiallyPaid       int64 `json:"partiallyPaid"`
	Paid                int64 `json:"paid"`
	Foreclose           int64 `json:"foreclose"`
	PaidPendingApproval int64 `json:"paidPendingApproval"`
	PaidRejected        int64 `json:"paidRejected"`
}

// BucketSum adds up every named bucket.
func (s Summary) BucketSum() int64 {
	return s.Future + s.Overdue + s.PartiallyPaid + s.Paid + s.Foreclose + s.PaidPendingApproval + s.PaidRejected
}

func (s *Summary) bucket(status RepaymentStatus) *int64 {
	switch status {
	case StatusFuture:
		return &s.Future
	case StatusOverdue:
		return &s.Overdue
	case StatusPartiallyPaid:
		return &s.PartiallyPaid
	case StatusPaid:
		return &s.Paid
	case StatusForeclose:
		return &s.Foreclose
	case StatusPaidPendingApproval:
		return &s.PaidPendingApproval
	case StatusPaidRejected:
		return &s.PaidRejected
	}
	return nil
}

// BuildSummary folds per-status counts into buckets. Every count lands in Total;
// counts without a bucket are also returned as unmapped so the caller can report them.
func BuildSummary(counts []StatusCount) (Summary, []StatusCount) {
	var s Summary
	var unmapped []StatusCount
	for _, c := range counts {
		s.Total += c.Count
		if c.Status == nil {
			unmapped = append(unmapped, c)
			continue
		}
		if b := s.bucket(RepaymentStatus(*c.Status)); b != nil {
			*b += c.Count
			continue
		}
		unmapped = append(unmapped, c)
	}
	return s, unmapped
}

// FilterOptions feeds dashboard filter dropdowns.
type FilterOptions struct {
	Periods    []string
	Branches   []string
	Dealers    []string
	Lenders    []string
	RMs        []string
	TLs        []string
	Statuses   []RepaymentStatus
	DemandNums []int
	PTPCounts  map[PTPBucket]int64
}
