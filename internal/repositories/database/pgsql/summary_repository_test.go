package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPTPPredicate_CoversEveryBucket(t *testing.T) {
	want := map[domain.PTPBucket]string{
		domain.PTPOverdue:  "l.ptp_date < $1::date",
		domain.PTPToday:    "l.ptp_date = $1::date",
		domain.PTPTomorrow: "l.ptp_date = $1::date + 1",
		domain.PTPFuture:   "l.ptp_date > $1::date + 1",
		domain.PTPNone:     "l.ptp_date IS NULL",
	}
	require.Len(t, want, len(domain.PTPBuckets))

	for _, bucket := range domain.PTPBuckets {
		t.Run(string(bucket), func(t *testing.T) {
			got, err := ptpPredicate(bucket, "$1")
			require.NoError(t, err)
			assert.Equal(t, want[bucket], got)
		})
	}
}

func TestPTPPredicate_RejectsUnknownBucket(t *testing.T) {
	_, err := ptpPredicate(domain.PTPBucket("yesterday"), "$1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// matchesPTP evaluates a predicate built by ptpPredicate for one PTP date.
func matchesPTP(t *testing.T, predicate string, ptp *time.Time, today time.Time) bool {
	t.Helper()
	cond := strings.TrimPrefix(predicate, "l.ptp_date ")
	if cond == "IS NULL" {
		return ptp == nil
	}
	if ptp == nil {
		return false
	}
	d := domain.CivilDate(*ptp)
	switch cond {
	case "< $1::date":
		return d.Before(today)
	case "= $1::date":
		return d.Equal(today)
	case "= $1::date + 1":
		return d.Equal(today.AddDate(0, 0, 1))
	case "> $1::date + 1":
		return d.After(today.AddDate(0, 0, 1))
	}
	t.Fatalf("unexpected predicate %q", predicate)
	return false
}

func TestPTPPredicate_AgreesWithClassifyPTP(t *testing.T) {
	today := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	dates := []*time.Time{nil}
	for offset := -3; offset <= 3; offset++ {
		d := today.AddDate(0, 0, offset)
		dates = append(dates, &d)
	}

	for _, ptp := range dates {
		classified := domain.ClassifyPTP(ptp, today)
		matched := 0
		for _, bucket := range domain.PTPBuckets {
			predicate, err := ptpPredicate(bucket, "$1")
			require.NoError(t, err)
			if matchesPTP(t, predicate, ptp, today) {
				matched++
				assert.Equal(t, classified, bucket, "ptp %v", ptp)
			}
		}
		assert.Equal(t, 1, matched, "ptp %v must fall in exactly one bucket", ptp)
	}
}

func TestPTPCountsQuery_OneColumnPerBucket(t *testing.T) {
	query, err := ptpCountsQuery("$1")
	require.NoError(t, err)

	assert.Equal(t, len(domain.PTPBuckets), strings.Count(query, "COUNT(*) FILTER"))
	assert.True(t, strings.HasSuffix(query, "FROM ledger_entries l;"))
	for _, bucket := range domain.PTPBuckets {
		predicate, _ := ptpPredicate(bucket, "$1")
		assert.Contains(t, query, "FILTER (WHERE "+predicate+")")
	}
	// Scan order in GetFilterOptions follows domain.PTPBuckets.
	overdue, _ := ptpPredicate(domain.PTPOverdue, "$1")
	none, _ := ptpPredicate(domain.PTPNone, "$1")
	assert.Less(t, strings.Index(query, overdue), strings.Index(query, none))
}
