package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/utils/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWritePendingApprovals(t *testing.T) {
	collected := decimal.NewFromInt(1500)
	mode := "UPI"
	status := domain.StatusPaidPendingApproval
	items := []domain.PendingApproval{
		{
			Ledger: domain.LedgerEntry{
				LedgerID:        42,
				LoanID:          "LN-42",
				DemandDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				DemandAmount:    decimal.NewFromInt(5000),
				AmountCollected: &collected,
				RepaymentStatus: &status,
				PaymentMode:     &mode,
			},
			ApplicantName: "Asha Rao",
			Branch:        "Pune",
		},
		{
			Ledger: domain.LedgerEntry{
				LedgerID:     43,
				LoanID:       "LN-43",
				DemandDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
				DemandAmount: decimal.NewFromInt(2500),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WritePendingApprovals(&buf, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.PendingApprovalsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ledger ID", rows[0][0])
	assert.Equal(t, "42", rows[1][0])
	assert.Equal(t, "Asha Rao", rows[1][2])
	assert.Equal(t, "Jul-25", rows[1][3])
	assert.Equal(t, "1500.00", rows[1][6])
	assert.Equal(t, "UPI", rows[1][8])
	assert.Equal(t, "LN-43", rows[2][1])
}

func TestWritePendingApprovals_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WritePendingApprovals(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.PendingApprovalsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
