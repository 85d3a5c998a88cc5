// Package export renders ledger data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/utils"
	"github.com/xuri/excelize/v2"
)

// PendingApprovalsSheet is the name of the only sheet in the workbook.
const PendingApprovalsSheet = "Pending Approvals"

// ContentTypeXLSX is the MIME type of the generated workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var pendingApprovalHeadings = []any{
	"Ledger ID", "Loan ID", "Applicant", "Period", "Demand Date", "Demand Amount",
	"Amount Collected", "Payment Date", "Payment Mode", "Branch", "Dealer", "Lender", "RM", "TL",
	"Last Updated By",
}

func pendingApprovalRow(p domain.PendingApproval) []any {
	e := p.Ledger
	paymentDate := ""
	if e.PaymentDate != nil {
		paymentDate = e.PaymentDate.Format(domain.DateLayout)
	}
	paymentMode := ""
	if e.PaymentMode != nil {
		paymentMode = *e.PaymentMode
	}
	return []any{
		e.LedgerID,
		e.LoanID,
		p.ApplicantName,
		e.PeriodLabel(),
		e.DemandDate.Format(domain.DateLayout),
		utils.FormatAmount(e.DemandAmount),
		utils.FormatOptionalAmount(e.AmountCollected),
		paymentDate,
		paymentMode,
		p.Branch,
		p.Dealer,
		p.Lender,
		p.RMName,
		p.TLName,
		e.LastUpdatedBy,
	}
}

// WritePendingApprovals writes items as an xlsx workbook to w, one row per entry below a bold header.
func WritePendingApprovals(w io.Writer, items []domain.PendingApproval) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PendingApprovalsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(PendingApprovalsSheet, "A1", &pendingApprovalHeadings); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(PendingApprovalsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := pendingApprovalRow(item)
		if err := f.SetSheetRow(PendingApprovalsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for ledger %d: %w", item.Ledger.LedgerID, err)
		}
	}

	if err := f.SetColWidth(PendingApprovalsSheet, "A", "O", 16); err != nil {
		return err
	}
	return f.Write(w)
}
