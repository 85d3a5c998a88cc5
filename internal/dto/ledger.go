package dto

import (
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateStatusRequest is a sparse update of a ledger entry. Omitted fields are left untouched.
type UpdateStatusRequest struct {
	RepaymentStatus      *string          `json:"repaymentStatus" binding:"omitempty,repayment_status" example:"Paid(PendingApproval)"`
	PTPDate              *string          `json:"ptpDate" binding:"omitempty,datetime=2006-01-02" example:"2025-09-10"`
	AmountCollected      *decimal.Decimal `json:"amountCollected" swaggertype:"string" example:"1500.00"`
	PaymentDate          *string          `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	PaymentMode          *string          `json:"paymentMode" binding:"omitempty,max=50"`
	DemandCallingStatus  *string          `json:"demandCallingStatus" binding:"omitempty,demand_calling_status" example:"PTP taken"`
	ContactCallingStatus *string          `json:"contactCallingStatus" binding:"omitempty,contact_calling_status" example:"answered"`
	ContactRole          *string          `json:"contactRole" binding:"omitempty,contact_role" example:"Applicant"`
}

// LedgerResponse defines the data returned for a ledger entry.
type LedgerResponse struct {
	LedgerID        int64            `json:"ledgerID"`
	LoanID          string           `json:"loanID"`
	DemandDate      string           `json:"demandDate"`
	Period          string           `json:"period"`
	DemandNum       int              `json:"demandNum"`
	DemandAmount    decimal.Decimal  `json:"demandAmount"`
	PrincipalAmount decimal.Decimal  `json:"principalAmount"`
	InterestAmount  decimal.Decimal  `json:"interestAmount"`
	AmountCollected *decimal.Decimal `json:"amountCollected"`
	PTPDate         *string          `json:"ptpDate"`
	RepaymentStatus *string          `json:"repaymentStatus"`
	PaymentDate     *string          `json:"paymentDate"`
	PaymentMode     *string          `json:"paymentMode"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy   string           `json:"lastUpdatedBy"`
	Version         int64            `json:"version"`
}

// StatusResponse is the current repayment and calling status of a ledger entry.
type StatusResponse struct {
	Ledger               LedgerResponse     `json:"ledger"`
	RepaymentStatusName  string             `json:"repaymentStatusName"`
	DemandCallingStatus  *string            `json:"demandCallingStatus"`
	ContactCallingStatus map[string]*string `json:"contactCallingStatus"`
	PTPBucket            string             `json:"ptpBucket" example:"today"`
}

// PeriodResponse is one entry of a loan's billing month dropdown.
type PeriodResponse struct {
	LedgerID   int64  `json:"ledgerID"`
	Month      string `json:"month"`
	DemandDate string `json:"demandDate"`
	IsCurrent  bool   `json:"isCurrent"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

// ToLedgerResponse converts a domain.LedgerEntry to LedgerResponse DTO.
func ToLedgerResponse(e *domain.LedgerEntry) LedgerResponse {
	resp := LedgerResponse{
		LedgerID:        e.LedgerID,
		LoanID:          e.LoanID,
		DemandDate:      e.DemandDate.Format(domain.DateLayout),
		Period:          e.PeriodLabel(),
		DemandNum:       e.DemandNum,
		DemandAmount:    e.DemandAmount,
		PrincipalAmount: e.PrincipalAmount,
		InterestAmount:  e.InterestAmount,
		AmountCollected: e.AmountCollected,
		PTPDate:         formatDate(e.PTPDate),
		PaymentDate:     formatDate(e.PaymentDate),
		PaymentMode:     e.PaymentMode,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
		Version:         e.Version,
	}
	if e.RepaymentStatus != nil {
		s := string(*e.RepaymentStatus)
		resp.RepaymentStatus = &s
	}
	return resp
}

// ToStatusResponse converts a domain.StatusSnapshot to StatusResponse DTO.
func ToStatusResponse(s *domain.StatusSnapshot) StatusResponse {
	resp := StatusResponse{
		Ledger:               ToLedgerResponse(&s.Ledger),
		RepaymentStatusName:  s.Ledger.StatusName(),
		PTPBucket:            string(s.PTPBucket),
		ContactCallingStatus: make(map[string]*string, len(domain.ContactRoles)),
	}
	if s.DemandCalling != nil {
		status := s.DemandCalling.Status
		resp.DemandCallingStatus = &status
	}
	for _, role := range domain.ContactRoles {
		var status *string
		if call := s.ContactCalling[role]; call != nil {
			v := call.Status
			status = &v
		}
		resp.ContactCallingStatus[string(role)] = status
	}
	return resp
}

// ToPeriodResponses converts billing periods to their DTOs.
func ToPeriodResponses(periods []domain.BillingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = PeriodResponse{
			LedgerID:   p.LedgerID,
			Month:      p.Label,
			DemandDate: p.DemandDate.Format(domain.DateLayout),
			IsCurrent:  p.IsCurrent,
		}
	}
	return responses
}
