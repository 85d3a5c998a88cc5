package dto

import (
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
)

// SummaryQueryParams defines the dashboard filters. Every filter is optional.
type SummaryQueryParams struct {
	Period    string `form:"period" example:"Jul-25"`
	Branch    string `form:"branch"`
	Dealer    string `form:"dealer"`
	Lender    string `form:"lender"`
	RM        string `form:"rm"`
	TL        string `form:"tl"`
	Status    string `form:"status"`
	PTPBucket string `form:"ptpBucket" example:"today"`
	LedgerID  *int64 `form:"ledgerId" binding:"omitempty,min=1"`
	DemandNum *int   `form:"demandNum" binding:"omitempty,min=0"`
}

// FilterOptionsResponse feeds the dashboard filter dropdowns.
type FilterOptionsResponse struct {
	Periods    []string         `json:"periods"`
	Branches   []string         `json:"branches"`
	Dealers    []string         `json:"dealers"`
	Lenders    []string         `json:"lenders"`
	RMs        []string         `json:"rms"`
	TLs        []string         `json:"tls"`
	Statuses   []string         `json:"statuses"`
	DemandNums []int            `json:"demandNums"`
	PTPCounts  map[string]int64 `json:"ptpCounts"`
}

// ToFilterOptionsResponse converts domain.FilterOptions to its DTO.
func ToFilterOptionsResponse(o *domain.FilterOptions) FilterOptionsResponse {
	resp := FilterOptionsResponse{
		Periods:    nonNil(o.Periods),
		Branches:   nonNil(o.Branches),
		Dealers:    nonNil(o.Dealers),
		Lenders:    nonNil(o.Lenders),
		RMs:        nonNil(o.RMs),
		TLs:        nonNil(o.TLs),
		Statuses:   make([]string, len(o.Statuses)),
		DemandNums: o.DemandNums,
		PTPCounts:  make(map[string]int64, len(domain.PTPBuckets)),
	}
	if resp.DemandNums == nil {
		resp.DemandNums = []int{}
	}
	for i, s := range o.Statuses {
		resp.Statuses[i] = string(s)
	}
	for _, b := range domain.PTPBuckets {
		resp.PTPCounts[string(b)] = o.PTPCounts[b]
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
