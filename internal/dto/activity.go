package dto

import (
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
)

// ActivityQueryParams defines query parameters for the recent activity feed.
// Nil Limit and SinceDays fall back to the configured defaults.
type ActivityQueryParams struct {
	LoanID    string `form:"loanId"`
	LedgerID  int64  `form:"ledgerId" binding:"omitempty,min=1"`
	Limit     *int   `form:"limit"`
	SinceDays *int   `form:"sinceDays"`
}

// ActivityEventResponse defines the data returned for one activity event.
type ActivityEventResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	From      *string   `json:"from"`
	To        *string   `json:"to"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	LoanID    string    `json:"loanID"`
	LedgerID  int64     `json:"ledgerID"`
}

// ActivityResponse is the recent activity feed, newest first.
type ActivityResponse struct {
	Events []ActivityEventResponse `json:"events"`
	Count  int                     `json:"count"`
}

// ToActivityResponse converts activity events to the feed DTO.
func ToActivityResponse(events []domain.ActivityEvent) ActivityResponse {
	resp := ActivityResponse{Events: make([]ActivityEventResponse, len(events)), Count: len(events)}
	for i, ev := range events {
		resp.Events[i] = ActivityEventResponse{
			ID:        ev.ID,
			Kind:      string(ev.Kind),
			From:      ev.From,
			To:        ev.To,
			Actor:     ev.Actor,
			Timestamp: ev.Timestamp,
			LoanID:    ev.LoanID,
			LedgerID:  ev.LedgerID,
		}
	}
	return resp
}
