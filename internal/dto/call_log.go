package dto

import (
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
)

// RecordCallRequest appends a call attempt to the log.
type RecordCallRequest struct {
	Channel string  `json:"channel" binding:"required,calling_channel" example:"ContactCalling"`
	Role    *string `json:"role" binding:"omitempty,contact_role" example:"Guarantor"`
	Status  string  `json:"status" binding:"required" example:"not answered"`
}

// LatestStatusQuery selects one (channel, role) key of the call log.
type LatestStatusQuery struct {
	Channel string `form:"channel" binding:"required,calling_channel"`
	Role    string `form:"role" binding:"omitempty,contact_role"`
}

// CallLogResponse defines the data returned for a call log entry.
type CallLogResponse struct {
	CallID   int64     `json:"callID"`
	LedgerID int64     `json:"ledgerID"`
	Channel  string    `json:"channel"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	CallerID string    `json:"callerID"`
	CalledAt time.Time `json:"calledAt"`
}

// LatestStatusResponse carries the latest status for a (channel, role) key. Status is null when nothing was logged.
type LatestStatusResponse struct {
	LedgerID int64   `json:"ledgerID"`
	Channel  string  `json:"channel"`
	Role     string  `json:"role"`
	Status   *string `json:"status"`
	Found    bool    `json:"found"`
}

// ToCallLogResponse converts a domain.CallLogEntry to CallLogResponse DTO.
func ToCallLogResponse(c *domain.CallLogEntry) CallLogResponse {
	return CallLogResponse{
		CallID:   c.CallID,
		LedgerID: c.LedgerID,
		Channel:  string(c.Channel),
		Role:     string(c.Role),
		Status:   c.Status,
		CallerID: c.CallerID,
		CalledAt: c.CalledAt,
	}
}
