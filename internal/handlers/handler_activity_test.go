package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetRecentActivity(t *testing.T) {
	activity := new(MockActivityService)
	router, token := newTestRouter(t, new(MockApprovalService), activity, new(MockSummaryService))
	from, to := "Overdue", "Paid(PendingApproval)"
	activity.On("GetRecentActivity", mock.Anything, mock.MatchedBy(func(p dto.ActivityQueryParams) bool {
		return p.LoanID == "LN-1" && p.Limit != nil && *p.Limit == 5 && p.SinceDays == nil
	})).Return([]domain.ActivityEvent{
		{ID: "audit-1", Kind: domain.ActivityStatus, From: &from, To: &to, Actor: "agent-1", LoanID: "LN-1", LedgerID: 1},
	}, nil).Once()
	activity.On("GetRecentActivity", mock.Anything, mock.MatchedBy(func(p dto.ActivityQueryParams) bool {
		return p.Limit != nil && *p.Limit == 900
	})).Return(nil, apperrors.NewValidationError("limit must be between 1 and 500")).Once()

	w := serve(router, token, http.MethodGet, "/api/v1/activity?loanId=LN-1&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Status", resp.Events[0].Kind)

	w = serve(router, token, http.MethodGet, "/api/v1/activity?limit=900", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
