package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock StatusService ---
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) GetStatus(ctx context.Context, selector domain.LedgerSelector) (*domain.StatusSnapshot, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusSnapshot), args.Error(1)
}

func (m *MockStatusService) ListPeriods(ctx context.Context, loanID string) ([]domain.BillingPeriod, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillingPeriod), args.Error(1)
}

func (m *MockStatusService) UpdateStatus(ctx context.Context, selector domain.LedgerSelector, req dto.UpdateStatusRequest, actorID string) (*domain.StatusSnapshot, error) {
	args := m.Called(ctx, selector, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusSnapshot), args.Error(1)
}

func (m *MockStatusService) SweepOverdue(ctx context.Context, asOf time.Time) (*domain.SweepResult, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

func (m *MockStatusService) RecordCall(ctx context.Context, ledgerID int64, req dto.RecordCallRequest, callerID string) (*domain.CallLogEntry, error) {
	args := m.Called(ctx, ledgerID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallLogEntry), args.Error(1)
}

func (m *MockStatusService) LatestStatus(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (string, bool, error) {
	args := m.Called(ctx, ledgerID, channel, role)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.StatusSvcFacade = (*MockStatusService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) ProcessApproval(ctx context.Context, ledgerID int64, req dto.ApprovalRequest, actorID string) (*domain.ApprovalResult, error) {
	args := m.Called(ctx, ledgerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalResult), args.Error(1)
}

func (m *MockApprovalService) ListPendingApprovals(ctx context.Context, params dto.ListPendingApprovalsParams) (*dto.ListPendingApprovalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPendingApprovalsResponse), args.Error(1)
}

func (m *MockApprovalService) ListAllPendingApprovals(ctx context.Context) ([]domain.PendingApproval, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingApproval), args.Error(1)
}

func (m *MockApprovalService) ListDecisions(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalResult), args.Error(1)
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) GetRecentActivity(ctx context.Context, params dto.ActivityQueryParams) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}

var _ portssvc.ActivitySvc = (*MockActivityService)(nil)

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) GetSummary(ctx context.Context, params dto.SummaryQueryParams) (*domain.Summary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockSummaryService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

var _ portssvc.SummarySvc = (*MockSummaryService)(nil)

// --- helpers ---

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed HS256 token whose subject is userID.
func generateTestToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    "repayment-tracker-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}
