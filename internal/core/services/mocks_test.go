package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerByLoanAndDate(ctx context.Context, loanID string, demandDate time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, loanID, demandDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgersByLoan(ctx context.Context, loanID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListPendingApprovals(ctx context.Context, limit int, nextToken *string) ([]domain.PendingApproval, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PendingApproval), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]int64, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerByIDForUpdate(ctx context.Context, tx pgx.Tx, ledgerID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) UpdateLedgerInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, expectedVersion int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entry, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock CallLogRepository ---
type MockCallLogRepository struct {
	mock.Mock
}

var _ portsrepo.CallLogRepositoryFacade = (*MockCallLogRepository)(nil)

func (m *MockCallLogRepository) ListCallsByLedger(ctx context.Context, ledgerID int64) ([]domain.CallLogEntry, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CallLogEntry), args.Error(1)
}

func (m *MockCallLogRepository) FindLatestCall(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (*domain.CallLogEntry, error) {
	args := m.Called(ctx, ledgerID, channel, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallLogEntry), args.Error(1)
}

func (m *MockCallLogRepository) ListDemandCallHistory(ctx context.Context, filter domain.ActivityFilter) ([]domain.CallLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CallLogEntry), args.Error(1)
}

func (m *MockCallLogRepository) AppendCall(ctx context.Context, call domain.CallLogEntry) (*domain.CallLogEntry, error) {
	args := m.Called(ctx, call)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallLogEntry), args.Error(1)
}

func (m *MockCallLogRepository) AppendCallsInTx(ctx context.Context, tx pgx.Tx, calls []domain.CallLogEntry) ([]domain.CallLogEntry, error) {
	args := m.Called(ctx, tx, calls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CallLogEntry), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) ListAudits(ctx context.Context, filter domain.ActivityFilter) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

func (m *MockAuditRepository) SaveAuditInTx(ctx context.Context, tx pgx.Tx, rec domain.AuditRecord) error {
	args := m.Called(ctx, tx, rec)
	return args.Error(0)
}

// --- Mock ApprovalRepository ---
type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepositoryFacade = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) SaveDecisionInTx(ctx context.Context, tx pgx.Tx, result domain.ApprovalResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *MockApprovalRepository) ListDecisionsByLedger(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalResult), args.Error(1)
}

// --- Mock SummaryRepository ---
type MockSummaryRepository struct {
	mock.Mock
}

var _ portsrepo.SummaryRepository = (*MockSummaryRepository)(nil)

func (m *MockSummaryRepository) CountByStatus(ctx context.Context, filter domain.SummaryFilter) ([]domain.StatusCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *MockSummaryRepository) GetFilterOptions(ctx context.Context, today time.Time) (*domain.FilterOptions, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

// --- Mock SummaryCache ---
type MockSummaryCache struct {
	mock.Mock
}

var _ portsrepo.SummaryCache = (*MockSummaryCache)(nil)

func (m *MockSummaryCache) Get(ctx context.Context, key string) (*domain.Summary, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Summary), args.Bool(1), args.Error(2)
}

func (m *MockSummaryCache) Set(ctx context.Context, key string, summary domain.Summary) error {
	args := m.Called(ctx, key, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock LedgerLocker ---
type MockLedgerLocker struct {
	mock.Mock
	released int
}

var _ portsrepo.LedgerLocker = (*MockLedgerLocker)(nil)

func (m *MockLedgerLocker) Lock(ctx context.Context, ledgerID int64) (func(context.Context), error) {
	args := m.Called(ctx, ledgerID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) { m.released++ }, nil
}

// --- helpers ---

func statusPtr(s domain.RepaymentStatus) *domain.RepaymentStatus {
	return &s
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
