package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

const (
	maxActivityLimit     = 500
	maxActivitySinceDays = 365
)

type activityService struct {
	BaseService
	auditRepo portsrepo.AuditReader
	callRepo  portsrepo.CallLogReader
	opts      serviceOptions
}

// NewActivityService creates a new activity feed service.
func NewActivityService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ActivitySvc {
	return &activityService{
		auditRepo: repos.AuditRepo,
		callRepo:  repos.CallLogRepo,
		opts:      newServiceOptions(options),
	}
}

// Ensure activityService implements the portssvc.ActivitySvc interface
var _ portssvc.ActivitySvc = (*activityService)(nil)

// GetRecentActivity merges audited field changes and demand-calling changes into one feed, newest first.
func (s *activityService) GetRecentActivity(ctx context.Context, params dto.ActivityQueryParams) ([]domain.ActivityEvent, error) {
	limit := s.opts.activityLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit < 1 || limit > maxActivityLimit {
		return nil, apperrors.NewValidationError("limit must be between 1 and %d", maxActivityLimit)
	}
	sinceDays := s.opts.activitySinceDays
	if params.SinceDays != nil {
		sinceDays = *params.SinceDays
	}
	if sinceDays < 1 || sinceDays > maxActivitySinceDays {
		return nil, apperrors.NewValidationError("sinceDays must be between 1 and %d", maxActivitySinceDays)
	}

	filter := domain.ActivityFilter{
		LoanID:   params.LoanID,
		LedgerID: params.LedgerID,
		Since:    s.opts.now().Add(-time.Duration(sinceDays) * 24 * time.Hour),
		Limit:    limit,
	}

	audits, err := s.auditRepo.ListAudits(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audits for activity feed")
		return nil, err
	}
	calls, err := s.callRepo.ListDemandCallHistory(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list demand call history for activity feed")
		return nil, err
	}

	var auditEvents []domain.ActivityEvent
	for _, rec := range audits {
		auditEvents = append(auditEvents, domain.DiffAudit(rec)...)
	}
	callEvents := domain.DiffDemandCalls(calls, filter.Since)

	events := domain.MergeActivity(limit, auditEvents, callEvents)
	s.LogDebug(ctx, "Activity feed built",
		slog.Int("audits", len(audits)),
		slog.Int("calls", len(calls)),
		slog.Int("events", len(events)))
	return events, nil
}
