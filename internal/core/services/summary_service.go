package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

type summaryService struct {
	BaseService
	summaryRepo portsrepo.SummaryRepository
	cache       portsrepo.SummaryCache
	opts        serviceOptions
}

// NewSummaryService creates a new dashboard aggregation service.
func NewSummaryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.SummarySvc {
	return &summaryService{
		summaryRepo: repos.SummaryRepo,
		cache:       repos.SummaryCache,
		opts:        newServiceOptions(options),
	}
}

// Ensure summaryService implements the portssvc.SummarySvc interface
var _ portssvc.SummarySvc = (*summaryService)(nil)

// buildFilter validates the query parameters. Blank parameters impose no constraint.
func (s *summaryService) buildFilter(params dto.SummaryQueryParams) (domain.SummaryFilter, error) {
	f := domain.SummaryFilter{
		Branch:    strings.TrimSpace(params.Branch),
		Dealer:    strings.TrimSpace(params.Dealer),
		Lender:    strings.TrimSpace(params.Lender),
		RMName:    strings.TrimSpace(params.RM),
		TLName:    strings.TrimSpace(params.TL),
		DemandNum: params.DemandNum,
		Today:     s.opts.today(),
	}
	if p := strings.TrimSpace(params.Period); p != "" {
		period, err := domain.ParsePeriod(p)
		if err != nil {
			return f, apperrors.NewValidationError("%v", err)
		}
		f.Period = &period
	}
	if st := strings.TrimSpace(params.Status); st != "" {
		status := domain.RepaymentStatus(st)
		if !status.IsValid() {
			return f, apperrors.NewValidationError("unknown repayment status %q", st)
		}
		f.Status = &status
	}
	if b := strings.TrimSpace(params.PTPBucket); b != "" {
		bucket, ok := domain.ParsePTPBucket(b)
		if !ok {
			return f, apperrors.NewValidationError("unknown PTP bucket %q, expected overdue, today, tomorrow, future or noPtp", b)
		}
		f.PTPBucket = &bucket
	}
	if params.LedgerID != nil {
		f.LedgerID = *params.LedgerID
	}
	return f, nil
}

// GetSummary counts the matching entries per status bucket, served from cache when possible.
func (s *summaryService) GetSummary(ctx context.Context, params dto.SummaryQueryParams) (*domain.Summary, error) {
	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, err
	}
	key := filter.CacheKey()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.LogWarn(ctx, "Summary cache read failed", slog.String("error", err.Error()))
		} else if ok {
			s.LogDebug(ctx, "Summary served from cache", slog.String("key", key))
			return cached, nil
		}
	}

	counts, err := s.summaryRepo.CountByStatus(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count ledger entries by status")
		return nil, err
	}

	summary, unmapped := domain.BuildSummary(counts)
	for _, u := range unmapped {
		status := "<null>"
		if u.Status != nil {
			status = *u.Status
		}
		s.LogWarn(ctx, "Ledger entries without a summary bucket",
			slog.String("status", status),
			slog.Int64("count", u.Count))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary); err != nil {
			s.LogWarn(ctx, "Summary cache write failed", slog.String("error", err.Error()))
		}
	}
	return &summary, nil
}

// GetFilterOptions returns the distinct values offered by the dashboard filters.
func (s *summaryService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	opts, err := s.summaryRepo.GetFilterOptions(ctx, s.opts.today())
	if err != nil {
		s.LogError(ctx, err, "Failed to load filter options")
		return nil, err
	}
	return opts, nil
}
