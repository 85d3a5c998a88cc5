package services

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

// SummarySvc defines the dashboard aggregation operations
type SummarySvc interface {
	GetSummary(ctx context.Context, params dto.SummaryQueryParams) (*domain.Summary, error)
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}
