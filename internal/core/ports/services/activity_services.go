package services

import (
	"context"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/SscSPs/repayment_tracker/internal/dto"
)

// ActivitySvc builds the recent activity feed
type ActivitySvc interface {
	GetRecentActivity(ctx context.Context, params dto.ActivityQueryParams) ([]domain.ActivityEvent, error)
}
