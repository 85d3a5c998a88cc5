package services

import (
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Options given here override the ones derived from cfg.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	opts := []ServiceOption{
		WithLocation(cfg.BusinessLocation),
		WithActivityDefaults(cfg.ActivityDefaultLimit, cfg.ActivityDefaultSinceDays),
	}
	opts = append(opts, options...)

	return &portssvc.ServiceContainer{
		Status:   NewStatusService(repos, opts...),
		Approval: NewApprovalService(repos, opts...),
		Activity: NewActivityService(repos, opts...),
		Summary:  NewSummaryService(repos, opts...),
	}
}
