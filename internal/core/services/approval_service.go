package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/jackc/pgx/v5"
)

const (
	defaultPendingPageSize = 20
	exportPageSize         = 100
)

type approvalService struct {
	ledgerWriter
	approvalRepo portsrepo.ApprovalRepositoryFacade
	opts         serviceOptions
}

// NewApprovalService creates a new approval workflow service.
func NewApprovalService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ApprovalSvcFacade {
	return &approvalService{
		ledgerWriter: newLedgerWriter(repos),
		approvalRepo: repos.ApprovalRepo,
		opts:         newServiceOptions(options),
	}
}

// Ensure approvalService implements the portssvc.ApprovalSvcFacade interface
var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// ProcessApproval accepts or rejects a payment awaiting approval. Entries in any other
// status are reported as apperrors.ErrInvalidState and nothing is written.
func (s *approvalService) ProcessApproval(ctx context.Context, ledgerID int64, req dto.ApprovalRequest, actorID string) (*domain.ApprovalResult, error) {
	action, ok := domain.ParseApprovalAction(req.Action)
	if !ok {
		return nil, apperrors.NewValidationError("unknown approval action %q, expected accept or reject", req.Action)
	}

	var result domain.ApprovalResult
	_, _, err := s.mutate(ctx, ledgerID, actorID, func(ctx context.Context, tx pgx.Tx, current domain.LedgerEntry) (*domain.LedgerEntry, []domain.CallLogEntry, error) {
		decision, err := domain.DecideApproval(current, action)
		if err != nil {
			return nil, nil, apperrors.NewInvalidStateError(err)
		}

		// Stamped under the lock so commit order and timestamps agree.
		now := s.opts.now()
		next := domain.LedgerUpdate{RepaymentStatus: &decision.Next}.ApplyTo(current, actorID, now)
		result = domain.ApprovalResult{
			LedgerID:       current.LedgerID,
			LoanID:         current.LoanID,
			Action:         action,
			PreviousStatus: decision.Previous,
			NewStatus:      decision.Next,
			Message:        decision.Message,
			Comments:       req.Comments,
			DecidedBy:      actorID,
			UpdatedAt:      now,
		}
		if err := s.approvalRepo.SaveDecisionInTx(ctx, tx, result); err != nil {
			return nil, nil, err
		}
		return &next, nil, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.LogInfo(ctx, "Approval refused", slog.Int64("ledger_id", ledgerID), slog.String("reason", err.Error()))
		} else if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to process approval", slog.Int64("ledger_id", ledgerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Approval processed",
		slog.Int64("ledger_id", ledgerID),
		slog.String("action", string(action)),
		slog.String("previous_status", string(result.PreviousStatus)),
		slog.String("new_status", string(result.NewStatus)),
		slog.String("actor_id", actorID))
	return &result, nil
}

// ListPendingApprovals retrieves a page of entries awaiting approval.
func (s *approvalService) ListPendingApprovals(ctx context.Context, params dto.ListPendingApprovalsParams) (*dto.ListPendingApprovalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPendingPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	items, nextToken, err := s.ledgerRepo.ListPendingApprovals(ctx, limit, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list pending approvals")
		}
		return nil, err
	}
	return &dto.ListPendingApprovalsResponse{
		Items:     dto.ToPendingApprovalResponses(items),
		NextToken: nextToken,
	}, nil
}

// ListAllPendingApprovals walks every page of the pending list.
func (s *approvalService) ListAllPendingApprovals(ctx context.Context) ([]domain.PendingApproval, error) {
	var all []domain.PendingApproval
	var token *string
	for {
		items, next, err := s.ledgerRepo.ListPendingApprovals(ctx, exportPageSize, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to list pending approvals for export")
			return nil, err
		}
		all = append(all, items...)
		if next == nil {
			return all, nil
		}
		token = next
	}
}

// ListDecisions returns the decision history of a ledger entry, newest first.
func (s *approvalService) ListDecisions(ctx context.Context, ledgerID int64) ([]domain.ApprovalResult, error) {
	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return nil, err
	}
	return s.approvalRepo.ListDecisionsByLedger(ctx, ledgerID)
}
