package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/dto"
	"github.com/jackc/pgx/v5"
)

// statusService owns the status transition engine, the call log and the overdue sweep.
type statusService struct {
	ledgerWriter
	callReader portsrepo.CallLogReader
	opts       serviceOptions
}

// NewStatusService creates a new status service.
func NewStatusService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.StatusSvcFacade {
	return &statusService{
		ledgerWriter: newLedgerWriter(repos),
		callReader:   repos.CallLogRepo,
		opts:         newServiceOptions(options),
	}
}

// Ensure statusService implements the portssvc.StatusSvcFacade interface
var _ portssvc.StatusSvcFacade = (*statusService)(nil)

// resolve finds the entry addressed by selector.
func (s *statusService) resolve(ctx context.Context, selector domain.LedgerSelector) (*domain.LedgerEntry, error) {
	switch {
	case selector.ByLedgerID():
		entry, err := s.ledgerRepo.FindLedgerByID(ctx, selector.LedgerID)
		if err != nil {
			return nil, err
		}
		if selector.LoanID != "" && selector.LoanID != entry.LoanID {
			return nil, apperrors.NewValidationError("ledger entry %d belongs to loan %s, not %s", entry.LedgerID, entry.LoanID, selector.LoanID)
		}
		return entry, nil
	case selector.LoanID != "" && selector.DemandDate != nil:
		return s.ledgerRepo.FindLedgerByLoanAndDate(ctx, selector.LoanID, *selector.DemandDate)
	default:
		return nil, apperrors.NewValidationError("a ledger id or a loan id with a demand date is required")
	}
}

// GetStatus returns the ledger fields together with the latest calling statuses.
func (s *statusService) GetStatus(ctx context.Context, selector domain.LedgerSelector) (*domain.StatusSnapshot, error) {
	entry, err := s.resolve(ctx, selector)
	if err != nil {
		return nil, err
	}
	calls, err := s.callReader.ListCallsByLedger(ctx, entry.LedgerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list calls", slog.Int64("ledger_id", entry.LedgerID))
		return nil, err
	}
	return s.snapshot(*entry, calls), nil
}

// snapshot derives the calling statuses and the PTP bucket as of today.
func (s *statusService) snapshot(entry domain.LedgerEntry, calls []domain.CallLogEntry) *domain.StatusSnapshot {
	snap := domain.BuildStatusSnapshot(entry, calls)
	snap.PTPBucket = domain.ClassifyPTP(entry.PTPDate, s.opts.today())
	return &snap
}

// ListPeriods returns the billing month dropdown of a loan.
func (s *statusService) ListPeriods(ctx context.Context, loanID string) ([]domain.BillingPeriod, error) {
	if strings.TrimSpace(loanID) == "" {
		return nil, apperrors.NewValidationError("loan id is required")
	}
	entries, err := s.ledgerRepo.ListLedgersByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("ledger entries for loan " + loanID)
	}
	return domain.BillingPeriods(entries, s.opts.today()), nil
}

// parseUpdate validates a sparse update request against the vocabularies.
func parseUpdate(req dto.UpdateStatusRequest) (domain.LedgerUpdate, error) {
	var u domain.LedgerUpdate

	if req.RepaymentStatus != nil {
		status := domain.RepaymentStatus(*req.RepaymentStatus)
		if !status.IsValid() {
			return u, apperrors.NewValidationError("unknown repayment status %q", *req.RepaymentStatus)
		}
		u.RepaymentStatus = &status
	}
	if req.PTPDate != nil {
		d, err := time.Parse(domain.DateLayout, *req.PTPDate)
		if err != nil {
			return u, apperrors.NewValidationError("invalid ptp date %q, expected YYYY-MM-DD", *req.PTPDate)
		}
		u.PTPDate = &d
	}
	if req.AmountCollected != nil {
		if req.AmountCollected.IsNegative() {
			return u, apperrors.NewValidationError("amount collected cannot be negative")
		}
		amount := *req.AmountCollected
		u.AmountCollected = &amount
	}
	if req.PaymentDate != nil {
		d, err := time.Parse(domain.DateLayout, *req.PaymentDate)
		if err != nil {
			return u, apperrors.NewValidationError("invalid payment date %q, expected YYYY-MM-DD", *req.PaymentDate)
		}
		u.PaymentDate = &d
	}
	if req.PaymentMode != nil {
		mode := strings.TrimSpace(*req.PaymentMode)
		u.PaymentMode = &mode
	}
	if req.DemandCallingStatus != nil {
		status := domain.DemandCallingStatus(*req.DemandCallingStatus)
		if !status.IsValid() {
			return u, apperrors.NewValidationError("unknown demand calling status %q", *req.DemandCallingStatus)
		}
		u.DemandCallingStatus = &status
	}
	if req.ContactCallingStatus != nil {
		status := domain.ContactCallingStatus(*req.ContactCallingStatus)
		if !status.IsValid() {
			return u, apperrors.NewValidationError("unknown contact calling status %q", *req.ContactCallingStatus)
		}
		u.ContactCallingStatus = &status
	}
	if req.ContactRole != nil {
		if u.ContactCallingStatus == nil {
			return u, apperrors.NewValidationError("contact role requires a contact calling status")
		}
		role, ok := domain.ParseContactRole(*req.ContactRole)
		if !ok {
			return u, apperrors.NewValidationError("unknown contact role %q", *req.ContactRole)
		}
		u.ContactRole = role
	}

	if u.IsEmpty() {
		return u, apperrors.NewValidationError("update request contains no fields")
	}
	return u, nil
}

// UpdateStatus applies a sparse update atomically and returns the resulting status.
func (s *statusService) UpdateStatus(ctx context.Context, selector domain.LedgerSelector, req dto.UpdateStatusRequest, actorID string) (*domain.StatusSnapshot, error) {
	update, err := parseUpdate(req)
	if err != nil {
		return nil, err
	}

	entry, err := s.resolve(ctx, selector)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.mutate(ctx, entry.LedgerID, actorID, func(ctx context.Context, _ pgx.Tx, current domain.LedgerEntry) (*domain.LedgerEntry, []domain.CallLogEntry, error) {
		// Stamped under the lock so commit order and timestamps agree.
		now := s.opts.now()
		if update.AmountCollected != nil && current.AmountCollected != nil && update.AmountCollected.LessThan(*current.AmountCollected) {
			s.LogWarn(ctx, "Collected amount decreased",
				slog.Int64("ledger_id", current.LedgerID),
				slog.String("previous", current.AmountCollected.StringFixed(2)),
				slog.String("next", update.AmountCollected.StringFixed(2)))
		}

		var next *domain.LedgerEntry
		if update.TouchesLedger() {
			applied := update.ApplyTo(current, actorID, now)
			next = &applied
		}
		return next, update.Calls(current.LedgerID, actorID, now), nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update ledger status", slog.Int64("ledger_id", entry.LedgerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Ledger status updated",
		slog.Int64("ledger_id", updated.LedgerID),
		slog.String("loan_id", updated.LoanID),
		slog.Any("fields", update.UpdatedFields()),
		slog.String("actor_id", actorID))

	calls, err := s.callReader.ListCallsByLedger(ctx, updated.LedgerID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(*updated, calls), nil
}

// SweepOverdue moves Future entries whose demand date is before asOf to Overdue, one locked write each.
// Failures are counted and the sweep carries on with the next entry.
func (s *statusService) SweepOverdue(ctx context.Context, asOf time.Time) (*domain.SweepResult, error) {
	cutoff := domain.CivilDate(asOf.In(s.opts.location))
	result := &domain.SweepResult{AsOf: cutoff}

	ids, err := s.ledgerRepo.ListOverdueCandidates(ctx, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue candidates")
		return nil, err
	}
	result.Candidates = len(ids)

	overdue := domain.StatusOverdue
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		changed := false
		_, _, err := s.mutate(ctx, id, domain.SystemActor, func(_ context.Context, _ pgx.Tx, current domain.LedgerEntry) (*domain.LedgerEntry, []domain.CallLogEntry, error) {
			// The entry may have moved on since the candidate query.
			if current.RepaymentStatus == nil || *current.RepaymentStatus != domain.StatusFuture || !current.DemandDate.Before(cutoff) {
				return nil, nil, nil
			}
			next := domain.LedgerUpdate{RepaymentStatus: &overdue}.ApplyTo(current, domain.SystemActor, s.opts.now())
			changed = true
			return &next, nil, nil
		})
		switch {
		case err != nil:
			result.Failed++
			s.LogError(ctx, err, "Failed to mark ledger entry overdue", slog.Int64("ledger_id", id))
		case changed:
			result.Updated++
		default:
			result.Skipped++
		}
	}

	s.LogInfo(ctx, "Overdue sweep finished",
		slog.String("as_of", cutoff.Format(domain.DateLayout)),
		slog.Int("candidates", result.Candidates),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))
	return result, nil
}

// RecordCall appends a call attempt to the log of an existing ledger entry.
func (s *statusService) RecordCall(ctx context.Context, ledgerID int64, req dto.RecordCallRequest, callerID string) (*domain.CallLogEntry, error) {
	channel := domain.CallingChannel(req.Channel)
	if !channel.IsValid() {
		return nil, apperrors.NewValidationError("unknown calling channel %q", req.Channel)
	}
	role := domain.RoleApplicant
	if req.Role != nil && *req.Role != "" {
		parsed, ok := domain.ParseContactRole(*req.Role)
		if !ok {
			return nil, apperrors.NewValidationError("unknown contact role %q", *req.Role)
		}
		role = parsed
	}
	if channel == domain.ChannelDemandCalling && role != domain.RoleApplicant {
		return nil, apperrors.NewValidationError("demand calls always target the applicant, got %s", role)
	}
	if !domain.IsValidCallStatus(channel, req.Status) {
		return nil, apperrors.NewValidationError("unknown %s status %q", channel, req.Status)
	}
	if callerID == "" {
		return nil, apperrors.NewValidationError("caller id is required")
	}

	entry, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	call, err := s.callRepo.AppendCall(ctx, domain.CallLogEntry{
		LedgerID: entry.LedgerID,
		LoanID:   entry.LoanID,
		Channel:  channel,
		Role:     role,
		Status:   req.Status,
		CallerID: callerID,
		CalledAt: s.opts.now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record call", slog.Int64("ledger_id", ledgerID))
		return nil, err
	}

	s.LogInfo(ctx, "Call recorded",
		slog.Int64("ledger_id", ledgerID),
		slog.Int64("call_id", call.CallID),
		slog.String("channel", string(channel)),
		slog.String("role", string(role)))
	return call, nil
}

// LatestStatus returns the latest status for (channel, role) and whether one exists.
func (s *statusService) LatestStatus(ctx context.Context, ledgerID int64, channel domain.CallingChannel, role domain.ContactRole) (string, bool, error) {
	if !channel.IsValid() {
		return "", false, apperrors.NewValidationError("unknown calling channel %q", channel)
	}
	if role == "" {
		role = domain.RoleApplicant
	}
	if !role.IsValid() {
		return "", false, apperrors.NewValidationError("unknown contact role %q", role)
	}

	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return "", false, err
	}
	// Demand calls are only logged against the applicant.
	if channel == domain.ChannelDemandCalling && role != domain.RoleApplicant {
		return "", false, nil
	}

	call, err := s.callReader.FindLatestCall(ctx, ledgerID, channel, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("latest %s status of ledger entry %d: %w", channel, ledgerID, err)
	}
	return call.Status, true, nil
}
