package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates a new repository for dashboard aggregation.
func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepository {
	return &PgxSummaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSummaryRepository implements portsrepo.SummaryRepository
var _ portsrepo.SummaryRepository = (*PgxSummaryRepository)(nil)

// whereBuilder collects AND-ed predicates and their positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

// arg registers v and returns its placeholder.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// ptpPredicate is the SQL form of domain.ClassifyPTP over ledger_entries aliased as l.
// today is the placeholder bound to the civil date.
func ptpPredicate(bucket domain.PTPBucket, today string) (string, error) {
	switch bucket {
	case domain.PTPOverdue:
		return "l.ptp_date < " + today + "::date", nil
	case domain.PTPToday:
		return "l.ptp_date = " + today + "::date", nil
	case domain.PTPTomorrow:
		return "l.ptp_date = " + today + "::date + 1", nil
	case domain.PTPFuture:
		return "l.ptp_date > " + today + "::date + 1", nil
	case domain.PTPNone:
		return "l.ptp_date IS NULL", nil
	}
	return "", apperrors.NewValidationError("unknown PTP bucket %q", bucket)
}

// ptpCountsQuery counts ledger entries per bucket, one column per domain.PTPBuckets entry in order.
func ptpCountsQuery(today string) (string, error) {
	columns := make([]string, len(domain.PTPBuckets))
	for i, bucket := range domain.PTPBuckets {
		predicate, err := ptpPredicate(bucket, today)
		if err != nil {
			return "", err
		}
		columns[i] = "COUNT(*) FILTER (WHERE " + predicate + ")"
	}
	return "SELECT " + strings.Join(columns, ", ") + " FROM ledger_entries l;", nil
}

// CountByStatus groups the entries matching filter by repayment status.
func (r *PgxSummaryRepository) CountByStatus(ctx context.Context, filter domain.SummaryFilter) ([]domain.StatusCount, error) {
	var w whereBuilder

	if filter.Period != nil {
		start := time.Date(filter.Period.Year(), filter.Period.Month(), 1, 0, 0, 0, 0, time.UTC)
		w.add("l.demand_date >= " + w.arg(start) + " AND l.demand_date < " + w.arg(start.AddDate(0, 1, 0)))
	}
	if filter.Branch != "" {
		w.add("b.name = " + w.arg(filter.Branch))
	}
	if filter.Dealer != "" {
		w.add("d.name = " + w.arg(filter.Dealer))
	}
	if filter.Lender != "" {
		w.add("le.name = " + w.arg(filter.Lender))
	}
	if filter.RMName != "" {
		w.add("rm.name = " + w.arg(filter.RMName))
	}
	if filter.TLName != "" {
		w.add("tl.name = " + w.arg(filter.TLName))
	}
	if filter.Status != nil {
		w.add("l.repayment_status = " + w.arg(string(*filter.Status)))
	}
	if filter.PTPBucket != nil {
		predicate, err := ptpPredicate(*filter.PTPBucket, w.arg(domain.CivilDate(filter.Today)))
		if err != nil {
			return nil, err
		}
		w.add(predicate)
	}
	if filter.LedgerID > 0 {
		w.add("l.id = " + w.arg(filter.LedgerID))
	}
	if filter.DemandNum != nil {
		w.add("l.demand_num = " + w.arg(*filter.DemandNum))
	}

	query := `SELECT l.repayment_status, COUNT(*) FROM ledger_entries l` + facetJoins + w.sql() +
		` GROUP BY l.repayment_status;`

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count ledger entries by status", err)
	}
	defer rows.Close()

	counts := []domain.StatusCount{}
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status counts", err)
	}
	return counts, nil
}

// GetFilterOptions sends every dropdown query in one batch.
func (r *PgxSummaryRepository) GetFilterOptions(ctx context.Context, today time.Time) (*domain.FilterOptions, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT DISTINCT date_trunc('month', demand_date)::date AS m FROM ledger_entries ORDER BY m;`)
	batch.Queue(`SELECT name FROM branches ORDER BY name;`)
	batch.Queue(`SELECT name FROM dealers ORDER BY name;`)
	batch.Queue(`SELECT name FROM lenders ORDER BY name;`)
	batch.Queue(`SELECT DISTINCT name FROM staff WHERE role = 'RM' ORDER BY name;`)
	batch.Queue(`SELECT DISTINCT name FROM staff WHERE role = 'TL' ORDER BY name;`)
	batch.Queue(`SELECT DISTINCT demand_num FROM ledger_entries ORDER BY demand_num;`)
	ptpQuery, err := ptpCountsQuery("$1")
	if err != nil {
		return nil, err
	}
	batch.Queue(ptpQuery, domain.CivilDate(today))

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	months, err := collectBatch(br, pgx.RowTo[time.Time])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list billing periods", err)
	}
	opts := &domain.FilterOptions{
		Periods:   make([]string, len(months)),
		Statuses:  domain.RepaymentStatuses,
		PTPCounts: make(map[domain.PTPBucket]int64, len(domain.PTPBuckets)),
	}
	for i, m := range months {
		opts.Periods[i] = m.Format(domain.PeriodLayout)
	}

	for _, target := range []struct {
		dst  *[]string
		name string
	}{
		{&opts.Branches, "branches"},
		{&opts.Dealers, "dealers"},
		{&opts.Lenders, "lenders"},
		{&opts.RMs, "relationship managers"},
		{&opts.TLs, "team leads"},
	} {
		names, err := collectBatch(br, pgx.RowTo[string])
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to list "+target.name, err)
		}
		*target.dst = names
	}

	if opts.DemandNums, err = collectBatch(br, pgx.RowTo[int]); err != nil {
		return nil, apperrors.NewAppError(500, "failed to list demand numbers", err)
	}

	counts := make([]int64, len(domain.PTPBuckets))
	dest := make([]any, len(counts))
	for i := range counts {
		dest[i] = &counts[i]
	}
	if err := br.QueryRow().Scan(dest...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to count PTP buckets", err)
	}
	for i, bucket := range domain.PTPBuckets {
		opts.PTPCounts[bucket] = counts[i]
	}

	return opts, nil
}

// collectBatch reads the next queued query of br into a slice.
func collectBatch[T any](br pgx.BatchResults, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, fn)
}
