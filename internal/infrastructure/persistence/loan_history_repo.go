package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/pkg/money"
)

var _ port.FactorSource = (*LoanHistoryRepo)(nil)

// LoanHistoryRepo derives ScoreFactors from the loan read model.
type LoanHistoryRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewLoanHistoryRepo(pool *pgxpool.Pool) *LoanHistoryRepo {
	return &LoanHistoryRepo{pool: pool, now: time.Now}
}

// LoadFactors aggregates the borrower's loan records and credit profile. A
// borrower with no rows yields zeroed factors; any database failure is
// reported as ErrSourceUnavailable.
func (r *LoanHistoryRepo) LoadFactors(ctx context.Context, borrowerID uuid.UUID) (valueobject.ScoreFactors, error) {
	var (
		total, repaid, purposes int
		borrowedStr, activeStr  string
		firstDisbursed          *time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'repaid'),
			COALESCE(SUM(principal), 0)::text,
			COALESCE(SUM(principal) FILTER (WHERE status = 'active'), 0)::text,
			COUNT(DISTINCT purpose) FILTER (WHERE status = 'repaid'),
			MIN(disbursed_at)
		FROM borrower_loan_records
		WHERE borrower_id = $1
	`, borrowerID).Scan(&total, &repaid, &borrowedStr, &activeStr, &purposes, &firstDisbursed)
	if err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("%w: aggregate loan records: %w", valueobject.ErrSourceUnavailable, err)
	}

	var limitStr string
	var trust float64
	err = r.pool.QueryRow(ctx, `
		SELECT credit_limit::text, social_trust_score::float8
		FROM borrower_credit_profiles
		WHERE borrower_id = $1
	`, borrowerID).Scan(&limitStr, &trust)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		limitStr, trust = "0", 0
	case err != nil:
		return valueobject.ScoreFactors{}, fmt.Errorf("%w: load credit profile: %w", valueobject.ErrSourceUnavailable, err)
	}

	borrowed, err := decimal.NewFromString(borrowedStr)
	if err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("%w: parse borrowed total: %w", valueobject.ErrSourceUnavailable, err)
	}
	active, err := decimal.NewFromString(activeStr)
	if err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("%w: parse active principal: %w", valueobject.ErrSourceUnavailable, err)
	}
	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("%w: parse credit limit: %w", valueobject.ErrSourceUnavailable, err)
	}

	f := valueobject.ScoreFactors{
		TotalLoans:          total,
		RepaidLoans:         repaid,
		TotalAmountBorrowed: money.New(borrowed, money.INR),
		CreditUtilization:   utilization(active, limit),
		LoanDiversityCount:  purposes,
		SocialTrustScore:    trust,
	}
	if firstDisbursed != nil {
		f.CreditHistoryMonths = monthsBetween(*firstDisbursed, r.now())
	}
	return f, nil
}

// utilization is outstanding principal as a percentage of the credit limit.
// Outstanding debt without a limit counts as fully utilized.
func utilization(active, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		if active.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := active.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	return min(pct, 100)
}

// monthsBetween counts whole calendar months from start to end.
func monthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	start, end = start.UTC(), end.UTC()
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return max(months, 0)
}
