package valueobject

import (
	"math"

	"github.com/Programmer60/BorrowEase-sub002/pkg/money"
)

// ScoreFactors describes a borrower's scoring inputs. It is recomputed on
// demand and never persisted on its own.
type ScoreFactors struct {
	TotalLoans          int
	RepaidLoans         int
	TotalAmountBorrowed money.Money
	CreditUtilization   float64 // percent, [0,100]
	CreditHistoryMonths int
	LoanDiversityCount  int
	SocialTrustScore    float64 // [0,100]
	KYCVerified         bool
}

// Validate rejects factor sets that violate the data model.
func (f ScoreFactors) Validate() error {
	switch {
	case f.TotalLoans < 0:
		return Validationf("total loans must be non-negative, got %d", f.TotalLoans)
	case f.RepaidLoans < 0:
		return Validationf("repaid loans must be non-negative, got %d", f.RepaidLoans)
	case f.RepaidLoans > f.TotalLoans:
		return Validationf("repaid loans (%d) exceed total loans (%d)", f.RepaidLoans, f.TotalLoans)
	case f.CreditHistoryMonths < 0:
		return Validationf("credit history months must be non-negative, got %d", f.CreditHistoryMonths)
	case f.LoanDiversityCount < 0:
		return Validationf("loan diversity count must be non-negative, got %d", f.LoanDiversityCount)
	case f.TotalAmountBorrowed.IsNegative():
		return Validationf("total amount borrowed must be non-negative, got %s", f.TotalAmountBorrowed)
	}
	return nil
}

// Normalize clamps every field into its legal range, substituting the most
// conservative value for anything out of bounds.
func (f ScoreFactors) Normalize() ScoreFactors {
	n := f
	n.TotalLoans = max(n.TotalLoans, 0)
	n.RepaidLoans = min(max(n.RepaidLoans, 0), n.TotalLoans)
	n.CreditHistoryMonths = max(n.CreditHistoryMonths, 0)
	n.LoanDiversityCount = max(n.LoanDiversityCount, 0)
	n.CreditUtilization = clampPercent(n.CreditUtilization, 100)
	n.SocialTrustScore = clampPercent(n.SocialTrustScore, 0)
	return n
}

// RepaymentRatio returns repaid/total in [0,1], or 0 with no loans.
func (f ScoreFactors) RepaymentRatio() float64 {
	if f.TotalLoans <= 0 {
		return 0
	}
	return float64(min(max(f.RepaidLoans, 0), f.TotalLoans)) / float64(f.TotalLoans)
}

// IsColdStart reports whether the borrower has no loan history at all.
func (f ScoreFactors) IsColdStart() bool {
	return f.TotalLoans <= 0
}

// clampPercent bounds v to [0,100]; NaN becomes fallback.
func clampPercent(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return min(max(v, 0), 100)
}
