package service

import (
	"math"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// Point budget of each score term.
const (
	paymentHistoryMaxPoints = 250
	utilizationMaxPenalty   = 100
	utilizationPenaltyFrom  = 30.0
	historyLengthMaxPoints  = 100
	historySaturationMonths = 60
	diversityPointsPerType  = 15
	diversityMaxPoints      = 45
	socialTrustMaxPoints    = 50
	kycVerifiedPoints       = 50
)

// ScoreCalculator converts ScoreFactors into a bounded CreditScore.
// It is deterministic and total: out-of-range inputs are normalized to their
// most conservative value rather than rejected.
type ScoreCalculator struct{}

func NewScoreCalculator() *ScoreCalculator {
	return &ScoreCalculator{}
}

// Compute scores the factors. Starting from the 300 floor it adds:
//
//	payment history   repaid/total scaled to 0..250
//	utilization       0 up to 30%, then a linear penalty to -100 at 100%
//	history length    logarithmic in months, 0..100, saturating at 60 months
//	loan diversity    15 per closed loan type, up to 45
//	social trust      trust/2, 0..50
//	kyc               +50 verified, -50 otherwise
//
// The result is clamped to [300,850]. BorrowerID and LastUpdated are left to the caller.
func (c *ScoreCalculator) Compute(f valueobject.ScoreFactors) model.CreditScore {
	f = f.Normalize()

	breakdown := map[valueobject.Factor]int{
		valueobject.FactorPaymentHistory:    paymentHistoryPoints(f),
		valueobject.FactorCreditUtilization: utilizationPoints(f.CreditUtilization),
		valueobject.FactorHistoryLength:     historyLengthPoints(f.CreditHistoryMonths),
		valueobject.FactorLoanDiversity:     min(f.LoanDiversityCount, diversityMaxPoints/diversityPointsPerType) * diversityPointsPerType,
		valueobject.FactorSocialTrust:       int(math.Round(f.SocialTrustScore / 100 * socialTrustMaxPoints)),
		valueobject.FactorKYCVerification:   kycPoints(f.KYCVerified),
	}

	raw := valueobject.MinCreditScore
	for _, points := range breakdown {
		raw += points
	}
	score := min(max(raw, valueobject.MinCreditScore), valueobject.MaxCreditScore)

	return model.CreditScore{
		Score:     score,
		Rating:    valueobject.RatingForScore(score),
		Breakdown: breakdown,
		Clamped:   score != raw,
	}
}

func paymentHistoryPoints(f valueobject.ScoreFactors) int {
	return int(math.Round(f.RepaymentRatio() * paymentHistoryMaxPoints))
}

func utilizationPoints(utilization float64) int {
	if utilization <= utilizationPenaltyFrom {
		return 0
	}
	over := (utilization - utilizationPenaltyFrom) / (100 - utilizationPenaltyFrom)
	return -int(math.Round(over * utilizationMaxPenalty))
}

func historyLengthPoints(months int) int {
	return int(math.Round(historyFraction(months) * historyLengthMaxPoints))
}

// historyFraction maps months of history onto [0,1] with diminishing returns.
func historyFraction(months int) float64 {
	if months <= 0 {
		return 0
	}
	return min(math.Log1p(float64(months))/math.Log1p(historySaturationMonths), 1)
}

func kycPoints(verified bool) int {
	if verified {
		return kycVerifiedPoints
	}
	return -kycVerifiedPoints
}
