package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// RateBand bounds suggested interest rates, in basis points.
type RateBand struct {
	MinBps int
	MaxBps int
}

// DefaultRateBand is the platform band of 8% to 18%.
var DefaultRateBand = RateBand{MinBps: 800, MaxBps: 1800}

func (b RateBand) Validate() error {
	if b.MinBps <= 0 || b.MaxBps < b.MinBps {
		return valueobject.Validationf("invalid rate band [%d, %d] bps", b.MinBps, b.MaxBps)
	}
	return nil
}

// RiskAssessment is the outcome of applying a preset to a borrower's factors.
type RiskAssessment struct {
	ModelID          string
	ModelName        string
	OverallScore     decimal.Decimal
	Threshold        decimal.Decimal
	Decision         valueobject.Decision
	SuggestedRateBps int
	FactorScores     map[valueobject.Factor]decimal.Decimal
	Reasons          []string
}

// DecisionEngine applies a registered risk model to ScoreFactors.
type DecisionEngine struct {
	registry *RiskModelRegistry
	band     RateBand
}

func NewDecisionEngine(registry *RiskModelRegistry, band RateBand) (*DecisionEngine, error) {
	if registry == nil {
		return nil, fmt.Errorf("risk model registry is required")
	}
	if err := band.Validate(); err != nil {
		return nil, err
	}
	return &DecisionEngine{registry: registry, band: band}, nil
}

// Assess resolves modelID in the registry and evaluates f against it.
// An unknown modelID fails with ErrUnknownModel.
func (e *DecisionEngine) Assess(f valueobject.ScoreFactors, modelID string) (RiskAssessment, error) {
	preset, err := e.registry.Get(modelID)
	if err != nil {
		return RiskAssessment{}, err
	}
	return e.Evaluate(f, preset), nil
}

// Evaluate computes the preset-weighted score in [0,100] and derives the
// decision and rate. Borrowers without any loan history are never approved
// on model output alone.
func (e *DecisionEngine) Evaluate(f valueobject.ScoreFactors, preset RiskModelPreset) RiskAssessment {
	f = f.Normalize()
	subScores := factorSubScores(f)

	overall := decimal.Zero
	for factor, s := range subScores {
		overall = overall.Add(preset.Weight(factor).Mul(s))
	}
	overall = decimal.Min(decimal.Max(overall, decimal.Zero), hundred).Round(2)

	decision := valueobject.DecisionReject
	var reasons []string
	switch {
	case f.IsColdStart():
		reasons = append(reasons, "no loan history: cold-start borrowers require manual underwriting")
	case overall.GreaterThanOrEqual(preset.ApprovalThreshold):
		decision = valueobject.DecisionApprove
		reasons = append(reasons, fmt.Sprintf("weighted score %s meets %s threshold %s", overall.StringFixed(2), preset.ID, preset.ApprovalThreshold.String()))
	default:
		reasons = append(reasons, fmt.Sprintf("weighted score %s below %s threshold %s", overall.StringFixed(2), preset.ID, preset.ApprovalThreshold.String()))
	}
	if !f.KYCVerified {
		reasons = append(reasons, "identity verification incomplete")
	}

	return RiskAssessment{
		ModelID:          preset.ID,
		ModelName:        preset.DisplayName,
		OverallScore:     overall,
		Threshold:        preset.ApprovalThreshold,
		Decision:         decision,
		SuggestedRateBps: e.suggestedRate(overall),
		FactorScores:     subScores,
		Reasons:          reasons,
	}
}

// suggestedRate interpolates linearly inside the band: a score of 100 gets
// the minimum rate, a score of 0 the maximum.
func (e *DecisionEngine) suggestedRate(overall decimal.Decimal) int {
	spread := decimal.NewFromInt(int64(e.band.MaxBps - e.band.MinBps))
	discount := spread.Mul(overall).Div(hundred)
	rate := decimal.NewFromInt(int64(e.band.MaxBps)).Sub(discount).Round(0).IntPart()
	return int(min(max(rate, int64(e.band.MinBps)), int64(e.band.MaxBps)))
}

// factorSubScores normalizes each factor onto [0,100].
func factorSubScores(f valueobject.ScoreFactors) map[valueobject.Factor]decimal.Decimal {
	utilization := 0.0
	if !f.IsColdStart() {
		utilization = 100
		if f.CreditUtilization > utilizationPenaltyFrom {
			utilization = (100 - f.CreditUtilization) / (100 - utilizationPenaltyFrom) * 100
		}
	}

	kyc := 0.0
	if f.KYCVerified {
		kyc = 100
	}

	return map[valueobject.Factor]decimal.Decimal{
		valueobject.FactorPaymentHistory:    pct(f.RepaymentRatio() * 100),
		valueobject.FactorCreditUtilization: pct(utilization),
		valueobject.FactorHistoryLength:     pct(historyFraction(f.CreditHistoryMonths) * 100),
		valueobject.FactorLoanDiversity:     pct(math.Min(float64(f.LoanDiversityCount)*25, 100)),
		valueobject.FactorSocialTrust:       pct(f.SocialTrustScore),
		valueobject.FactorKYCVerification:   pct(kyc),
	}
}

func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
