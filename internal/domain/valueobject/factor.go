package valueobject

// Factor names one scoring input. Presets weight factors; breakdowns report
// per-factor contributions.
type Factor string

const (
	FactorPaymentHistory    Factor = "payment_history"
	FactorCreditUtilization Factor = "credit_utilization"
	FactorHistoryLength     Factor = "history_length"
	FactorLoanDiversity     Factor = "loan_diversity"
	FactorSocialTrust       Factor = "social_trust"
	FactorKYCVerification   Factor = "kyc_verification"
)

// AllFactors returns every factor in display order.
func AllFactors() []Factor {
	return []Factor{
		FactorPaymentHistory,
		FactorCreditUtilization,
		FactorHistoryLength,
		FactorLoanDiversity,
		FactorSocialTrust,
		FactorKYCVerification,
	}
}

func (f Factor) IsValid() bool {
	switch f {
	case FactorPaymentHistory, FactorCreditUtilization, FactorHistoryLength,
		FactorLoanDiversity, FactorSocialTrust, FactorKYCVerification:
		return true
	}
	return false
}
