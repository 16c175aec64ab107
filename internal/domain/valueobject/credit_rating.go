package valueobject

// CreditRating is the qualitative band of a credit score.
type CreditRating struct {
	value string
}

var (
	RatingPoor      = CreditRating{"Poor"}
	RatingFair      = CreditRating{"Fair"}
	RatingGood      = CreditRating{"Good"}
	RatingExcellent = CreditRating{"Excellent"}
)

// Score bounds and rating cut-offs.
const (
	MinCreditScore = 300
	MaxCreditScore = 850

	excellentFrom = 750
	goodFrom      = 650
	fairFrom      = 550
)

// RatingForScore maps a score onto its rating band.
func RatingForScore(score int) CreditRating {
	switch {
	case score >= excellentFrom:
		return RatingExcellent
	case score >= goodFrom:
		return RatingGood
	case score >= fairFrom:
		return RatingFair
	default:
		return RatingPoor
	}
}

func (r CreditRating) String() string { return r.value }
