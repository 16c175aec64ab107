package valueobject

// Decision is the recommendation produced by a risk assessment.
type Decision struct {
	value string
}

var (
	DecisionApprove = Decision{"approve"}
	DecisionReject  = Decision{"reject"}
)

func (d Decision) String() string { return d.value }

func (d Decision) IsApproved() bool { return d == DecisionApprove }
