package valueobject

import "fmt"

// SubmissionStatus is the lifecycle state of a KYC submission.
type SubmissionStatus struct {
	value string
}

var (
	SubmissionPending  = SubmissionStatus{"pending"}
	SubmissionVerified = SubmissionStatus{"verified"}
	SubmissionRejected = SubmissionStatus{"rejected"}
)

var validSubmissionStatuses = map[string]SubmissionStatus{
	"pending":  SubmissionPending,
	"verified": SubmissionVerified,
	"rejected": SubmissionRejected,
}

// submissionTransitions lists the legal edges of the KYC state machine.
// verified has no outgoing edges.
var submissionTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionPending:  {SubmissionVerified, SubmissionRejected},
	SubmissionRejected: {SubmissionPending},
}

// NewSubmissionStatus parses the canonical spelling of a status. Legacy
// spellings are rejected; they are rewritten by a schema migration instead.
func NewSubmissionStatus(s string) (SubmissionStatus, error) {
	st, ok := validSubmissionStatuses[s]
	if !ok {
		return SubmissionStatus{}, Validationf("unknown submission status: %q", s)
	}
	return st, nil
}

func (s SubmissionStatus) String() string { return s.value }

func (s SubmissionStatus) IsZero() bool { return s.value == "" }

// IsTerminal reports whether no transition may leave this status.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionVerified
}

// CanTransitionTo reports whether the edge s -> target exists.
func (s SubmissionStatus) CanTransitionTo(target SubmissionStatus) bool {
	for _, allowed := range submissionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrTerminalState or ErrInvalidTransition when s -> target is illegal.
func (s SubmissionStatus) ValidateTransition(target SubmissionStatus) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrTerminalState, s, target)
	}
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// IsReviewOutcome reports whether s is a valid admin review action.
func (s SubmissionStatus) IsReviewOutcome() bool {
	return s == SubmissionVerified || s == SubmissionRejected
}
