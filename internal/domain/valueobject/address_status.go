package valueobject

import "fmt"

// AddressStatus is the state of the optional address-proof sub-verification.
type AddressStatus struct {
	value string
}

var (
	AddressNotSubmitted = AddressStatus{"not_submitted"}
	AddressSubmitted    = AddressStatus{"submitted"}
	AddressVerified     = AddressStatus{"verified"}
	AddressRejected     = AddressStatus{"rejected"}
)

var validAddressStatuses = map[string]AddressStatus{
	"not_submitted": AddressNotSubmitted,
	"submitted":     AddressSubmitted,
	"verified":      AddressVerified,
	"rejected":      AddressRejected,
}

var addressTransitions = map[AddressStatus][]AddressStatus{
	AddressNotSubmitted: {AddressSubmitted},
	AddressSubmitted:    {AddressVerified, AddressRejected},
	AddressRejected:     {AddressSubmitted},
}

func NewAddressStatus(s string) (AddressStatus, error) {
	st, ok := validAddressStatuses[s]
	if !ok {
		return AddressStatus{}, Validationf("unknown address verification status: %q", s)
	}
	return st, nil
}

func (s AddressStatus) String() string { return s.value }

func (s AddressStatus) IsZero() bool { return s.value == "" }

// ValidateTransition returns ErrInvalidTransition when s -> target is illegal.
func (s AddressStatus) ValidateTransition(target AddressStatus) error {
	for _, allowed := range addressTransitions[s] {
		if allowed == target {
			return nil
		}
	}
	return fmt.Errorf("%w: address verification %s -> %s", ErrInvalidTransition, s, target)
}
