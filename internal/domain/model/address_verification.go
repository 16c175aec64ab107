package model

import (
	"time"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// AddressVerification tracks the optional address-proof document. It is
// reviewed independently of its parent submission's status.
type AddressVerification struct {
	status          valueobject.AddressStatus
	rejectionReason string
	reviewedAt      *time.Time
}

func newAddressVerification(docs valueobject.Documents) AddressVerification {
	if _, ok := docs[valueobject.DocAddressProof]; ok {
		return AddressVerification{status: valueobject.AddressSubmitted}
	}
	return AddressVerification{status: valueobject.AddressNotSubmitted}
}

// ReconstructAddressVerification recreates the sub-verification from persistence.
func ReconstructAddressVerification(status valueobject.AddressStatus, reason string, reviewedAt *time.Time) AddressVerification {
	return AddressVerification{status: status, rejectionReason: reason, reviewedAt: reviewedAt}
}

func (a AddressVerification) Status() valueobject.AddressStatus { return a.status }
func (a AddressVerification) RejectionReason() string           { return a.rejectionReason }

func (a AddressVerification) ReviewedAt() *time.Time {
	if a.reviewedAt == nil {
		return nil
	}
	t := *a.reviewedAt
	return &t
}
