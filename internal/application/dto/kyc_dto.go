package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// SubmitKYCRequest is the input DTO for a borrower's first KYC submission.
type SubmitKYCRequest struct {
	Actor     valueobject.Actor `validate:"-"`
	Documents map[string]string `validate:"required,min=3,max=5"`
}

// ResubmitKYCRequest is the input DTO for resubmitting a rejected submission.
type ResubmitKYCRequest struct {
	Actor        valueobject.Actor `validate:"-"`
	SubmissionID uuid.UUID         `validate:"required"`
	Documents    map[string]string `validate:"required,min=3,max=5"`
}

// GetSubmissionRequest is the input DTO for reading one submission.
type GetSubmissionRequest struct {
	Actor        valueobject.Actor `validate:"-"`
	SubmissionID uuid.UUID         `validate:"required"`
}

// ListSubmissionsRequest is the input DTO for the admin submission listing.
type ListSubmissionsRequest struct {
	Actor         valueobject.Actor `validate:"-"`
	Status        string            `validate:"omitempty,oneof=pending verified rejected"`
	AddressStatus string            `validate:"omitempty,oneof=not_submitted submitted verified rejected"`
	PageSize      int               `validate:"gte=0,lte=200"`
	Offset        int               `validate:"gte=0"`
}

// ReviewSubmissionRequest is the input DTO for an admin KYC review.
type ReviewSubmissionRequest struct {
	Actor        valueobject.Actor `validate:"-"`
	SubmissionID uuid.UUID         `validate:"required"`
	Action       string            `validate:"required,oneof=verified rejected"`
	Comment      string            `validate:"max=2000"`
}

// ResetAttemptsRequest is the input DTO for an admin attempt reset.
type ResetAttemptsRequest struct {
	Actor        valueobject.Actor `validate:"-"`
	SubmissionID uuid.UUID         `validate:"required"`
	Comment      string            `validate:"max=2000"`
}

// ReviewAddressRequest is the input DTO for an admin address-proof review.
type ReviewAddressRequest struct {
	Actor           valueobject.Actor `validate:"-"`
	SubmissionID    uuid.UUID         `validate:"required"`
	Status          string            `validate:"required,oneof=verified rejected"`
	RejectionReason string            `validate:"max=2000"`
}

// SubmitAddressProofRequest is the input DTO for attaching an address proof.
type SubmitAddressProofRequest struct {
	Actor        valueobject.Actor `validate:"-"`
	SubmissionID uuid.UUID         `validate:"required"`
	Reference    string            `validate:"required,max=1024"`
}

// ReviewCommentDTO transfers an audit comment across layer boundaries.
type ReviewCommentDTO struct {
	CreatedAt  time.Time
	ID         uuid.UUID
	AuthorID   uuid.UUID
	AuthorRole string
	Text       string
}

// AddressVerificationDTO transfers the address sub-verification.
type AddressVerificationDTO struct {
	ReviewedAt      *time.Time
	Status          string
	RejectionReason string
}

// SubmissionResponse is the output DTO for a KYC submission.
type SubmissionResponse struct {
	SubmittedAt        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ReviewedAt         *time.Time
	Documents          map[string]string
	Comments           []ReviewCommentDTO
	Address            AddressVerificationDTO
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Status             string
	Attempts           int
	Version            int
	MaxAttemptsReached bool
}

// ListSubmissionsResponse is the output DTO for the submission listing.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse
	TotalCount  int
}
