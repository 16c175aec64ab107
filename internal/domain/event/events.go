package event

import (
	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/pkg/events"
)

const (
	AggregateTypeKYCSubmission = "KYCSubmission"
	AggregateTypeBorrower      = "Borrower"
)

// SubmissionCreated is emitted when a borrower's first KYC submission is recorded.
type SubmissionCreated struct {
	events.BaseEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Documents    []string  `json:"documents"`
}

func NewSubmissionCreated(submissionID, ownerID uuid.UUID, documents []string) SubmissionCreated {
	return SubmissionCreated{
		BaseEvent:    events.NewBaseEvent("kyc.submission.created", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID: submissionID,
		OwnerID:      ownerID,
		Documents:    documents,
	}
}

// SubmissionResubmitted is emitted when a rejected submission returns to pending.
type SubmissionResubmitted struct {
	events.BaseEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Attempt      int       `json:"attempt"`
}

func NewSubmissionResubmitted(submissionID, ownerID uuid.UUID, attempt int) SubmissionResubmitted {
	return SubmissionResubmitted{
		BaseEvent:    events.NewBaseEvent("kyc.submission.resubmitted", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID: submissionID,
		OwnerID:      ownerID,
		Attempt:      attempt,
	}
}

// SubmissionReviewed is emitted when an admin verifies or rejects a submission.
type SubmissionReviewed struct {
	events.BaseEvent
	SubmissionID       uuid.UUID `json:"submission_id"`
	OwnerID            uuid.UUID `json:"owner_id"`
	ReviewerID         uuid.UUID `json:"reviewer_id"`
	Status             string    `json:"status"`
	Attempt            int       `json:"attempt"`
	MaxAttemptsReached bool      `json:"max_attempts_reached"`
}

func NewSubmissionReviewed(submissionID, ownerID, reviewerID uuid.UUID, status string, attempt int, maxReached bool) SubmissionReviewed {
	return SubmissionReviewed{
		BaseEvent:          events.NewBaseEvent("kyc.submission.reviewed", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID:       submissionID,
		OwnerID:            ownerID,
		ReviewerID:         reviewerID,
		Status:             status,
		Attempt:            attempt,
		MaxAttemptsReached: maxReached,
	}
}

// AttemptsReset is emitted when an admin unblocks an exhausted submission.
type AttemptsReset struct {
	events.BaseEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	AdminID      uuid.UUID `json:"admin_id"`
}

func NewAttemptsReset(submissionID, ownerID, adminID uuid.UUID) AttemptsReset {
	return AttemptsReset{
		BaseEvent:    events.NewBaseEvent("kyc.submission.attempts_reset", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID: submissionID,
		OwnerID:      ownerID,
		AdminID:      adminID,
	}
}

// AddressProofSubmitted is emitted when the owner attaches an address proof.
type AddressProofSubmitted struct {
	events.BaseEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
}

func NewAddressProofSubmitted(submissionID, ownerID uuid.UUID) AddressProofSubmitted {
	return AddressProofSubmitted{
		BaseEvent:    events.NewBaseEvent("kyc.address.submitted", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID: submissionID,
		OwnerID:      ownerID,
	}
}

// AddressReviewed is emitted when an admin reviews the address sub-verification.
type AddressReviewed struct {
	events.BaseEvent
	SubmissionID    uuid.UUID `json:"submission_id"`
	ReviewerID      uuid.UUID `json:"reviewer_id"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
}

func NewAddressReviewed(submissionID, reviewerID uuid.UUID, status, reason string) AddressReviewed {
	return AddressReviewed{
		BaseEvent:       events.NewBaseEvent("kyc.address.reviewed", submissionID.String(), AggregateTypeKYCSubmission),
		SubmissionID:    submissionID,
		ReviewerID:      reviewerID,
		Status:          status,
		RejectionReason: reason,
	}
}

// RiskAssessed is emitted after a risk model produces a recommendation.
type RiskAssessed struct {
	events.BaseEvent
	BorrowerID       uuid.UUID `json:"borrower_id"`
	ModelID          string    `json:"model_id"`
	OverallScore     string    `json:"overall_score"`
	Decision         string    `json:"decision"`
	SuggestedRateBps int       `json:"suggested_rate_bps"`
}

func NewRiskAssessed(borrowerID uuid.UUID, modelID, overallScore, decision string, rateBps int) RiskAssessed {
	return RiskAssessed{
		BaseEvent:        events.NewBaseEvent("credit.risk.assessed", borrowerID.String(), AggregateTypeBorrower),
		BorrowerID:       borrowerID,
		ModelID:          modelID,
		OverallScore:     overallScore,
		Decision:         decision,
		SuggestedRateBps: rateBps,
	}
}
