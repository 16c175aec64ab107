package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// SubmitAddressProof attaches or replaces the owner's address proof.
type SubmitAddressProof struct {
	writer submissionWriter
}

func NewSubmitAddressProof(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *SubmitAddressProof {
	return &SubmitAddressProof{writer: submissionWriter{repo: repo, publisher: publisher, metrics: metrics, logger: logger}}
}

func (uc *SubmitAddressProof) Execute(ctx context.Context, req dto.SubmitAddressProofRequest) (dto.SubmissionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	now := time.Now().UTC()
	sub, err := uc.writer.apply(ctx, "submit_address", req.SubmissionID, func(s model.KYCSubmission) (model.KYCSubmission, error) {
		return s.SubmitAddressProof(req.Actor, req.Reference, now)
	})
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	return toSubmissionResponse(sub), nil
}

// ReviewAddressVerification records an admin's decision on the address
// sub-verification. The parent submission status is never changed.
type ReviewAddressVerification struct {
	writer submissionWriter
}

func NewReviewAddressVerification(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *ReviewAddressVerification {
	return &ReviewAddressVerification{writer: submissionWriter{repo: repo, publisher: publisher, metrics: metrics, logger: logger}}
}

func (uc *ReviewAddressVerification) Execute(ctx context.Context, req dto.ReviewAddressRequest) (dto.SubmissionResponse, error) {
	if err := req.Actor.RequireAdmin("address review"); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	outcome, err := valueobject.NewAddressStatus(req.Status)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid address outcome: %w", err)
	}

	now := time.Now().UTC()
	sub, err := uc.writer.apply(ctx, "review_address", req.SubmissionID, func(s model.KYCSubmission) (model.KYCSubmission, error) {
		return s.ReviewAddress(req.Actor, outcome, req.RejectionReason, now)
	})
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	return toSubmissionResponse(sub), nil
}
