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

// ResubmitKYC returns a rejected submission to pending with new documents,
// consuming one of the owner's attempts.
type ResubmitKYC struct {
	writer submissionWriter
}

func NewResubmitKYC(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *ResubmitKYC {
	return &ResubmitKYC{writer: submissionWriter{repo: repo, publisher: publisher, metrics: metrics, logger: logger}}
}

func (uc *ResubmitKYC) Execute(ctx context.Context, req dto.ResubmitKYCRequest) (dto.SubmissionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	docs, err := valueobject.ParseDocuments(req.Documents)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid documents: %w", err)
	}

	now := time.Now().UTC()
	sub, err := uc.writer.apply(ctx, "resubmit", req.SubmissionID, func(s model.KYCSubmission) (model.KYCSubmission, error) {
		return s.Resubmit(req.Actor, docs, now)
	})
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	return toSubmissionResponse(sub), nil
}
