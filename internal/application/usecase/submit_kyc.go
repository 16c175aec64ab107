package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// SubmitKYC records a borrower's first KYC submission. Later attempts go
// through ResubmitKYC.
type SubmitKYC struct {
	writer submissionWriter
}

func NewSubmitKYC(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *SubmitKYC {
	return &SubmitKYC{writer: submissionWriter{repo: repo, publisher: publisher, metrics: metrics, logger: logger}}
}

func (uc *SubmitKYC) Execute(ctx context.Context, req dto.SubmitKYCRequest) (dto.SubmissionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	docs, err := valueobject.ParseDocuments(req.Documents)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid documents: %w", err)
	}

	_, err = uc.writer.repo.FindByOwner(ctx, req.Actor.UserID)
	switch {
	case err == nil:
		return dto.SubmissionResponse{}, fmt.Errorf("%w: borrower %s already has a submission", valueobject.ErrInvalidTransition, req.Actor.UserID)
	case !errors.Is(err, valueobject.ErrNotFound):
		return dto.SubmissionResponse{}, fmt.Errorf("failed to look up existing submission: %w", err)
	}

	sub, err := model.NewKYCSubmission(req.Actor, docs, time.Now().UTC())
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to create submission: %w", err)
	}

	if err := uc.writer.repo.Create(ctx, sub); err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to save submission: %w", err)
	}

	uc.writer.metrics.SubmissionTransitioned(ctx, "submit", "", sub.Status().String())
	uc.writer.publish(ctx, sub)
	return toSubmissionResponse(sub), nil
}
