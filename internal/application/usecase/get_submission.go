package usecase

import (
	"context"
	"fmt"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
)

// GetSubmission returns one submission to its owner or to an admin.
type GetSubmission struct {
	repo port.SubmissionRepository
}

func NewGetSubmission(repo port.SubmissionRepository) *GetSubmission {
	return &GetSubmission{repo: repo}
}

func (uc *GetSubmission) Execute(ctx context.Context, req dto.GetSubmissionRequest) (dto.SubmissionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	sub, err := uc.repo.FindByID(ctx, req.SubmissionID)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to find submission: %w", err)
	}

	if !req.Actor.IsAdmin() {
		if err := req.Actor.RequireOwner(sub.OwnerID(), "submission lookup"); err != nil {
			return dto.SubmissionResponse{}, err
		}
	}
	return toSubmissionResponse(sub), nil
}
