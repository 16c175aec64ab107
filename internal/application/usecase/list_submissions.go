package usecase

import (
	"context"
	"fmt"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

const defaultPageSize = 50

// ListSubmissions returns the admin review queue, optionally filtered by status.
type ListSubmissions struct {
	repo port.SubmissionRepository
}

func NewListSubmissions(repo port.SubmissionRepository) *ListSubmissions {
	return &ListSubmissions{repo: repo}
}

func (uc *ListSubmissions) Execute(ctx context.Context, req dto.ListSubmissionsRequest) (dto.ListSubmissionsResponse, error) {
	if err := req.Actor.RequireAdmin("submission listing"); err != nil {
		return dto.ListSubmissionsResponse{}, err
	}
	if err := dto.Validate(req); err != nil {
		return dto.ListSubmissionsResponse{}, err
	}

	filter := port.SubmissionFilter{Limit: req.PageSize, Offset: req.Offset}
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}
	if req.Status != "" {
		status, err := valueobject.NewSubmissionStatus(req.Status)
		if err != nil {
			return dto.ListSubmissionsResponse{}, fmt.Errorf("invalid status filter: %w", err)
		}
		filter.Status = status
	}
	if req.AddressStatus != "" {
		status, err := valueobject.NewAddressStatus(req.AddressStatus)
		if err != nil {
			return dto.ListSubmissionsResponse{}, fmt.Errorf("invalid address status filter: %w", err)
		}
		filter.AddressStatus = status
	}

	subs, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return dto.ListSubmissionsResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	resp := dto.ListSubmissionsResponse{
		Submissions: make([]dto.SubmissionResponse, 0, len(subs)),
		TotalCount:  total,
	}
	for _, s := range subs {
		resp.Submissions = append(resp.Submissions, toSubmissionResponse(s))
	}
	return resp, nil
}
