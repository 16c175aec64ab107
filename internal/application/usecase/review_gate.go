package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// ReviewGate is the admin-only entry point for KYC decisions. Every write
// is conditional on the status and version the admin acted on.
type ReviewGate struct {
	writer submissionWriter
	cache  port.ScoreCache
}

// NewReviewGate wires the gate. cache may be nil; when set, a borrower's
// cached score is dropped whenever their KYC outcome changes.
func NewReviewGate(
	repo port.SubmissionRepository,
	publisher port.EventPublisher,
	cache port.ScoreCache,
	metrics port.Metrics,
	logger *slog.Logger,
) *ReviewGate {
	return &ReviewGate{
		writer: submissionWriter{repo: repo, publisher: publisher, metrics: metrics, logger: logger},
		cache:  cache,
	}
}

// Review verifies or rejects a pending submission.
func (g *ReviewGate) Review(ctx context.Context, req dto.ReviewSubmissionRequest) (dto.SubmissionResponse, error) {
	if err := req.Actor.RequireAdmin("kyc review"); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	action, err := valueobject.NewSubmissionStatus(req.Action)
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("invalid review action: %w", err)
	}

	now := time.Now().UTC()
	sub, err := g.writer.apply(ctx, "review", req.SubmissionID, func(s model.KYCSubmission) (model.KYCSubmission, error) {
		return s.Review(req.Actor, action, req.Comment, now)
	})
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if sub.IsVerified() {
		g.invalidateScore(ctx, sub.OwnerID())
	}
	return toSubmissionResponse(sub), nil
}

// ResetAttempts restores an exhausted submission to pending with one attempt used.
func (g *ReviewGate) ResetAttempts(ctx context.Context, req dto.ResetAttemptsRequest) (dto.SubmissionResponse, error) {
	if err := req.Actor.RequireAdmin("attempt reset"); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := dto.Validate(req); err != nil {
		return dto.SubmissionResponse{}, err
	}

	now := time.Now().UTC()
	sub, err := g.writer.apply(ctx, "reset_attempts", req.SubmissionID, func(s model.KYCSubmission) (model.KYCSubmission, error) {
		return s.ResetAttempts(req.Actor, req.Comment, now)
	})
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	g.writer.logger.InfoContext(ctx, "kyc attempts reset",
		"submission_id", sub.ID(),
		"owner_id", sub.OwnerID(),
		"admin_id", req.Actor.UserID,
	)
	return toSubmissionResponse(sub), nil
}

func (g *ReviewGate) invalidateScore(ctx context.Context, borrowerID uuid.UUID) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Invalidate(ctx, borrowerID); err != nil {
		g.writer.logger.WarnContext(ctx, "score cache invalidation failed", "borrower_id", borrowerID, "error", err)
	}
}
