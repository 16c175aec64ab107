package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// submissionWriter runs load, transition, conditional save and publish for
// every operation that mutates an existing submission.
type submissionWriter struct {
	repo      port.SubmissionRepository
	publisher port.EventPublisher
	metrics   port.Metrics
	logger    *slog.Logger
}

type transitionFunc func(model.KYCSubmission) (model.KYCSubmission, error)

func (w submissionWriter) apply(ctx context.Context, operation string, id uuid.UUID, transition transitionFunc) (model.KYCSubmission, error) {
	current, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return model.KYCSubmission{}, fmt.Errorf("failed to find submission: %w", err)
	}

	expected := port.ExpectedStateOf(current)
	updated, err := transition(current)
	if err != nil {
		return model.KYCSubmission{}, fmt.Errorf("failed to %s: %w", operation, err)
	}

	if err := w.repo.Update(ctx, updated, expected); err != nil {
		if errors.Is(err, valueobject.ErrConcurrentModification) {
			w.metrics.ConcurrentModification(ctx, operation)
			w.logger.WarnContext(ctx, "submission changed concurrently",
				"operation", operation,
				"submission_id", id,
				"expected_status", expected.Status.String(),
				"expected_version", expected.Version,
			)
		}
		return model.KYCSubmission{}, fmt.Errorf("failed to save submission: %w", err)
	}

	w.metrics.SubmissionTransitioned(ctx, operation, expected.Status.String(), updated.Status().String())
	w.publish(ctx, updated)
	return updated, nil
}

// publish is best-effort: the transition is already committed and a broker
// outage must not report it as failed.
func (w submissionWriter) publish(ctx context.Context, s model.KYCSubmission) {
	evts := s.DomainEvents()
	if len(evts) == 0 {
		return
	}
	if err := w.publisher.Publish(ctx, TopicKYCSubmissions, evts...); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish submission events",
			"submission_id", s.ID(),
			"events", len(evts),
			"error", err,
		)
	}
}
