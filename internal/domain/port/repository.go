package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
	"github.com/Programmer60/BorrowEase-sub002/pkg/events"
)

// ExpectedState is the pre-transition state a conditional update must still observe.
type ExpectedState struct {
	Status  valueobject.SubmissionStatus
	Version int
}

// ExpectedStateOf captures the compare-and-swap precondition for s.
func ExpectedStateOf(s model.KYCSubmission) ExpectedState {
	return ExpectedState{Status: s.Status(), Version: s.Version()}
}

// SubmissionFilter narrows a submission listing. Zero values match everything.
type SubmissionFilter struct {
	Status        valueobject.SubmissionStatus
	AddressStatus valueobject.AddressStatus
	Limit         int
	Offset        int
}

// SubmissionRepository defines persistence operations for KYC submissions.
type SubmissionRepository interface {
	// Create inserts a new submission. A second submission for the same owner
	// fails with ErrInvalidTransition.
	Create(ctx context.Context, s model.KYCSubmission) error
	// Update applies s only if the stored record still matches expected;
	// otherwise it fails with ErrConcurrentModification.
	Update(ctx context.Context, s model.KYCSubmission, expected ExpectedState) error
	// FindByID fails with ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (model.KYCSubmission, error)
	// FindByOwner fails with ErrNotFound when the borrower never submitted.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (model.KYCSubmission, error)
	// List returns matching submissions ordered by submission time and the total match count.
	List(ctx context.Context, filter SubmissionFilter) ([]model.KYCSubmission, int, error)
}

// FactorSource loads a borrower's raw scoring inputs. A borrower without
// history yields zeroed factors; an unreachable source yields ErrSourceUnavailable.
// KYCVerified is not populated by the source.
type FactorSource interface {
	LoadFactors(ctx context.Context, borrowerID uuid.UUID) (valueobject.ScoreFactors, error)
}

// ScoreCache stores computed credit scores. A miss is (zero, false, nil).
type ScoreCache interface {
	Get(ctx context.Context, borrowerID uuid.UUID) (model.CreditScore, bool, error)
	Set(ctx context.Context, score model.CreditScore) error
	Invalidate(ctx context.Context, borrowerID uuid.UUID) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}

// Metrics records engine-level measurements.
type Metrics interface {
	ScoreComputed(ctx context.Context, rating string, cached bool)
	RiskAssessed(ctx context.Context, modelID, decision string)
	SubmissionTransitioned(ctx context.Context, operation, from, to string)
	ConcurrentModification(ctx context.Context, operation string)
}
