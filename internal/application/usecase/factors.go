package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// factorLoader assembles ScoreFactors from the loan read model and overlays
// the borrower's KYC outcome from the submission store.
type factorLoader struct {
	source      port.FactorSource
	submissions port.SubmissionRepository
}

func (l factorLoader) load(ctx context.Context, borrowerID uuid.UUID) (valueobject.ScoreFactors, error) {
	f, err := l.source.LoadFactors(ctx, borrowerID)
	if err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("failed to load score factors: %w", err)
	}
	if err := f.Validate(); err != nil {
		return valueobject.ScoreFactors{}, fmt.Errorf("invalid score factors for borrower %s: %w", borrowerID, err)
	}

	f.KYCVerified, err = l.kycVerified(ctx, borrowerID)
	if err != nil {
		return valueobject.ScoreFactors{}, err
	}
	return f, nil
}

// kycVerified reports whether the borrower's submission is currently verified.
// A borrower without a submission is unverified.
func (l factorLoader) kycVerified(ctx context.Context, borrowerID uuid.UUID) (bool, error) {
	sub, err := l.submissions.FindByOwner(ctx, borrowerID)
	switch {
	case err == nil:
		return sub.IsVerified(), nil
	case errors.Is(err, valueobject.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to load kyc status: %w", err)
	}
}

// authorizeBorrowerRead lets admins and lenders read any borrower's risk
// profile and borrowers read only their own.
func authorizeBorrowerRead(actor valueobject.Actor, borrowerID uuid.UUID, action string) error {
	if actor.IsAdmin() || actor.Role == valueobject.RoleLender {
		return nil
	}
	return actor.RequireOwner(borrowerID, action)
}
