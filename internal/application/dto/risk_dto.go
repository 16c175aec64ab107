package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// GetCreditScoreRequest is the input DTO for computing a borrower's credit score.
type GetCreditScoreRequest struct {
	Actor      valueobject.Actor `validate:"-"`
	BorrowerID uuid.UUID         `validate:"required"`
	// Refresh bypasses the score cache.
	Refresh bool
}

// CreditScoreResponse is the output DTO for a credit score.
type CreditScoreResponse struct {
	LastUpdated time.Time
	Breakdown   map[string]int
	Rating      string
	BorrowerID  uuid.UUID
	Score       int
	Cached      bool
}

// AssessRiskRequest is the input DTO for running a risk model against a borrower.
type AssessRiskRequest struct {
	Actor      valueobject.Actor `validate:"-"`
	BorrowerID uuid.UUID         `validate:"required"`
	ModelID    string            `validate:"omitempty,max=64"`
}

// RiskAssessmentResponse is the output DTO for a risk assessment.
type RiskAssessmentResponse struct {
	AssessedAt       time.Time
	FactorScores     map[string]string
	BorrowerID       uuid.UUID
	ModelID          string
	ModelName        string
	OverallScore     string
	Threshold        string
	Decision         string
	SuggestedRate    string
	CreditRating     string
	Reasons          []string
	SuggestedRateBps int
	CreditScore      int
}

// RiskModelDTO describes a registered risk model preset.
type RiskModelDTO struct {
	Weights           map[string]string
	ID                string
	DisplayName       string
	Description       string
	BaseAccuracy      string
	ApprovalThreshold string
	LatencyMillis     int
	IsDefault         bool
}

// ListRiskModelsResponse is the output DTO for the registry listing.
type ListRiskModelsResponse struct {
	Models []RiskModelDTO
}
