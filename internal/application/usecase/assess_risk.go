package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/event"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/service"
)

// AssessRisk applies a named risk model to a borrower and returns an
// approve/reject recommendation with a suggested rate.
type AssessRisk struct {
	factors    factorLoader
	registry   *service.RiskModelRegistry
	engine     *service.DecisionEngine
	calculator *service.ScoreCalculator
	publisher  port.EventPublisher
	metrics    port.Metrics
	logger     *slog.Logger
}

func NewAssessRisk(
	source port.FactorSource,
	submissions port.SubmissionRepository,
	registry *service.RiskModelRegistry,
	engine *service.DecisionEngine,
	calculator *service.ScoreCalculator,
	publisher port.EventPublisher,
	metrics port.Metrics,
	logger *slog.Logger,
) *AssessRisk {
	return &AssessRisk{
		factors:    factorLoader{source: source, submissions: submissions},
		registry:   registry,
		engine:     engine,
		calculator: calculator,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *AssessRisk) Execute(ctx context.Context, req dto.AssessRiskRequest) (dto.RiskAssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "AssessRisk")
	defer span.End()

	if err := dto.Validate(req); err != nil {
		return dto.RiskAssessmentResponse{}, err
	}
	if err := authorizeBorrowerRead(req.Actor, req.BorrowerID, "risk assessment"); err != nil {
		return dto.RiskAssessmentResponse{}, err
	}

	// Resolve the model before touching the read model so an unknown id fails fast.
	preset, err := uc.registry.Get(req.ModelID)
	if err != nil {
		return dto.RiskAssessmentResponse{}, err
	}
	span.SetAttributes(attribute.String("risk.model", preset.ID), attribute.String("borrower.id", req.BorrowerID.String()))

	f, err := uc.factors.load(ctx, req.BorrowerID)
	if err != nil {
		span.RecordError(err)
		return dto.RiskAssessmentResponse{}, err
	}

	assessment := uc.engine.Evaluate(f, preset)
	score := uc.calculator.Compute(f)
	decision := assessment.Decision.String()

	uc.metrics.RiskAssessed(ctx, assessment.ModelID, decision)
	span.SetAttributes(attribute.String("risk.decision", decision))

	evt := event.NewRiskAssessed(req.BorrowerID, assessment.ModelID, assessment.OverallScore.StringFixed(2), decision, assessment.SuggestedRateBps)
	if err := uc.publisher.Publish(ctx, TopicRiskAssessments, evt); err != nil {
		uc.logger.ErrorContext(ctx, "failed to publish risk assessment", "borrower_id", req.BorrowerID, "model", assessment.ModelID, "error", err)
	}

	return dto.RiskAssessmentResponse{
		BorrowerID:       req.BorrowerID,
		ModelID:          assessment.ModelID,
		ModelName:        assessment.ModelName,
		OverallScore:     assessment.OverallScore.StringFixed(2),
		Threshold:        assessment.Threshold.StringFixed(2),
		Decision:         decision,
		SuggestedRateBps: assessment.SuggestedRateBps,
		SuggestedRate:    formatRate(assessment.SuggestedRateBps),
		FactorScores:     factorScoreStrings(assessment.FactorScores),
		Reasons:          assessment.Reasons,
		CreditScore:      score.Score,
		CreditRating:     score.Rating.String(),
		AssessedAt:       time.Now().UTC(),
	}, nil
}
