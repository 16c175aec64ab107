package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
)

var _ port.Metrics = (*Recorder)(nil)

// Recorder implements port.Metrics with OpenTelemetry counters.
type Recorder struct {
	scores      metric.Int64Counter
	assessments metric.Int64Counter
	transitions metric.Int64Counter
	conflicts   metric.Int64Counter
}

func NewRecorder(meter metric.Meter) (*Recorder, error) {
	scores, err := meter.Int64Counter("riskd.credit_scores",
		metric.WithDescription("Credit scores served, by rating and cache outcome"))
	if err != nil {
		return nil, fmt.Errorf("create credit score counter: %w", err)
	}
	assessments, err := meter.Int64Counter("riskd.risk_assessments",
		metric.WithDescription("Risk assessments, by model and decision"))
	if err != nil {
		return nil, fmt.Errorf("create assessment counter: %w", err)
	}
	transitions, err := meter.Int64Counter("riskd.kyc_transitions",
		metric.WithDescription("Committed KYC submission transitions"))
	if err != nil {
		return nil, fmt.Errorf("create transition counter: %w", err)
	}
	conflicts, err := meter.Int64Counter("riskd.kyc_concurrent_modifications",
		metric.WithDescription("KYC writes rejected because the submission changed underneath them"))
	if err != nil {
		return nil, fmt.Errorf("create conflict counter: %w", err)
	}

	return &Recorder{
		scores:      scores,
		assessments: assessments,
		transitions: transitions,
		conflicts:   conflicts,
	}, nil
}

func (r *Recorder) ScoreComputed(ctx context.Context, rating string, cached bool) {
	r.scores.Add(ctx, 1, metric.WithAttributes(
		attribute.String("rating", rating),
		attribute.Bool("cached", cached),
	))
}

func (r *Recorder) RiskAssessed(ctx context.Context, modelID, decision string) {
	r.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", modelID),
		attribute.String("decision", decision),
	))
}

func (r *Recorder) SubmissionTransitioned(ctx context.Context, operation, from, to string) {
	r.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

func (r *Recorder) ConcurrentModification(ctx context.Context, operation string) {
	r.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
