package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Sum[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := telemetry.NewRecorder(provider.Meter("riskd-test"))
	require.NoError(t, err)

	ctx := context.Background()
	rec.ScoreComputed(ctx, "Excellent", false)
	rec.ScoreComputed(ctx, "Excellent", true)
	rec.RiskAssessed(ctx, "rapid", "approve")
	rec.SubmissionTransitioned(ctx, "review", "pending", "verified")
	rec.ConcurrentModification(ctx, "review")
	rec.ConcurrentModification(ctx, "review")

	sums := collect(t, reader)

	require.Contains(t, sums, "riskd.credit_scores")
	assert.Len(t, sums["riskd.credit_scores"].DataPoints, 2)

	conflicts := sums["riskd.kyc_concurrent_modifications"].DataPoints
	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(2), conflicts[0].Value)
	op, ok := conflicts[0].Attributes.Value(attribute.Key("operation"))
	require.True(t, ok)
	assert.Equal(t, "review", op.AsString())

	transitions := sums["riskd.kyc_transitions"].DataPoints
	require.Len(t, transitions, 1)
	to, _ := transitions[0].Attributes.Value("to")
	assert.Equal(t, "verified", to.AsString())
}

func TestRecorder_NoopMeter(t *testing.T) {
	rec, err := telemetry.NewRecorder(noop.NewMeterProvider().Meter("riskd-test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		rec.RiskAssessed(context.Background(), "comprehensive", "reject")
	})
}
