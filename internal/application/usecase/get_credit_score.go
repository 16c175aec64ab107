package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/service"
)

var tracer = otel.Tracer("github.com/Programmer60/BorrowEase-sub002/internal/application/usecase")

// GetCreditScore computes a borrower's 300-850 credit score, serving a cached
// value while it is younger than the configured TTL.
type GetCreditScore struct {
	factors    factorLoader
	calculator *service.ScoreCalculator
	cache      port.ScoreCache
	cacheTTL   time.Duration
	metrics    port.Metrics
	logger     *slog.Logger
}

// NewGetCreditScore wires the use case. cache may be nil to disable caching.
func NewGetCreditScore(
	source port.FactorSource,
	submissions port.SubmissionRepository,
	calculator *service.ScoreCalculator,
	cache port.ScoreCache,
	cacheTTL time.Duration,
	metrics port.Metrics,
	logger *slog.Logger,
) *GetCreditScore {
	return &GetCreditScore{
		factors:    factorLoader{source: source, submissions: submissions},
		calculator: calculator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *GetCreditScore) Execute(ctx context.Context, req dto.GetCreditScoreRequest) (dto.CreditScoreResponse, error) {
	ctx, span := tracer.Start(ctx, "GetCreditScore")
	defer span.End()
	span.SetAttributes(attribute.String("borrower.id", req.BorrowerID.String()))

	if err := dto.Validate(req); err != nil {
		return dto.CreditScoreResponse{}, err
	}
	if err := authorizeBorrowerRead(req.Actor, req.BorrowerID, "credit score lookup"); err != nil {
		return dto.CreditScoreResponse{}, err
	}

	now := time.Now().UTC()
	if uc.cache != nil && !req.Refresh {
		cached, ok, err := uc.cache.Get(ctx, req.BorrowerID)
		switch {
		case err != nil:
			uc.logger.WarnContext(ctx, "score cache read failed", "borrower_id", req.BorrowerID, "error", err)
		case ok && !cached.IsStale(now, uc.cacheTTL):
			uc.metrics.ScoreComputed(ctx, cached.Rating.String(), true)
			span.SetAttributes(attribute.Bool("score.cached", true))
			return toCreditScoreResponse(cached, true), nil
		}
	}

	f, err := uc.factors.load(ctx, req.BorrowerID)
	if err != nil {
		span.RecordError(err)
		return dto.CreditScoreResponse{}, err
	}

	score := uc.calculator.Compute(f)
	score.BorrowerID = req.BorrowerID
	score.LastUpdated = now

	if score.Clamped {
		uc.logger.DebugContext(ctx, "credit score clamped", "borrower_id", req.BorrowerID, "raw_total", score.BreakdownTotal())
	}

	if uc.cache != nil {
		uc.store(ctx, score, f.KYCVerified)
	}

	uc.metrics.ScoreComputed(ctx, score.Rating.String(), false)
	span.SetAttributes(attribute.Int("score.value", score.Score), attribute.Bool("score.cached", false))

	return toCreditScoreResponse(score, false), nil
}

// store caches the score unless the borrower's KYC outcome changed while it
// was being computed. A review that lands mid-computation has already
// invalidated the cache, so writing the older score would outlive it.
func (uc *GetCreditScore) store(ctx context.Context, score model.CreditScore, kycVerified bool) {
	current, err := uc.factors.kycVerified(ctx, score.BorrowerID)
	if err != nil {
		uc.logger.WarnContext(ctx, "kyc recheck failed, score not cached", "borrower_id", score.BorrowerID, "error", err)
		return
	}
	if current != kycVerified {
		uc.logger.DebugContext(ctx, "kyc status changed during scoring, score not cached", "borrower_id", score.BorrowerID)
		return
	}
	if err := uc.cache.Set(ctx, score); err != nil {
		uc.logger.WarnContext(ctx, "score cache write failed", "borrower_id", score.BorrowerID, "error", err)
	}
}
