package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

var _ port.ScoreCache = (*ScoreCache)(nil)

const keyPrefix = "riskd:score:"

type cachedScore struct {
	BorrowerID  uuid.UUID                  `json:"borrower_id"`
	Score       int                        `json:"score"`
	Breakdown   map[valueobject.Factor]int `json:"breakdown"`
	Clamped     bool                       `json:"clamped"`
	LastUpdated time.Time                  `json:"last_updated"`
}

// ScoreCache stores computed credit scores in Redis as JSON with a TTL.
type ScoreCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewScoreCache(client redis.Cmdable, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}
	return client, nil
}

func (c *ScoreCache) Get(ctx context.Context, borrowerID uuid.UUID) (model.CreditScore, bool, error) {
	raw, err := c.client.Get(ctx, key(borrowerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.CreditScore{}, false, nil
	}
	if err != nil {
		return model.CreditScore{}, false, fmt.Errorf("get cached score: %w", err)
	}

	var cs cachedScore
	if err := json.Unmarshal(raw, &cs); err != nil {
		return model.CreditScore{}, false, fmt.Errorf("decode cached score: %w", err)
	}
	if cs.Score < valueobject.MinCreditScore || cs.Score > valueobject.MaxCreditScore {
		return model.CreditScore{}, false, fmt.Errorf("cached score %d out of range", cs.Score)
	}

	return model.CreditScore{
		BorrowerID:  cs.BorrowerID,
		Score:       cs.Score,
		Rating:      valueobject.RatingForScore(cs.Score),
		Breakdown:   cs.Breakdown,
		Clamped:     cs.Clamped,
		LastUpdated: cs.LastUpdated,
	}, true, nil
}

func (c *ScoreCache) Set(ctx context.Context, score model.CreditScore) error {
	payload, err := json.Marshal(cachedScore{
		BorrowerID:  score.BorrowerID,
		Score:       score.Score,
		Breakdown:   score.Breakdown,
		Clamped:     score.Clamped,
		LastUpdated: score.LastUpdated,
	})
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	if err := c.client.Set(ctx, key(score.BorrowerID), string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached score: %w", err)
	}
	return nil
}

func (c *ScoreCache) Invalidate(ctx context.Context, borrowerID uuid.UUID) error {
	if err := c.client.Del(ctx, key(borrowerID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached score: %w", err)
	}
	return nil
}

func key(borrowerID uuid.UUID) string {
	return keyPrefix + borrowerID.String()
}
