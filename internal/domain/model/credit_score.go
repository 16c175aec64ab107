package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

// CreditScore is a borrower's derived score. It is recomputable at any time
// and may be cached; LastUpdated records when it was computed.
type CreditScore struct {
	BorrowerID  uuid.UUID
	Score       int
	Rating      valueobject.CreditRating
	Breakdown   map[valueobject.Factor]int
	Clamped     bool
	LastUpdated time.Time
}

// IsStale reports whether the score is older than ttl at now.
func (s CreditScore) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastUpdated) > ttl
}

// BreakdownTotal sums the signed per-factor contributions.
func (s CreditScore) BreakdownTotal() int {
	total := 0
	for _, v := range s.Breakdown {
		total += v
	}
	return total
}
