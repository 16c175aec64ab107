package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/model"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/service"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/valueobject"
)

func toSubmissionResponse(s model.KYCSubmission) dto.SubmissionResponse {
	comments := s.Comments()
	commentDTOs := make([]dto.ReviewCommentDTO, 0, len(comments))
	for _, c := range comments {
		commentDTOs = append(commentDTOs, dto.ReviewCommentDTO{
			ID:         c.ID(),
			AuthorID:   c.AuthorID(),
			AuthorRole: c.AuthorRole().String(),
			Text:       c.Text(),
			CreatedAt:  c.CreatedAt(),
		})
	}

	address := s.Address()
	return dto.SubmissionResponse{
		ID:                 s.ID(),
		OwnerID:            s.OwnerID(),
		Status:             s.Status().String(),
		Documents:          s.Documents().Raw(),
		Attempts:           s.Attempts(),
		MaxAttemptsReached: s.MaxAttemptsReached(),
		Comments:           commentDTOs,
		Address: dto.AddressVerificationDTO{
			Status:          address.Status().String(),
			RejectionReason: address.RejectionReason(),
			ReviewedAt:      address.ReviewedAt(),
		},
		SubmittedAt: s.SubmittedAt(),
		ReviewedAt:  s.ReviewedAt(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func toCreditScoreResponse(cs model.CreditScore, cached bool) dto.CreditScoreResponse {
	breakdown := make(map[string]int, len(cs.Breakdown))
	for f, pts := range cs.Breakdown {
		breakdown[string(f)] = pts
	}
	return dto.CreditScoreResponse{
		BorrowerID:  cs.BorrowerID,
		Score:       cs.Score,
		Rating:      cs.Rating.String(),
		Breakdown:   breakdown,
		LastUpdated: cs.LastUpdated,
		Cached:      cached,
	}
}

func toRiskModelDTO(p service.RiskModelPreset, defaultID string) dto.RiskModelDTO {
	weights := make(map[string]string, len(valueobject.AllFactors()))
	for _, f := range valueobject.AllFactors() {
		weights[string(f)] = p.Weight(f).StringFixed(2)
	}
	return dto.RiskModelDTO{
		ID:                p.ID,
		DisplayName:       p.DisplayName,
		Description:       p.Description,
		BaseAccuracy:      p.BaseAccuracy.StringFixed(1),
		LatencyMillis:     p.LatencyMillis,
		Weights:           weights,
		ApprovalThreshold: p.ApprovalThreshold.String(),
		IsDefault:         p.ID == defaultID,
	}
}

func factorScoreStrings(scores map[valueobject.Factor]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(scores))
	for f, s := range scores {
		out[string(f)] = s.StringFixed(2)
	}
	return out
}

// formatRate renders basis points as a percentage, e.g. 1234 -> "12.34%".
func formatRate(bps int) string {
	return decimal.New(int64(bps), -2).StringFixed(2) + "%"
}
