package usecase

import (
	"context"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/dto"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/service"
)

// ListRiskModels returns every registered preset, ordered by ID.
type ListRiskModels struct {
	registry *service.RiskModelRegistry
}

func NewListRiskModels(registry *service.RiskModelRegistry) *ListRiskModels {
	return &ListRiskModels{registry: registry}
}

func (uc *ListRiskModels) Execute(_ context.Context) (dto.ListRiskModelsResponse, error) {
	presets := uc.registry.List()
	defaultID := uc.registry.DefaultModelID()

	models := make([]dto.RiskModelDTO, 0, len(presets))
	for _, p := range presets {
		models = append(models, toRiskModelDTO(p, defaultID))
	}
	return dto.ListRiskModelsResponse{Models: models}, nil
}
