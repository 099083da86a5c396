package usecase

import (
	"context"

	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
)

type SystemService struct {
	source StatsSource
}

func NewSystemService(source StatsSource) *SystemService {
	return &SystemService{source: source}
}

// KeyHealth returns the masked per-key rotation state.
func (s *SystemService) KeyHealth(ctx context.Context) []resilience.KeyHealth {
	_, span := startUsecaseSpan(ctx, "usecase.SystemService.KeyHealth")
	defer span.End()

	return s.source.KeyHealth()
}
