package httpapi

import (
	"time"

	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
)

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type keyHealthDTO struct {
	Key          string `json:"key"`
	FailureCount int    `json:"failureCount"`
	InCooldown   bool   `json:"inCooldown"`
	LastUsedAt   int64  `json:"lastUsedAt"`
}

func keyHealthToDTOs(items []resilience.KeyHealth) []keyHealthDTO {
	out := make([]keyHealthDTO, 0, len(items))
	for _, item := range items {
		out = append(out, keyHealthDTO{
			Key:          item.Key,
			FailureCount: item.FailureCount,
			InCooldown:   item.InCooldown,
			LastUsedAt:   unixMilli(item.LastUsedAt),
		})
	}
	return out
}

func unixMilli(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UnixMilli()
}
