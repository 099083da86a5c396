package usecase

import (
	"context"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
)

// StatsSource is the upstream statistics provider. Implementations return
// ErrNotFound for absent resources and ErrUpstreamExhausted when every
// attempt failed.
type StatsSource interface {
	SearchPlayers(ctx context.Context, nickname, game string, limit, offset int) ([]player.SearchHit, error)
	PlayerAccount(ctx context.Context, playerID, game string) (player.Account, error)
	PlayerLifetime(ctx context.Context, playerID, game string) (player.Lifetime, error)
	PlayerHistory(ctx context.Context, playerID, game string, limit, offset int) (match.HistoryPage, error)
	// MatchForPlayer returns the player's view of one match. Missing match
	// stats degrade to roster data; a player absent from both rosters is ErrNotFound.
	MatchForPlayer(ctx context.Context, matchID, playerID string) (match.DetailedSummary, error)
	MatchRoster(ctx context.Context, matchID string) (match.Roster, error)
	MatchDetail(ctx context.Context, matchID string) (match.Detail, error)
	InspectScore(ctx context.Context, matchID string) (match.ScoreInspection, error)
	KeyHealth() []resilience.KeyHealth
}
