package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
	usecasemock "github.com/riskibarqy/faceit-stats/internal/mocks/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_Search_EnrichesHitsAndZeroesFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := usecasemock.NewStatsSource(t)
	service := NewPlayerService(source, PlayerServiceConfig{}, logging.NewNop())

	source.
		On("SearchPlayers", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "s1mple", DefaultGame, DefaultSearchLimit, 0).
		Return([]player.SearchHit{{ID: "p1", Nickname: "s1mple"}, {ID: "p2", Nickname: "s1mple_fan"}}, nil).
		Once()
	source.On("PlayerAccount", mock.Anything, "p1", DefaultGame).
		Return(player.Account{ID: "p1", Nickname: "s1mple", Country: "ua", SkillLevel: 10}, nil).Once()
	source.On("PlayerLifetime", mock.Anything, "p1", DefaultGame).
		Return(player.Lifetime{KDRatio: 1.31, WinRatePercent: 58, MatchesPlayed: 900, HeadshotPercent: 41}, nil).Once()
	source.On("PlayerAccount", mock.Anything, "p2", DefaultGame).
		Return(player.Account{}, ErrUpstreamExhausted).Once()
	source.On("PlayerLifetime", mock.Anything, "p2", DefaultGame).
		Return(player.Lifetime{KDRatio: 0.9}, nil).Once()

	got, err := service.Search(ctx, "  s1mple ", "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, player.Summary{
		ID:              "p1",
		Nickname:        "s1mple",
		Country:         "ua",
		Level:           10,
		KDRatio:         1.31,
		WinRatePercent:  58,
		MatchesPlayed:   900,
		HeadshotPercent: 41,
	}, got[0])
	assert.Equal(t, player.Summary{ID: "p2", Nickname: "s1mple_fan"}, got[1])
}

func TestPlayerService_Search_RequiresNickname(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(usecasemock.NewStatsSource(t), PlayerServiceConfig{}, logging.NewNop())
	_, err := service.Search(context.Background(), "   ", "cs2")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPlayerService_GetProfile_RequiresBothSources(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewStatsSource(t)
	service := NewPlayerService(source, PlayerServiceConfig{DefaultGame: "csgo"}, logging.NewNop())

	source.On("PlayerAccount", mock.Anything, "p1", "csgo").Return(player.Account{ID: "p1"}, nil).Once()
	source.On("PlayerLifetime", mock.Anything, "p1", "csgo").Return(player.Lifetime{}, ErrNotFound).Once()

	_, err := service.GetProfile(context.Background(), "p1", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlayerService_GetProfile_MergesAccountAndLifetime(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewStatsSource(t)
	service := NewPlayerService(source, PlayerServiceConfig{}, logging.NewNop())

	source.On("PlayerAccount", mock.Anything, "p1", "cs2").
		Return(player.Account{ID: "p1", Nickname: "alpha", Elo: 2100, SkillLevel: 10}, nil).Once()
	source.On("PlayerLifetime", mock.Anything, "p1", "cs2").
		Return(player.Lifetime{KDRatio: 1.2, KPR: 0.8, Wins: 300, Losses: 250, HighestElo: 2250, HLTVRating: 1.1}, nil).Once()

	got, err := service.GetProfile(context.Background(), "p1", "cs2")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Nickname)
	assert.Equal(t, 2100, got.Elo)
	assert.Equal(t, 10, got.Level)
	assert.Equal(t, 0.8, got.KPR)
	assert.Equal(t, 300, got.Wins)
	assert.Equal(t, 2250, got.HighestElo)
	assert.Equal(t, 1.1, got.HLTV)
}

func TestPlayerService_ListMapStats_NeverReturnsNil(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewStatsSource(t)
	service := NewPlayerService(source, PlayerServiceConfig{}, logging.NewNop())
	source.On("PlayerLifetime", mock.Anything, "p1", "cs2").Return(player.Lifetime{}, nil).Once()

	got, err := service.ListMapStats(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlayerService_Search_SubmitFailureWaitsForRunningEnrichment(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewStatsSource(t)
	service := NewPlayerService(source, PlayerServiceConfig{}, logging.NewNop())
	service.newPool = func(int) (*ants.Pool, error) {
		return ants.NewPool(1, ants.WithNonblocking(true))
	}

	var finished atomic.Bool
	source.On("SearchPlayers", mock.Anything, "s1mple", DefaultGame, DefaultSearchLimit, 0).
		Return([]player.SearchHit{{ID: "p1"}, {ID: "p2"}}, nil).Once()
	source.On("PlayerAccount", mock.Anything, "p1", DefaultGame).
		Run(func(mock.Arguments) {
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
		}).
		Return(player.Account{ID: "p1"}, nil).Once()
	source.On("PlayerLifetime", mock.Anything, "p1", DefaultGame).
		Return(player.Lifetime{}, nil).Once()

	_, err := service.Search(context.Background(), "s1mple", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ants.ErrPoolOverload)
	assert.True(t, finished.Load(), "search returned before the running enrichment finished")
}
