package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	DefaultGame          = "cs2"
	DefaultSearchLimit   = 5
	defaultEnrichWorkers = 5
)

type PlayerServiceConfig struct {
	DefaultGame   string
	SearchLimit   int
	EnrichWorkers int
}

type PlayerService struct {
	source        StatsSource
	logger        *logging.Logger
	defaultGame   string
	searchLimit   int
	enrichWorkers int
	newPool       func(size int) (*ants.Pool, error)
}

func NewPlayerService(source StatsSource, cfg PlayerServiceConfig, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DefaultGame) == "" {
		cfg.DefaultGame = DefaultGame
	}
	if cfg.SearchLimit < 1 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.EnrichWorkers < 1 {
		cfg.EnrichWorkers = defaultEnrichWorkers
	}

	return &PlayerService{
		source:        source,
		logger:        logger,
		defaultGame:   strings.TrimSpace(cfg.DefaultGame),
		searchLimit:   cfg.SearchLimit,
		enrichWorkers: cfg.EnrichWorkers,
		newPool:       newEnrichPool,
	}
}

// Search looks players up by nickname and enriches every hit with account and
// lifetime stats. A hit whose enrichment fails is returned with zero stats.
func (s *PlayerService) Search(ctx context.Context, nickname, game string) ([]player.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", ErrInvalidInput)
	}
	game = s.resolveGame(game)

	hits, err := s.source.SearchPlayers(ctx, nickname, game, s.searchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	out := make([]player.Summary, len(hits))
	if len(hits) == 0 {
		return out, nil
	}

	pool, err := s.newPool(min(len(hits), s.enrichWorkers))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, hit := range hits {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[idx] = s.enrichHit(ctx, hit, game)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit enrichment to worker pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func newEnrichPool(size int) (*ants.Pool, error) {
	return ants.NewPool(size)
}

func (s *PlayerService) enrichHit(ctx context.Context, hit player.SearchHit, game string) player.Summary {
	account, lifetime, err := s.fetchAccountAndLifetime(ctx, hit.ID, game)
	if err != nil {
		s.logger.WarnContext(ctx, "enrich search hit failed", "player_id", hit.ID, "error", err)
		return player.NewSummary(hit, player.Account{}, player.Lifetime{})
	}
	return player.NewSummary(hit, account, lifetime)
}

// GetProfile requires both the account and the lifetime stats.
func (s *PlayerService) GetProfile(ctx context.Context, playerID, game string) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetProfile")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Profile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	account, lifetime, err := s.fetchAccountAndLifetime(ctx, playerID, s.resolveGame(game))
	if err != nil {
		return player.Profile{}, err
	}
	return player.NewProfile(account, lifetime), nil
}

func (s *PlayerService) ListMapStats(ctx context.Context, playerID, game string) ([]player.MapStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListMapStats")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	lifetime, err := s.source.PlayerLifetime(ctx, playerID, s.resolveGame(game))
	if err != nil {
		return nil, fmt.Errorf("load player lifetime: %w", err)
	}
	if lifetime.Maps == nil {
		return []player.MapStat{}, nil
	}
	return lifetime.Maps, nil
}

func (s *PlayerService) fetchAccountAndLifetime(ctx context.Context, playerID, game string) (player.Account, player.Lifetime, error) {
	var (
		wg          conc.WaitGroup
		account     player.Account
		lifetime    player.Lifetime
		accountErr  error
		lifetimeErr error
	)
	wg.Go(func() {
		account, accountErr = s.source.PlayerAccount(ctx, playerID, game)
	})
	wg.Go(func() {
		lifetime, lifetimeErr = s.source.PlayerLifetime(ctx, playerID, game)
	})
	wg.Wait()

	if accountErr != nil {
		return player.Account{}, player.Lifetime{}, fmt.Errorf("load player account: %w", accountErr)
	}
	if lifetimeErr != nil {
		return player.Account{}, player.Lifetime{}, fmt.Errorf("load player lifetime: %w", lifetimeErr)
	}
	return account, lifetime, nil
}

func (s *PlayerService) resolveGame(game string) string {
	if game = strings.TrimSpace(game); game != "" {
		return game
	}
	return s.defaultGame
}
