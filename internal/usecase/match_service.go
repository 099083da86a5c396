package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryQuery selects a page of a player's match history.
type HistoryQuery struct {
	PlayerID string
	Game     string
	Limit    int
	Offset   int
}

type MatchServiceConfig struct {
	DefaultGame    string
	BatchGroupSize int
}

type MatchService struct {
	source         StatsSource
	logger         *logging.Logger
	defaultGame    string
	batchGroupSize int
}

func NewMatchService(source StatsSource, cfg MatchServiceConfig, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DefaultGame) == "" {
		cfg.DefaultGame = DefaultGame
	}
	if cfg.BatchGroupSize < 1 {
		cfg.BatchGroupSize = DefaultBatchGroupSize
	}

	return &MatchService{
		source:         source,
		logger:         logger,
		defaultGame:    strings.TrimSpace(cfg.DefaultGame),
		batchGroupSize: cfg.BatchGroupSize,
	}
}

func (s *MatchService) ListHistory(ctx context.Context, query HistoryQuery) (match.HistoryPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListHistory")
	defer span.End()

	query, err := s.normalizeQuery(query)
	if err != nil {
		return match.HistoryPage{}, err
	}

	page, err := s.source.PlayerHistory(ctx, query.PlayerID, query.Game, query.Limit, query.Offset)
	if err != nil {
		return match.HistoryPage{}, fmt.Errorf("load match history: %w", err)
	}
	if page.Items == nil {
		page.Items = []match.Summary{}
	}
	return page, nil
}

// ListDetailedHistory expands every history entry into the player's detailed
// view, newest first. Matches that fail to load are left out of the page.
func (s *MatchService) ListDetailedHistory(ctx context.Context, query HistoryQuery) (match.DetailedPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListDetailedHistory")
	defer span.End()

	query, err := s.normalizeQuery(query)
	if err != nil {
		return match.DetailedPage{}, err
	}

	page, err := s.source.PlayerHistory(ctx, query.PlayerID, query.Game, query.Limit, query.Offset)
	if err != nil {
		return match.DetailedPage{}, fmt.Errorf("load match history: %w", err)
	}

	items, err := expandInGroups(ctx, s.logger, page.Items, s.batchGroupSize,
		func(ctx context.Context, stub match.Summary) (match.DetailedSummary, error) {
			detail, err := s.source.MatchForPlayer(ctx, stub.MatchID, query.PlayerID)
			if err != nil {
				return match.DetailedSummary{}, fmt.Errorf("expand match %s: %w", stub.MatchID, err)
			}
			return detail, nil
		})
	if err != nil {
		return match.DetailedPage{}, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PlayedAt > items[j].PlayedAt
	})

	return match.DetailedPage{Items: items, Total: len(items)}, nil
}

// ListTeammates counts how often each same-faction player shared a match with
// the queried player across one history page.
func (s *MatchService) ListTeammates(ctx context.Context, query HistoryQuery) ([]player.Teammate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListTeammates")
	defer span.End()

	query, err := s.normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	page, err := s.source.PlayerHistory(ctx, query.PlayerID, query.Game, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("load match history: %w", err)
	}

	rosters, err := expandInGroups(ctx, s.logger, page.Items, s.batchGroupSize,
		func(ctx context.Context, stub match.Summary) (match.Roster, error) {
			roster, err := s.source.MatchRoster(ctx, stub.MatchID)
			if err != nil {
				return match.Roster{}, fmt.Errorf("expand match %s: %w", stub.MatchID, err)
			}
			return roster, nil
		})
	if err != nil {
		return nil, err
	}

	return aggregateTeammates(query.PlayerID, rosters), nil
}

func aggregateTeammates(playerID string, rosters []match.Roster) []player.Teammate {
	counters := make(map[string]*player.Teammate)
	for _, roster := range rosters {
		faction, ok := roster.FactionOf(playerID)
		if !ok {
			continue
		}
		for _, member := range roster.Members {
			if member.Faction != faction || member.ID == playerID {
				continue
			}
			item, exists := counters[member.ID]
			if !exists {
				item = &player.Teammate{ID: member.ID}
				counters[member.ID] = item
			}
			if item.Nickname == "" {
				item.Nickname = member.Nickname
			}
			item.MatchesTogether++
		}
	}

	out := make([]player.Teammate, 0, len(counters))
	for _, item := range counters {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchesTogether != out[j].MatchesTogether {
			return out[i].MatchesTogether > out[j].MatchesTogether
		}
		if out[i].Nickname != out[j].Nickname {
			return out[i].Nickname < out[j].Nickname
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Detail{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	detail, err := s.source.MatchDetail(ctx, matchID)
	if err != nil {
		return match.Detail{}, fmt.Errorf("load match detail: %w", err)
	}
	return detail, nil
}

// InspectScore reports which extraction strategy settled a match score.
func (s *MatchService) InspectScore(ctx context.Context, matchID string) (match.ScoreInspection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.InspectScore")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.ScoreInspection{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	out, err := s.source.InspectScore(ctx, matchID)
	if err != nil {
		return match.ScoreInspection{}, fmt.Errorf("inspect match score: %w", err)
	}
	return out, nil
}

func (s *MatchService) normalizeQuery(query HistoryQuery) (HistoryQuery, error) {
	query.PlayerID = strings.TrimSpace(query.PlayerID)
	if query.PlayerID == "" {
		return HistoryQuery{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if query.Limit == 0 {
		query.Limit = DefaultHistoryLimit
	}
	if query.Limit < 1 || query.Limit > MaxHistoryLimit {
		return HistoryQuery{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxHistoryLimit)
	}
	if query.Offset < 0 {
		return HistoryQuery{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	if query.Game = strings.TrimSpace(query.Game); query.Game == "" {
		query.Game = s.defaultGame
	}
	return query, nil
}
