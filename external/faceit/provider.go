package faceit

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/riskibarqy/faceit-stats/internal/domain/match"
	"github.com/riskibarqy/faceit-stats/internal/domain/player"
	"github.com/riskibarqy/faceit-stats/internal/platform/resilience"
	"github.com/riskibarqy/faceit-stats/internal/usecase"
	"github.com/sourcegraph/conc"
)

var _ usecase.StatsSource = (*Provider)(nil)

// Provider adapts Client responses to the domain entities.
type Provider struct {
	client *Client
	now    func() time.Time
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client, now: time.Now}
}

func (p *Provider) SearchPlayers(ctx context.Context, nickname, game string, limit, offset int) ([]player.SearchHit, error) {
	doc, err := p.client.SearchPlayers(ctx, nickname, game, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return searchHits(doc), nil
}

func (p *Provider) PlayerAccount(ctx context.Context, playerID, game string) (player.Account, error) {
	doc, err := p.client.Player(ctx, playerID)
	if err != nil {
		return player.Account{}, fmt.Errorf("get player account: %w", err)
	}
	account := accountFromPlayer(doc, game)
	if account.ID == "" {
		account.ID = playerID
	}
	return account, nil
}

func (p *Provider) PlayerLifetime(ctx context.Context, playerID, game string) (player.Lifetime, error) {
	doc, err := p.client.PlayerStats(ctx, playerID, game)
	if err != nil {
		return player.Lifetime{}, fmt.Errorf("get player stats: %w", err)
	}
	return lifetimeFromStats(doc), nil
}

func (p *Provider) PlayerHistory(ctx context.Context, playerID, game string, limit, offset int) (match.HistoryPage, error) {
	doc, err := p.client.PlayerHistory(ctx, playerID, game, limit, offset)
	if err != nil {
		return match.HistoryPage{}, fmt.Errorf("get player history: %w", err)
	}
	return historyPage(doc, playerID, p.now()), nil
}

func (p *Provider) MatchForPlayer(ctx context.Context, matchID, playerID string) (match.DetailedSummary, error) {
	matchDoc, statsDoc, err := p.matchWithStats(ctx, matchID)
	if err != nil {
		return match.DetailedSummary{}, err
	}
	out, ok := detailedSummary(matchDoc, statsDoc, playerID, p.now())
	if !ok {
		return match.DetailedSummary{}, fmt.Errorf("%w: player %s not in match %s", usecase.ErrNotFound, playerID, matchID)
	}
	if out.MatchID == "" {
		out.MatchID = matchID
	}
	return out, nil
}

func (p *Provider) MatchRoster(ctx context.Context, matchID string) (match.Roster, error) {
	doc, err := p.client.Match(ctx, matchID)
	if err != nil {
		return match.Roster{}, fmt.Errorf("get match: %w", err)
	}
	roster, ok := rosterFromMatch(doc)
	if !ok {
		return match.Roster{}, fmt.Errorf("%w: match %s has no faction rosters", usecase.ErrNotFound, matchID)
	}
	if roster.MatchID == "" {
		roster.MatchID = matchID
	}
	return roster, nil
}

func (p *Provider) MatchDetail(ctx context.Context, matchID string) (match.Detail, error) {
	matchDoc, statsDoc, err := p.matchWithStats(ctx, matchID)
	if err != nil {
		return match.Detail{}, err
	}
	out := matchDetail(matchDoc, statsDoc, p.now())
	if out.MatchID == "" {
		out.MatchID = matchID
	}
	return out, nil
}

func (p *Provider) InspectScore(ctx context.Context, matchID string) (match.ScoreInspection, error) {
	matchDoc, statsDoc, err := p.matchWithStats(ctx, matchID)
	if err != nil {
		return match.ScoreInspection{}, err
	}
	return scoreInspection(matchID, matchDoc, statsDoc), nil
}

func (p *Provider) KeyHealth() []resilience.KeyHealth {
	return p.client.KeyHealth()
}

// matchWithStats fetches the match and its stats concurrently. Stats are
// optional: any stats failure yields a nil stats document.
func (p *Provider) matchWithStats(ctx context.Context, matchID string) (Payload, Payload, error) {
	var (
		wg                 conc.WaitGroup
		matchDoc, statsDoc Payload
		matchErr, statsErr error
	)
	wg.Go(func() {
		matchDoc, matchErr = p.client.Match(ctx, matchID)
	})
	wg.Go(func() {
		statsDoc, statsErr = p.client.MatchStats(ctx, matchID)
	})
	wg.Wait()

	if matchErr != nil {
		return nil, nil, fmt.Errorf("get match: %w", matchErr)
	}
	if statsErr != nil {
		level := p.client.logger.WarnContext
		if stderrors.Is(statsErr, usecase.ErrNotFound) {
			level = p.client.logger.DebugContext
		}
		level(ctx, "match stats unavailable, using roster data", "match_id", matchID, "error", statsErr)
		statsDoc = nil
	}
	return matchDoc, statsDoc, nil
}
