package faceit

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) SearchPlayers(ctx context.Context, nickname, game string, limit, offset int) (Payload, error) {
	query := url.Values{}
	query.Set("nickname", nickname)
	if game != "" {
		query.Set("game", game)
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return c.Fetch(ctx, "/search/players", query)
}

func (c *Client) Player(ctx context.Context, playerID string) (Payload, error) {
	return c.Fetch(ctx, "/players/"+url.PathEscape(playerID), nil)
}

func (c *Client) PlayerStats(ctx context.Context, playerID, game string) (Payload, error) {
	return c.Fetch(ctx, "/players/"+url.PathEscape(playerID)+"/stats/"+url.PathEscape(game), nil)
}

func (c *Client) PlayerHistory(ctx context.Context, playerID, game string, limit, offset int) (Payload, error) {
	query := url.Values{}
	query.Set("game", game)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return c.Fetch(ctx, "/players/"+url.PathEscape(playerID)+"/history", query)
}

func (c *Client) Match(ctx context.Context, matchID string) (Payload, error) {
	return c.Fetch(ctx, "/matches/"+url.PathEscape(matchID), nil)
}

func (c *Client) MatchStats(ctx context.Context, matchID string) (Payload, error) {
	return c.Fetch(ctx, "/matches/"+url.PathEscape(matchID)+"/stats", nil)
}
