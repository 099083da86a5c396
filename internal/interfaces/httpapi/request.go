package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/faceit-stats/internal/usecase"
)

type searchPlayersRequest struct {
	Nickname string `validate:"required,max=64"`
	Game     string `validate:"omitempty,max=32"`
}

type playerRequest struct {
	PlayerID string `validate:"required,max=64"`
	Game     string `validate:"omitempty,max=32"`
}

type historyRequest struct {
	PlayerID string `validate:"required,max=64"`
	Game     string `validate:"omitempty,max=32"`
	Limit    int    `validate:"min=1,max=100"`
	Offset   int    `validate:"min=0"`
}

func (r historyRequest) query() usecase.HistoryQuery {
	return usecase.HistoryQuery{
		PlayerID: r.PlayerID,
		Game:     r.Game,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

type matchRequest struct {
	MatchID string `validate:"required,max=64"`
}

func parsePlayerRequest(r *http.Request) playerRequest {
	return playerRequest{
		PlayerID: strings.TrimSpace(r.PathValue("playerID")),
		Game:     strings.TrimSpace(r.URL.Query().Get("game")),
	}
}

func parseHistoryRequest(r *http.Request) (historyRequest, error) {
	limit, err := parseIntQuery(r, "limit", usecase.DefaultHistoryLimit)
	if err != nil {
		return historyRequest{}, err
	}
	offset, err := parseIntQuery(r, "offset", 0)
	if err != nil {
		return historyRequest{}, err
	}

	base := parsePlayerRequest(r)
	return historyRequest{
		PlayerID: base.PlayerID,
		Game:     base.Game,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func parseIntQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
