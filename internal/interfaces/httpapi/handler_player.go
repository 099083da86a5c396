package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/faceit-stats/internal/domain/player"
)

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	req := searchPlayersRequest{
		Nickname: strings.TrimSpace(r.URL.Query().Get("q")),
		Game:     strings.TrimSpace(r.URL.Query().Get("game")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.playerService.Search(ctx, req.Nickname, req.Game)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "nickname", req.Nickname, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	req := parsePlayerRequest(r)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.playerService.GetProfile(ctx, req.PlayerID, req.Game)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) ListPlayerMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatches")
	defer span.End()

	req, err := parseHistoryRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.matchService.ListHistory(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "list player matches failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) ListPlayerMatchDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatchDetails")
	defer span.End()

	req, err := parseHistoryRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.matchService.ListDetailedHistory(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "list player match details failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) ListPlayerTeammates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerTeammates")
	defer span.End()

	req, err := parseHistoryRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListTeammates(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "list player teammates failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listResponse[player.Teammate]{Items: items})
}

func (h *Handler) ListPlayerMaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMaps")
	defer span.End()

	req := parsePlayerRequest(r)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.playerService.ListMapStats(ctx, req.PlayerID, req.Game)
	if err != nil {
		h.logger.WarnContext(ctx, "list player maps failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listResponse[player.MapStat]{Items: items})
}
