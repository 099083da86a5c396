package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	req := matchRequest{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.GetMatch(ctx, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) InspectMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InspectMatchScore")
	defer span.End()

	req := matchRequest{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inspection, err := h.matchService.InspectScore(ctx, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "inspect match score failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, inspection)
}
