package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/wissel-coach/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	snapshot, exists, err := h.matchService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get match failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeOptional(ctx, w, nil, false)
		return
	}

	writeOptional(ctx, w, matchToDTO(snapshot), true)
}

func (h *Handler) ResetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetMatch")
	defer span.End()

	if err := h.matchService.Reset(ctx); err != nil {
		h.logger.WarnContext(ctx, "reset match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ToggleClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleClock")
	defer span.End()

	snapshot, err := h.matchService.ToggleClock(ctx)
	h.writeMatch(ctx, w, "toggle clock", snapshot, err)
}

func (h *Handler) AdjustClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustClock")
	defer span.End()

	var req adjustClockRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.matchService.AdjustClock(ctx, req.Minutes)
	h.writeMatch(ctx, w, "adjust clock", snapshot, err)
}

func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayer")
	defer span.End()

	var req selectPlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.Select(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "select player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionResultToDTO(result))
}

func (h *Handler) BeginSwap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginSwap")
	defer span.End()

	var req selectPlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.BeginSwap(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "begin swap failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionResultToDTO(result))
}

func (h *Handler) CancelSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSelection")
	defer span.End()

	snapshot, err := h.matchService.CancelSelection(ctx)
	h.writeMatch(ctx, w, "cancel selection", snapshot, err)
}

func (h *Handler) SwapPositions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPositions")
	defer span.End()

	var req swapRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.matchService.Swap(ctx, req.FirstPlayerID, req.SecondPlayerID)
	h.writeMatch(ctx, w, "swap positions", snapshot, err)
}

func (h *Handler) Substitute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Substitute")
	defer span.End()

	var req substitutionRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.matchService.Substitute(ctx, req.OutPlayerID, req.InPlayerID)
	h.writeMatch(ctx, w, "substitute", snapshot, err)
}

func (h *Handler) ChangeKeeper(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeKeeper")
	defer span.End()

	snapshot, err := h.matchService.ChangeKeeper(ctx)
	h.writeMatch(ctx, w, "change keeper", snapshot, err)
}

func (h *Handler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSuggestions")
	defer span.End()

	items, err := h.matchService.Suggestions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list suggestions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionsToDTO(items))
}

func (h *Handler) ExecuteSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteSuggestion")
	defer span.End()

	raw := r.PathValue("group")
	group, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid group %q", usecase.ErrInvalidInput, raw))
		return
	}

	snapshot, err := h.matchService.ExecuteSuggestion(ctx, group)
	h.writeMatch(ctx, w, "execute suggestion", snapshot, err)
}

func (h *Handler) writeMatch(ctx context.Context, w http.ResponseWriter, op string, snapshot usecase.MatchSnapshot, err error) {
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(snapshot))
}
