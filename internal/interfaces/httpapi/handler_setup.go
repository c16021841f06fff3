package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
)

func (h *Handler) GetSetup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSetup")
	defer span.End()

	state, exists, err := h.setupService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get setup failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeOptional(ctx, w, nil, false)
		return
	}

	writeOptional(ctx, w, setupToDTO(state, h.setupService.Rules()), true)
}

func (h *Handler) ResetSetup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSetup")
	defer span.End()

	if err := h.setupService.Reset(ctx); err != nil {
		h.logger.WarnContext(ctx, "reset setup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ToggleSetupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSetupPlayer")
	defer span.End()

	playerID := r.PathValue("playerId")
	state, err := h.setupService.TogglePlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle setup player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toggleSelectionDTO{
		Selected: state.IsSelected(playerID),
		Setup:    setupToDTO(state, h.setupService.Rules()),
	})
}

func (h *Handler) SetSetupKeepers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSetupKeepers")
	defer span.End()

	var req setKeepersRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.setupService.SetKeepers(ctx, req.Keeper1, req.Keeper2)
	h.writeSetup(ctx, w, "set keepers", state, err)
}

func (h *Handler) RandomSetupGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RandomSetupGroups")
	defer span.End()

	state, err := h.setupService.RandomGroups(ctx)
	h.writeSetup(ctx, w, "random groups", state, err)
}

func (h *Handler) SeedSetupGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedSetupGroups")
	defer span.End()

	state, err := h.setupService.SeedGroups(ctx)
	h.writeSetup(ctx, w, "seed groups", state, err)
}

func (h *Handler) MoveSetupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MoveSetupPlayer")
	defer span.End()

	var req movePlayerRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.setupService.MovePlayer(ctx, req.PlayerID, req.Group)
	h.writeSetup(ctx, w, "move player", state, err)
}

func (h *Handler) AssignSetupPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignSetupPosition")
	defer span.End()

	var req assignPositionRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.setupService.AssignPosition(ctx, req.Group, r.PathValue("position"))
	h.writeSetup(ctx, w, "assign position", state, err)
}

func (h *Handler) UnassignSetupPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignSetupPosition")
	defer span.End()

	state, err := h.setupService.UnassignPosition(ctx, r.PathValue("position"))
	h.writeSetup(ctx, w, "unassign position", state, err)
}

func (h *Handler) NextSetupStep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextSetupStep")
	defer span.End()

	state, err := h.setupService.Next(ctx)
	h.writeSetup(ctx, w, "next setup step", state, err)
}

func (h *Handler) PreviousSetupStep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviousSetupStep")
	defer span.End()

	state, err := h.setupService.Back(ctx)
	h.writeSetup(ctx, w, "previous setup step", state, err)
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	snapshot, err := h.setupService.Start(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(snapshot))
}

func (h *Handler) writeSetup(ctx context.Context, w http.ResponseWriter, op string, state matchsetup.State, err error) {
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, setupToDTO(state, h.setupService.Rules()))
}
