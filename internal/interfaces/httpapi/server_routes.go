package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /players", handler.ListPlayers)
	mux.HandleFunc("POST /players", handler.CreatePlayer)
	mux.HandleFunc("PATCH /players/{id}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /players/{id}", handler.DeletePlayer)
}

func registerSetupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /setup", handler.GetSetup)
	mux.HandleFunc("DELETE /setup", handler.ResetSetup)
	mux.HandleFunc("POST /setup/selection/{playerId}", handler.ToggleSetupPlayer)
	mux.HandleFunc("PUT /setup/keepers", handler.SetSetupKeepers)
	mux.HandleFunc("POST /setup/groups/random", handler.RandomSetupGroups)
	mux.HandleFunc("POST /setup/groups/seed", handler.SeedSetupGroups)
	mux.HandleFunc("POST /setup/groups/move", handler.MoveSetupPlayer)
	mux.HandleFunc("PUT /setup/positions/{position}", handler.AssignSetupPosition)
	mux.HandleFunc("DELETE /setup/positions/{position}", handler.UnassignSetupPosition)
	mux.HandleFunc("POST /setup/next", handler.NextSetupStep)
	mux.HandleFunc("POST /setup/back", handler.PreviousSetupStep)
	mux.HandleFunc("POST /setup/start", handler.StartMatch)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /match", handler.GetMatch)
	mux.HandleFunc("DELETE /match", handler.ResetMatch)
	mux.HandleFunc("POST /match/clock/toggle", handler.ToggleClock)
	mux.HandleFunc("POST /match/clock/adjust", handler.AdjustClock)
	mux.HandleFunc("POST /match/select", handler.SelectPlayer)
	mux.HandleFunc("POST /match/select/swap", handler.BeginSwap)
	mux.HandleFunc("DELETE /match/select", handler.CancelSelection)
	mux.HandleFunc("POST /match/swaps", handler.SwapPositions)
	mux.HandleFunc("POST /match/substitutions", handler.Substitute)
	mux.HandleFunc("POST /match/keeper-change", handler.ChangeKeeper)
	mux.HandleFunc("GET /match/suggestions", handler.ListSuggestions)
	mux.HandleFunc("POST /match/suggestions/{group}/execute", handler.ExecuteSuggestion)
}
