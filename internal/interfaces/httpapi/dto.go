package httpapi

import (
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/domain/player"
	"github.com/riskibarqy/wissel-coach/internal/usecase"
)

type createPlayerRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Number *int   `json:"number" validate:"omitempty,min=0,max=99"`
	Active *bool  `json:"active"`
}

type updatePlayerRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Number *int    `json:"number" validate:"omitempty,min=0,max=99"`
	Active *bool   `json:"active"`
}

// hasField reports whether the top-level JSON object carries key, even as null.
func hasField(body []byte, key string) bool {
	_, err := sonic.Get(body, key)
	return err == nil
}

type setKeepersRequest struct {
	Keeper1 string `json:"keeper1"`
	Keeper2 string `json:"keeper2"`
}

type movePlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Group    int    `json:"group" validate:"oneof=1 2"`
}

type assignPositionRequest struct {
	Group int `json:"group" validate:"oneof=1 2"`
}

type adjustClockRequest struct {
	Minutes int `json:"minutes" validate:"oneof=-1 1"`
}

type selectPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type swapRequest struct {
	FirstPlayerID  string `json:"firstPlayerId" validate:"required"`
	SecondPlayerID string `json:"secondPlayerId" validate:"required"`
}

type substitutionRequest struct {
	OutPlayerID string `json:"outPlayerId" validate:"required"`
	InPlayerID  string `json:"inPlayerId" validate:"required"`
}

type playerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    *int      `json:"number"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type playerRefDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number"`
}

type setupRulesDTO struct {
	SquadSize      int      `json:"squadSize"`
	GroupSize      int      `json:"groupSize"`
	Group1Outfield int      `json:"group1Outfield"`
	Group2Outfield int      `json:"group2Outfield"`
	Positions      []string `json:"positions"`
}

type setupDTO struct {
	Step            string         `json:"step"`
	Rules           setupRulesDTO  `json:"rules"`
	SelectedPlayers []playerRefDTO `json:"selectedPlayers"`
	Keeper1         string         `json:"keeper1,omitempty"`
	Keeper2         string         `json:"keeper2,omitempty"`
	Group1          []string       `json:"group1"`
	Group2          []string       `json:"group2"`
	Group1Positions []string       `json:"group1Positions"`
	Group2Positions []string       `json:"group2Positions"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type toggleSelectionDTO struct {
	Selected bool     `json:"selected"`
	Setup    setupDTO `json:"setup"`
}

type slotDTO struct {
	Position string `json:"position"`
	PlayerID string `json:"playerId"`
}

type groupDTO struct {
	Group  int       `json:"group"`
	Lineup []slotDTO `json:"lineup"`
	Bench  []string  `json:"bench"`
}

type matchPlayerDTO struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Number             *int   `json:"number"`
	Group              int    `json:"group"`
	OnField            bool   `json:"onField"`
	Position           string `json:"position,omitempty"`
	PlayingTimeSeconds int    `json:"playingTimeSeconds"`
}

type selectionDTO struct {
	Mode     string `json:"mode"`
	PlayerID string `json:"playerId,omitempty"`
	Position string `json:"position,omitempty"`
	Group    int    `json:"group,omitempty"`
}

type suggestionDTO struct {
	Group      int    `json:"group"`
	OutID      string `json:"outPlayerId"`
	InID       string `json:"inPlayerId"`
	OutSeconds int    `json:"outPlayingTimeSeconds"`
	InSeconds  int    `json:"inPlayingTimeSeconds"`
}

type matchDTO struct {
	ID               string           `json:"id"`
	CreatedAt        time.Time        `json:"createdAt"`
	MatchTimeSeconds int              `json:"matchTimeSeconds"`
	IsRunning        bool             `json:"isRunning"`
	Half             int              `json:"half"`
	CurrentKeeper    int              `json:"currentKeeper"`
	CurrentKeeperID  string           `json:"currentKeeperId"`
	ReserveKeeperID  string           `json:"reserveKeeperId"`
	Groups           []groupDTO       `json:"groups"`
	Players          []matchPlayerDTO `json:"players"`
	Selection        selectionDTO     `json:"selection"`
	Suggestions      []suggestionDTO  `json:"suggestions"`
}

type selectionResultDTO struct {
	Action   string   `json:"action"`
	FirstID  string   `json:"firstPlayerId,omitempty"`
	SecondID string   `json:"secondPlayerId,omitempty"`
	Match    matchDTO `json:"match"`
}

func playerToDTO(item player.Player) playerDTO {
	return playerDTO{
		ID:        item.ID,
		Name:      item.Name,
		Number:    item.Number,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func playerRefsToDTO(items []match.PlayerRef) []playerRefDTO {
	out := make([]playerRefDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerRefDTO{ID: item.ID, Name: item.Name, Number: item.Number})
	}
	return out
}

func positionsToStrings(items []match.Position) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

func rulesToDTO(rules matchsetup.Rules) setupRulesDTO {
	positions := make([]string, 0, len(match.OutfieldPositions)+1)
	positions = append(positions, string(match.PositionKeeper))
	positions = append(positions, positionsToStrings(match.OutfieldPositions)...)

	return setupRulesDTO{
		SquadSize:      rules.SquadSize,
		GroupSize:      rules.GroupSize,
		Group1Outfield: rules.Group1Outfield,
		Group2Outfield: rules.Group2Outfield,
		Positions:      positions,
	}
}

func setupToDTO(state matchsetup.State, rules matchsetup.Rules) setupDTO {
	return setupDTO{
		Step:            string(state.Step),
		Rules:           rulesToDTO(rules),
		SelectedPlayers: playerRefsToDTO(state.SelectedPlayers),
		Keeper1:         state.Keeper1,
		Keeper2:         state.Keeper2,
		Group1:          nonNilStrings(state.Group1),
		Group2:          nonNilStrings(state.Group2),
		Group1Positions: positionsToStrings(state.Group1Positions),
		Group2Positions: positionsToStrings(state.Group2Positions),
		UpdatedAt:       state.UpdatedAt,
	}
}

func matchToDTO(snapshot usecase.MatchSnapshot) matchDTO {
	state := snapshot.State

	groups := make([]groupDTO, 0, len(match.Groups))
	for _, g := range match.Groups {
		lineup := state.Lineup(g)
		slots := make([]slotDTO, 0, len(lineup))
		for _, slot := range lineup {
			slots = append(slots, slotDTO{Position: string(slot.Position), PlayerID: slot.PlayerID})
		}
		groups = append(groups, groupDTO{
			Group:  int(g),
			Lineup: slots,
			Bench:  nonNilStrings(state.Bench(g)),
		})
	}

	players := make([]matchPlayerDTO, 0, len(state.SelectedPlayers))
	for _, p := range state.SelectedPlayers {
		item := matchPlayerDTO{
			ID:                 p.ID,
			Name:               p.Name,
			Number:             p.Number,
			PlayingTimeSeconds: state.PlayingTime(p.ID),
		}
		if g, ok := state.GroupOf(p.ID); ok {
			item.Group = int(g)
		}
		if pos, onField := state.PositionOf(p.ID); onField {
			item.OnField = true
			item.Position = string(pos)
		}
		players = append(players, item)
	}

	return matchDTO{
		ID:               state.ID,
		CreatedAt:        state.CreatedAt,
		MatchTimeSeconds: state.MatchTimeSeconds,
		IsRunning:        state.IsRunning,
		Half:             state.Half,
		CurrentKeeper:    state.CurrentKeeper,
		CurrentKeeperID:  state.CurrentKeeperID(),
		ReserveKeeperID:  state.ReserveKeeperID(),
		Groups:           groups,
		Players:          players,
		Selection:        selectionToDTO(snapshot.Selection),
		Suggestions:      suggestionsToDTO(snapshot.Suggestions),
	}
}

func selectionToDTO(sel match.Selection) selectionDTO {
	mode := sel.Mode
	if mode == "" {
		mode = match.ModeIdle
	}
	return selectionDTO{
		Mode:     string(mode),
		PlayerID: sel.PlayerID,
		Position: string(sel.Position),
		Group:    int(sel.Group),
	}
}

func suggestionsToDTO(items []match.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, suggestionDTO{
			Group:      int(item.Group),
			OutID:      item.OutID,
			InID:       item.InID,
			OutSeconds: item.OutSeconds,
			InSeconds:  item.InSeconds,
		})
	}
	return out
}

func selectionResultToDTO(result usecase.SelectionResult) selectionResultDTO {
	return selectionResultDTO{
		Action:   string(result.Outcome.Action),
		FirstID:  result.Outcome.FirstID,
		SecondID: result.Outcome.SecondID,
		Match:    matchToDTO(result.Snapshot),
	}
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
