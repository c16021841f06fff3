// Package document maps match and setup state to the JSON stored in a slot.
package document

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
)

const (
	SlotSetup = "setup"
	SlotMatch = "match"
)

type playerDoc struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number,omitempty"`
}

type matchDoc struct {
	ID                 string         `json:"id"`
	SelectedPlayers    []playerDoc    `json:"selectedPlayers"`
	Keeper1            string         `json:"keeper1"`
	Keeper2            string         `json:"keeper2"`
	Group1             []string       `json:"group1"`
	Group2             []string       `json:"group2"`
	Group1Positions    []string       `json:"group1Positions"`
	Group2Positions    []string       `json:"group2Positions"`
	CurrentKeeper      int            `json:"currentKeeper"`
	MatchTimeSeconds   int            `json:"matchTimeSeconds"`
	IsRunning          bool           `json:"isRunning"`
	Half               int            `json:"half"`
	PlayingTimeSeconds map[string]int `json:"playingTimeSeconds"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type setupDoc struct {
	Step            string      `json:"step"`
	SelectedPlayers []playerDoc `json:"selectedPlayers"`
	Keeper1         string      `json:"keeper1,omitempty"`
	Keeper2         string      `json:"keeper2,omitempty"`
	Group1          []string    `json:"group1"`
	Group2          []string    `json:"group2"`
	Group1Positions []string    `json:"group1Positions"`
	Group2Positions []string    `json:"group2Positions"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func EncodeMatch(state match.State) ([]byte, error) {
	raw, err := sonic.Marshal(toMatchDoc(state))
	if err != nil {
		return nil, fmt.Errorf("encode match document: %w", err)
	}
	return raw, nil
}

// WriteMatch streams the match document to w as one JSON line.
func WriteMatch(w io.Writer, state match.State) error {
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(toMatchDoc(state)); err != nil {
		return fmt.Errorf("write match document: %w", err)
	}
	return nil
}

func toMatchDoc(state match.State) matchDoc {
	doc := matchDoc{
		ID:                 state.ID,
		SelectedPlayers:    toPlayerDocs(state.SelectedPlayers),
		Keeper1:            state.Keeper1,
		Keeper2:            state.Keeper2,
		Group1:             nonNil(state.Group1),
		Group2:             nonNil(state.Group2),
		Group1Positions:    toLabels(state.Group1Positions),
		Group2Positions:    toLabels(state.Group2Positions),
		CurrentKeeper:      state.CurrentKeeper,
		MatchTimeSeconds:   state.MatchTimeSeconds,
		IsRunning:          state.IsRunning,
		Half:               state.Half,
		PlayingTimeSeconds: state.PlayingTimeSeconds,
		CreatedAt:          state.CreatedAt.UTC(),
	}
	if doc.PlayingTimeSeconds == nil {
		doc.PlayingTimeSeconds = map[string]int{}
	}
	return doc
}

func DecodeMatch(raw []byte) (match.State, error) {
	var doc matchDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return match.State{}, fmt.Errorf("decode match document: %w", err)
	}
	if doc.PlayingTimeSeconds == nil {
		doc.PlayingTimeSeconds = map[string]int{}
	}

	return match.State{
		ID:                 doc.ID,
		SelectedPlayers:    fromPlayerDocs(doc.SelectedPlayers),
		Keeper1:            doc.Keeper1,
		Keeper2:            doc.Keeper2,
		Group1:             doc.Group1,
		Group2:             doc.Group2,
		Group1Positions:    fromLabels(doc.Group1Positions),
		Group2Positions:    fromLabels(doc.Group2Positions),
		CurrentKeeper:      doc.CurrentKeeper,
		MatchTimeSeconds:   doc.MatchTimeSeconds,
		IsRunning:          doc.IsRunning,
		Half:               doc.Half,
		PlayingTimeSeconds: doc.PlayingTimeSeconds,
		CreatedAt:          doc.CreatedAt,
	}, nil
}

func EncodeSetup(state matchsetup.State) ([]byte, error) {
	raw, err := sonic.Marshal(toSetupDoc(state))
	if err != nil {
		return nil, fmt.Errorf("encode setup document: %w", err)
	}
	return raw, nil
}

// WriteSetup streams the setup document to w as one JSON line.
func WriteSetup(w io.Writer, state matchsetup.State) error {
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(toSetupDoc(state)); err != nil {
		return fmt.Errorf("write setup document: %w", err)
	}
	return nil
}

func toSetupDoc(state matchsetup.State) setupDoc {
	return setupDoc{
		Step:            string(state.Step),
		SelectedPlayers: toPlayerDocs(state.SelectedPlayers),
		Keeper1:         state.Keeper1,
		Keeper2:         state.Keeper2,
		Group1:          nonNil(state.Group1),
		Group2:          nonNil(state.Group2),
		Group1Positions: toLabels(state.Group1Positions),
		Group2Positions: toLabels(state.Group2Positions),
		UpdatedAt:       state.UpdatedAt.UTC(),
	}
}

func DecodeSetup(raw []byte) (matchsetup.State, error) {
	var doc setupDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return matchsetup.State{}, fmt.Errorf("decode setup document: %w", err)
	}

	step := matchsetup.Step(doc.Step)
	if step == "" {
		step = matchsetup.StepSelectPlayers
	}
	return matchsetup.State{
		Step:            step,
		SelectedPlayers: fromPlayerDocs(doc.SelectedPlayers),
		Keeper1:         doc.Keeper1,
		Keeper2:         doc.Keeper2,
		Group1:          emptyToNil(doc.Group1),
		Group2:          emptyToNil(doc.Group2),
		Group1Positions: fromLabels(doc.Group1Positions),
		Group2Positions: fromLabels(doc.Group2Positions),
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}

func toPlayerDocs(items []match.PlayerRef) []playerDoc {
	out := make([]playerDoc, 0, len(items))
	for _, p := range items {
		out = append(out, playerDoc{ID: p.ID, Name: p.Name, Number: p.Number})
	}
	return out
}

func fromPlayerDocs(items []playerDoc) []match.PlayerRef {
	if len(items) == 0 {
		return nil
	}
	out := make([]match.PlayerRef, 0, len(items))
	for _, p := range items {
		out = append(out, match.PlayerRef{ID: p.ID, Name: p.Name, Number: p.Number})
	}
	return out
}

func toLabels(items []match.Position) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, string(p))
	}
	return out
}

func fromLabels(items []string) []match.Position {
	if len(items) == 0 {
		return nil
	}
	out := make([]match.Position, 0, len(items))
	for _, p := range items {
		out = append(out, match.Position(p))
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func emptyToNil(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}
