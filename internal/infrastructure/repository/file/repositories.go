package file

import (
	"github.com/riskibarqy/wissel-coach/internal/domain/match"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/document"
)

var (
	_ match.Repository      = (*Slot[match.State])(nil)
	_ matchsetup.Repository = (*Slot[matchsetup.State])(nil)
)

// NewMatchStateRepository stores the live match as <dir>/match.json.
func NewMatchStateRepository(dir string) (*Slot[match.State], error) {
	return NewSlot(dir, document.SlotMatch, document.WriteMatch, document.DecodeMatch)
}

// NewSetupRepository stores the wizard progress as <dir>/setup.json.
func NewSetupRepository(dir string) (*Slot[matchsetup.State], error) {
	return NewSlot(dir, document.SlotSetup, document.WriteSetup, document.DecodeSetup)
}
