package match

import "errors"

var (
	ErrInvalidSetup     = errors.New("invalid match setup")
	ErrUnknownPlayer    = errors.New("player is not part of this match")
	ErrCrossGroup       = errors.New("players can only be exchanged within the same group")
	ErrNotOnField       = errors.New("player is not on the field")
	ErrNotOnBench       = errors.New("player is not on the bench")
	ErrKeeperLocked     = errors.New("keepers can only be exchanged with each other")
	ErrKeeperChangeUsed = errors.New("keeper change already used")
	ErrNoSuggestion     = errors.New("no substitution suggestion available")
)
