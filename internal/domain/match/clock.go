package match

// AdjustStep is the manual clock correction unit.
const AdjustStep = 60

// SetRunning starts or pauses the clock and reports whether the value changed.
func (s *State) SetRunning(running bool) bool {
	if s.IsRunning == running {
		return false
	}
	s.IsRunning = running
	return true
}

// Tick advances the clock one second and credits every player on the field.
// It is a no-op while the clock is paused.
func (s *State) Tick() bool {
	if !s.IsRunning {
		return false
	}
	if s.PlayingTimeSeconds == nil {
		s.PlayingTimeSeconds = make(map[string]int)
	}

	s.MatchTimeSeconds++
	for _, id := range s.FieldPlayers() {
		s.PlayingTimeSeconds[id]++
	}
	return true
}

// AdjustTime shifts the clock and the playing time of everyone on the field
// by the same signed delta, clamping every counter at zero.
func (s *State) AdjustTime(deltaSeconds int) {
	if deltaSeconds == 0 {
		return
	}
	if s.PlayingTimeSeconds == nil {
		s.PlayingTimeSeconds = make(map[string]int)
	}

	s.MatchTimeSeconds = clampZero(s.MatchTimeSeconds + deltaSeconds)
	for _, id := range s.FieldPlayers() {
		s.PlayingTimeSeconds[id] = clampZero(s.PlayingTimeSeconds[id] + deltaSeconds)
	}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
