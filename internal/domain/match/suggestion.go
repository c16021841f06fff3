package match

import (
	"sort"
	"strings"
)

// tieWindowSeconds treats playing times this close as equal.
const tieWindowSeconds = 1

// Suggestion is the proposed next substitution for one group.
type Suggestion struct {
	Group      GroupID
	OutID      string
	InID       string
	OutSeconds int
	InSeconds  int
}

// Suggest proposes taking off the field player with the most playing time
// and bringing on the bench player with the least. Near ties resolve by name.
func (s State) Suggest(g GroupID) (Suggestion, bool) {
	field := s.OnField(g)
	bench := s.Bench(g)
	if len(field) == 0 || len(bench) == 0 {
		return Suggestion{}, false
	}

	outID := s.pickByTime(field, true)
	inID := s.pickByTime(bench, false)
	return Suggestion{
		Group:      g,
		OutID:      outID,
		InID:       inID,
		OutSeconds: s.PlayingTime(outID),
		InSeconds:  s.PlayingTime(inID),
	}, true
}

// Suggestions returns the available suggestion of each group.
func (s State) Suggestions() []Suggestion {
	out := make([]Suggestion, 0, len(Groups))
	for _, g := range Groups {
		if item, ok := s.Suggest(g); ok {
			out = append(out, item)
		}
	}
	return out
}

// ExecuteSuggestion applies the current suggestion of a group.
func (s *State) ExecuteSuggestion(g GroupID) (Suggestion, error) {
	item, ok := s.Suggest(g)
	if !ok {
		return Suggestion{}, ErrNoSuggestion
	}
	if err := s.Substitute(item.OutID, item.InID); err != nil {
		return Suggestion{}, err
	}
	return item, nil
}

func (s State) pickByTime(ids []string, highest bool) string {
	best := s.PlayingTime(ids[0])
	for _, id := range ids[1:] {
		t := s.PlayingTime(id)
		if (highest && t > best) || (!highest && t < best) {
			best = t
		}
	}

	candidates := make([]string, 0, len(ids))
	for _, id := range ids {
		diff := s.PlayingTime(id) - best
		if diff < 0 {
			diff = -diff
		}
		if diff <= tieWindowSeconds {
			candidates = append(candidates, id)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return s.nameKey(candidates[i]) < s.nameKey(candidates[j])
	})
	return candidates[0]
}

func (s State) nameKey(id string) string {
	if p, ok := s.Player(id); ok {
		return strings.ToLower(p.Name) + "\x00" + id
	}
	return "\xff" + id
}
