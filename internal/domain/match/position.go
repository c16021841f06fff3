package match

// Position is a field position label in the 6-a-side formation.
type Position string

const (
	PositionKeeper       Position = "keeper"
	PositionLeftBack     Position = "linksachter"
	PositionRightBack    Position = "rechtsachter"
	PositionMidfield     Position = "midden"
	PositionLeftForward  Position = "linksvoor"
	PositionRightForward Position = "rechtsvoor"
)

// OutfieldPositions lists every non-keeper label in display order.
var OutfieldPositions = []Position{
	PositionLeftBack,
	PositionRightBack,
	PositionMidfield,
	PositionLeftForward,
	PositionRightForward,
}

// MaxOutfieldPerGroup caps the outfield labels one group may hold.
const MaxOutfieldPerGroup = 3

func (p Position) Valid() bool {
	if p == PositionKeeper {
		return true
	}
	for _, item := range OutfieldPositions {
		if item == p {
			return true
		}
	}
	return false
}

func (p Position) IsKeeper() bool {
	return p == PositionKeeper
}

// GroupID identifies one of the two rotation groups.
type GroupID int

const (
	Group1 GroupID = 1
	Group2 GroupID = 2
)

// Groups lists both rotation groups in order.
var Groups = []GroupID{Group1, Group2}

func (g GroupID) Valid() bool {
	return g == Group1 || g == Group2
}

// Other returns the opposite group.
func (g GroupID) Other() GroupID {
	if g == Group1 {
		return Group2
	}
	return Group1
}
