package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinNumber = 0
	MaxNumber = 99
)

// ErrNumberTaken is returned by stores that enforce jersey uniqueness themselves.
var ErrNumberTaken = errors.New("jersey number already used by an active player")

// Player is a squad member on the club roster.
type Player struct {
	ID        string
	Name      string
	Number    *int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims free-text fields in place.
func (p *Player) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Number != nil && (*p.Number < MinNumber || *p.Number > MaxNumber) {
		return fmt.Errorf("number must be between %d and %d", MinNumber, MaxNumber)
	}

	return nil
}

// HasNumber reports whether the player wears the given jersey number.
func (p Player) HasNumber(number int) bool {
	return p.Number != nil && *p.Number == number
}

// Less orders active players first, then by name.
func Less(a, b Player) bool {
	if a.Active != b.Active {
		return a.Active
	}
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
