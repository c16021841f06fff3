package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/wissel-coach/internal/domain/player"
)

// SeedPlayer is one roster entry of a YAML seed file.
type SeedPlayer struct {
	Name   string `yaml:"name"`
	Number *int   `yaml:"number"`
	Active *bool  `yaml:"active"`
}

type seedFile struct {
	Players []SeedPlayer `yaml:"players"`
}

// LoadSeedFile reads a roster seed file of the form:
//
//	players:
//	  - name: Daan
//	    number: 7
func LoadSeedFile(path string) ([]SeedPlayer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster seed file: %w", err)
	}

	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode roster seed file %s: %w", path, err)
	}
	for i, item := range doc.Players {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("roster seed entry %d: name is required", i)
		}
	}

	return doc.Players, nil
}

// SeedPlayers is the demo squad used by the in-memory store in dev.
func SeedPlayers() []player.Player {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"Daan", "Sem", "Levi", "Noah", "Finn", "Luuk", "Milan", "Jesse", "Bram", "Thijs"}

	out := make([]player.Player, 0, len(names))
	for i, name := range names {
		out = append(out, player.Player{
			ID:        fmt.Sprintf("demo-%02d", i+1),
			Name:      name,
			Number:    player.IntPtr(i + 1),
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}
