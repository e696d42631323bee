package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type PointSeed struct {
	ID      string  `json:"id"`
	Pallets float64 `json:"pallets"`
	Weight  float64 `json:"weight"`
}

type DistanceSeed struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Meters float64 `json:"distance_meters"`
}

type SeedData struct {
	Points    []PointSeed    `json:"points"`
	Distances []DistanceSeed `json:"distances"`
}

// loadSeedFile reads and validates a seed file holding point attributes and
// the pairwise distance table.
func loadSeedFile(jsonPath string) (*SeedData, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var data SeedData
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	for i, p := range data.Points {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("load seed: point at index %d: id cannot be empty", i+1)
		}
		if p.Pallets < 0 || p.Weight < 0 {
			return nil, fmt.Errorf("load seed: point %q: demand cannot be negative", p.ID)
		}
	}

	for i, d := range data.Distances {
		if strings.TrimSpace(d.From) == "" || strings.TrimSpace(d.To) == "" {
			return nil, fmt.Errorf("load seed: distance at index %d: identifiers cannot be empty", i+1)
		}
		if d.Meters < 0 {
			return nil, fmt.Errorf("load seed: distance %q -> %q: cannot be negative", d.From, d.To)
		}
	}

	return &data, nil
}
