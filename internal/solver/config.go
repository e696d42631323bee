package solver

import (
	"errors"
	"fmt"
	"math"
)

// Reference parameterization; requests that omit a knob get these.
const (
	DefaultAnts            = 30
	DefaultIterations      = 50
	DefaultAlpha           = 1.0
	DefaultBeta            = 1.0
	DefaultEvaporationRate = 0.5
	DefaultQ               = 1.0
)

// ErrInvalidConfig marks every configuration validation failure so callers
// can classify them without matching message text.
var ErrInvalidConfig = errors.New("invalid solver configuration")

// Config carries every tunable of one solve call. Values are immutable once
// the colony starts.
type Config struct {
	// Origin is the identifier of the distribution center. Its demand is
	// never counted against capacity.
	Origin string

	// Capacity limits per sub-route.
	MaxPallets float64
	MaxWeight  float64

	Ants       int
	Iterations int

	// Alpha weighs the pheromone signal, Beta the inverse-distance signal,
	// in the transition rule trail^alpha / distance^beta.
	Alpha float64
	Beta  float64

	// EvaporationRate is the per-iteration retention multiplier: every trail
	// entry is scaled by this value before deposits are applied.
	EvaporationRate float64

	// Q is the deposit constant; each ant deposits Q / tour length per edge.
	Q float64

	// Seed fixes the random streams. Two runs with the same seed and inputs
	// produce identical tours.
	Seed int64
}

func (c Config) Validate() error {
	if c.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidConfig)
	}
	if c.MaxPallets <= 0 {
		return fmt.Errorf("%w: max pallets must be positive, got %v", ErrInvalidConfig, c.MaxPallets)
	}
	if c.MaxWeight <= 0 {
		return fmt.Errorf("%w: max weight must be positive, got %v", ErrInvalidConfig, c.MaxWeight)
	}
	if c.Ants < 1 {
		return fmt.Errorf("%w: ants must be at least 1, got %d", ErrInvalidConfig, c.Ants)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Alpha < 0 || math.IsNaN(c.Alpha) || math.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha must be a finite non-negative number, got %v", ErrInvalidConfig, c.Alpha)
	}
	if c.Beta < 0 || math.IsNaN(c.Beta) || math.IsInf(c.Beta, 0) {
		return fmt.Errorf("%w: beta must be a finite non-negative number, got %v", ErrInvalidConfig, c.Beta)
	}
	if c.EvaporationRate <= 0 || c.EvaporationRate >= 1 || math.IsNaN(c.EvaporationRate) {
		return fmt.Errorf("%w: evaporation rate must be in (0,1), got %v", ErrInvalidConfig, c.EvaporationRate)
	}
	if c.Q <= 0 || math.IsNaN(c.Q) || math.IsInf(c.Q, 0) {
		return fmt.Errorf("%w: Q must be positive and finite, got %v", ErrInvalidConfig, c.Q)
	}
	return nil
}

// InfeasiblePointError reports a point whose demand alone exceeds a capacity
// limit, making any valid route impossible. Detected before the first
// iteration rather than surfacing as unbounded resampling.
type InfeasiblePointError struct {
	PointID string
	Pallets float64
	Weight  float64
}

func (e *InfeasiblePointError) Error() string {
	return fmt.Sprintf(
		"point %q demand (pallets=%v, weight=%v) exceeds a capacity limit on its own",
		e.PointID, e.Pallets, e.Weight,
	)
}
