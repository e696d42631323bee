package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/ports"
)

// Tour is an origin-bounded path over point identifiers plus its total
// length in meters.
type Tour struct {
	Path   []string
	Length float64
}

// Colony runs the ant colony search over one problem instance. The points
// slice, the distance lookup, and the configuration are all read-only for
// the lifetime of the colony.
type Colony struct {
	cfg    Config
	points []domain.Point
	origin int
	dist   ports.DistanceLookup
	obs    ports.SolveObserver
}

// NewColony validates the configuration and the instance. A point whose
// demand alone exceeds a capacity limit fails here with
// InfeasiblePointError, before any iteration starts.
func NewColony(cfg Config, points []domain.Point, dist ports.DistanceLookup, obs ports.SolveObserver) (*Colony, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dist == nil {
		return nil, errors.New("colony: distance lookup is nil")
	}
	if obs == nil {
		obs = ports.NopObserver{}
	}

	origin := -1
	for i, p := range points {
		if p.ID == cfg.Origin {
			origin = i
			break
		}
	}
	if origin < 0 {
		return nil, fmt.Errorf("%w: origin %q is not among the points", ErrInvalidConfig, cfg.Origin)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: at least one non-origin point is required", ErrInvalidConfig)
	}

	for i, p := range points {
		if i == origin {
			continue
		}
		if p.Pallets > cfg.MaxPallets || p.Weight > cfg.MaxWeight {
			return nil, &InfeasiblePointError{PointID: p.ID, Pallets: p.Pallets, Weight: p.Weight}
		}
	}

	return &Colony{cfg: cfg, points: points, origin: origin, dist: dist, obs: obs}, nil
}

// Solve runs the configured number of iterations and returns the shortest
// tour seen across all ants.
//
// Ants within one iteration construct tours concurrently against a frozen
// trail; the WaitGroup is the barrier before the single-writer update phase.
// Each ant draws from its own seeded stream, so results are reproducible
// regardless of scheduling.
func (c *Colony) Solve(ctx context.Context) (Tour, error) {
	trail := NewTrail(len(c.points))

	best := tourResult{length: math.Inf(1)}
	results := make([]tourResult, c.cfg.Ants)
	errs := make([]error, c.cfg.Ants)

	for iter := 0; iter < c.cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return Tour{}, fmt.Errorf("solve: iteration %d: %w", iter, err)
		}

		var wg sync.WaitGroup
		for a := 0; a < c.cfg.Ants; a++ {
			wg.Add(1)
			go func(a int) {
				defer wg.Done()
				rng := rand.New(rand.NewSource(c.antSeed(iter, a)))
				results[a], errs[a] = c.constructTour(trail, rng)
			}(a)
		}
		wg.Wait()

		for a := 0; a < c.cfg.Ants; a++ {
			if errs[a] != nil {
				// A missing distance means inconsistent input data. Skipping
				// the ant would corrupt the pheromone statistics, so the
				// whole solve aborts.
				return Tour{}, fmt.Errorf("solve: iteration %d: %w", iter, errs[a])
			}
			if results[a].length < best.length {
				best = results[a]
				c.obs.BestImproved(iter+1, best.length)
			}
		}

		trail.Evaporate(c.cfg.EvaporationRate)
		for a := range results {
			dep := c.cfg.Q / results[a].length
			p := results[a].path
			for i := 0; i < len(p)-1; i++ {
				trail.Deposit(p[i], p[i+1], dep)
			}
			// Wrap edge back to the path's first position. Every ant's path
			// is reinforced, not only the iteration best.
			trail.Deposit(p[len(p)-1], p[0], dep)
		}

		c.obs.IterationDone(iter+1, best.length)
	}

	return c.tour(best), nil
}

// antSeed derives an independent stream per (iteration, ant) pair.
func (c *Colony) antSeed(iter, ant int) int64 {
	return c.cfg.Seed + int64(iter)*int64(c.cfg.Ants) + int64(ant)
}

// tour maps a position path back to point identifiers.
func (c *Colony) tour(r tourResult) Tour {
	ids := make([]string, len(r.path))
	for i, p := range r.path {
		ids[i] = c.points[p].ID
	}
	return Tour{Path: ids, Length: r.length}
}
