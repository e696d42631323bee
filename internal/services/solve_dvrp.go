package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/platform/obs"
	"dvrp-solver-service/internal/ports"
	"dvrp-solver-service/internal/solver"
)

const (
	AlgorithmACO    = "aco"
	AlgorithmGreedy = "greedy"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

type SolveStatus string

const (
	StatusSolved        SolveStatus = "solved"
	StatusAlreadyExists SolveStatus = "already_exists"
)

type SolveRequest struct {
	SolutionID string
	PointIDs   []string
	Algorithm  string
	Config     solver.Config
}

type SolveResult struct {
	Status   SolveStatus
	Solution *domain.Solution
}

// SolveDVRP runs one capacitated routing solve end to end: idempotency
// check, point-attribute join, distance-table load, colony (or greedy
// baseline) search, route decomposition, and a single atomic persist.
//
// A solution identifier that was already persisted short-circuits with
// StatusAlreadyExists and mutates nothing.
func SolveDVRP(
	ctx context.Context,
	req SolveRequest,
	points ports.PointRepository,
	distances ports.DistanceSource,
	solutions ports.SolutionRepository,
	observer ports.SolveObserver,
) (_ *SolveResult, err error) {
	defer obs.Time(ctx, "services.SolveDVRP")(&err)

	id := strings.TrimSpace(req.SolutionID)
	if id == "" {
		return nil, fmt.Errorf("solve dvrp: solution id must be non-empty")
	}

	exists, err := solutions.SolutionExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: check solution %q: %w", id, err)
	}
	if exists {
		return &SolveResult{Status: StatusAlreadyExists}, nil
	}

	ids, err := resolvePointIDs(req.PointIDs, req.Config.Origin)
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: %w", err)
	}

	pts, err := points.ListPoints(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: list points: %w", err)
	}

	lookup, err := distances.LoadDistances(ctx)
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: load distances: %w", err)
	}

	cfg := req.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	colony, err := solver.NewColony(cfg, pts, lookup, observer)
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: %w", err)
	}

	var tour solver.Tour
	switch req.Algorithm {
	case "", AlgorithmACO:
		tour, err = colony.Solve(ctx)
	case AlgorithmGreedy:
		tour, err = colony.SolveGreedy(ctx)
	default:
		return nil, fmt.Errorf("solve dvrp: %w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("solve dvrp: %w", err)
	}

	sol := &domain.Solution{
		ID:            id,
		Origin:        cfg.Origin,
		Path:          tour.Path,
		TotalDistance: tour.Length,
		Routes:        solver.DecomposeRoutes(tour.Path, cfg.Origin),
	}

	if err := solutions.SaveSolution(ctx, sol); err != nil {
		return nil, fmt.Errorf("solve dvrp: save solution %q: %w", id, err)
	}

	return &SolveResult{Status: StatusSolved, Solution: sol}, nil
}

// resolvePointIDs de-duplicates the requested identifiers and joins the
// origin in when the request left it out.
func resolvePointIDs(ids []string, origin string) ([]string, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, fmt.Errorf("origin must be non-empty")
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if _, ok := seen[origin]; !ok {
		out = append(out, origin)
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("at least one non-origin point is required")
	}

	return out, nil
}
