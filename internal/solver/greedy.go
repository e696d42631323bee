package solver

import (
	"context"
	"fmt"
	"math"
)

// SolveGreedy builds a capacity-aware tour by always driving to the nearest
// unvisited stop that still fits, closing the sub-route at the origin when
// nothing fits. It is the deterministic baseline the colony is judged
// against and shares the colony's validation, decomposition, and
// persistence path.
func (c *Colony) SolveGreedy(ctx context.Context) (Tour, error) {
	n := len(c.points)
	visited := make([]bool, n)
	remaining := n - 1

	path := make([]int, 0, n+4)
	path = append(path, c.origin)

	cur := c.origin
	length := 0.0
	load := 0.0
	weight := 0.0

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return Tour{}, fmt.Errorf("solve greedy: %w", err)
		}

		best := -1
		bestDist := math.Inf(1)

		for p := 0; p < n; p++ {
			if visited[p] || p == c.origin {
				continue
			}
			if load+c.points[p].Pallets > c.cfg.MaxPallets ||
				weight+c.points[p].Weight > c.cfg.MaxWeight {
				continue
			}

			d, err := c.edge(cur, p)
			if err != nil {
				return Tour{}, fmt.Errorf("solve greedy: %w", err)
			}

			// Tie-breaker ensures deterministic ordering when distances are
			// equal.
			if d < bestDist || (d == bestDist && (best < 0 || c.points[p].ID < c.points[best].ID)) {
				bestDist = d
				best = p
			}
		}

		if best < 0 {
			// No unvisited stop fits the current sub-route.
			d, err := c.edge(cur, c.origin)
			if err != nil {
				return Tour{}, fmt.Errorf("solve greedy: %w", err)
			}
			path = append(path, c.origin)
			length += d
			cur = c.origin
			load = 0
			weight = 0
			continue
		}

		path = append(path, best)
		length += bestDist
		load += c.points[best].Pallets
		weight += c.points[best].Weight
		visited[best] = true
		remaining--
		cur = best
	}

	back, err := c.edge(cur, c.origin)
	if err != nil {
		return Tour{}, fmt.Errorf("solve greedy: %w", err)
	}
	path = append(path, c.origin)
	length += back

	return c.tour(tourResult{path: path, length: length}), nil
}
