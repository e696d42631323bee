package solver

import (
	"fmt"
	"math"
	"math/rand"
)

// tourResult is one ant's completed path over point positions plus its
// total length in meters.
type tourResult struct {
	path   []int
	length float64
}

// constructTour builds one ant's full tour: a uniformly random non-origin
// start, then probabilistic steps weighted by trail^alpha / distance^beta
// over the unvisited non-origin positions, with a forced return to the
// origin whenever the sampled stop would exceed a capacity limit.
//
// The origin is never offered as a sampling candidate; the capacity-triggered
// transition is the only way a tour re-enters the origin mid-path. Visitation
// is tracked over non-origin positions only.
func (c *Colony) constructTour(trail *Trail, rng *rand.Rand) (tourResult, error) {
	n := len(c.points)
	visited := make([]bool, n)
	remaining := n - 1

	start := c.randomStart(rng)
	visited[start] = true
	remaining--

	path := make([]int, 0, n+4)
	path = append(path, c.origin, start)

	length, err := c.edge(c.origin, start)
	if err != nil {
		return tourResult{}, err
	}

	load := c.points[start].Pallets
	weight := c.points[start].Weight
	cur := start

	cand := make([]int, 0, n)
	weights := make([]float64, 0, n)

	for remaining > 0 {
		cand = cand[:0]
		weights = weights[:0]
		sum := 0.0

		for p := 0; p < n; p++ {
			if visited[p] || p == c.origin {
				continue
			}

			d, err := c.edge(cur, p)
			if err != nil {
				return tourResult{}, err
			}

			// Transition rule: pheromone^alpha / distance^beta.
			w := powf(trail.At(cur, p), c.cfg.Alpha) / powf(d, c.cfg.Beta)
			cand = append(cand, p)
			weights = append(weights, w)
			sum += w
		}

		next := cand[sampleIndex(rng, weights, sum)]

		if load+c.points[next].Pallets > c.cfg.MaxPallets ||
			weight+c.points[next].Weight > c.cfg.MaxWeight {
			// The sampled stop does not fit; close the sub-route at the
			// origin and leave the stop unvisited for a later sub-route.
			d, err := c.edge(cur, c.origin)
			if err != nil {
				return tourResult{}, err
			}
			path = append(path, c.origin)
			length += d
			cur = c.origin
			load = 0
			weight = 0
			continue
		}

		d, err := c.edge(cur, next)
		if err != nil {
			return tourResult{}, err
		}
		path = append(path, next)
		length += d
		load += c.points[next].Pallets
		weight += c.points[next].Weight
		visited[next] = true
		remaining--
		cur = next
	}

	back, err := c.edge(cur, c.origin)
	if err != nil {
		return tourResult{}, err
	}
	path = append(path, c.origin)
	length += back

	return tourResult{path: path, length: length}, nil
}

// randomStart draws a uniformly random non-origin position.
func (c *Colony) randomStart(rng *rand.Rand) int {
	p := rng.Intn(len(c.points) - 1)
	if p >= c.origin {
		p++
	}
	return p
}

// edge returns the distance between the points at two positions.
func (c *Colony) edge(i, j int) (float64, error) {
	d, err := c.dist.Distance(c.points[i].ID, c.points[j].ID)
	if err != nil {
		return 0, fmt.Errorf("construct tour: %w", err)
	}
	return d, nil
}

// sampleIndex draws an index proportionally to weights. A degenerate weight
// vector (all zero, NaN, or infinite sum) falls back to a uniform draw.
func sampleIndex(rng *rand.Rand, weights []float64, sum float64) int {
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 1) {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}

// powf avoids math.Pow for the common exponents.
func powf(x, p float64) float64 {
	switch p {
	case 0:
		return 1
	case 1:
		return x
	case 2:
		return x * x
	}
	return math.Pow(x, p)
}
