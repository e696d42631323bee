package distance

import (
	"fmt"

	"dvrp-solver-service/internal/ports"
)

// Pair is one directed entry of the pre-computed pairwise distance table.
type Pair struct {
	From   string
	To     string
	Meters float64
}

// Matrix is the in-memory pairwise lookup the solver reads during tour
// construction. It is immutable after construction and safe for concurrent
// readers.
type Matrix struct {
	m map[string]float64
}

func NewMatrix(pairs []Pair) *Matrix {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Meters
	}
	return &Matrix{m: m}
}

// Distance returns the recorded distance in meters for a directed pair.
func (mx *Matrix) Distance(from, to string) (float64, error) {
	d, ok := mx.m[from+"|"+to]
	if !ok {
		return 0, fmt.Errorf("distance %q -> %q: %w", from, to, ports.ErrUnknownPair)
	}
	return d, nil
}

// Len returns the number of recorded pairs.
func (mx *Matrix) Len() int {
	return len(mx.m)
}
