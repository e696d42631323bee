package solver

// Trail is the shared pheromone matrix over point positions, stored as a
// flat row-major slice. Every entry starts at 1.0. Within an iteration the
// trail is read-only for all ants; between iterations it is mutated by
// exactly one writer (the colony loop). Entries stay non-negative:
// evaporation multiplies by a factor in (0,1) and deposits only add
// non-negative amounts.
type Trail struct {
	n int
	v []float64
}

func NewTrail(n int) *Trail {
	t := &Trail{n: n, v: make([]float64, n*n)}
	for i := range t.v {
		t.v[i] = 1.0
	}
	return t
}

// At returns the trail strength of the directed edge i -> j.
func (t *Trail) At(i, j int) float64 {
	return t.v[i*t.n+j]
}

// Evaporate scales every entry by the retention rate.
func (t *Trail) Evaporate(rate float64) {
	for i := range t.v {
		t.v[i] *= rate
	}
}

// Deposit reinforces the directed edge i -> j by a non-negative amount.
func (t *Trail) Deposit(i, j int, amount float64) {
	t.v[i*t.n+j] += amount
}

// Size returns the number of positions the trail covers.
func (t *Trail) Size() int {
	return t.n
}
