package ports

// SolveObserver receives optional progress callbacks from the colony loop.
// Implementations must be cheap: IterationDone fires once per iteration and
// BestImproved whenever the running best tour shortens.
type SolveObserver interface {
	IterationDone(iteration int, bestLength float64)
	BestImproved(iteration int, length float64)
}

// NopObserver ignores all callbacks.
type NopObserver struct{}

func (NopObserver) IterationDone(int, float64) {}

func (NopObserver) BestImproved(int, float64) {}
