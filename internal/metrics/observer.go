package metrics

// Observer bridges solver progress callbacks onto the Prometheus
// collectors, making long solves visible through /metrics.
type Observer struct{}

func (Observer) IterationDone(iteration int, bestLength float64) {
	SolveIterations.Inc()
}

func (Observer) BestImproved(iteration int, length float64) {
	BestImprovements.Inc()
	BestTourLength.Set(length)
}
