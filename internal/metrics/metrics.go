package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SolveIterations counts completed colony iterations across all solves.
	SolveIterations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_iterations_total", Help: "Completed colony iterations."},
	)

	// BestTourLength reports the length of the best tour of the most recent
	// improvement, in meters.
	BestTourLength = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "solver_best_tour_length_meters", Help: "Best tour length at the latest improvement."},
	)

	// BestImprovements counts how often the running best tour shortened.
	BestImprovements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_best_improvements_total", Help: "Improvements to the running best tour."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveIterations)
		Registry.MustRegister(BestTourLength)
		Registry.MustRegister(BestImprovements)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
