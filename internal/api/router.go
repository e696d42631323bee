package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dvrp-solver-service/internal/api/handlers"
	"dvrp-solver-service/internal/metrics"
	"dvrp-solver-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	points ports.PointRepository,
	distances ports.DistanceSource,
	solutions ports.SolutionRepository,
	observer ports.SolveObserver,
	defaultOrigin string,
) http.Handler {
	mux := http.NewServeMux()

	pointHandler := &handlers.PointHandler{Repo: points}
	solutionHandler := &handlers.SolutionHandler{
		Points:        points,
		Distances:     distances,
		Solutions:     solutions,
		Observer:      observer,
		DefaultOrigin: defaultOrigin,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/points", pointHandler.List)
	mux.HandleFunc("/solutions", solutionHandler.Solve)
	mux.HandleFunc("/solutions/", solutionHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
