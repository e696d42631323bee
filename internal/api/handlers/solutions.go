package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"dvrp-solver-service/internal/api/dto"
	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/ports"
	"dvrp-solver-service/internal/services"
	"dvrp-solver-service/internal/solver"
)

type SolutionHandler struct {
	Points        ports.PointRepository
	Distances     ports.DistanceSource
	Solutions     ports.SolutionRepository
	Observer      ports.SolveObserver
	DefaultOrigin string
}

// Solve runs one capacitated routing solve and persists the resulting plan.
// It coordinates request validation, parameter defaulting, and the solve
// service; repeated identifiers come back as already_exists.
func (h *SolutionHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	solutionID := strings.TrimSpace(req.SolutionID)
	if solutionID == "" {
		solutionID = uuid.NewString()
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = strings.TrimSpace(h.DefaultOrigin)
	}
	if origin == "" {
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return
	}

	if len(req.Points) == 0 {
		writeError(w, r, http.StatusBadRequest, "points must not be empty")
		return
	}
	if req.MaxPallets <= 0 {
		writeError(w, r, http.StatusBadRequest, "max_pallets must be positive")
		return
	}
	if req.MaxWeight <= 0 {
		writeError(w, r, http.StatusBadRequest, "max_weight must be positive")
		return
	}

	ants := req.Ants
	if ants == 0 {
		ants = solver.DefaultAnts
	}
	if ants < 1 || ants > 500 {
		writeError(w, r, http.StatusBadRequest, "ants must be between 1 and 500")
		return
	}

	iterations := req.Iterations
	if iterations == 0 {
		iterations = solver.DefaultIterations
	}
	if iterations < 1 || iterations > 10000 {
		writeError(w, r, http.StatusBadRequest, "iterations must be between 1 and 10000")
		return
	}

	cfg := solver.Config{
		Origin:          origin,
		MaxPallets:      req.MaxPallets,
		MaxWeight:       req.MaxWeight,
		Ants:            ants,
		Iterations:      iterations,
		Alpha:           floatOrDefault(req.Alpha, solver.DefaultAlpha),
		Beta:            floatOrDefault(req.Beta, solver.DefaultBeta),
		EvaporationRate: floatOrDefault(req.EvaporationRate, solver.DefaultEvaporationRate),
		Q:               floatOrDefault(req.Q, solver.DefaultQ),
		Seed:            req.Seed,
	}

	svcReq := services.SolveRequest{
		SolutionID: solutionID,
		PointIDs:   req.Points,
		Algorithm:  req.Algorithm,
		Config:     cfg,
	}

	result, err := services.SolveDVRP(r.Context(), svcReq, h.Points, h.Distances, h.Solutions, h.Observer)
	if err != nil {
		writeSolveError(w, r, err)
		return
	}

	if result.Status == services.StatusAlreadyExists {
		writeJSON(w, r, http.StatusOK, dto.SolutionResponse{
			SolutionID: solutionID,
			Status:     string(result.Status),
		})
		return
	}

	res := solutionResponse(result.Solution)
	res.Status = string(result.Status)
	writeJSON(w, r, http.StatusOK, res)
}

// Get returns a previously persisted plan by its solution identifier.
func (h *SolutionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/solutions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusBadRequest, "solution id is required")
		return
	}

	sol, err := h.Solutions.GetSolution(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrSolutionNotFound) {
			writeError(w, r, http.StatusNotFound, "solution not found")
			return
		}
		log.Printf("get solution failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, solutionResponse(sol))
}

// writeSolveError translates solver error classes onto HTTP statuses.
func writeSolveError(w http.ResponseWriter, r *http.Request, err error) {
	var infeasible *solver.InfeasiblePointError
	switch {
	case errors.As(err, &infeasible):
		writeError(w, r, http.StatusUnprocessableEntity, infeasible.Error())
	case errors.Is(err, solver.ErrInvalidConfig), errors.Is(err, services.ErrUnknownAlgorithm):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func floatOrDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func solutionResponse(sol *domain.Solution) dto.SolutionResponse {
	routes := make([]dto.RouteResponse, 0, len(sol.Routes))
	for _, route := range sol.Routes {
		stops := make([]dto.StopResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			stops = append(stops, dto.StopResponse{Point: s.PointID, Sequence: s.Sequence})
		}
		routes = append(routes, dto.RouteResponse{
			RouteNumber: route.Number,
			RouteName:   route.Name,
			Stops:       stops,
		})
	}

	return dto.SolutionResponse{
		SolutionID:          sol.ID,
		Origin:              sol.Origin,
		TotalDistanceMeters: sol.TotalDistance,
		Routes:              routes,
	}
}
