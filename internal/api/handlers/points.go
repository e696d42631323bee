package handlers

import (
	"log"
	"net/http"

	"dvrp-solver-service/internal/api/dto"
	"dvrp-solver-service/internal/ports"
)

// PointHandler exposes read-only point retrieval endpoints.
type PointHandler struct {
	Repo ports.PointRepository
}

func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	points, err := h.Repo.ListPoints(r.Context(), nil)
	if err != nil {
		log.Printf("list points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointsResponse{
		Points: make([]dto.PointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, dto.PointResponse{
			ID:      p.ID,
			Pallets: p.Pallets,
			Weight:  p.Weight,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
