package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dvrp-solver-service/internal/api/dto"
	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/ports"
)

type stubPointRepo struct {
	points []domain.Point
}

func (s *stubPointRepo) ListPoints(ctx context.Context, ids []string) ([]domain.Point, error) {
	if len(ids) == 0 {
		return s.points, nil
	}
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Point
	for _, p := range s.points {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubLookup float64

func (s stubLookup) Distance(from, to string) (float64, error) {
	return float64(s), nil
}

type stubDistanceSource struct{}

func (stubDistanceSource) LoadDistances(ctx context.Context) (ports.DistanceLookup, error) {
	return stubLookup(1), nil
}

type stubSolutionRepo struct {
	saved map[string]*domain.Solution
}

func newStubSolutionRepo() *stubSolutionRepo {
	return &stubSolutionRepo{saved: map[string]*domain.Solution{}}
}

func (s *stubSolutionRepo) SolutionExists(ctx context.Context, id string) (bool, error) {
	_, ok := s.saved[id]
	return ok, nil
}

func (s *stubSolutionRepo) SaveSolution(ctx context.Context, sol *domain.Solution) error {
	s.saved[sol.ID] = sol
	return nil
}

func (s *stubSolutionRepo) GetSolution(ctx context.Context, id string) (*domain.Solution, error) {
	sol, ok := s.saved[id]
	if !ok {
		return nil, ports.ErrSolutionNotFound
	}
	return sol, nil
}

func newTestHandler() (*SolutionHandler, *stubSolutionRepo) {
	solutions := newStubSolutionRepo()
	h := &SolutionHandler{
		Points: &stubPointRepo{points: []domain.Point{
			{ID: "DC"},
			{ID: "P1", Pallets: 1, Weight: 100},
			{ID: "P2", Pallets: 1, Weight: 100},
			{ID: "P3", Pallets: 1, Weight: 100},
			{ID: "P4", Pallets: 1, Weight: 100},
		}},
		Distances:     stubDistanceSource{},
		Solutions:     solutions,
		Observer:      ports.NopObserver{},
		DefaultOrigin: "DC",
	}
	return h, solutions
}

const solveBody = `{
	"solution_id": "plan-1",
	"points": ["P1", "P2", "P3", "P4"],
	"max_pallets": 2,
	"max_weight": 1000,
	"ants": 2,
	"iterations": 3,
	"seed": 42
}`

func postSolve(t *testing.T, h *SolutionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/solutions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Solve(rec, req)
	return rec
}

func TestSolveReturnsDecomposedPlan(t *testing.T) {
	h, solutions := newTestHandler()

	rec := postSolve(t, h, solveBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.SolutionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.SolutionID != "plan-1" || res.Status != "solved" {
		t.Fatalf("header = %q/%q, want plan-1/solved", res.SolutionID, res.Status)
	}
	if len(res.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(res.Routes))
	}
	if res.Routes[0].RouteName != "Tractor_1" {
		t.Fatalf("route name = %q, want Tractor_1", res.Routes[0].RouteName)
	}
	if _, ok := solutions.saved["plan-1"]; !ok {
		t.Fatalf("solution was not persisted")
	}
}

func TestSolveRepeatReturnsAlreadyExists(t *testing.T) {
	h, _ := newTestHandler()

	if rec := postSolve(t, h, solveBody); rec.Code != http.StatusOK {
		t.Fatalf("first solve status = %d, want 200", rec.Code)
	}

	rec := postSolve(t, h, solveBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat status = %d, want 200", rec.Code)
	}

	var res dto.SolutionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "already_exists" {
		t.Fatalf("status = %q, want already_exists", res.Status)
	}
	if len(res.Routes) != 0 {
		t.Fatalf("repeat response carries routes: %+v", res.Routes)
	}
}

func TestSolveValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown field", `{"points": ["P1"], "max_pallets": 1, "max_weight": 1, "bogus": true}`, http.StatusBadRequest},
		{"empty points", `{"points": [], "max_pallets": 1, "max_weight": 1}`, http.StatusBadRequest},
		{"zero pallets", `{"points": ["P1"], "max_pallets": 0, "max_weight": 1}`, http.StatusBadRequest},
		{"ants out of range", `{"points": ["P1"], "max_pallets": 1, "max_weight": 100, "ants": 501}`, http.StatusBadRequest},
		{"unknown algorithm", `{"points": ["P1"], "max_pallets": 1, "max_weight": 100, "algorithm": "annealing"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler()
			rec := postSolve(t, h, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestSolveInfeasiblePointIsUnprocessable(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"points": ["P1", "P2"], "max_pallets": 0.5, "max_weight": 1000}`
	rec := postSolve(t, h, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestSolveGeneratesIdentifierWhenOmitted(t *testing.T) {
	h, _ := newTestHandler()

	body := `{"points": ["P1", "P2"], "max_pallets": 2, "max_weight": 1000, "ants": 1, "iterations": 1}`
	rec := postSolve(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.SolutionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.SolutionID == "" {
		t.Fatalf("solution id was not generated")
	}
}

func TestGetSolution(t *testing.T) {
	h, solutions := newTestHandler()
	solutions.saved["plan-9"] = &domain.Solution{
		ID:     "plan-9",
		Origin: "DC",
		Routes: []domain.Route{
			{Number: 1, Name: "Tractor_1", Stops: []domain.Stop{{PointID: "P1", Sequence: 1}}},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/solutions/plan-9", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.SolutionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Origin != "DC" || len(res.Routes) != 1 {
		t.Fatalf("response = %+v, want origin DC with one route", res)
	}
}

func TestGetSolutionNotFound(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/solutions/missing", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
