package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/ports"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return db
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

const seedJSON = `{
	"points": [
		{"id": "DC", "pallets": 0, "weight": 0},
		{"id": "P1", "pallets": 2, "weight": 300},
		{"id": "P2", "pallets": 1, "weight": 150}
	],
	"distances": [
		{"from": "DC", "to": "P1", "distance_meters": 1000},
		{"from": "P1", "to": "DC", "distance_meters": 1000},
		{"from": "DC", "to": "P2", "distance_meters": 2000},
		{"from": "P2", "to": "DC", "distance_meters": 2000},
		{"from": "P1", "to": "P2", "distance_meters": 500},
		{"from": "P2", "to": "P1", "distance_meters": 500}
	]
}`

func TestSeedAndListPoints(t *testing.T) {
	db := openTestDB(t)

	if err := SeedFromJSON(db, writeSeedFile(t, seedJSON)); err != nil {
		t.Fatalf("SeedFromJSON() error = %v", err)
	}

	repo := NewSqlitePointRepository(db)

	all, err := repo.ListPoints(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListPoints(nil) error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("points = %d, want 3", len(all))
	}
	if all[0].ID != "DC" {
		t.Fatalf("first point = %q, want DC (ordered by id)", all[0].ID)
	}

	some, err := repo.ListPoints(context.Background(), []string{"P2", "P1"})
	if err != nil {
		t.Fatalf("ListPoints(ids) error = %v", err)
	}
	if len(some) != 2 {
		t.Fatalf("points = %d, want 2", len(some))
	}
	if some[0].ID != "P1" || some[0].Pallets != 2 || some[0].Weight != 300 {
		t.Fatalf("P1 = %+v, want pallets=2 weight=300", some[0])
	}
}

func TestSeedFromJSONRejectsBadData(t *testing.T) {
	db := openTestDB(t)

	path := writeSeedFile(t, `{"points": [{"id": "", "pallets": 1, "weight": 1}]}`)
	if err := SeedFromJSON(db, path); err == nil {
		t.Fatalf("SeedFromJSON() = nil, want error for empty point id")
	}
}

func TestSolutionRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteSolutionRepository(db)
	ctx := context.Background()

	exists, err := repo.SolutionExists(ctx, "plan-1")
	if err != nil {
		t.Fatalf("SolutionExists() error = %v", err)
	}
	if exists {
		t.Fatalf("SolutionExists() = true before save")
	}

	sol := &domain.Solution{
		ID:     "plan-1",
		Origin: "DC",
		Routes: []domain.Route{
			{
				Number: 1,
				Name:   "Tractor_1",
				Stops: []domain.Stop{
					{PointID: "P1", Sequence: 1},
					{PointID: "P2", Sequence: 2},
				},
			},
			{
				Number: 2,
				Name:   "Tractor_2",
				Stops: []domain.Stop{
					{PointID: "P3", Sequence: 1},
				},
			},
		},
	}

	if err := repo.SaveSolution(ctx, sol); err != nil {
		t.Fatalf("SaveSolution() error = %v", err)
	}

	exists, err = repo.SolutionExists(ctx, "plan-1")
	if err != nil {
		t.Fatalf("SolutionExists() error = %v", err)
	}
	if !exists {
		t.Fatalf("SolutionExists() = false after save")
	}

	got, err := repo.GetSolution(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetSolution() error = %v", err)
	}
	if got.Origin != "DC" {
		t.Fatalf("origin = %q, want DC", got.Origin)
	}
	if len(got.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(got.Routes))
	}
	if got.Routes[0].Name != "Tractor_1" || len(got.Routes[0].Stops) != 2 {
		t.Fatalf("route 1 = %+v, want Tractor_1 with 2 stops", got.Routes[0])
	}
	if got.Routes[1].Stops[0].PointID != "P3" {
		t.Fatalf("route 2 stop = %q, want P3", got.Routes[1].Stops[0].PointID)
	}
}

func TestGetSolutionNotFound(t *testing.T) {
	repo := NewSqliteSolutionRepository(openTestDB(t))

	_, err := repo.GetSolution(context.Background(), "missing")
	if !errors.Is(err, ports.ErrSolutionNotFound) {
		t.Fatalf("GetSolution() error = %v, want ErrSolutionNotFound", err)
	}
}
