package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS geo_points (
		id_p TEXT PRIMARY KEY,
		pall_avg REAL NOT NULL,
		lbs_avg REAL NOT NULL
	);
	`

	createPermutationsQuery := `
	CREATE TABLE IF NOT EXISTS geo_permutations (
		id_1 TEXT NOT NULL,
		id_2 TEXT NOT NULL,
		distance REAL NOT NULL,
		PRIMARY KEY (id_1, id_2)
	);
	`

	createSolutionSetQuery := `
	CREATE TABLE IF NOT EXISTS dvrp_set (
		dvrp_id TEXT NOT NULL,
		cluster_id INTEGER NOT NULL,
		cluster_name TEXT NOT NULL,
		point TEXT NOT NULL,
		sequence INTEGER NOT NULL
	);
	`

	createSolutionOriginQuery := `
	CREATE TABLE IF NOT EXISTS dvrp_origin (
		dvrp_id TEXT PRIMARY KEY,
		dvrp_origin TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_dvrp_set_dvrp_id
	ON dvrp_set(dvrp_id);
	`

	statements := []string{
		createPointsQuery,
		createPermutationsQuery,
		createSolutionSetQuery,
		createSolutionOriginQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the SQLite database with point and distance data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	data, err := loadSeedFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pointStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO geo_points (id_p, pall_avg, lbs_avg)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare point insert: %w", err)
	}
	defer pointStmt.Close()

	for _, p := range data.Points {
		if _, err := pointStmt.Exec(p.ID, p.Pallets, p.Weight); err != nil {
			return fmt.Errorf("seed: insert point %q: %w", p.ID, err)
		}
	}

	distStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO geo_permutations (id_1, id_2, distance)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare distance insert: %w", err)
	}
	defer distStmt.Close()

	for _, d := range data.Distances {
		if _, err := distStmt.Exec(d.From, d.To, d.Meters); err != nil {
			return fmt.Errorf("seed: insert distance %q -> %q: %w", d.From, d.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
