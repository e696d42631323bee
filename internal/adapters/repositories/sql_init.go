package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS geo_points (
			id_p TEXT PRIMARY KEY,
			pall_avg DOUBLE PRECISION NOT NULL,
			lbs_avg DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geo_permutations (
			id_1 TEXT NOT NULL,
			id_2 TEXT NOT NULL,
			distance DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (id_1, id_2)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS dvrp_set (
			dvrp_id TEXT NOT NULL,
			cluster_id INTEGER NOT NULL,
			cluster_name TEXT NOT NULL,
			point TEXT NOT NULL,
			sequence INTEGER NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS dvrp_origin (
			dvrp_id TEXT PRIMARY KEY,
			dvrp_origin TEXT NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_dvrp_set_dvrp_id
		ON dvrp_set(dvrp_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with point and distance data from a JSON
// file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT INTO geo_points (id_p, pall_avg, lbs_avg)
	VALUES ($1, $2, $3)
	ON CONFLICT (id_p) DO UPDATE
	SET pall_avg = EXCLUDED.pall_avg,
		lbs_avg = EXCLUDED.lbs_avg;
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
	INSERT INTO geo_permutations (id_1, id_2, distance)
	VALUES ($1, $2, $3)
	ON CONFLICT (id_1, id_2) DO UPDATE
	SET distance = EXCLUDED.distance;
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
