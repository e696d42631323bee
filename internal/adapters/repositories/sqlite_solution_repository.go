package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/platform/obs"
	"dvrp-solver-service/internal/ports"
)

// SQLite-backed implementation of the SolutionRepository port.
type SqliteSolutionRepository struct{ DB *sql.DB }

func NewSqliteSolutionRepository(db *sql.DB) *SqliteSolutionRepository {
	return &SqliteSolutionRepository{DB: db}
}

func (s *SqliteSolutionRepository) SolutionExists(ctx context.Context, id string) (_ bool, err error) {
	defer obs.Time(ctx, "solutions.sqlite.SolutionExists")(&err)

	if s.DB == nil {
		return false, errors.New("sqlite solution repository: DB is nil")
	}

	query := `
	SELECT EXISTS (
		SELECT 1
		FROM dvrp_origin
		WHERE dvrp_id = ?
	);
	`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("solution exists: query dvrp_origin table: %w", err)
	}

	return exists, nil
}

// SaveSolution persists every route stop plus the origin row in a single
// transaction.
func (s *SqliteSolutionRepository) SaveSolution(ctx context.Context, sol *domain.Solution) (err error) {
	defer obs.Time(ctx, "solutions.sqlite.SaveSolution")(&err)

	if s.DB == nil {
		return errors.New("sqlite solution repository: DB is nil")
	}
	if sol == nil {
		return errors.New("save solution: solution is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save solution: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO dvrp_set (dvrp_id, cluster_id, cluster_name, point, sequence)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save solution: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, route := range sol.Routes {
		for _, stop := range route.Stops {
			if _, err := stmt.ExecContext(ctx, sol.ID, route.Number, route.Name, stop.PointID, stop.Sequence); err != nil {
				return fmt.Errorf("save solution: insert stop %q: %w", stop.PointID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dvrp_origin (dvrp_id, dvrp_origin) VALUES (?, ?);`,
		sol.ID, sol.Origin,
	); err != nil {
		return fmt.Errorf("save solution: insert origin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save solution: commit tx: %w", err)
	}

	return nil
}

func (s *SqliteSolutionRepository) GetSolution(ctx context.Context, id string) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "solutions.sqlite.GetSolution")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite solution repository: DB is nil")
	}

	sol := &domain.Solution{ID: id}

	originQuery := `
	SELECT dvrp_origin
	FROM dvrp_origin
	WHERE dvrp_id = ?;
	`
	if err := s.DB.QueryRowContext(ctx, originQuery, id).Scan(&sol.Origin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrSolutionNotFound
		}
		return nil, fmt.Errorf("get solution: query dvrp_origin table: %w", err)
	}

	stopsQuery := `
	SELECT cluster_id, cluster_name, point, sequence
	FROM dvrp_set
	WHERE dvrp_id = ?
	ORDER BY cluster_id, sequence;
	`
	rows, err := s.DB.QueryContext(ctx, stopsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get solution: query dvrp_set table: %w", err)
	}
	defer rows.Close()

	sol.Routes, err = scanRoutes(rows)
	if err != nil {
		return nil, err
	}

	return sol, nil
}

func scanRoutes(rows *sql.Rows) ([]domain.Route, error) {
	var routes []domain.Route
	for rows.Next() {
		var (
			number   int
			name     string
			point    string
			sequence int
		)
		if err := rows.Scan(&number, &name, &point, &sequence); err != nil {
			return nil, fmt.Errorf("get solution: scan row: %w", err)
		}

		if len(routes) == 0 || routes[len(routes)-1].Number != number {
			routes = append(routes, domain.Route{Number: number, Name: name})
		}
		r := &routes[len(routes)-1]
		r.Stops = append(r.Stops, domain.Stop{PointID: point, Sequence: sequence})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get solution: row iteration: %w", err)
	}

	return routes, nil
}
