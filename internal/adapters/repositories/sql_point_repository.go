package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/platform/obs"
)

// Postgres-backed implementation of the PointRepository port.
type SQLPointRepository struct{ DB *sql.DB }

func NewSQLPointRepository(db *sql.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

// ListPoints joins the requested identifiers against geo_points. With no
// identifiers, every known point is returned. Results are ordered by id so
// solver positions are stable across runs.
func (s *SQLPointRepository) ListPoints(ctx context.Context, ids []string) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.sql.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	var rows *sql.Rows
	if len(ids) == 0 {
		query := `
		SELECT id_p, pall_avg, lbs_avg
		FROM geo_points
		ORDER BY id_p;
		`
		rows, err = s.DB.QueryContext(ctx, query)
	} else {
		query := `
		SELECT id_p, pall_avg, lbs_avg
		FROM geo_points
		WHERE id_p = ANY($1::text[])
		ORDER BY id_p;
		`
		rows, err = s.DB.QueryContext(ctx, query, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("list points: query geo_points table: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}
