package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dvrp-solver-service/internal/domain"
	"dvrp-solver-service/internal/platform/obs"
)

// SQLite-backed implementation of the PointRepository port.
type SqlitePointRepository struct{ DB *sql.DB }

func NewSqlitePointRepository(db *sql.DB) *SqlitePointRepository {
	return &SqlitePointRepository{DB: db}
}

// ListPoints joins the requested identifiers against geo_points. With no
// identifiers, every known point is returned. Results are ordered by id so
// solver positions are stable across runs.
func (s *SqlitePointRepository) ListPoints(ctx context.Context, ids []string) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.sqlite.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite point repository: DB is nil")
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
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		query := `
		SELECT id_p, pall_avg, lbs_avg
		FROM geo_points
		WHERE id_p IN (` + placeholders + `)
		ORDER BY id_p;
		`
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
		rows, err = s.DB.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list points: query geo_points table: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

func scanPoints(rows *sql.Rows) ([]domain.Point, error) {
	points := make([]domain.Point, 0, 64)
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(&p.ID, &p.Pallets, &p.Weight); err != nil {
			return nil, fmt.Errorf("list points: scan row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: row iteration: %w", err)
	}

	return points, nil
}
