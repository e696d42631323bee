package distance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dvrp-solver-service/internal/platform/obs"
	"dvrp-solver-service/internal/ports"
)

// SQLDistanceSource loads the full geo_permutations table into an in-memory
// matrix. The query takes no parameters, so the same source works against
// both the SQLite and the Postgres schema.
type SQLDistanceSource struct {
	DB *sql.DB
}

func NewSQLDistanceSource(db *sql.DB) *SQLDistanceSource {
	return &SQLDistanceSource{DB: db}
}

func (s *SQLDistanceSource) LoadDistances(ctx context.Context) (_ ports.DistanceLookup, err error) {
	defer obs.Time(ctx, "distance.sql.LoadDistances")(&err)

	if s.DB == nil {
		return nil, errors.New("sql distance source: DB is nil")
	}

	query := `
	SELECT id_1, id_2, distance
	FROM geo_permutations;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load distances: query geo_permutations table: %w", err)
	}
	defer rows.Close()

	pairs := make([]Pair, 0, 1024)
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.From, &p.To, &p.Meters); err != nil {
			return nil, fmt.Errorf("load distances: scan row: %w", err)
		}
		if p.Meters < 0 {
			return nil, fmt.Errorf("load distances: negative distance %v for %q -> %q", p.Meters, p.From, p.To)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load distances: row iteration: %w", err)
	}

	return NewMatrix(pairs), nil
}
