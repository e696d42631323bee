package ports

import (
	"context"

	"dvrp-solver-service/internal/domain"
)

// Port: a boundary for retrieving point attributes from a data source.
type PointRepository interface {
	// ListPoints joins the requested identifiers against the attribute table
	// and returns the matching points in a stable order. Identifiers with no
	// attribute row are silently absent from the result. A nil or empty ids
	// slice returns every known point.
	ListPoints(ctx context.Context, ids []string) ([]domain.Point, error)
}
