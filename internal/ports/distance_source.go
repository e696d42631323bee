package ports

import (
	"context"
	"errors"
)

// ErrUnknownPair reports a distance lookup for a pair with no recorded
// distance. It implies inconsistent input data and aborts the whole solve.
var ErrUnknownPair = errors.New("unknown distance pair")

// DistanceLookup is the O(1) pairwise lookup the solver reads during tour
// construction. Implementations must be safe for concurrent readers.
type DistanceLookup interface {
	// Return the distance in meters between two point identifiers.
	// Fails with ErrUnknownPair when no entry exists for the pair.
	Distance(from, to string) (float64, error)
}

// DistanceSource materializes the pre-computed pairwise distance table.
// Building the table from raw coordinates is a collaborator concern; the
// solver only ever consumes the finished lookup.
type DistanceSource interface {
	LoadDistances(ctx context.Context) (DistanceLookup, error)
}
