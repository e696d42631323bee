package ports

import (
	"context"
	"errors"

	"dvrp-solver-service/internal/domain"
)

var ErrSolutionNotFound = errors.New("solution not found")

// Port: persistence boundary for computed route plans.
type SolutionRepository interface {
	// SolutionExists reports whether a plan was already persisted under id.
	SolutionExists(ctx context.Context, id string) (bool, error)

	// SaveSolution persists the decomposed plan as a single atomic write.
	SaveSolution(ctx context.Context, sol *domain.Solution) error

	// GetSolution loads a persisted plan (origin plus routes).
	// Fails with ErrSolutionNotFound when no plan exists under id.
	GetSolution(ctx context.Context, id string) (*domain.Solution, error)
}
