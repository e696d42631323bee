package solver

import (
	"fmt"

	"dvrp-solver-service/internal/domain"
)

// DecomposeRoutes splits a tour into numbered routes at origin boundaries.
//
// The trailing return-to-origin is dropped first (tour construction always
// appends it). Every remaining origin occurrence starts a new route number
// and resets the stop sequence to 1; origin occurrences themselves never
// become stops. Only non-empty routes are returned.
func DecomposeRoutes(path []string, origin string) []domain.Route {
	if len(path) > 0 && path[len(path)-1] == origin {
		path = path[:len(path)-1]
	}

	routeNo := 0
	var routes []domain.Route

	for _, id := range path {
		if id == origin {
			routeNo++
			continue
		}
		if routeNo == 0 {
			// Path did not open at the origin; stops still belong to route 1.
			routeNo = 1
		}
		if len(routes) == 0 || routes[len(routes)-1].Number != routeNo {
			routes = append(routes, domain.Route{
				Number: routeNo,
				Name:   fmt.Sprintf("Tractor_%d", routeNo),
			})
		}
		r := &routes[len(routes)-1]
		r.Stops = append(r.Stops, domain.Stop{PointID: id, Sequence: len(r.Stops) + 1})
	}

	return routes
}
