package dto

// SolveRequest selects the points to route and parameterizes the search.
// Omitted knobs fall back to the solver defaults; pointer fields distinguish
// "absent" from a deliberate zero.
type SolveRequest struct {
	SolutionID      string   `json:"solution_id"`
	Points          []string `json:"points"`
	Origin          string   `json:"origin"`
	MaxPallets      float64  `json:"max_pallets"`
	MaxWeight       float64  `json:"max_weight"`
	Algorithm       string   `json:"algorithm"`
	Ants            int      `json:"ants"`
	Iterations      int      `json:"iterations"`
	Alpha           *float64 `json:"alpha"`
	Beta            *float64 `json:"beta"`
	EvaporationRate *float64 `json:"evaporation_rate"`
	Q               *float64 `json:"q"`
	Seed            int64    `json:"seed"`
}

type StopResponse struct {
	Point    string `json:"point"`
	Sequence int    `json:"sequence"`
}

type RouteResponse struct {
	RouteNumber int            `json:"route_number"`
	RouteName   string         `json:"route_name"`
	Stops       []StopResponse `json:"stops"`
}

type SolutionResponse struct {
	SolutionID          string          `json:"solution_id"`
	Status              string          `json:"status"`
	Origin              string          `json:"origin,omitempty"`
	TotalDistanceMeters float64         `json:"total_distance_meters,omitempty"`
	Routes              []RouteResponse `json:"routes,omitempty"`
}
