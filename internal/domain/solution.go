package domain

// Stop is one deliverable visit within a route, with its 1-based position
// in that route's driving order.
type Stop struct {
	PointID  string
	Sequence int
}

// Route is a maximal contiguous run of non-origin stops between two origin
// visits in the best tour. Route numbers are 1-based and stable.
type Route struct {
	Number int
	Name   string
	Stops  []Stop
}

// Solution is the persisted outcome of one solve request.
// The Path is the full best tour as point identifiers, starting and ending
// at the origin; Routes is its decomposition at origin boundaries.
// It is immutable planning data and contains no side effects.
type Solution struct {
	ID            string
	Origin        string
	Path          []string
	TotalDistance float64
	Routes        []Route
}
