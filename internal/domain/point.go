package domain

// Represents a single location in the delivery network.
// A Point carries the average demand observed at that location, in pallets
// and pounds. Exactly one point per solve is the designated origin; the
// origin is a waypoint whose demand never counts against vehicle capacity.
type Point struct {
	ID      string
	Pallets float64
	Weight  float64
}
