package dto

type PointResponse struct {
	ID      string  `json:"id"`
	Pallets float64 `json:"pallets"`
	Weight  float64 `json:"weight"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}
