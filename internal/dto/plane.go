package dto

// PlaneResponse is an aircraft in the catalog.
type PlaneResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	Capacity     string  `json:"capacity"`
	Speed        float64 `json:"speed"`
	FuelBurnRate float64 `json:"fuel_burn_rate"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
