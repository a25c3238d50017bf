package dto

import "strings"

// CoordinateListRequest GET /coordinates
type CoordinateListRequest struct {
	PaginationRequest
	Search string `form:"search"`
	All    string `form:"all"`
}

// AllMode reports whether the caller asked for the unpaginated list,
// either with a truthy all flag or per_page=all.
func (r *CoordinateListRequest) AllMode() bool {
	switch strings.ToLower(strings.TrimSpace(r.All)) {
	case "1", "true", "yes", "on":
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.PerPage), "all")
}

// LocationSearchRequest GET /coordinates/search/location
type LocationSearchRequest struct {
	Location string `form:"location"`
}

const (
	DefaultRadiusKm = 50
	MaxRadiusKm     = 1000
)

// NearbyRequest GET /coordinates/search/nearby
type NearbyRequest struct {
	Latitude  *float64 `form:"latitude"  binding:"required,min=-90,max=90"`
	Longitude *float64 `form:"longitude" binding:"required,min=-180,max=180"`
	Radius    *float64 `form:"radius"    binding:"omitempty,min=1,max=1000"`
}

// GetRadius returns the search radius in km, 50 when omitted.
func (r *NearbyRequest) GetRadius() float64 {
	if r.Radius == nil {
		return DefaultRadiusKm
	}
	return *r.Radius
}

// CoordinateResponse is a catalog entry.
type CoordinateResponse struct {
	ID           uint    `json:"id"`
	LocationName string  `json:"location_name"`
	Coordinate   string  `json:"coordinate"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// NearbyCoordinate is a catalog entry with its distance from the query point in km.
type NearbyCoordinate struct {
	CoordinateResponse
	Distance float64 `json:"distance"`
}

// SearchParams echoes the effective nearby query.
type SearchParams struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// NearbyResult is the nearby search outcome, closest first.
type NearbyResult struct {
	Coordinates []NearbyCoordinate
	Params      SearchParams
}

// CoordinateList is either one page or the full active set.
type CoordinateList struct {
	Items   []CoordinateResponse
	Total   int64
	Page    int
	PerPage int
	All     bool
}
