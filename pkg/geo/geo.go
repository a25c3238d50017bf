// Package geo holds the coordinate arithmetic used by the coordinate catalog.
package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// EarthRadiusKm is the mean Earth radius used for every distance in the system.
const EarthRadiusKm = 6371

var ErrMalformedCoordinate = errors.New("malformed coordinate")

// Point is a position in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm returns the great-circle distance between from and to using the
// spherical law of cosines.
func DistanceKm(from, to Point) float64 {
	lat1 := radians(from.Latitude)
	lon1 := radians(from.Longitude)
	lat2 := radians(to.Latitude)
	lon2 := radians(to.Longitude)

	cosAngle := math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1) + math.Sin(lat1)*math.Sin(lat2)
	// rounding can push identical points slightly past 1, where acos is NaN
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}

	return EarthRadiusKm * math.Acos(cosAngle)
}

// Bounds is a latitude/longitude box in decimal degrees.
// When LonBounded is false the box spans every longitude.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	LonBounded     bool
}

// BoundingBox returns a box guaranteed to contain every point within radiusKm of
// center. It is a pre-filter only; callers still compute DistanceKm.
func BoundingBox(center Point, radiusKm float64) Bounds {
	angular := radiusKm / EarthRadiusKm
	latDelta := degrees(angular)

	b := Bounds{
		MinLat: center.Latitude - latDelta,
		MaxLat: center.Latitude + latDelta,
	}
	if b.MinLat <= -90 || b.MaxLat >= 90 || angular >= math.Pi/2 {
		// the circle touches a pole, every meridian crosses it
		b.MinLat = math.Max(b.MinLat, -90)
		b.MaxLat = math.Min(b.MaxLat, 90)
		return b
	}

	lonDelta := degrees(math.Asin(math.Sin(angular) / math.Cos(radians(center.Latitude))))
	b.MinLon = center.Longitude - lonDelta
	b.MaxLon = center.Longitude + lonDelta
	if b.MinLon < -180 || b.MaxLon > 180 {
		// wraps the antimeridian
		return b
	}
	b.LonBounded = true
	return b
}

// "N9 38.060 E39 15.780", "S7 18.845 E72 24.660"
var degreesMinutesPattern = regexp.MustCompile(`([NS])(\d+)\s+([\d.]+)\s+([EW])(\d+)\s+([\d.]+)`)

// ParseDegreesMinutes converts a hemisphere/degrees/decimal-minutes string into a Point.
func ParseDegreesMinutes(s string) (Point, error) {
	m := degreesMinutesPattern.FindStringSubmatch(s)
	if m == nil {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, s)
	}

	lat, err := toDecimal(m[2], m[3], m[1] == "S")
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinate, s, err)
	}
	lon, err := toDecimal(m[5], m[6], m[4] == "W")
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinate, s, err)
	}

	p := Point{Latitude: lat, Longitude: lon}
	if !p.Valid() {
		return Point{}, fmt.Errorf("%w: %q out of range", ErrMalformedCoordinate, s)
	}
	return p, nil
}

func toDecimal(deg, min string, negative bool) (float64, error) {
	d, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return 0, err
	}
	v := d + m/60
	if negative {
		v = -v
	}
	return v, nil
}

// Valid reports whether the point lies within [-90,90] x [-180,180].
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}
