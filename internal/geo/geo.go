package geo

import "math"

const (
	// EarthRadiusMeters is the mean sphere radius used for great-circle
	// distances.
	EarthRadiusMeters = 6371000.0

	// EarthCircumferenceMeters is the fixed circumference used to convert
	// a distance along the surface into an angular span.
	EarthCircumferenceMeters = 40075000.0
)

// SemicirclesToDegrees converts a fixed-point semicircle value to degrees.
func SemicirclesToDegrees(v int64) float64 {
	return float64(v) * (180.0 / math.Exp2(31))
}

// DegreesToSemicircles converts degrees to semicircle units, truncating
// toward zero. Callers accept the loss of sub-semicircle precision.
func DegreesToSemicircles(v float64) int64 {
	return int64(v * (math.Exp2(31) / 180.0))
}

// haversine is sin²(θ/2) for θ in radians.
func haversine(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

// DistanceMeters returns the great-circle distance between two points given
// in semicircles, on a sphere of the given radius. Returns 0 when the points
// coincide.
func DistanceMeters(lat1, lon1, lat2, lon2 int32, radiusM float64) float64 {
	startLat := SemicirclesToDegrees(int64(lat1)) * math.Pi / 180
	endLat := SemicirclesToDegrees(int64(lat2)) * math.Pi / 180
	startLon := SemicirclesToDegrees(int64(lon1)) * math.Pi / 180
	endLon := SemicirclesToDegrees(int64(lon2)) * math.Pi / 180

	dLat := endLat - startLat
	dLon := endLon - startLon

	a := haversine(dLat) + math.Cos(startLat)*math.Cos(endLat)*haversine(dLon)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radiusM * c
}
