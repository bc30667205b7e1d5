package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func semis(deg float64) int32 {
	return int32(DegreesToSemicircles(deg))
}

func TestSemicircleRoundTrip(t *testing.T) {
	values := []int64{
		0,
		1,
		-1,
		548682092,          // ~46°N
		-2045222520,        // ~-171.4°
		math.MaxInt32,      // just under +180°
		-math.MaxInt32 - 1, // -180°
	}

	for _, v := range values {
		got := DegreesToSemicircles(SemicirclesToDegrees(v))
		assert.InDelta(t, float64(v), float64(got), 1, "round trip of %d", v)
	}
}

func TestSemicirclesToDegreesKnownValues(t *testing.T) {
	assert.Equal(t, 0.0, SemicirclesToDegrees(0))
	assert.InDelta(t, 90.0, SemicirclesToDegrees(1<<30), 1e-9)
	assert.InDelta(t, -180.0, SemicirclesToDegrees(-(1<<31)), 1e-9)
}

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, haversine(0))
	assert.InDelta(t, 1.0, haversine(math.Pi), 1e-12)
	assert.InDelta(t, 0.5, haversine(math.Pi/2), 1e-12)
}

func TestDistanceIdentity(t *testing.T) {
	lat, lon := semis(46.0), semis(7.0)
	assert.Equal(t, 0.0, DistanceMeters(lat, lon, lat, lon, EarthRadiusMeters))
}

func TestDistanceSymmetry(t *testing.T) {
	lat1, lon1 := semis(46.0), semis(7.0)
	lat2, lon2 := semis(-6.2), semis(106.8)

	ab := DistanceMeters(lat1, lon1, lat2, lon2, EarthRadiusMeters)
	ba := DistanceMeters(lat2, lon2, lat1, lon1, EarthRadiusMeters)
	assert.Equal(t, ab, ba)
}

func TestDistanceKnownValue(t *testing.T) {
	// 0.1 degree of latitude ≈ 11.1 km regardless of longitude
	d := DistanceMeters(semis(46.0), semis(7.0), semis(46.1), semis(7.0), EarthRadiusMeters)
	assert.InDelta(t, 11100, d, 500)
}
