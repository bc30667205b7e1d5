package clean

import (
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/geo"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

// filterPositionOutliers drops track points that fall in a minority spatial
// bucket. The bucket width is one track-length's worth of angular span,
// derived from the session's recorded total distance, so it self-calibrates
// to the size of the activity. Returns the surviving sequence and the bucket
// width in semicircles.
func (c *Cleaner) filterPositionOutliers(msgs []track.Message) ([]track.Message, int64, error) {
	totalDistanceM, ok := firstTotalDistance(msgs)
	if !ok {
		return nil, 0, ErrNoSessionSummary
	}

	spanDegrees := 360 * totalDistanceM / c.cfg.EarthCircumferenceM
	bucket := geo.DegreesToSemicircles(spanDegrees)
	if bucket <= 0 {
		return nil, 0, ErrZeroBucketWidth
	}

	var lats, lons []int32
	for _, m := range msgs {
		if m.HasPosition() {
			lats = append(lats, m.Point.Pos.Lat)
			lons = append(lons, m.Point.Pos.Lon)
		}
	}

	latMode := modalValue(lats, bucket)
	lonMode := modalValue(lons, bucket)

	out := make([]track.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.HasPosition() &&
			(isOutlier(m.Point.Pos.Lat, latMode, bucket) || isOutlier(m.Point.Pos.Lon, lonMode, bucket)) {
			c.log.Debug("position outlier",
				"timestamp", m.Point.Timestamp,
				"lat", m.Point.Pos.Lat,
				"lon", m.Point.Pos.Lon)
			continue
		}
		out = append(out, m)
	}
	return out, bucket, nil
}

// firstTotalDistance returns the total distance of the first session summary
// that carries one.
func firstTotalDistance(msgs []track.Message) (float64, bool) {
	for _, m := range msgs {
		if m.Kind == track.KindSessionSummary && m.Session != nil && m.Session.HasDistance {
			return m.Session.TotalDistanceM, true
		}
	}
	return 0, false
}

// modalValue buckets the values into bucket-wide segments and returns the
// left edge of the most populated segment. Ties resolve to the lowest
// segment index so the choice does not depend on map iteration order.
func modalValue(values []int32, bucket int64) int64 {
	if len(values) == 0 {
		return 0
	}

	counts := make(map[int64]int)
	for _, v := range values {
		counts[floorDiv(int64(v), bucket)]++
	}

	first := true
	var modeSegment int64
	best := 0
	for segment, n := range counts {
		if first || n > best || (n == best && segment < modeSegment) {
			first = false
			best = n
			modeSegment = segment
		}
	}
	return modeSegment * bucket
}

func isOutlier(v int32, modeValue, bucket int64) bool {
	d := int64(v) - modeValue
	if d < 0 {
		d = -d
	}
	return d > bucket
}

// floorDiv divides rounding toward negative infinity, so that western and
// southern hemisphere coordinates bucket consistently.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
