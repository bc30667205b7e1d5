package clean

import (
	"math"
	"sort"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/geo"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

// speedScan is the accumulator threaded through the speed filter's single
// pass: the last accepted anchor, the current rejection run, the suspicious
// sample refs, and the speed profile of accepted transitions.
type speedScan struct {
	anchorTS   int64
	anchorPos  track.Position
	seeded     bool
	badRun     int
	suspicious map[int]struct{}
	profile    speedProfile
}

type speedProfile struct {
	accepted []float64
	max      float64
}

// filterSpeedOutliers walks positioned track points in timestamp order and
// drops every sample implying travel above the speed limit relative to the
// last accepted point. Speed is measured against the last trusted anchor,
// not the raw previous sample, so one bad fix cannot cascade into rejecting
// the good fixes that follow it.
func (c *Cleaner) filterSpeedOutliers(msgs []track.Message) ([]track.Message, speedProfile, error) {
	// Sort a working copy; input order is not trusted.
	points := make([]track.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.HasPosition() {
			points = append(points, m)
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Point.Timestamp < points[j].Point.Timestamp
	})

	scan := speedScan{suspicious: make(map[int]struct{})}
	for _, m := range points {
		var err error
		scan, err = c.stepSpeedScan(scan, m)
		if err != nil {
			return nil, speedProfile{}, err
		}
	}

	out := make([]track.Message, 0, len(msgs))
	for _, m := range msgs {
		if _, bad := scan.suspicious[m.Ref]; bad {
			continue
		}
		out = append(out, m)
	}
	return out, scan.profile, nil
}

// stepSpeedScan advances the accumulator by one sample.
func (c *Cleaner) stepSpeedScan(s speedScan, m track.Message) (speedScan, error) {
	pt := m.Point

	if !s.seeded {
		s.seeded = true
		s.anchorTS = pt.Timestamp
		s.anchorPos = *pt.Pos
		return s, nil
	}

	dt := pt.Timestamp - s.anchorTS
	if dt == 0 {
		// Speed is undefined, not wrong: skip without classifying and
		// without advancing the anchor.
		c.log.Debug("zero time delta, skipping sample", "timestamp", pt.Timestamp)
		return s, nil
	}

	distanceM := geo.DistanceMeters(
		s.anchorPos.Lat, s.anchorPos.Lon,
		pt.Pos.Lat, pt.Pos.Lon,
		c.cfg.EarthRadiusM)
	speed := distanceM / float64(dt)

	if speed > c.cfg.SpeedLimitMS {
		s.suspicious[m.Ref] = struct{}{}
		s.badRun++
		c.log.Debug("speed outlier",
			"timestamp", pt.Timestamp,
			"speed_ms", speed,
			"bad_run", s.badRun)
		if s.badRun > c.cfg.MaxConsecutiveRejections {
			return s, &DivergenceError{AnchorTimestamp: s.anchorTS, Rejections: s.badRun}
		}
		return s, nil
	}

	s.badRun = 0
	s.anchorTS = pt.Timestamp
	s.anchorPos = *pt.Pos
	s.profile.accepted = append(s.profile.accepted, speed)
	s.profile.max = math.Max(s.profile.max, speed)
	return s, nil
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
