package clean

import (
	"errors"
	"fmt"
	"time"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/geo"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

// ErrNoSessionSummary is returned when the message sequence carries no
// session summary with a total distance, leaving the position filter
// without a bucket width to cluster by.
var ErrNoSessionSummary = errors.New("no session summary with a total distance")

// ErrZeroBucketWidth is returned when the recorded total distance is too
// small to derive a positive clustering bucket width.
var ErrZeroBucketWidth = errors.New("session total distance yields a zero bucket width")

// DivergenceError signals that speed never recovered against the last good
// anchor: the anchor itself, or a long data gap, is untrustworthy, so the
// run aborts instead of silently dropping an unbounded stretch of track.
type DivergenceError struct {
	AnchorTimestamp int64
	Rejections      int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("speed is not recovering: %d consecutive rejections against anchor at t=%d",
		e.Rejections, e.AnchorTimestamp)
}

// Config holds cleaning algorithm parameters
type Config struct {
	// Speed filter
	SpeedLimitMS             float64 // m/s - max plausible speed between accepted samples
	MaxConsecutiveRejections int     // abort after this many rejections in a row

	// Geodetic model
	EarthRadiusM        float64 // meters - sphere radius for distances
	EarthCircumferenceM float64 // meters - circumference for bucket sizing
}

// DefaultConfig returns production-tested configuration
func DefaultConfig() Config {
	return Config{
		SpeedLimitMS:             30, // still that's a lot
		MaxConsecutiveRejections: 10,
		EarthRadiusM:             geo.EarthRadiusMeters,
		EarthCircumferenceM:      geo.EarthCircumferenceMeters,
	}
}

// Stats represents cleaning results and metrics
type Stats struct {
	// Input
	OriginalMessages int `json:"original_messages"`
	TrackPoints      int `json:"track_points"`

	// Processing steps
	PositionOutliers  int   `json:"position_outliers"`
	SpeedOutliers     int   `json:"speed_outliers"`
	BucketSemicircles int64 `json:"bucket_semicircles"`

	// Results
	FinalMessages int     `json:"final_messages"`
	PointsRemoved int     `json:"points_removed"`
	PointsPercent float64 `json:"points_removed_percent"`

	// Speed profile of the accepted track
	MaxSpeed float64 `json:"max_accepted_speed_ms"`
	P95Speed float64 `json:"p95_speed_ms"`

	// Performance
	ProcessingTime time.Duration `json:"processing_time_ms"`
}

// Result contains the filtered message sequence and statistics
type Result struct {
	Messages []track.Message
	Stats    Stats
}
