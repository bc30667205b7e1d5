package clean

import (
	"log/slog"
	"time"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

// Cleaner removes corrupted samples from a decoded track. Both passes are
// pure over the input sequence; the only abort paths are the missing
// session summary precondition and the runaway-speed divergence guard.
type Cleaner struct {
	cfg Config
	log *slog.Logger
}

// New returns a Cleaner with the given configuration. A nil logger falls
// back to slog.Default.
func New(cfg Config, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{cfg: cfg, log: logger}
}

// ExtractBounds runs the position outlier filter and then the speed outlier
// filter over the message sequence. Position filtering must run first: the
// speed filter seeds its anchor from the earliest surviving sample and
// assumes its coordinates are already spatially sane. Messages other than
// track points pass through both stages untouched.
func (c *Cleaner) ExtractBounds(msgs []track.Message) (Result, error) {
	startTime := time.Now()

	stats := Stats{OriginalMessages: len(msgs)}
	for _, m := range msgs {
		if m.Kind == track.KindTrackPoint {
			stats.TrackPoints++
		}
	}

	positioned, bucket, err := c.filterPositionOutliers(msgs)
	if err != nil {
		return Result{}, err
	}
	stats.BucketSemicircles = bucket
	stats.PositionOutliers = len(msgs) - len(positioned)
	c.log.Info("position filter done",
		"removed", stats.PositionOutliers,
		"bucket_semicircles", bucket)

	final, profile, err := c.filterSpeedOutliers(positioned)
	if err != nil {
		return Result{}, err
	}
	stats.SpeedOutliers = len(positioned) - len(final)
	c.log.Info("speed filter done", "removed", stats.SpeedOutliers)

	stats.FinalMessages = len(final)
	stats.PointsRemoved = stats.PositionOutliers + stats.SpeedOutliers
	if stats.TrackPoints > 0 {
		stats.PointsPercent = float64(stats.PointsRemoved) / float64(stats.TrackPoints) * 100
	}
	stats.MaxSpeed = profile.max
	stats.P95Speed = percentile(profile.accepted, 95)
	stats.ProcessingTime = time.Since(startTime)

	return Result{Messages: final, Stats: stats}, nil
}
