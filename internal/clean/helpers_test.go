package clean

import (
	"io"
	"log/slog"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/geo"
	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

func testCleaner(cfg Config) *Cleaner {
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func pointAt(ref int, ts int64, latDeg, lonDeg float64) track.Message {
	return track.Message{
		Kind: track.KindTrackPoint,
		Point: &track.TrackPoint{
			Timestamp: ts,
			Pos: &track.Position{
				Lat: int32(geo.DegreesToSemicircles(latDeg)),
				Lon: int32(geo.DegreesToSemicircles(lonDeg)),
			},
		},
		Ref: ref,
	}
}

func barePoint(ref int, ts int64) track.Message {
	return track.Message{
		Kind:  track.KindTrackPoint,
		Point: &track.TrackPoint{Timestamp: ts},
		Ref:   ref,
	}
}

func summary(ref int, distanceM float64) track.Message {
	return track.Message{
		Kind:    track.KindSessionSummary,
		Session: &track.SessionSummary{TotalDistanceM: distanceM, HasDistance: true},
		Ref:     ref,
	}
}

func otherMsg(ref int) track.Message {
	return track.Message{Kind: track.KindOther, Ref: ref}
}

func refs(msgs []track.Message) []int {
	out := make([]int, len(msgs))
	for i, m := range msgs {
		out[i] = m.Ref
	}
	return out
}
