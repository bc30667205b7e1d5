package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPosition(t *testing.T) {
	withFix := Message{
		Kind:  KindTrackPoint,
		Point: &TrackPoint{Timestamp: 1, Pos: &Position{Lat: 1, Lon: 2}},
	}
	noFix := Message{
		Kind:  KindTrackPoint,
		Point: &TrackPoint{Timestamp: 1},
	}

	assert.True(t, withFix.HasPosition())
	assert.False(t, noFix.HasPosition())
	assert.False(t, Message{Kind: KindOther}.HasPosition())
	assert.False(t, Message{Kind: KindSessionSummary, Session: &SessionSummary{}}.HasPosition())
}
