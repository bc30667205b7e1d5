package track

// Kind tags a decoded message once at ingestion. Filters dispatch on the
// tag instead of re-inspecting the underlying FIT record at every stage.
type Kind int

const (
	// KindOther covers every message the filters do not recognize; such
	// messages pass through the pipeline by identity.
	KindOther Kind = iota
	KindTrackPoint
	KindSessionSummary
)

// Position is a GPS fix in semicircle units (±2^31 maps to ±180°). Both
// coordinates are always present together; a sample carrying only one of
// the two is ingested as having no fix at all.
type Position struct {
	Lat int32
	Lon int32
}

// TrackPoint is one timestamped GPS sample. Pos is nil when the device
// had no fix at the time of recording.
type TrackPoint struct {
	Timestamp int64 // unix seconds
	Pos       *Position
}

// SessionSummary holds aggregate statistics for one track. HasDistance is
// false when the recording device left the total-distance field unset.
type SessionSummary struct {
	TotalDistanceM float64
	HasDistance    bool
}

// Message is the tagged union flowing through the filter pipeline. Point is
// set for KindTrackPoint, Session for KindSessionSummary; KindOther carries
// neither. Ref is the decoder-assigned ordinal of the message in its source
// document, used to map survivors back when re-encoding.
type Message struct {
	Kind    Kind
	Point   *TrackPoint
	Session *SessionSummary
	Ref     int
}

// HasPosition reports whether the message is a track point with a fix.
func (m Message) HasPosition() bool {
	return m.Kind == KindTrackPoint && m.Point != nil && m.Point.Pos != nil
}
