package fitio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tormoder/fit"

	"github.com/timofeipermiakov/fit-precision-cleaner/internal/track"
)

// Document is one decoded FIT activity file, kept whole so that laps,
// events and every other message kind survive filtering untouched.
type Document struct {
	file     *fit.File
	activity *fit.ActivityFile
}

// Load reads and decodes a FIT activity file
func Load(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes a FIT activity from an io.Reader
func Decode(r io.Reader) (*Document, error) {
	file, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT: %w", err)
	}

	activity, err := file.Activity()
	if err != nil {
		return nil, fmt.Errorf("not an activity file: %w", err)
	}

	return &Document{file: file, activity: activity}, nil
}

// Messages translates the document into the tagged message sequence consumed
// by the filters: one TrackPoint per record, one SessionSummary per session,
// in document order. The kind is decided once here; a record with an invalid
// latitude or longitude sentinel becomes a positionless track point.
func (d *Document) Messages() []track.Message {
	msgs := make([]track.Message, 0, len(d.activity.Records)+len(d.activity.Sessions))

	for i, rec := range d.activity.Records {
		pt := &track.TrackPoint{Timestamp: rec.Timestamp.Unix()}
		if !rec.PositionLat.Invalid() && !rec.PositionLong.Invalid() {
			pt.Pos = &track.Position{
				Lat: rec.PositionLat.Semicircles(),
				Lon: rec.PositionLong.Semicircles(),
			}
		}
		msgs = append(msgs, track.Message{Kind: track.KindTrackPoint, Point: pt, Ref: i})
	}

	for j, ses := range d.activity.Sessions {
		sum := &track.SessionSummary{}
		if ses.TotalDistance != math.MaxUint32 {
			sum.TotalDistanceM = ses.GetTotalDistanceScaled()
			sum.HasDistance = true
		}
		msgs = append(msgs, track.Message{
			Kind:    track.KindSessionSummary,
			Session: sum,
			Ref:     len(d.activity.Records) + j,
		})
	}

	return msgs
}

// Apply rebuilds the document's record list from a filtered message
// sequence. Records whose ref survived are kept in original order; all
// other message kinds are left as decoded.
func (d *Document) Apply(kept []track.Message) {
	keep := make(map[int]struct{}, len(kept))
	for _, m := range kept {
		if m.Kind == track.KindTrackPoint {
			keep[m.Ref] = struct{}{}
		}
	}

	records := make([]*fit.RecordMsg, 0, len(keep))
	for i, rec := range d.activity.Records {
		if _, ok := keep[i]; ok {
			records = append(records, rec)
		}
	}
	d.activity.Records = records
}

// Write saves the document to a file
func (d *Document) Write(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return d.Encode(f)
}

// Encode serializes the document to an io.Writer
func (d *Document) Encode(w io.Writer) error {
	if err := fit.Encode(w, d.file, binary.LittleEndian); err != nil {
		return fmt.Errorf("failed to encode FIT: %w", err)
	}
	return nil
}

// OutputPath returns the sibling path for a cleaned file: the input path
// with a "-new" suffix inserted before the extension.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + "-new" + ext
}
