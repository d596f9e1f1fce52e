// Package output writes generated legal moves in the notations
// cmd/movegen exposes, adapted from the teacher's game-output writer
// package: the same MoveWriter/TextWriter/JSONWriter split the teacher
// uses for GameWriter/PGNWriter/JSONWriter, retargeted from a PGN game
// tree onto a flat list of movegen.LegalMove records.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/haldric/movescript/internal/interp"
	"github.com/haldric/movescript/internal/movegen"
)

// MoveWriter is the interface for writing a batch of generated moves to
// output. Different implementations handle different output formats
// (plain coordinate text, JSON). Moves carry their own Kind/IsWhite, so
// a writer does not need the caller to group them by piece first.
type MoveWriter interface {
	// WriteMoves writes every move in the batch.
	WriteMoves(moves []movegen.LegalMove) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources. For batch
	// writers (like JSON), this also writes any pending output.
	Close() error
}

// TextWriter writes moves as plain coordinate lines, one per move:
//
//	wazir (w) (4,4)->(5,4) TakeMove
//	rook (w) (4,4)->(6,4) TakeMove capture
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a writer that writes each move immediately.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteMoves writes one line per move.
func (tw *TextWriter) WriteMoves(moves []movegen.LegalMove) error {
	for _, m := range moves {
		side := "b"
		if m.IsWhite {
			side = "w"
		}
		line := fmt.Sprintf("%s (%s) (%d,%d)->(%d,%d) %s", m.Kind, side, m.OriginX, m.OriginY, m.DestX, m.DestY, m.Type)
		if m.Capture {
			line += " capture"
		}
		if m.HasCatchSquare {
			line += fmt.Sprintf(" catch(%d,%d)", m.CatchX, m.CatchY)
		}
		for _, tag := range m.Tags {
			line += " " + tagText(tag)
		}
		if _, err := fmt.Fprintln(tw.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: TextWriter writes immediately.
func (tw *TextWriter) Flush() error { return nil }

// Close is a no-op: TextWriter owns no resources.
func (tw *TextWriter) Close() error { return nil }

func tagText(tag interp.ActionTag) string {
	if tag.Kind == interp.TagTransition {
		return fmt.Sprintf("transition(%s)", tag.Name)
	}
	return fmt.Sprintf("set-state(%s,%d)", tag.Key, tag.Value)
}

// MoveRecord is the JSON-serializable shape of a single legal move.
type MoveRecord struct {
	Piece   string `json:"piece"`
	White   bool   `json:"white"`
	OriginX int    `json:"origin_x"`
	OriginY int    `json:"origin_y"`
	DestX   int    `json:"dest_x"`
	DestY   int    `json:"dest_y"`
	Type    string `json:"type"`
	Capture bool   `json:"capture"`

	CatchX *int `json:"catch_x,omitempty"`
	CatchY *int `json:"catch_y,omitempty"`

	Tags []TagRecord `json:"tags,omitempty"`
}

// TagRecord is the JSON-serializable shape of a deferred action tag.
type TagRecord struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Key   string `json:"key,omitempty"`
	Value int    `json:"value,omitempty"`
}

func toRecord(m movegen.LegalMove) MoveRecord {
	rec := MoveRecord{
		Piece: m.Kind, White: m.IsWhite,
		OriginX: m.OriginX, OriginY: m.OriginY,
		DestX: m.DestX, DestY: m.DestY,
		Type: m.Type.String(), Capture: m.Capture,
	}
	if m.HasCatchSquare {
		cx, cy := m.CatchX, m.CatchY
		rec.CatchX, rec.CatchY = &cx, &cy
	}
	for _, tag := range m.Tags {
		tr := TagRecord{Value: tag.Value}
		if tag.Kind == interp.TagTransition {
			tr.Kind, tr.Name = "transition", tag.Name
		} else {
			tr.Kind, tr.Key = "set-state", tag.Key
		}
		rec.Tags = append(rec.Tags, tr)
	}
	return rec
}

// JSONWriter writes moves in JSON format. It buffers records and writes
// them as a single array on Close or Flush, mirroring the teacher's
// batched JSONWriter for game trees.
type JSONWriter struct {
	w       io.Writer
	records []MoveRecord
	single  bool
}

// NewJSONWriter creates a JSON writer that batches records and emits
// them as an array on Close()/Flush().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that emits one JSON object
// per move immediately instead of batching.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteMoves buffers (or immediately emits) the records for one batch
// of generated moves.
func (jw *JSONWriter) WriteMoves(moves []movegen.LegalMove) error {
	enc := json.NewEncoder(jw.w)
	for _, m := range moves {
		rec := toRecord(m)
		if jw.single {
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}
		jw.records = append(jw.records, rec)
	}
	return nil
}

// Flush writes all buffered records as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.records) == 0 {
		return nil
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jw.records); err != nil {
		return err
	}
	jw.records = jw.records[:0]
	return nil
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
