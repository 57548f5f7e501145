package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects capture events. Zero fields match everything.
type Filter struct {
	RequestID string
	Device    string
	Module    string
	Direction *Direction
	Layer     *Layer
	Category  *Category

	// Since drops events older than this time.
	Since time.Time
}

func (f Filter) match(e Event) bool {
	switch {
	case f.RequestID != "" && e.RequestID != f.RequestID,
		f.Device != "" && e.Device != f.Device,
		f.Module != "" && e.Module != f.Module,
		f.Direction != nil && e.Direction != *f.Direction,
		f.Layer != nil && e.Layer != *f.Layer,
		f.Category != nil && e.Category != *f.Category,
		!f.Since.IsZero() && e.Timestamp.Before(f.Since):
		return false
	}
	return true
}

// Reader streams events back out of a capture file.
type Reader struct {
	file   *os.File
	dec    *cbor.Decoder
	filter Filter
}

// OpenCapture opens a capture file written by FileLogger and yields the
// events that match filter.
func OpenCapture(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	return &Reader{file: f, dec: captureDec.NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var e Event
		if err := r.dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, fmt.Errorf("decode event: %w", err)
		}
		if r.filter.match(e) {
			return e, nil
		}
	}
}

// Collect reads up to limit matching events. A limit of zero reads all.
func (r *Reader) Collect(limit int) ([]Event, error) {
	var events []Event
	for limit <= 0 || len(events) < limit {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
