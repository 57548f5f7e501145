package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func payloadEvent(reqID string, dir Direction) Event {
	return Event{
		Timestamp: time.Now(),
		RequestID: reqID,
		Direction: dir,
		Layer:     LayerCodec,
		Category:  CategoryPayload,
		Device:    "dongle",
		Module:    "qos",
		Option:    "min_channel_count",
		WireTag:   "param_ble",
		Payload:   NewPayloadEvent([]byte{0x00, 0x00, 0x05}, map[string]string{"min_channel_count": "5"}),
	}
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
	logger.Log(payloadEvent("r", DirectionOut))

	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
}

func TestNewPayloadEventTruncates(t *testing.T) {
	big := make([]byte, MaxPayloadCapture+10)
	p := NewPayloadEvent(big, nil)
	if p.Size != len(big) {
		t.Errorf("Size = %d, want %d", p.Size, len(big))
	}
	if !p.Truncated || len(p.Data) != MaxPayloadCapture {
		t.Errorf("expected truncation to %d bytes, got %d (truncated=%v)", MaxPayloadCapture, len(p.Data), p.Truncated)
	}

	p = NewPayloadEvent(nil, nil)
	if p.Data != nil || p.Truncated {
		t.Error("empty payload should carry no data")
	}
}

func TestCaptureRoundTrip(t *testing.T) {
	event := payloadEvent(NewRequestID(), DirectionOut)
	path := createTestLogFile(t, []Event{event})

	r, err := OpenCapture(path, Filter{})
	if err != nil {
		t.Fatalf("OpenCapture failed: %v", err)
	}
	defer r.Close()
	decoded, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
	if decoded.RequestID != event.RequestID || decoded.WireTag != "param_ble" {
		t.Errorf("identifiers not preserved: %+v", decoded)
	}
	if decoded.Payload == nil || !bytes.Equal(decoded.Payload.Data, event.Payload.Data) {
		t.Fatalf("payload not preserved: %+v", decoded.Payload)
	}
	if decoded.Payload.Values["min_channel_count"] != "5" {
		t.Errorf("values not preserved: %v", decoded.Payload.Values)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(payloadEvent("req-1", DirectionOut))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id: got %v", entry["request_id"])
	}
	if entry["direction"] != "OUT" {
		t.Errorf("direction: got %v, want OUT", entry["direction"])
	}
	if entry["payload"] != "000005" {
		t.Errorf("payload: got %v, want 000005", entry["payload"])
	}
	values, ok := entry["values"].(map[string]any)
	if !ok || values["min_channel_count"] != "5" {
		t.Errorf("values: got %v", entry["values"])
	}

	buf.Reset()
	adapter.Log(Event{
		RequestID: "req-2",
		Category:  CategoryError,
		Error:     &ErrorEventData{Layer: LayerCodec, Message: "value out of range", Context: "encode"},
	})
	entry = nil
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("error events should log at WARN, got %v", entry["level"])
	}
	if entry["error_msg"] != "value out of range" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingLogger) Log(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestMultiLogger(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := NewMultiLogger(a, nil, b)
	if m.Len() != 2 {
		t.Errorf("expected nil logger to be skipped, got %d loggers", m.Len())
	}

	m.Log(payloadEvent("x", DirectionIn))
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("expected one event per logger, got %d and %d", len(a.events), len(b.events))
	}
}

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	path := createTestLogFile(t, []Event{
		payloadEvent("req-1", DirectionOut),
		payloadEvent("req-2", DirectionIn),
		{Timestamp: time.Now(), RequestID: "req-3", Category: CategoryError, Device: "keyboard", Error: &ErrorEventData{Message: "boom"}},
	})

	r, err := OpenCapture(path, Filter{})
	if err != nil {
		t.Fatalf("OpenCapture failed: %v", err)
	}
	defer r.Close()

	events := readAll(t, r)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].RequestID != "req-1" || events[2].RequestID != "req-3" {
		t.Errorf("events out of order: %s, %s", events[0].RequestID, events[2].RequestID)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := createTestLogFile(t, []Event{payloadEvent("a", DirectionOut)})

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(payloadEvent("b", DirectionOut))
	logger.Close()

	r, err := OpenCapture(path, Filter{})
	if err != nil {
		t.Fatalf("OpenCapture failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != 2 {
		t.Errorf("expected 2 events after append, got %d", n)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.clog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	logger.Log(payloadEvent("late", DirectionOut))

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("events after Close must be dropped, file has %d bytes", info.Size())
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Now()
	events := []Event{
		{Timestamp: base, RequestID: "1", Direction: DirectionOut, Device: "dongle", Module: "qos"},
		{Timestamp: base.Add(time.Second), RequestID: "2", Direction: DirectionIn, Device: "dongle", Module: "ble_bond"},
		{Timestamp: base.Add(2 * time.Second), RequestID: "3", Direction: DirectionIn, Device: "keyboard", Module: "ble_bond", Category: CategoryError},
	}
	path := createTestLogFile(t, events)

	in := DirectionIn
	errCat := CategoryError
	since := base.Add(time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"1", "2", "3"}},
		{"direction", Filter{Direction: &in}, []string{"2", "3"}},
		{"device", Filter{Device: "dongle"}, []string{"1", "2"}},
		{"module", Filter{Module: "ble_bond"}, []string{"2", "3"}},
		{"category", Filter{Category: &errCat}, []string{"3"}},
		{"since", Filter{Since: since}, []string{"2", "3"}},
		{"request", Filter{RequestID: "2"}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := OpenCapture(path, tt.filter)
			if err != nil {
				t.Fatalf("OpenCapture failed: %v", err)
			}
			defer r.Close()

			got := readAll(t, r)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.RequestID != tt.want[i] {
					t.Errorf("event %d: got %s, want %s", i, e.RequestID, tt.want[i])
				}
			}
		})
	}
}
