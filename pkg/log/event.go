package log

import (
	"time"

	"github.com/google/uuid"
)

// MaxPayloadCapture is the number of payload bytes stored per event.
const MaxPayloadCapture = 256

// Event represents a codec log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RequestID correlates the events of one operation (UUID).
	RequestID string `cbor:"2,keyasint"`

	// Direction indicates whether bytes go to or come from the device.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Device is the device type name.
	Device string `cbor:"6,keyasint,omitempty"`

	// Module is the module name.
	Module string `cbor:"7,keyasint,omitempty"`

	// Option is the option name, if the operation addressed one.
	Option string `cbor:"8,keyasint,omitempty"`

	// WireTag is the layout the payload belongs to.
	WireTag string `cbor:"9,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Payload *PayloadEvent   `cbor:"10,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"11,keyasint,omitempty"`
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() string {
	return uuid.New().String()
}

// Direction indicates the direction of payload flow.
type Direction uint8

const (
	// DirectionIn indicates bytes read from the device (decode).
	DirectionIn Direction = 0
	// DirectionOut indicates bytes written to the device (encode).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerCodec is the option/layout encoding layer.
	LayerCodec Layer = 0
	// LayerTransport is the configurator's exchange with a transport.
	LayerTransport Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerCodec:
		return "CODEC"
	case LayerTransport:
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPayload indicates an encoded or decoded payload.
	CategoryPayload Category = 0
	// CategoryError indicates an error event.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPayload:
		return "PAYLOAD"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PayloadEvent captures the bytes and human values of one operation.
type PayloadEvent struct {
	// Size is the payload size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw payload (truncated to MaxPayloadCapture).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`

	// Values maps member option names to their human form.
	Values map[string]string `cbor:"4,keyasint,omitempty"`
}

// NewPayloadEvent captures data, truncating it to MaxPayloadCapture.
func NewPayloadEvent(data []byte, values map[string]string) *PayloadEvent {
	p := &PayloadEvent{Size: len(data), Values: values}
	if len(data) > MaxPayloadCapture {
		p.Data = append([]byte(nil), data[:MaxPayloadCapture]...)
		p.Truncated = true
	} else if len(data) > 0 {
		p.Data = append([]byte(nil), data...)
	}
	return p
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
