package wire

import (
	"errors"
	"fmt"
)

// ErrInvalidMessage is returned for envelopes that fail validation.
var ErrInvalidMessage = errors.New("invalid message")

// ConfigRequest is the envelope handed to a transport for one exchange
// with a device.
//
// CBOR encoding:
//
//	{
//	  1: messageId,  // uint32, nonzero
//	  2: operation,  // uint8: 1=Set, 2=Get, 3=Fetch
//	  3: vid,        // uint16
//	  4: pid,        // uint16
//	  5: module,     // text
//	  6: option,     // text, the option that triggered the request
//	  7: tag,        // text, the wire tag addressed on the device
//	  8: payload     // bytes, Set only
//	}
type ConfigRequest struct {
	MessageID uint32    `cbor:"1,keyasint"`
	Op        Operation `cbor:"2,keyasint"`
	VID       uint16    `cbor:"3,keyasint"`
	PID       uint16    `cbor:"4,keyasint"`
	Module    string    `cbor:"5,keyasint"`
	Option    string    `cbor:"6,keyasint,omitempty"`
	Tag       string    `cbor:"7,keyasint"`
	Payload   []byte    `cbor:"8,keyasint,omitempty"`
}

// Validate checks the envelope before it is sent.
func (r *ConfigRequest) Validate() error {
	if r.MessageID == 0 {
		return fmt.Errorf("%w: messageId 0 is reserved", ErrInvalidMessage)
	}
	if !r.Op.IsValid() {
		return fmt.Errorf("%w: operation %d", ErrInvalidMessage, r.Op)
	}
	if r.Module == "" || r.Tag == "" {
		return fmt.Errorf("%w: module and tag are required", ErrInvalidMessage)
	}
	if r.Op.Reads() && len(r.Payload) > 0 {
		return fmt.Errorf("%w: %s carries no payload", ErrInvalidMessage, r.Op)
	}
	return nil
}

// ConfigResponse is the device's answer to a ConfigRequest.
//
// CBOR encoding:
//
//	{
//	  1: messageId,  // uint32, matches the request
//	  2: status,     // uint8: 0=success, or error code
//	  3: payload     // bytes, the record for Get/Fetch
//	}
type ConfigResponse struct {
	MessageID uint32 `cbor:"1,keyasint"`
	Status    Status `cbor:"2,keyasint"`
	Payload   []byte `cbor:"3,keyasint,omitempty"`
}

// IsSuccess returns true if the response indicates success.
func (r *ConfigResponse) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// Err returns nil on success, otherwise an error naming the status.
func (r *ConfigResponse) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return &StatusError{MessageID: r.MessageID, Status: r.Status}
}

// StatusError reports a non-success response.
type StatusError struct {
	MessageID uint32
	Status    Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("message %d: device returned %s", e.MessageID, e.Status)
}
