package wire

// Status is the outcome reported by the device side of an exchange.
type Status uint8

const (
	// StatusSuccess indicates the request was applied or answered.
	StatusSuccess Status = 0

	// StatusUnknownModule indicates the device has no such module.
	StatusUnknownModule Status = 1

	// StatusUnknownOption indicates the module has no such wire tag.
	StatusUnknownOption Status = 2

	// StatusInvalidPayload indicates the record size or content was rejected.
	StatusInvalidPayload Status = 3

	// StatusWriteOnly indicates the record cannot be read back.
	StatusWriteOnly Status = 4

	// StatusBusy indicates the device is busy; try again later.
	StatusBusy Status = 5

	// StatusTimeout indicates the device did not answer in time.
	StatusTimeout Status = 6

	// StatusDisconnected indicates the device went away mid-exchange.
	StatusDisconnected Status = 7
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusUnknownModule:
		return "UNKNOWN_MODULE"
	case StatusUnknownOption:
		return "UNKNOWN_OPTION"
	case StatusInvalidPayload:
		return "INVALID_PAYLOAD"
	case StatusWriteOnly:
		return "WRITE_ONLY"
	case StatusBusy:
		return "BUSY"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// Retryable returns true if repeating the request may succeed.
func (s Status) Retryable() bool {
	return s == StatusBusy || s == StatusTimeout
}
