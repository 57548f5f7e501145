package wire

// Operation is the action a configuration request asks of the device.
type Operation uint8

const (
	// OpSet writes a full record for a wire tag. Signal options are set
	// with an empty payload.
	OpSet Operation = 1

	// OpGet reads the current record of a wire tag for display.
	OpGet Operation = 2

	// OpFetch reads the current record of a wire tag so one member can be
	// replaced before a Set.
	OpFetch Operation = 3
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpSet:
		return "Set"
	case OpGet:
		return "Get"
	case OpFetch:
		return "Fetch"
	default:
		return "Unknown"
	}
}

// IsValid returns true if o is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpSet && o <= OpFetch
}

// Reads returns true if the device answers with a record payload.
func (o Operation) Reads() bool {
	return o == OpGet || o == OpFetch
}
