package option

import (
	"bytes"
	"encoding/hex"
	"strconv"
)

// ValueKind identifies which variant a Value holds.
type ValueKind uint8

const (
	// ValueAbsent is the zero value: no payload.
	ValueAbsent ValueKind = iota

	// ValueInteger holds a signed 64-bit integer.
	ValueInteger

	// ValueText holds a human readable string.
	ValueText

	// ValueBytes holds raw bytes.
	ValueBytes
)

// String returns the value kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueInteger:
		return "integer"
	case ValueText:
		return "text"
	case ValueBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is an option value. The zero Value is absent.
type Value struct {
	kind ValueKind
	i    int64
	s    string
	b    []byte
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: ValueInteger, i: v} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: ValueText, s: s} }

// Bytes returns a raw byte value. The slice is copied.
func Bytes(b []byte) Value {
	return Value{kind: ValueBytes, b: bytes.Clone(b)}
}

// Kind returns which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer and true if v is an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == ValueInteger
}

// Text returns the string and true if v is text.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == ValueText
}

// Bytes returns a copy of the raw bytes and true if v holds bytes.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != ValueBytes {
		return nil, false
	}
	return bytes.Clone(v.b), true
}

// IsEmpty reports whether v carries no payload: absent, empty text or
// empty bytes.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueAbsent:
		return true
	case ValueText:
		return v.s == ""
	case ValueBytes:
		return len(v.b) == 0
	default:
		return false
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueInteger:
		return v.i == o.i
	case ValueText:
		return v.s == o.s
	case ValueBytes:
		return bytes.Equal(v.b, o.b)
	default:
		return true
	}
}

// String returns the human readable form of the value.
func (v Value) String() string {
	switch v.kind {
	case ValueInteger:
		return strconv.FormatInt(v.i, 10)
	case ValueText:
		return v.s
	case ValueBytes:
		return hex.EncodeToString(v.b)
	default:
		return ""
	}
}

// Any returns the payload as a plain Go value (nil, int64, string or []byte).
// Useful for JSON/YAML output.
func (v Value) Any() any {
	switch v.kind {
	case ValueInteger:
		return v.i
	case ValueText:
		return v.s
	case ValueBytes:
		return bytes.Clone(v.b)
	default:
		return nil
	}
}
