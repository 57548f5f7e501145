package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Endian selects the byte order of a field.
type Endian uint8

const (
	// LittleEndian writes the least significant byte first.
	LittleEndian Endian = iota

	// BigEndian writes the most significant byte first.
	BigEndian
)

// String returns the byte order name.
func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// ByteOrder returns the encoding/binary byte order for e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Field is one primitive field of a layout.
type Field struct {
	// Width is the field size in bytes.
	Width int

	// Signed selects two's complement interpretation of integer fields.
	Signed bool

	// Order is the byte order of integer fields.
	Order Endian

	// Raw marks a fixed-width byte string instead of an integer.
	Raw bool
}

// Code returns the format code of the field ("H", "h", "5s", ...).
func (f Field) Code() string {
	if f.Raw {
		return strconv.Itoa(f.Width) + "s"
	}
	var c byte
	switch f.Width {
	case 1:
		c = 'b'
	case 2:
		c = 'h'
	case 4:
		c = 'i'
	case 8:
		c = 'q'
	default:
		return "?"
	}
	if !f.Signed {
		c -= 'a' - 'A'
	}
	return string(c)
}

// min and max return the integer bounds representable by the field.
func (f Field) min() int64 {
	if !f.Signed {
		return 0
	}
	return -1 << (8*f.Width - 1)
}

func (f Field) max() int64 {
	if f.Signed {
		return 1<<(8*f.Width-1) - 1
	}
	if f.Width >= 8 {
		return 1<<63 - 1
	}
	return 1<<(8*f.Width) - 1
}

// ErrFormat is returned for malformed layout format strings.
var ErrFormat = errors.New("invalid layout format")

// ParseFormat parses a compact format string into fields.
//
// The optional first character selects byte order: '<' or '=' little
// endian, '>' or '!' big endian (default little). Field codes:
//
//	b B  int8  / uint8
//	h H  int16 / uint16
//	i I  int32 / uint32
//	q Q  int64 / uint64
//	Ns   N-byte string
//
// A decimal count before an integer code repeats it ("3h" == "hhh").
// Whitespace is ignored.
func ParseFormat(format string) ([]Field, error) {
	s := strings.Join(strings.Fields(format), "")
	order := LittleEndian
	if s != "" {
		switch s[0] {
		case '<', '=':
			s = s[1:]
		case '>', '!':
			order = BigEndian
			s = s[1:]
		}
	}

	var fields []Field
	for len(s) > 0 {
		n := 0
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		count := 1
		if n > 0 {
			c, err := strconv.Atoi(s[:n])
			if err != nil || c <= 0 {
				return nil, fmt.Errorf("%w: bad count in %q", ErrFormat, format)
			}
			count = c
		}
		if n == len(s) {
			return nil, fmt.Errorf("%w: trailing count in %q", ErrFormat, format)
		}

		code := s[n]
		s = s[n+1:]

		if code == 's' {
			fields = append(fields, Field{Width: count, Order: order, Raw: true})
			continue
		}

		f := Field{Order: order}
		switch code {
		case 'b', 'B':
			f.Width = 1
		case 'h', 'H':
			f.Width = 2
		case 'i', 'I':
			f.Width = 4
		case 'q', 'Q':
			f.Width = 8
		default:
			return nil, fmt.Errorf("%w: unknown code %q in %q", ErrFormat, code, format)
		}
		f.Signed = code >= 'a' && code <= 'z'
		for i := 0; i < count; i++ {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// FormatString renders fields back into a format string.
// The byte order of the first field is used for the prefix.
func FormatString(fields []Field) string {
	var sb strings.Builder
	if len(fields) > 0 && fields[0].Order == BigEndian {
		sb.WriteByte('>')
	} else {
		sb.WriteByte('<')
	}
	for _, f := range fields {
		sb.WriteString(f.Code())
	}
	return sb.String()
}
