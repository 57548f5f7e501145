// Package convert implements field-specific transforms between the binary
// representation of a layout member and its human readable form.
//
// Converters are selected by Kind and dispatched through a fixed switch.
// A member without a converter (None) passes its primitive value through
// unchanged.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hidconf/hidconf-go/pkg/option"
)

// Kind selects a converter.
type Kind uint8

const (
	// None passes the primitive value through.
	None Kind = iota

	// BitmaskList maps a 16-bit channel bitmask to a list of channel indices.
	BitmaskList

	// ReversedHex renders a byte string as hex, last byte first. Decode only.
	ReversedHex
)

// String returns the converter name.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case BitmaskList:
		return "bitmask_list"
	case ReversedHex:
		return "reversed_hex"
	default:
		return "unknown"
	}
}

// ParseKind parses a converter name as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "bitmask_list":
		return BitmaskList, nil
	case "reversed_hex":
		return ReversedHex, nil
	default:
		return None, fmt.Errorf("unknown converter %q", s)
	}
}

// Invertible reports whether Decode(Encode(v)) reproduces v for the kind.
func (k Kind) Invertible() bool {
	return k == None || k == BitmaskList
}

// HasEncoder reports whether the kind converts human values to binary.
func (k Kind) HasEncoder() bool {
	return k != ReversedHex
}

// MaxChannel is the highest index representable in a 16-bit channel mask.
const MaxChannel = 15

// Converter errors.
var (
	ErrNoEncoder = errors.New("converter has no encoder")
	ErrChannel   = errors.New("channel index out of range")
	ErrInput     = errors.New("invalid converter input")
)

// EncodeBitmask sets one bit per channel index. Duplicates and ordering are
// ignored.
func EncodeBitmask(indices []int) (uint16, error) {
	var mask uint16
	for _, i := range indices {
		if i < 0 || i > MaxChannel {
			return 0, fmt.Errorf("%w: %d", ErrChannel, i)
		}
		mask |= 1 << uint(i)
	}
	return mask, nil
}

// DecodeBitmask renders the set bits of mask as an ascending ", " separated
// list, e.g. 0x0822 -> "1, 5, 11". An empty mask renders as "".
func DecodeBitmask(mask uint16) string {
	var parts []string
	for i := 0; i <= MaxChannel; i++ {
		if mask&(1<<uint(i)) != 0 {
			parts = append(parts, strconv.Itoa(i))
		}
	}
	return strings.Join(parts, ", ")
}

// ParseList extracts channel indices from text such as "1,5,11" or
// "1, 5, 11".
func ParseList(text string) ([]int, error) {
	items, err := option.ParseIntList(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	out := make([]int, len(items))
	for i, n := range items {
		if n > MaxChannel {
			return nil, fmt.Errorf("%w: %d", ErrChannel, n)
		}
		out[i] = int(n)
	}
	return out, nil
}

// DecodeReversedHex renders b as "0x" followed by two upper-case hex digits
// per byte, starting from the last byte. The wire order is least
// significant byte first; the text is most significant first.
func DecodeReversedHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(2 + 2*len(b))
	sb.WriteString("0x")
	for i := len(b) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", b[i])
	}
	return sb.String()
}

// Encode converts a human value into the primitive value written to the
// field. Raw bytes pass through every kind except BitmaskList.
func Encode(k Kind, v option.Value) (option.Value, error) {
	switch k {
	case None:
		return v, nil

	case BitmaskList:
		var indices []int
		switch v.Kind() {
		case option.ValueText:
			s, _ := v.Text()
			parsed, err := ParseList(s)
			if err != nil {
				return option.Value{}, err
			}
			indices = parsed
		case option.ValueAbsent:
		default:
			return option.Value{}, fmt.Errorf("%w: bitmask list expects text, got %s", ErrInput, v.Kind())
		}
		mask, err := EncodeBitmask(indices)
		if err != nil {
			return option.Value{}, err
		}
		return option.Int(int64(mask)), nil

	case ReversedHex:
		// Raw bytes are written as given; the human form has no inverse.
		if v.Kind() == option.ValueBytes {
			return v, nil
		}
		return option.Value{}, fmt.Errorf("%w: %s", ErrNoEncoder, k)

	default:
		return option.Value{}, fmt.Errorf("%w: unknown converter %d", ErrInput, k)
	}
}

// Decode converts a primitive field value into its human form.
func Decode(k Kind, v option.Value) (option.Value, error) {
	switch k {
	case None:
		return v, nil

	case BitmaskList:
		n, ok := v.Int()
		if !ok || n < 0 || n > 0xFFFF {
			return option.Value{}, fmt.Errorf("%w: bitmask list expects a 16-bit integer", ErrInput)
		}
		return option.Text(DecodeBitmask(uint16(n))), nil

	case ReversedHex:
		b, ok := v.Bytes()
		if !ok {
			return option.Value{}, fmt.Errorf("%w: reversed hex expects bytes, got %s", ErrInput, v.Kind())
		}
		return option.Text(DecodeReversedHex(b)), nil

	default:
		return option.Value{}, fmt.Errorf("%w: unknown converter %d", ErrInput, k)
	}
}
