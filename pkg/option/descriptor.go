package option

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the declared value kind of an option.
type Kind uint8

const (
	// KindNone marks a signal option that carries no payload.
	KindNone Kind = iota

	// KindInteger marks a numeric option.
	KindInteger

	// KindString marks an option whose human form is text.
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInteger:
		return "int"
	case KindString:
		return "str"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return KindNone, nil
	case "int", "integer":
		return KindInteger, nil
	case "str", "string":
		return KindString, nil
	default:
		return KindNone, fmt.Errorf("unknown option kind %q", s)
	}
}

// RangeKind selects how Range bounds are applied to a value.
type RangeKind uint8

const (
	// RangeNone means the option has no range (signal options).
	RangeNone RangeKind = iota

	// RangeInt bounds an integer value.
	RangeInt

	// RangeTextNumeric bounds a string holding a single integer literal.
	RangeTextNumeric

	// RangeTextList bounds every element of a string holding a list of integers.
	RangeTextList
)

// String returns the range kind name.
func (k RangeKind) String() string {
	switch k {
	case RangeNone:
		return "none"
	case RangeInt:
		return "int"
	case RangeTextNumeric:
		return "numeric"
	case RangeTextList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseRangeKind parses a range kind name as returned by RangeKind.String.
func ParseRangeKind(s string) (RangeKind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return RangeNone, nil
	case "int":
		return RangeInt, nil
	case "numeric":
		return RangeTextNumeric, nil
	case "list":
		return RangeTextList, nil
	default:
		return RangeNone, fmt.Errorf("unknown range kind %q", s)
	}
}

// Range is an inclusive [Min, Max] bound.
type Range struct {
	Kind RangeKind
	Min  int64
	Max  int64

	// MinText and MaxText keep the declared textual bounds of string
	// options (e.g. "0x1FFFFFFFFF") for help output.
	MinText string
	MaxText string
}

// IntRange returns an inclusive integer range.
func IntRange(min, max int64) Range {
	return Range{Kind: RangeInt, Min: min, Max: max}
}

// NumericRange returns an inclusive range for a string holding one integer.
func NumericRange(min, max int64) Range {
	return Range{
		Kind:    RangeTextNumeric,
		Min:     min,
		Max:     max,
		MinText: strconv.FormatInt(min, 10),
		MaxText: fmt.Sprintf("0x%X", max),
	}
}

// ListRange returns an inclusive per-element range for a string holding a
// list of integers.
func ListRange(min, max int64) Range {
	return Range{
		Kind:    RangeTextList,
		Min:     min,
		Max:     max,
		MinText: strconv.FormatInt(min, 10),
		MaxText: fmt.Sprintf("%d,...,%d", min+1, max),
	}
}

// Contains reports whether n lies within the inclusive bounds.
func (r Range) Contains(n int64) bool {
	return n >= r.Min && n <= r.Max
}

// String returns the range in "[min, max]" form.
func (r Range) String() string {
	switch r.Kind {
	case RangeNone:
		return "-"
	case RangeInt:
		return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
	default:
		lo, hi := r.MinText, r.MaxText
		if lo == "" {
			lo = strconv.FormatInt(r.Min, 10)
		}
		if hi == "" {
			hi = strconv.FormatInt(r.Max, 10)
		}
		return fmt.Sprintf("[%s, %s]", lo, hi)
	}
}

// Descriptor describes one configurable option.
type Descriptor struct {
	// Name is the option identifier, unique within a module.
	Name string

	// Range holds the accepted bounds.
	Range Range

	// WireTag identifies the layout the option is encoded into.
	WireTag string

	// Description is human readable help text.
	Description string

	// Kind is the declared value kind.
	Kind Kind
}

// IsSignal reports whether the option is a trigger without payload.
func (d Descriptor) IsSignal() bool { return d.Kind == KindNone }

// Option errors.
var (
	ErrUnknownOption   = errors.New("unknown option")
	ErrRange           = errors.New("value out of range")
	ErrUnexpectedValue = errors.New("unexpected value for signal option")
	ErrValueKind       = errors.New("invalid value kind for option")
)

// Validate checks v against the descriptor's kind and range.
// It has no side effects.
func Validate(d Descriptor, v Value) error {
	switch d.Kind {
	case KindNone:
		if !v.IsEmpty() {
			return fmt.Errorf("%w: %s", ErrUnexpectedValue, d.Name)
		}
		return nil

	case KindInteger:
		n, err := integerOf(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		return checkBound(d, n)

	case KindString:
		return validateString(d, v)

	default:
		return fmt.Errorf("%w: %s has unknown kind %d", ErrValueKind, d.Name, d.Kind)
	}
}

func validateString(d Descriptor, v Value) error {
	switch d.Range.Kind {
	case RangeNone:
		if v.Kind() != ValueText {
			return fmt.Errorf("%w: %s expects text, got %s", ErrValueKind, d.Name, v.Kind())
		}
		return nil

	case RangeTextNumeric, RangeInt:
		var n int64
		switch v.Kind() {
		case ValueText:
			s, _ := v.Text()
			parsed, err := ParseInt(s)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrValueKind, d.Name, err)
			}
			n = parsed
		case ValueBytes:
			b, _ := v.Bytes()
			if len(b) > 8 {
				return fmt.Errorf("%w: %s: %d bytes", ErrRange, d.Name, len(b))
			}
			n = littleEndian(b)
		case ValueInteger:
			n, _ = v.Int()
		default:
			return fmt.Errorf("%w: %s expects a value", ErrValueKind, d.Name)
		}
		return checkBound(d, n)

	case RangeTextList:
		if v.Kind() != ValueText {
			return fmt.Errorf("%w: %s expects a list, got %s", ErrValueKind, d.Name, v.Kind())
		}
		s, _ := v.Text()
		items, err := ParseIntList(s)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrValueKind, d.Name, err)
		}
		for _, n := range items {
			if err := checkBound(d, n); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %s has unknown range kind %d", ErrValueKind, d.Name, d.Range.Kind)
	}
}

func checkBound(d Descriptor, n int64) error {
	if n < d.Range.Min {
		return fmt.Errorf("%w: %s: %d < %d", ErrRange, d.Name, n, d.Range.Min)
	}
	if n > d.Range.Max {
		return fmt.Errorf("%w: %s: %d > %d", ErrRange, d.Name, n, d.Range.Max)
	}
	return nil
}

func integerOf(v Value) (int64, error) {
	switch v.Kind() {
	case ValueInteger:
		n, _ := v.Int()
		return n, nil
	case ValueText:
		s, _ := v.Text()
		n, err := ParseInt(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrValueKind, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %s", ErrValueKind, v.Kind())
	}
}

func littleEndian(b []byte) int64 {
	var n uint64
	for i := len(b) - 1; i >= 0; i-- {
		n = n<<8 | uint64(b[i])
	}
	return int64(n)
}

// ParseInt parses a decimal or 0x-prefixed hexadecimal integer.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	body := s
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	var (
		n   int64
		err error
	)
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		var u uint64
		u, err = strconv.ParseUint(body[2:], 16, 63)
		n = int64(u)
	} else {
		n, err = strconv.ParseInt(body, 10, 64)
	}
	if err != nil || body == "" {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if neg {
		n = -n
	}
	return n, nil
}

var listItem = regexp.MustCompile(`\d+`)

// ParseIntList extracts every decimal integer from s, in order, keeping
// duplicates. Any separators are accepted ("1,5,11", "1 5 11", "[1, 5]").
// A string with non-separator garbage is rejected.
func ParseIntList(s string) ([]int64, error) {
	rest := listItem.ReplaceAllString(s, "")
	if strings.Trim(rest, ",; []\t") != "" {
		return nil, fmt.Errorf("invalid list %q", s)
	}
	matches := listItem.FindAllString(s, -1)
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid list element %q", m)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseValue converts command-line text into the Value variant expected by d.
// Integer options get an Integer value; signal options accept only "".
// Text options keep the text unchanged.
func ParseValue(d Descriptor, text string) (Value, error) {
	switch d.Kind {
	case KindNone:
		if strings.TrimSpace(text) != "" {
			return Value{}, fmt.Errorf("%w: %s", ErrUnexpectedValue, d.Name)
		}
		return Absent(), nil
	case KindInteger:
		n, err := ParseInt(text)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s: %v", ErrValueKind, d.Name, err)
		}
		return Int(n), nil
	default:
		return Text(text), nil
	}
}
