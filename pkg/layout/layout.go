package layout

import (
	"errors"
	"fmt"

	"github.com/hidconf/hidconf-go/pkg/convert"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// Layout errors.
var (
	ErrMissingMember = errors.New("missing layout member value")
	ErrLayoutSize    = errors.New("layout size mismatch")
	ErrUnknownLayout = errors.New("unknown layout")
	ErrInvalid       = errors.New("invalid layout")
)

// Layout is the fixed binary shape of one or more options. Members map to
// Fields by position. Layouts are immutable once created.
type Layout struct {
	tag        string
	format     string
	fields     []Field
	members    []string
	converters []convert.Kind
	size       int
}

// New creates a layout from a format string (see ParseFormat).
// conv is either empty or holds one converter per member.
func New(tag, format string, members []string, conv ...convert.Kind) (*Layout, error) {
	fields, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", tag, err)
	}
	return NewFromFields(tag, fields, members, conv...)
}

// NewFromFields creates a layout from explicit field specs.
func NewFromFields(tag string, fields []Field, members []string, conv ...convert.Kind) (*Layout, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrInvalid)
	}
	if len(members) != len(fields) {
		return nil, fmt.Errorf("%w: %q has %d fields but %d members", ErrInvalid, tag, len(fields), len(members))
	}
	if len(conv) != 0 && len(conv) != len(members) {
		return nil, fmt.Errorf("%w: %q has %d converters for %d members", ErrInvalid, tag, len(conv), len(members))
	}

	seen := make(map[string]bool, len(members))
	size := 0
	for i, f := range fields {
		if seen[members[i]] {
			return nil, fmt.Errorf("%w: %q lists member %q twice", ErrInvalid, tag, members[i])
		}
		seen[members[i]] = true
		if !f.Raw && f.Width != 1 && f.Width != 2 && f.Width != 4 && f.Width != 8 {
			return nil, fmt.Errorf("%w: %q field %d has width %d", ErrInvalid, tag, i, f.Width)
		}
		if f.Width <= 0 {
			return nil, fmt.Errorf("%w: %q field %d has width %d", ErrInvalid, tag, i, f.Width)
		}
		if i < len(conv) {
			if err := checkConverter(conv[i], f); err != nil {
				return nil, fmt.Errorf("%w: %q member %q: %v", ErrInvalid, tag, members[i], err)
			}
		}
		size += f.Width
	}

	l := &Layout{
		tag:     tag,
		format:  FormatString(fields),
		fields:  append([]Field(nil), fields...),
		members: append([]string(nil), members...),
		size:    size,
	}
	if hasConverter(conv) {
		l.converters = append([]convert.Kind(nil), conv...)
	}
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(tag, format string, members []string, conv ...convert.Kind) *Layout {
	l, err := New(tag, format, members, conv...)
	if err != nil {
		panic(err)
	}
	return l
}

func hasConverter(conv []convert.Kind) bool {
	for _, c := range conv {
		if c != convert.None {
			return true
		}
	}
	return false
}

func checkConverter(k convert.Kind, f Field) error {
	switch k {
	case convert.None:
		return nil
	case convert.BitmaskList:
		if f.Raw || f.Width != 2 || f.Signed {
			return fmt.Errorf("%s needs an unsigned 16-bit field", k)
		}
	case convert.ReversedHex:
		if !f.Raw {
			return fmt.Errorf("%s needs a byte string field", k)
		}
	default:
		return fmt.Errorf("unknown converter %d", k)
	}
	return nil
}

// Single returns the implicit layout of an option whose wire tag has no
// composite entry: a 32-bit little-endian integer for integer options
// (signed when the range admits negatives) and an empty payload for
// signal options.
func Single(d option.Descriptor) (*Layout, error) {
	switch d.Kind {
	case option.KindInteger:
		format := "<I"
		if d.Range.Min < 0 {
			format = "<i"
		}
		return New(d.WireTag, format, []string{d.Name})
	case option.KindNone:
		return NewFromFields(d.WireTag, nil, nil)
	default:
		return nil, fmt.Errorf("%w: option %q of kind %s needs a composite layout", ErrUnknownLayout, d.Name, d.Kind)
	}
}

// Tag returns the wire tag of the layout.
func (l *Layout) Tag() string { return l.tag }

// Format returns the canonical format string of the layout.
func (l *Layout) Format() string { return l.format }

// Size returns the total width in bytes.
func (l *Layout) Size() int { return l.size }

// Fields returns a copy of the field specs.
func (l *Layout) Fields() []Field { return append([]Field(nil), l.fields...) }

// Members returns the member option names in field order.
func (l *Layout) Members() []string { return append([]string(nil), l.members...) }

// Converter returns the converter applied to member i.
func (l *Layout) Converter(i int) convert.Kind {
	if i < 0 || i >= len(l.converters) {
		return convert.None
	}
	return l.converters[i]
}

// Converters returns one converter per member, or nil if none are set.
func (l *Layout) Converters() []convert.Kind {
	return append([]convert.Kind(nil), l.converters...)
}

// IsComposite reports whether the layout packs more than one member or
// applies a converter.
func (l *Layout) IsComposite() bool {
	return len(l.members) > 1 || l.converters != nil
}

// Index returns the position of member name, or -1.
func (l *Layout) Index(name string) int {
	for i, m := range l.members {
		if m == name {
			return i
		}
	}
	return -1
}

// Pack validates and encodes every member value into the layout.
// No bytes are returned unless every member is present and valid.
func (l *Layout) Pack(opts *option.Table, values map[string]option.Value) ([]byte, error) {
	buf := make([]byte, l.size)
	off := 0
	for i, name := range l.members {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s needs %q", ErrMissingMember, l.tag, name)
		}

		d, err := opts.Resolve(name)
		if err != nil {
			return nil, err
		}
		if err := option.Validate(d, v); err != nil {
			return nil, err
		}

		conv := l.Converter(i)
		pv, err := convert.Encode(conv, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		f := l.fields[i]
		if err := putField(buf[off:off+f.Width], f, pv); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		off += f.Width
	}
	return buf, nil
}

// Unpack slices raw per the layout and decodes every member.
func (l *Layout) Unpack(raw []byte) (map[string]option.Value, error) {
	if len(raw) != l.size {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrLayoutSize, l.tag, l.size, len(raw))
	}

	out := make(map[string]option.Value, len(l.members))
	off := 0
	for i, name := range l.members {
		f := l.fields[i]
		pv := getField(raw[off:off+f.Width], f)
		off += f.Width

		v, err := convert.Decode(l.Converter(i), pv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func putField(dst []byte, f Field, v option.Value) error {
	if f.Raw {
		b, ok := v.Bytes()
		if !ok {
			return fmt.Errorf("%w: byte field expects raw bytes, got %s", option.ErrValueKind, v.Kind())
		}
		if len(b) > f.Width {
			return fmt.Errorf("%w: %d bytes do not fit %d-byte field", option.ErrRange, len(b), f.Width)
		}
		copy(dst, b)
		return nil
	}

	var n int64
	switch v.Kind() {
	case option.ValueInteger:
		n, _ = v.Int()
	case option.ValueText:
		s, _ := v.Text()
		parsed, err := option.ParseInt(s)
		if err != nil {
			return fmt.Errorf("%w: %v", option.ErrValueKind, err)
		}
		n = parsed
	default:
		return fmt.Errorf("%w: integer field expects a number, got %s", option.ErrValueKind, v.Kind())
	}

	if n < f.min() || n > f.max() {
		return fmt.Errorf("%w: %d does not fit %s field", option.ErrRange, n, f.Code())
	}

	order := f.Order.ByteOrder()
	switch f.Width {
	case 1:
		dst[0] = byte(n)
	case 2:
		order.PutUint16(dst, uint16(n))
	case 4:
		order.PutUint32(dst, uint32(n))
	case 8:
		order.PutUint64(dst, uint64(n))
	}
	return nil
}

func getField(src []byte, f Field) option.Value {
	if f.Raw {
		return option.Bytes(src)
	}

	order := f.Order.ByteOrder()
	switch f.Width {
	case 1:
		if f.Signed {
			return option.Int(int64(int8(src[0])))
		}
		return option.Int(int64(src[0]))
	case 2:
		u := order.Uint16(src)
		if f.Signed {
			return option.Int(int64(int16(u)))
		}
		return option.Int(int64(u))
	case 4:
		u := order.Uint32(src)
		if f.Signed {
			return option.Int(int64(int32(u)))
		}
		return option.Int(int64(u))
	default:
		return option.Int(int64(order.Uint64(src)))
	}
}
