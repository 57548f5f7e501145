package codec

import (
	"errors"
	"fmt"

	"github.com/hidconf/hidconf-go/pkg/catalog"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/log"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// ErrNotMember is returned when a layout operation names an option that the
// layout does not carry.
var ErrNotMember = errors.New("option is not a member of the layout")

// Ref addresses an option, or a whole record when Option is empty and Tag
// is set.
type Ref struct {
	Device string
	Module string
	Option string
	Tag    string

	// RequestID correlates log events. A fresh one is generated if empty.
	RequestID string
}

func (r Ref) String() string {
	name := r.Option
	if name == "" {
		name = r.Tag
	}
	return fmt.Sprintf("%s/%s/%s", r.Device, r.Module, name)
}

// Record is one packed wire record.
type Record struct {
	// Tag is the wire tag the payload is addressed to.
	Tag string

	// Payload is the packed record, Layout.Size() bytes long.
	Payload []byte

	// Values holds every member value written into Payload.
	Values map[string]option.Value
}

// Codec encodes and decodes option values for the devices of a catalog.
// It is safe for concurrent use.
type Codec struct {
	catalog *catalog.Catalog
	logger  log.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the event logger.
func WithLogger(l log.Logger) Option {
	return func(c *Codec) { c.logger = log.OrNoop(l) }
}

// New creates a codec over cat, or over catalog.Default() if cat is nil.
func New(cat *catalog.Catalog, opts ...Option) *Codec {
	if cat == nil {
		cat = catalog.Default()
	}
	c := &Codec{catalog: cat, logger: log.NoopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog the codec resolves devices in.
func (c *Codec) Catalog() *catalog.Catalog { return c.catalog }

// Resolve returns the module, descriptor and layout of the option ref names.
func (c *Codec) Resolve(ref Ref) (*catalog.Module, option.Descriptor, *layout.Layout, error) {
	m, err := c.catalog.Module(ref.Device, ref.Module)
	if err != nil {
		return nil, option.Descriptor{}, nil, err
	}
	d, l, err := m.LayoutFor(ref.Option)
	if err != nil {
		return nil, option.Descriptor{}, nil, err
	}
	return m, d, l, nil
}

func (c *Codec) resolveTag(ref Ref) (*catalog.Module, *layout.Layout, error) {
	m, err := c.catalog.Module(ref.Device, ref.Module)
	if err != nil {
		return nil, nil, err
	}
	if l, ok := m.Layouts.Lookup(ref.Tag); ok {
		return m, l, nil
	}
	// A tag used by a single option has an implicit layout.
	for _, d := range m.Options.All() {
		if d.WireTag == ref.Tag {
			l, err := m.Layouts.For(d)
			if err != nil {
				return nil, nil, err
			}
			return m, l, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %q in module %s", layout.ErrUnknownLayout, ref.Tag, m.Name)
}

// Encode packs v for the option ref names.
//
// For an option sharing a composite record with siblings, current must hold
// the record as last read from the device; v replaces the option's member
// and the siblings keep their current values. current is ignored for
// single-field options and may be nil.
func (c *Codec) Encode(ref Ref, v option.Value, current []byte) (*Record, error) {
	ref = c.withID(ref)

	m, d, l, err := c.Resolve(ref)
	if err != nil {
		return nil, c.fail(ref, log.DirectionOut, err)
	}
	ref.Tag = d.WireTag

	// Signal layouts have no members, so Pack alone never sees v.
	if err := option.Validate(d, v); err != nil {
		return nil, c.fail(ref, log.DirectionOut, err)
	}

	values := map[string]option.Value{d.Name: v}
	if siblings := len(l.Members()) - 1; siblings > 0 {
		if current == nil {
			return nil, c.fail(ref, log.DirectionOut,
				fmt.Errorf("%w: %s shares %q with %d siblings and needs the current record",
					layout.ErrMissingMember, d.Name, l.Tag(), siblings))
		}
		values, err = l.Unpack(current)
		if err != nil {
			return nil, c.fail(ref, log.DirectionOut, err)
		}
		values[d.Name] = v
	}

	return c.pack(ref, m, l, values)
}

// EncodeRecord packs a full record for the wire tag ref.Tag from values,
// which must hold every member.
func (c *Codec) EncodeRecord(ref Ref, values map[string]option.Value) (*Record, error) {
	ref = c.withID(ref)

	m, l, err := c.resolveTag(ref)
	if err != nil {
		return nil, c.fail(ref, log.DirectionOut, err)
	}
	for name := range values {
		if l.Index(name) < 0 {
			return nil, c.fail(ref, log.DirectionOut, fmt.Errorf("%w: %q in %q", ErrNotMember, name, l.Tag()))
		}
	}
	return c.pack(ref, m, l, values)
}

func (c *Codec) pack(ref Ref, m *catalog.Module, l *layout.Layout, values map[string]option.Value) (*Record, error) {
	payload, err := l.Pack(m.Options, values)
	if err != nil {
		return nil, c.fail(ref, log.DirectionOut, err)
	}
	rec := &Record{Tag: l.Tag(), Payload: payload, Values: values}
	c.emit(ref, log.DirectionOut, payload, values)
	return rec, nil
}

// Decode unpacks raw and returns the value of the option ref names.
func (c *Codec) Decode(ref Ref, raw []byte) (option.Value, error) {
	ref = c.withID(ref)

	_, d, l, err := c.Resolve(ref)
	if err != nil {
		return option.Value{}, c.fail(ref, log.DirectionIn, err)
	}
	ref.Tag = d.WireTag

	values, err := l.Unpack(raw)
	if err != nil {
		return option.Value{}, c.fail(ref, log.DirectionIn, err)
	}
	c.emit(ref, log.DirectionIn, raw, values)
	return values[d.Name], nil
}

// DecodeRecord unpacks raw as the record of wire tag ref.Tag and returns
// every member value.
func (c *Codec) DecodeRecord(ref Ref, raw []byte) (map[string]option.Value, error) {
	ref = c.withID(ref)

	_, l, err := c.resolveTag(ref)
	if err != nil {
		return nil, c.fail(ref, log.DirectionIn, err)
	}
	values, err := l.Unpack(raw)
	if err != nil {
		return nil, c.fail(ref, log.DirectionIn, err)
	}
	c.emit(ref, log.DirectionIn, raw, values)
	return values, nil
}

func (c *Codec) withID(ref Ref) Ref {
	if ref.RequestID == "" {
		ref.RequestID = log.NewRequestID()
	}
	return ref
}
