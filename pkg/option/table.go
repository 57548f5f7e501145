package option

import "fmt"

// Table is an immutable set of option descriptors keyed by name.
// It preserves declaration order.
type Table struct {
	byName map[string]Descriptor
	order  []string
}

// NewTable creates a table from the given descriptors.
// Returns an error on empty or duplicate names.
func NewTable(descs ...Descriptor) (*Table, error) {
	t := &Table{
		byName: make(map[string]Descriptor, len(descs)),
		order:  make([]string, 0, len(descs)),
	}
	for _, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("option with empty name")
		}
		if _, exists := t.byName[d.Name]; exists {
			return nil, fmt.Errorf("duplicate option %q", d.Name)
		}
		if d.WireTag == "" {
			return nil, fmt.Errorf("option %q has no wire tag", d.Name)
		}
		if d.Kind == KindInteger && d.Range.Kind != RangeInt {
			return nil, fmt.Errorf("option %q: integer option needs an int range", d.Name)
		}
		if d.Kind == KindNone && d.Range.Kind != RangeNone {
			return nil, fmt.Errorf("option %q: signal option cannot have a range", d.Name)
		}
		if d.Range.Kind != RangeNone && d.Range.Min > d.Range.Max {
			return nil, fmt.Errorf("option %q: min %d > max %d", d.Name, d.Range.Min, d.Range.Max)
		}
		t.byName[d.Name] = d
		t.order = append(t.order, d.Name)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
// Intended for static tables declared at package init.
func MustTable(descs ...Descriptor) *Table {
	t, err := NewTable(descs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the descriptor for name.
func (t *Table) Resolve(name string) (Descriptor, error) {
	d, ok := t.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return d, nil
}

// Has reports whether the table declares name.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns option names in declaration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// All returns all descriptors in declaration order.
func (t *Table) All() []Descriptor {
	out := make([]Descriptor, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Len returns the number of options.
func (t *Table) Len() int { return len(t.order) }

// Validate resolves name and validates v against it.
func (t *Table) Validate(name string, v Value) error {
	d, err := t.Resolve(name)
	if err != nil {
		return err
	}
	return Validate(d, v)
}
