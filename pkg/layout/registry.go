package layout

import (
	"fmt"
	"sort"

	"github.com/hidconf/hidconf-go/pkg/option"
)

// Registry maps wire tags to composite layouts. It is immutable after
// construction.
type Registry struct {
	layouts map[string]*Layout
}

// NewRegistry creates a registry holding the given layouts.
// Duplicate tags and members claimed by two layouts are rejected.
func NewRegistry(layouts ...*Layout) (*Registry, error) {
	r := &Registry{layouts: make(map[string]*Layout, len(layouts))}
	owner := make(map[string]string)
	for _, l := range layouts {
		if l == nil {
			return nil, fmt.Errorf("%w: nil layout", ErrInvalid)
		}
		if _, exists := r.layouts[l.tag]; exists {
			return nil, fmt.Errorf("%w: duplicate tag %q", ErrInvalid, l.tag)
		}
		for _, m := range l.members {
			if prev, ok := owner[m]; ok {
				return nil, fmt.Errorf("%w: member %q in both %q and %q", ErrInvalid, m, prev, l.tag)
			}
			owner[m] = l.tag
		}
		r.layouts[l.tag] = l
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(layouts ...*Layout) *Registry {
	r, err := NewRegistry(layouts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the layout registered under tag.
func (r *Registry) Lookup(tag string) (*Layout, bool) {
	if r == nil {
		return nil, false
	}
	l, ok := r.layouts[tag]
	return l, ok
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}
	tags := make([]string, 0, len(r.layouts))
	for t := range r.layouts {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.layouts)
}

// Pack packs values into the layout registered under tag.
func (r *Registry) Pack(tag string, opts *option.Table, values map[string]option.Value) ([]byte, error) {
	l, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, tag)
	}
	return l.Pack(opts, values)
}

// Unpack decodes raw using the layout registered under tag.
func (r *Registry) Unpack(tag string, raw []byte) (map[string]option.Value, error) {
	l, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, tag)
	}
	return l.Unpack(raw)
}

// For returns the layout option d is encoded with: the registered
// composite for its wire tag, or its implicit single-field layout.
func (r *Registry) For(d option.Descriptor) (*Layout, error) {
	if l, ok := r.Lookup(d.WireTag); ok {
		if l.Index(d.Name) < 0 {
			return nil, fmt.Errorf("%w: %q is not a member of %q", ErrInvalid, d.Name, d.WireTag)
		}
		return l, nil
	}
	return Single(d)
}
