package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hidconf/hidconf-go/pkg/convert"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/option"
	"github.com/hidconf/hidconf-go/pkg/version"
)

// yamlCatalog is the YAML structure of a catalog file.
type yamlCatalog struct {
	Version string       `yaml:"version"`
	Modules []yamlModule `yaml:"modules"`
	Devices []yamlDevice `yaml:"devices"`
}

type yamlModule struct {
	Key     string       `yaml:"key"`
	Name    string       `yaml:"name"`
	Options []yamlOption `yaml:"options"`
	Layouts []yamlLayout `yaml:"layouts,omitempty"`
}

type yamlOption struct {
	Name  string     `yaml:"name"`
	Kind  string     `yaml:"kind"`
	Range *yamlRange `yaml:"range,omitempty,flow"`
	Tag   string     `yaml:"tag"`
	Help  string     `yaml:"help"`
}

type yamlRange struct {
	Kind    string `yaml:"kind"`
	Min     string `yaml:"min"`
	Max     string `yaml:"max"`
	MinText string `yaml:"min_text,omitempty"`
	MaxText string `yaml:"max_text,omitempty"`
}

type yamlLayout struct {
	Tag        string   `yaml:"tag"`
	Format     string   `yaml:"format"`
	Members    []string `yaml:"members,flow"`
	Converters []string `yaml:"converters,omitempty,flow"`
}

type yamlDevice struct {
	Type           string   `yaml:"type"`
	VID            HexID    `yaml:"vid"`
	PID            HexID    `yaml:"pid"`
	StreamLEDCount int      `yaml:"stream_led_cnt"`
	Modules        []string `yaml:"modules,flow"`
}

// HexID is a 16-bit USB identifier written as "0x1915" in catalog files.
// Plain decimal numbers are accepted too.
type HexID uint16

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HexID) UnmarshalYAML(value *yaml.Node) error {
	n, err := option.ParseInt(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	if n < 0 || n > 0xFFFF {
		return fmt.Errorf("line %d: identifier %s exceeds 16 bits", value.Line, value.Value)
	}
	*h = HexID(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h HexID) MarshalYAML() (any, error) {
	return fmt.Sprintf("0x%04X", uint16(h)), nil
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads a catalog in YAML format from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a catalog in YAML format.
func Parse(data []byte) (*Catalog, error) {
	var y yamlCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	if err := version.CheckCompatible(y.Version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	modules := make(map[string]*Module, len(y.Modules))
	for _, ym := range y.Modules {
		if _, exists := modules[ym.Key]; exists {
			return nil, fmt.Errorf("%w: module key %q defined twice", ErrInvalid, ym.Key)
		}
		m, err := ym.build()
		if err != nil {
			return nil, err
		}
		modules[ym.Key] = m
	}

	devices := make([]*Device, 0, len(y.Devices))
	for _, yd := range y.Devices {
		d := &Device{
			Type:           yd.Type,
			VID:            uint16(yd.VID),
			PID:            uint16(yd.PID),
			StreamLEDCount: yd.StreamLEDCount,
		}
		for _, key := range yd.Modules {
			m, ok := modules[key]
			if !ok {
				return nil, fmt.Errorf("%w: device %q references unknown module %q", ErrInvalid, yd.Type, key)
			}
			d.Modules = append(d.Modules, m)
		}
		devices = append(devices, d)
	}

	return New(devices...)
}

func (ym yamlModule) build() (*Module, error) {
	descs := make([]option.Descriptor, 0, len(ym.Options))
	for _, yo := range ym.Options {
		d, err := yo.descriptor()
		if err != nil {
			return nil, fmt.Errorf("%w: module %q: %v", ErrInvalid, ym.Key, err)
		}
		descs = append(descs, d)
	}
	opts, err := option.NewTable(descs...)
	if err != nil {
		return nil, fmt.Errorf("%w: module %q: %v", ErrInvalid, ym.Key, err)
	}

	layouts := make([]*layout.Layout, 0, len(ym.Layouts))
	for _, yl := range ym.Layouts {
		conv := make([]convert.Kind, 0, len(yl.Converters))
		for _, name := range yl.Converters {
			k, err := convert.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("%w: module %q layout %q: %v", ErrInvalid, ym.Key, yl.Tag, err)
			}
			conv = append(conv, k)
		}
		l, err := layout.New(yl.Tag, yl.Format, yl.Members, conv...)
		if err != nil {
			return nil, fmt.Errorf("%w: module %q: %v", ErrInvalid, ym.Key, err)
		}
		layouts = append(layouts, l)
	}
	reg, err := layout.NewRegistry(layouts...)
	if err != nil {
		return nil, fmt.Errorf("%w: module %q: %v", ErrInvalid, ym.Key, err)
	}

	return NewModule(ym.Key, ym.Name, opts, reg)
}

func (yo yamlOption) descriptor() (option.Descriptor, error) {
	kind, err := option.ParseKind(yo.Kind)
	if err != nil {
		return option.Descriptor{}, fmt.Errorf("option %q: %w", yo.Name, err)
	}
	d := option.Descriptor{
		Name:        yo.Name,
		Kind:        kind,
		WireTag:     yo.Tag,
		Description: yo.Help,
	}
	if yo.Range == nil {
		return d, nil
	}

	rk, err := option.ParseRangeKind(yo.Range.Kind)
	if err != nil {
		return option.Descriptor{}, fmt.Errorf("option %q: %w", yo.Name, err)
	}
	lo, err := option.ParseInt(yo.Range.Min)
	if err != nil {
		return option.Descriptor{}, fmt.Errorf("option %q: min: %w", yo.Name, err)
	}
	hi, err := option.ParseInt(yo.Range.Max)
	if err != nil {
		return option.Descriptor{}, fmt.Errorf("option %q: max: %w", yo.Name, err)
	}
	d.Range = option.Range{Kind: rk, Min: lo, Max: hi}
	if rk == option.RangeTextNumeric || rk == option.RangeTextList {
		d.Range.MinText = firstNonEmpty(yo.Range.MinText, yo.Range.Min)
		d.Range.MaxText = firstNonEmpty(yo.Range.MaxText, yo.Range.Max)
	}
	return d, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Modules returns the distinct module definitions of the catalog in the
// order they are first referenced.
func (c *Catalog) Modules() []*Module {
	seen := make(map[*Module]bool)
	var out []*Module
	for _, d := range c.devices {
		for _, m := range d.Modules {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// Marshal encodes the catalog in the YAML format read by Parse.
func Marshal(c *Catalog) ([]byte, error) {
	y := yamlCatalog{Version: version.Current}

	for _, m := range c.Modules() {
		ym := yamlModule{Key: m.Key, Name: m.Name}
		for _, d := range m.Options.All() {
			ym.Options = append(ym.Options, optionToYAML(d))
		}
		for _, tag := range m.Layouts.Tags() {
			l, _ := m.Layouts.Lookup(tag)
			yl := yamlLayout{Tag: tag, Format: l.Format(), Members: l.Members()}
			for _, k := range l.Converters() {
				yl.Converters = append(yl.Converters, k.String())
			}
			ym.Layouts = append(ym.Layouts, yl)
		}
		y.Modules = append(y.Modules, ym)
	}

	for _, d := range c.devices {
		yd := yamlDevice{
			Type:           d.Type,
			VID:            HexID(d.VID),
			PID:            HexID(d.PID),
			StreamLEDCount: d.StreamLEDCount,
		}
		for _, m := range d.Modules {
			yd.Modules = append(yd.Modules, m.Key)
		}
		y.Devices = append(y.Devices, yd)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionToYAML(d option.Descriptor) yamlOption {
	yo := yamlOption{
		Name: d.Name,
		Kind: d.Kind.String(),
		Tag:  d.WireTag,
		Help: d.Description,
	}
	if d.Range.Kind == option.RangeNone {
		return yo
	}
	lo := strconv.FormatInt(d.Range.Min, 10)
	hi := strconv.FormatInt(d.Range.Max, 10)
	yo.Range = &yamlRange{Kind: d.Range.Kind.String(), Min: lo, Max: hi}
	if d.Range.MinText != lo {
		yo.Range.MinText = d.Range.MinText
	}
	if d.Range.MaxText != hi {
		yo.Range.MaxText = d.Range.MaxText
	}
	return yo
}
