package catalog

//go:generate go run ../../cmd/hidconf-gen -catalog catalogs/nrf_desktop.yaml -output builtin_gen.go

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// Catalog errors.
var (
	ErrUnknownDevice = errors.New("unknown device type")
	ErrUnknownModule = errors.New("unknown module")
	ErrNotFound      = errors.New("device not found")
	ErrInvalid       = errors.New("invalid catalog")
)

// Module groups the options of one functional area of a device (sensor,
// radio QoS, bonding) together with the composite layouts they use.
type Module struct {
	// Key identifies the module definition. Several devices may share one
	// definition; Key is unique within a catalog.
	Key string

	// Name is the module name used when addressing options ("sensor").
	Name string

	// Options holds the option descriptors.
	Options *option.Table

	// Layouts holds composite layouts keyed by wire tag. May be empty.
	Layouts *layout.Registry
}

// NewModule creates a module and checks that every option's wire tag
// resolves to a layout and every layout member is a declared option with a
// matching tag.
func NewModule(key, name string, opts *option.Table, layouts *layout.Registry) (*Module, error) {
	if key == "" || name == "" {
		return nil, fmt.Errorf("%w: module needs a key and a name", ErrInvalid)
	}
	if opts == nil {
		return nil, fmt.Errorf("%w: module %q has no options", ErrInvalid, key)
	}
	if layouts == nil {
		layouts = layout.MustRegistry()
	}

	for _, d := range opts.All() {
		if _, err := layouts.For(d); err != nil {
			return nil, fmt.Errorf("%w: module %q option %q: %v", ErrInvalid, key, d.Name, err)
		}
	}
	for _, tag := range layouts.Tags() {
		l, _ := layouts.Lookup(tag)
		for _, member := range l.Members() {
			d, err := opts.Resolve(member)
			if err != nil {
				return nil, fmt.Errorf("%w: module %q layout %q: %v", ErrInvalid, key, tag, err)
			}
			if d.WireTag != tag {
				return nil, fmt.Errorf("%w: module %q: option %q has tag %q but is packed in %q", ErrInvalid, key, member, d.WireTag, tag)
			}
		}
	}

	return &Module{Key: key, Name: name, Options: opts, Layouts: layouts}, nil
}

// MustModule is like NewModule but panics on error.
func MustModule(key, name string, opts *option.Table, layouts *layout.Registry) *Module {
	m, err := NewModule(key, name, opts, layouts)
	if err != nil {
		panic(err)
	}
	return m
}

// Resolve returns the descriptor of an option in the module.
func (m *Module) Resolve(name string) (option.Descriptor, error) {
	d, err := m.Options.Resolve(name)
	if err != nil {
		return option.Descriptor{}, fmt.Errorf("module %s: %w", m.Name, err)
	}
	return d, nil
}

// LayoutFor returns the descriptor of an option and the layout its value is
// encoded with.
func (m *Module) LayoutFor(name string) (option.Descriptor, *layout.Layout, error) {
	d, err := m.Resolve(name)
	if err != nil {
		return option.Descriptor{}, nil, err
	}
	l, err := m.Layouts.For(d)
	if err != nil {
		return option.Descriptor{}, nil, err
	}
	return d, l, nil
}

// Device is the profile of one configurable peripheral type.
type Device struct {
	// Type is the device type name ("gaming_mouse").
	Type string

	// VID and PID are the USB vendor and product identifiers.
	VID uint16
	PID uint16

	// StreamLEDCount is the number of LEDs that accept streamed effects.
	StreamLEDCount int

	// Modules lists the device's modules. Names are unique per device.
	Modules []*Module
}

// Module returns the device module called name.
func (d *Device) Module(name string) (*Module, bool) {
	for _, m := range d.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// ModuleNames returns the module names, sorted.
func (d *Device) ModuleNames() []string {
	names := make([]string, 0, len(d.Modules))
	for _, m := range d.Modules {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

// Catalog is an immutable set of device profiles.
// Lookups are linear over a small fixed list and safe for concurrent use.
type Catalog struct {
	devices []*Device
	byType  map[string]*Device
}

// New creates a catalog. Device types and PIDs must be unique, module names
// unique per device and module keys unique across the catalog.
func New(devices ...*Device) (*Catalog, error) {
	c := &Catalog{byType: make(map[string]*Device, len(devices))}
	pids := make(map[uint16]string)
	keys := make(map[string]*Module)

	for _, d := range devices {
		if d == nil || d.Type == "" {
			return nil, fmt.Errorf("%w: device without type", ErrInvalid)
		}
		if _, exists := c.byType[d.Type]; exists {
			return nil, fmt.Errorf("%w: duplicate device type %q", ErrInvalid, d.Type)
		}
		if other, exists := pids[d.PID]; exists {
			return nil, fmt.Errorf("%w: %q and %q share PID 0x%04X", ErrInvalid, other, d.Type, d.PID)
		}
		if d.StreamLEDCount < 0 {
			return nil, fmt.Errorf("%w: %q has negative stream LED count", ErrInvalid, d.Type)
		}

		names := make(map[string]bool, len(d.Modules))
		for _, m := range d.Modules {
			if m == nil {
				return nil, fmt.Errorf("%w: %q has a nil module", ErrInvalid, d.Type)
			}
			if names[m.Name] {
				return nil, fmt.Errorf("%w: %q lists module %q twice", ErrInvalid, d.Type, m.Name)
			}
			names[m.Name] = true
			if prev, ok := keys[m.Key]; ok && prev != m {
				return nil, fmt.Errorf("%w: module key %q defined twice", ErrInvalid, m.Key)
			}
			keys[m.Key] = m
		}

		pids[d.PID] = d.Type
		c.byType[d.Type] = d
		c.devices = append(c.devices, d)
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(devices ...*Device) *Catalog {
	c, err := New(devices...)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCatalog = MustNew(builtinDevices()...)

// Default returns the built-in nRF Desktop catalog.
func Default() *Catalog { return defaultCatalog }

// Device returns the profile of deviceType.
func (c *Catalog) Device(deviceType string) (*Device, error) {
	d, ok := c.byType[deviceType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, deviceType)
	}
	return d, nil
}

// Devices returns the profiles in declaration order.
func (c *Catalog) Devices() []*Device {
	return append([]*Device(nil), c.devices...)
}

// DeviceTypes returns all device type names, sorted.
func (c *Catalog) DeviceTypes() []string {
	types := make([]string, 0, len(c.devices))
	for _, d := range c.devices {
		types = append(types, d.Type)
	}
	sort.Strings(types)
	return types
}

// ModulesFor returns the module names of deviceType, sorted.
func (c *Catalog) ModulesFor(deviceType string) ([]string, error) {
	d, err := c.Device(deviceType)
	if err != nil {
		return nil, err
	}
	return d.ModuleNames(), nil
}

// Module returns module moduleName of deviceType.
func (c *Catalog) Module(deviceType, moduleName string) (*Module, error) {
	d, err := c.Device(deviceType)
	if err != nil {
		return nil, err
	}
	m, ok := d.Module(moduleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrUnknownModule, moduleName, deviceType)
	}
	return m, nil
}

// LookupByPID returns the device type with the given product ID.
func (c *Catalog) LookupByPID(pid uint16) (string, error) {
	for _, d := range c.devices {
		if d.PID == pid {
			return d.Type, nil
		}
	}
	return "", fmt.Errorf("%w: PID 0x%04X", ErrNotFound, pid)
}

// LookupByID returns the device type with the given vendor and product ID.
func (c *Catalog) LookupByID(vid, pid uint16) (string, error) {
	for _, d := range c.devices {
		if d.VID == vid && d.PID == pid {
			return d.Type, nil
		}
	}
	return "", fmt.Errorf("%w: 0x%04X:0x%04X", ErrNotFound, vid, pid)
}

// VIDOf returns the vendor ID of deviceType.
func (c *Catalog) VIDOf(deviceType string) (uint16, error) {
	d, err := c.Device(deviceType)
	if err != nil {
		return 0, err
	}
	return d.VID, nil
}

// PIDOf returns the product ID of deviceType.
func (c *Catalog) PIDOf(deviceType string) (uint16, error) {
	d, err := c.Device(deviceType)
	if err != nil {
		return 0, err
	}
	return d.PID, nil
}

// StreamLEDCount returns the stream LED count of deviceType.
func (c *Catalog) StreamLEDCount(deviceType string) (int, error) {
	d, err := c.Device(deviceType)
	if err != nil {
		return 0, err
	}
	return d.StreamLEDCount, nil
}
