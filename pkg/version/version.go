// Package version provides catalog schema version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the catalog schema version implemented by this library.
const Current = "1.0"

// Tool is the release version reported by the command-line tools.
const Tool = "0.3.0"

// SchemaVersion represents a parsed "major.minor" schema version.
type SchemaVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SchemaVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SchemaVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v SchemaVersion) Compatible(other SchemaVersion) bool {
	return v.Major == other.Major
}

// CheckCompatible returns an error unless s parses and shares the major
// version of Current. Newer minor versions are accepted; unknown keys are
// caught by the strict YAML decoder instead.
func CheckCompatible(s string) error {
	if s == "" {
		return fmt.Errorf("missing schema version, want %s", Current)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	current, _ := Parse(Current)
	if !current.Compatible(v) {
		return fmt.Errorf("schema version %s is not compatible with %s", v, current)
	}
	return nil
}
