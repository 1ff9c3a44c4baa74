// Package config loads wire-codec resource limits from YAML, the data-driven
// counterpart to the teacher's code-configured configure.go (ClientOpts,
// configureDialer): where the teacher wires options into a dialer at call
// time, this package lets an operator hand every codec its table sizes and
// frame caps from a config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-httpwire/httpwire/h2"
	"github.com/go-httpwire/httpwire/hpack"
	"github.com/go-httpwire/httpwire/qpack"
	"github.com/go-httpwire/httpwire/varint"
)

// Limits bounds the resource-sensitive knobs spec.md §5 calls out: dynamic
// table capacities for both header-compression schemes, the HTTP/2 frame
// size ceiling, and the largest HTTP/3 varint this module will decode.
type Limits struct {
	HPACKDynamicTableCapacity int    `yaml:"hpack_dynamic_table_capacity"`
	QPACKDynamicTableCapacity int    `yaml:"qpack_dynamic_table_capacity"`
	H2MaxFrameLength          int    `yaml:"h2_max_frame_length"`
	H3MaxVarint               uint64 `yaml:"h3_max_varint"`
}

// DefaultLimits mirrors the protocol defaults each codec package already
// falls back to (hpack.DefaultDynamicTableSize, qpack.DefaultDynamicTableCapacity,
// h2.MaxFrameLength, varint.MaxValue), so a caller that loads no config file
// at all gets identical behavior to one that loads this struct verbatim.
func DefaultLimits() Limits {
	return Limits{
		HPACKDynamicTableCapacity: hpack.DefaultDynamicTableSize,
		QPACKDynamicTableCapacity: qpack.DefaultDynamicTableCapacity,
		H2MaxFrameLength:          h2.MaxFrameLength,
		H3MaxVarint:               varint.MaxValue,
	}
}

// Load reads and parses a YAML limits file at path, filling any field the
// file omits with DefaultLimits' value rather than the YAML zero value.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into Limits, applying DefaultLimits for any
// field left at its zero value (a 0 capacity or max length is never a
// legitimate operator choice for these knobs).
func Parse(data []byte) (Limits, error) {
	limits := DefaultLimits()
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("config: parse: %w", err)
	}

	defaults := DefaultLimits()
	if limits.HPACKDynamicTableCapacity == 0 {
		limits.HPACKDynamicTableCapacity = defaults.HPACKDynamicTableCapacity
	}
	if limits.QPACKDynamicTableCapacity == 0 {
		limits.QPACKDynamicTableCapacity = defaults.QPACKDynamicTableCapacity
	}
	if limits.H2MaxFrameLength == 0 {
		limits.H2MaxFrameLength = defaults.H2MaxFrameLength
	}
	if limits.H3MaxVarint == 0 {
		limits.H3MaxVarint = defaults.H3MaxVarint
	}
	return limits, nil
}

// Validate rejects limits that would violate a protocol-mandated bound:
// an HTTP/2 frame length above the 2^24-1 wire ceiling, or an HTTP/3 varint
// cap above the 2^62-1 encoding ceiling.
func (l Limits) Validate() error {
	if l.H2MaxFrameLength < 0 || l.H2MaxFrameLength > h2.MaxFrameLength {
		return fmt.Errorf("config: h2_max_frame_length %d exceeds wire maximum %d", l.H2MaxFrameLength, h2.MaxFrameLength)
	}
	if l.H3MaxVarint > varint.MaxValue {
		return fmt.Errorf("config: h3_max_varint %d exceeds wire maximum %d", l.H3MaxVarint, varint.MaxValue)
	}
	if l.HPACKDynamicTableCapacity < 0 {
		return fmt.Errorf("config: hpack_dynamic_table_capacity must not be negative")
	}
	if l.QPACKDynamicTableCapacity < 0 {
		return fmt.Errorf("config: qpack_dynamic_table_capacity must not be negative")
	}
	return nil
}
