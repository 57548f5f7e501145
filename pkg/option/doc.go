// Package option defines configuration option descriptors and the values
// they accept.
//
// # Options
//
// An option is one independently validated device setting. Each option is
// described by a Descriptor carrying:
//   - Kind: the declared value kind (integer, string, none)
//   - Range: inclusive bounds interpreted according to the kind
//   - WireTag: the layout the encoded value is written into
//   - Description: human readable help text
//
// Options with KindNone are signals (e.g. "peer_erase"): they carry no
// payload and only accept an absent value.
//
// # Values
//
// Value is a closed variant over Absent, Integer, Text and Bytes. Bytes is
// only used for raw writes of fields that have no human-to-binary
// conversion, such as the 5-byte BLE channel map.
//
// # Tables
//
// A Table groups the descriptors of one module. Tables are immutable after
// construction and safe for concurrent use.
package option
