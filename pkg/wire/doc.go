// Package wire defines the CBOR envelope exchanged with a configuration
// transport.
//
// A ConfigRequest names the device (VID/PID), the module and the wire tag
// and carries the packed record produced by the codec. The transport
// answers with a ConfigResponse holding a Status and, for Get and Fetch,
// the device's current record. How the envelope reaches the device
// (HID feature reports, a test double, a proxy) is up to the transport.
//
// All maps use integer keys and canonical key order, so the same request
// always encodes to the same bytes.
package wire
