// Package configurator applies option values to a device through a
// Transport.
//
// Options that share a composite record with siblings are written with a
// fetch-modify-write sequence: the current record is fetched from the
// device, the option's member is replaced, and the full record is sent
// back. Single-field and signal options are written directly.
//
// The Transport only moves wire.ConfigRequest envelopes. StreamTransport
// carries them as length-prefixed CBOR frames over any byte stream (a
// socket to a HID bridge, a pipe), and ServeStream is its device side.
// Emulator is an in-memory device for dry runs and tests.
package configurator
