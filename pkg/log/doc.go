// Package log provides structured capture of configuration codec events.
//
// This package defines the Logger interface and Event types for recording
// every encode and decode performed by the codec, plus the payload
// exchanges made through a configurator transport. It is separate from
// operational logging (slog): event capture keeps a machine-readable trace
// of the bytes sent to and read from a peripheral.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For field debugging: write to a binary file
//	logger, _ := log.NewFileLogger("/tmp/hidconf.clog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(console, file)
//
// # Event Types
//
//   - Payload: bytes produced by an encode or consumed by a decode,
//     together with the human values involved
//   - Error: a failed encode, decode or exchange
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .clog extension.
// The `hidconf log` command reads them back.
package log
