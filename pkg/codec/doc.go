// Package codec runs the end-to-end translation between human option
// values and device payloads.
//
// A Ref names the device type, module and option. The codec resolves the
// module through the catalog, validates the value against the option's
// descriptor, finds the layout of the option's wire tag (a composite shared
// with sibling options, or the option's implicit single field) and packs or
// unpacks the record, applying field converters on the way.
//
// Every encode and decode is reported to a log.Logger as one event.
package codec
