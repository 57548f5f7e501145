// Package layout packs option values into fixed binary records and
// unpacks them again.
//
// A Layout is an ordered list of primitive fields (width, signedness, byte
// order, or a fixed-width byte string) paired by position with the options
// stored in them. Layouts are declared with compact format strings:
//
//	layout.MustNew("param_wifi", "<hhh",
//	    []string{"wifi_rating_inc", "wifi_present_threshold", "wifi_active_threshold"})
//
// Pack validates every member against its option descriptor before writing
// anything, so a failed call never yields a partial buffer. Unpack rejects
// buffers whose length differs from the declared width.
//
// Members may carry a converter (see package convert) that replaces the
// primitive representation with a human form, e.g. a channel bitmask shown
// as a list of channel indices.
package layout
