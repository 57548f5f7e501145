package commands

import (
	"fmt"
	"io"

	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// RunDecode unpacks a wire record and prints one option or, with -tag,
// every member.
//
//	hidconf decode dongle qos wifi_blacklist 4208
//	hidconf decode -tag param_wifi dongle qos 6400c8002c01
func RunDecode(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("decode", "Unpack a wire record into option values", stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "text", "Output format (text, json, yaml)")
	tag := fs.String("tag", "", "Decode every member of this wire tag")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}

	want := 4
	if *tag != "" {
		want = 3
	}
	if len(pos) != want {
		fmt.Fprintln(stderr, "Error: device type, module, option (or -tag) and hex payload required")
		fs.Usage()
		return exitCommandError
	}

	cdc, closeFn, err := common.newCodec(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer closeFn()

	raw, err := parseHex(pos[want-1])
	if err != nil {
		return fail(stderr, err)
	}

	ref := codec.Ref{Device: pos[0], Module: pos[1], Tag: *tag}
	if *tag != "" {
		values, err := cdc.DecodeRecord(ref, raw)
		if err != nil {
			return fail(stderr, err)
		}
		return printRecord(stdout, stderr, *format, *tag, raw, values)
	}

	ref.Option = pos[2]
	_, d, _, err := cdc.Resolve(ref)
	if err != nil {
		return fail(stderr, err)
	}
	v, err := cdc.Decode(ref, raw)
	if err != nil {
		return fail(stderr, err)
	}
	if *format == "text" {
		fmt.Fprintln(stdout, v.String())
		return exitSuccess
	}
	return printRecord(stdout, stderr, *format, d.WireTag, raw, map[string]option.Value{ref.Option: v})
}
