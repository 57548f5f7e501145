package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// RecordOutput is a packed or unpacked wire record.
type RecordOutput struct {
	Tag     string            `json:"tag" yaml:"tag"`
	Payload string            `json:"payload" yaml:"payload"`
	Size    int               `json:"size" yaml:"size"`
	Values  map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
}

// RunEncode packs an option value, or a full record with -tag.
//
//	hidconf encode gaming_mouse sensor cpi 1200
//	hidconf encode -current 0000020180... dongle qos min_channel_count 5
//	hidconf encode -tag param_wifi dongle qos wifi_rating_inc=100 ...
func RunEncode(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("encode", "Pack option values into a wire record", stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "text", "Output format (text, json, yaml)")
	tag := fs.String("tag", "", "Pack a full record for this wire tag from name=value arguments")
	current := fs.String("current", "", "Current record (hex) for options sharing a composite record")
	raw := fs.Bool("raw", false, "Treat the value as raw hex bytes")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) < 3 {
		fmt.Fprintln(stderr, "Error: device type, module and option (or name=value pairs with -tag) required")
		fs.Usage()
		return exitCommandError
	}

	cdc, closeFn, err := common.newCodec(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer closeFn()

	device, module := pos[0], pos[1]
	var rec *codec.Record
	if *tag != "" {
		rec, err = encodeRecord(cdc, codec.Ref{Device: device, Module: module, Tag: *tag}, pos[2:], *raw)
	} else {
		rec, err = encodeOption(cdc, codec.Ref{Device: device, Module: module, Option: pos[2]}, pos[3:], *current, *raw)
	}
	if err != nil {
		return fail(stderr, err)
	}

	return printRecord(stdout, stderr, *format, rec.Tag, rec.Payload, rec.Values)
}

func encodeOption(cdc *codec.Codec, ref codec.Ref, rest []string, currentHex string, raw bool) (*codec.Record, error) {
	if len(rest) > 1 {
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(rest, " "))
	}
	text := ""
	if len(rest) == 1 {
		text = rest[0]
	}

	_, d, _, err := cdc.Resolve(ref)
	if err != nil {
		return nil, err
	}
	v, err := parseArg(d, text, raw)
	if err != nil {
		return nil, err
	}

	var current []byte
	if currentHex != "" {
		if current, err = parseHex(currentHex); err != nil {
			return nil, err
		}
	}
	return cdc.Encode(ref, v, current)
}

func encodeRecord(cdc *codec.Codec, ref codec.Ref, pairs []string, raw bool) (*codec.Record, error) {
	m, err := cdc.Catalog().Module(ref.Device, ref.Module)
	if err != nil {
		return nil, err
	}
	values := make(map[string]option.Value, len(pairs))
	for _, p := range pairs {
		name, text, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", p)
		}
		d, err := m.Resolve(name)
		if err != nil {
			return nil, err
		}
		v, err := parseArg(d, text, raw)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return cdc.EncodeRecord(ref, values)
}

func parseArg(d option.Descriptor, text string, raw bool) (option.Value, error) {
	if raw {
		b, err := parseHex(text)
		if err != nil {
			return option.Value{}, err
		}
		return option.Bytes(b), nil
	}
	return option.ParseValue(d, text)
}

// parseHex accepts "0x0102", "01 02", "01:02" and plain "0102".
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func printRecord(stdout, stderr io.Writer, format, tag string, payload []byte, values map[string]option.Value) int {
	out := RecordOutput{
		Tag:     tag,
		Payload: hex.EncodeToString(payload),
		Size:    len(payload),
		Values:  codec.Strings(values),
	}
	done, err := writeStructured(stdout, format, out)
	if err != nil {
		return fail(stderr, err)
	}
	if done {
		return exitSuccess
	}

	fmt.Fprintf(stdout, "%s (%d bytes): %s\n", out.Tag, out.Size, out.Payload)
	names := make([]string, 0, len(out.Values))
	for k := range out.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(stdout, "  %s = %s\n", k, out.Values[k])
	}
	return exitSuccess
}
