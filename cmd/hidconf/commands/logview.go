package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hidconf/hidconf-go/pkg/log"
)

// RunLog prints the events of a .clog capture file.
func RunLog(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("log", "View a codec capture file", stderr)
	format := fs.String("format", "text", "Output format (text, jsonl, csv)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	layer := fs.String("layer", "", "Filter by layer (codec, transport)")
	category := fs.String("category", "", "Filter by category (payload, error)")
	device := fs.String("device", "", "Filter by device type")
	module := fs.String("module", "", "Filter by module")
	request := fs.String("request", "", "Filter by request ID")
	since := fs.String("since", "", "Only events at or after this time (RFC3339)")
	limit := fs.Int("limit", 0, "Stop after this many events (0 = all)")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 1 {
		fmt.Fprintln(stderr, "Error: log file path required")
		fs.Usage()
		return exitCommandError
	}

	filter := log.Filter{Device: *device, Module: *module, RequestID: *request}
	if *direction != "" {
		d, err := parseDirection(*direction)
		if err != nil {
			return fail(stderr, err)
		}
		filter.Direction = &d
	}
	if *layer != "" {
		l, err := parseLayer(*layer)
		if err != nil {
			return fail(stderr, err)
		}
		filter.Layer = &l
	}
	if *category != "" {
		c, err := parseCategory(*category)
		if err != nil {
			return fail(stderr, err)
		}
		filter.Category = &c
	}
	if *since != "" {
		t, err := time.Parse(time.RFC3339, *since)
		if err != nil {
			return fail(stderr, fmt.Errorf("invalid -since: %w", err))
		}
		filter.Since = t
	}

	r, err := log.OpenCapture(pos[0], filter)
	if err != nil {
		return fail(stderr, err)
	}
	defer r.Close()

	events, err := r.Collect(*limit)
	if err != nil {
		return fail(stderr, err)
	}

	switch *format {
	case "jsonl":
		enc := json.NewEncoder(stdout)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return fail(stderr, err)
			}
		}
	case "csv":
		if err := writeEventsCSV(stdout, events); err != nil {
			return fail(stderr, err)
		}
	case "text":
		for _, e := range events {
			formatEvent(stdout, e)
		}
	default:
		return fail(stderr, fmt.Errorf("unknown format %q (text, jsonl, csv)", *format))
	}
	return exitSuccess
}

func formatEvent(w io.Writer, e log.Event) {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	req := e.RequestID
	if len(req) > 8 {
		req = req[:8]
	}
	target := strings.Trim(strings.Join([]string{e.Device, e.Module, e.Option}, "/"), "/")
	fmt.Fprintf(w, "%s [req:%s] %-3s %-9s %s %s\n", ts, req, e.Direction, e.Layer, e.Category, target)

	switch {
	case e.Payload != nil:
		fmt.Fprintf(w, "  Tag: %s  Size: %d bytes\n", e.WireTag, e.Payload.Size)
		if len(e.Payload.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(e.Payload.Data))
			if e.Payload.Truncated {
				fmt.Fprint(w, " (truncated)")
			}
			fmt.Fprintln(w)
		}
		keys := make([]string, 0, len(e.Payload.Values))
		for k := range e.Payload.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %s\n", k, e.Payload.Values[k])
		}
	case e.Error != nil:
		fmt.Fprintf(w, "  Error (%s): %s\n", e.Error.Context, e.Error.Message)
	}
	fmt.Fprintln(w)
}

func writeEventsCSV(w io.Writer, events []log.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "request_id", "direction", "layer", "category", "device", "module", "option", "tag", "size", "data", "error"}); err != nil {
		return err
	}
	for _, e := range events {
		var size, data, msg string
		if e.Payload != nil {
			size = strconv.Itoa(e.Payload.Size)
			data = hex.EncodeToString(e.Payload.Data)
		}
		if e.Error != nil {
			msg = e.Error.Message
		}
		rec := []string{
			e.Timestamp.UTC().Format(time.RFC3339Nano), e.RequestID,
			e.Direction.String(), e.Layer.String(), e.Category.String(),
			e.Device, e.Module, e.Option, e.WireTag, size, data, msg,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "codec":
		return log.LayerCodec, nil
	case "transport":
		return log.LayerTransport, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be codec or transport)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "payload":
		return log.CategoryPayload, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be payload or error)", s)
	}
}
