package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hidconf/hidconf-go/pkg/catalog"
	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/option"
)

// minimumBLE is param_ble with every member at its minimum value.
const minimumBLE = "00000201800180010001010001000100"

func run(fn func([]string, io.Writer, io.Writer) int, args ...string) (int, string, string) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := fn(args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunDevices(t *testing.T) {
	code, out, errOut := run(RunDevices)
	if code != exitSuccess {
		t.Fatalf("expected exit %d, got %d: %s", exitSuccess, code, errOut)
	}
	for _, want := range []string{"gaming_mouse", "0x52DE", "dongle", "ble_bond, qos"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	code, out, _ = run(RunDevices, "-format", "json")
	if code != exitSuccess {
		t.Fatalf("json: exit %d", code)
	}
	var devices []DeviceOutput
	if err := json.Unmarshal([]byte(out), &devices); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(devices) != 5 {
		t.Errorf("expected 5 devices, got %d", len(devices))
	}

	code, _, _ = run(RunDevices, "-format", "xml")
	if code != exitCommandError {
		t.Errorf("unknown format should fail, got %d", code)
	}
}

func TestRunModules(t *testing.T) {
	code, out, _ := run(RunModules, "dongle")
	if code != exitSuccess || out != "ble_bond\nqos\n" {
		t.Errorf("unexpected result %d: %q", code, out)
	}

	code, _, errOut := run(RunModules)
	if code != exitCommandError || !strings.Contains(errOut, "device type required") {
		t.Errorf("expected usage error, got %d: %s", code, errOut)
	}

	code, _, _ = run(RunModules, "toaster")
	if code != exitCommandError {
		t.Errorf("unknown device should be a command error, got %d", code)
	}
}

func TestRunOptions(t *testing.T) {
	code, out, _ := run(RunOptions, "gaming_mouse", "sensor")
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, "cpi") || !strings.Contains(out, "[100, 12000]") {
		t.Errorf("expected cpi range in output:\n%s", out)
	}

	code, out, _ = run(RunOptions, "-format", "json", "dongle", "qos")
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	var opts []OptionOutput
	if err := json.Unmarshal([]byte(out), &opts); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	found := false
	for _, o := range opts {
		if o.Name == "min_channel_count" {
			found = true
			if o.Layout != "<HBhhHBHHH" || o.Tag != "param_ble" {
				t.Errorf("unexpected layout info: %+v", o)
			}
		}
	}
	if !found {
		t.Error("min_channel_count missing")
	}
}

func TestRunLookup(t *testing.T) {
	tests := []struct {
		args []string
		code int
		out  string
	}{
		{[]string{"0x52DC"}, exitSuccess, "dongle\n"},
		{[]string{"21214"}, exitSuccess, "gaming_mouse\n"},
		{[]string{"-vid", "0x1915", "0x52DD"}, exitSuccess, "keyboard\n"},
		{[]string{"-vid", "0x1234", "0x52DD"}, exitCommandError, ""},
		{[]string{"0x0001"}, exitCommandError, ""},
		{[]string{"0x10000"}, exitCommandError, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, out, _ := run(RunLookup, tt.args...)
			if code != tt.code || out != tt.out {
				t.Errorf("got %d %q, want %d %q", code, out, tt.code, tt.out)
			}
		})
	}
}

func TestRunEncode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"single field", []string{"gaming_mouse", "sensor", "cpi", "1200"}, exitSuccess, "cpi (4 bytes): b0040000"},
		{"out of range", []string{"gaming_mouse", "sensor", "cpi", "50"}, exitValidation, ""},
		{"bitmask", []string{"dongle", "qos", "wifi_blacklist", "11,1,6,6"}, exitSuccess, "blacklist (2 bytes): 4208"},
		{"signal", []string{"keyboard", "ble_bond", "peer_erase"}, exitSuccess, "peer_erase (0 bytes): "},
		{"signal rejects raw payload", []string{"-raw", "keyboard", "ble_bond", "peer_erase", "00"}, exitValidation, ""},
		{"signal rejects value", []string{"keyboard", "ble_bond", "peer_erase", "1"}, exitValidation, ""},
		{"composite without current", []string{"dongle", "qos", "min_channel_count", "5"}, exitValidation, ""},
		{"composite with current", []string{"-current", minimumBLE, "dongle", "qos", "min_channel_count", "5"}, exitSuccess, "00000501800180010001010001000100"},
		{"full record", []string{"-tag", "param_wifi", "dongle", "qos", "wifi_rating_inc=100", "wifi_present_threshold=200", "wifi_active_threshold=300"}, exitSuccess, "param_wifi (6 bytes): 6400c8002c01"},
		{"record missing member", []string{"-tag", "param_wifi", "dongle", "qos", "wifi_rating_inc=100"}, exitValidation, ""},
		{"raw bytes", []string{"-raw", "dongle", "qos", "channel_map", "0x0102030405"}, exitSuccess, "chmap (5 bytes): 0102030405"},
		{"reversed hex has no encoder", []string{"dongle", "qos", "channel_map", "0x0504030201"}, exitValidation, ""},
		{"unknown option", []string{"dongle", "qos", "cpi", "1"}, exitCommandError, ""},
		{"missing args", []string{"dongle", "qos"}, exitCommandError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(RunEncode, tt.args...)
			if code != tt.code {
				t.Fatalf("exit %d, want %d (stderr: %s)", code, tt.code, errOut)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output:\n%s", tt.want, out)
			}
		})
	}
}

func TestRunDecode(t *testing.T) {
	code, out, _ := run(RunDecode, "dongle", "qos", "wifi_blacklist", "4208")
	if code != exitSuccess || out != "1, 6, 11\n" {
		t.Errorf("got %d %q", code, out)
	}

	code, out, _ = run(RunDecode, "dongle", "qos", "channel_map", "01 02 03 04 05")
	if code != exitSuccess || out != "0x0504030201\n" {
		t.Errorf("got %d %q", code, out)
	}

	code, out, _ = run(RunDecode, "-tag", "param_wifi", "-format", "json", "dongle", "qos", "6400c8002c01")
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	var rec RecordOutput
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rec.Values["wifi_active_threshold"] != "300" || rec.Size != 6 {
		t.Errorf("unexpected record: %+v", rec)
	}

	code, _, _ = run(RunDecode, "dongle", "qos", "min_channel_count", "0001")
	if code != exitValidation {
		t.Errorf("short payload should be a validation error, got %d", code)
	}

	code, out, _ = run(RunDecode, "-format", "json", "dongle", "qos", "channel_map", "0102030405")
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	rec = RecordOutput{}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rec.Tag != "chmap" || rec.Values["channel_map"] != "0x0504030201" {
		t.Errorf("unexpected record: %+v", rec)
	}

	code, out, _ = run(RunDecode, "-format", "json", "dongle", "qos", "cpi", "00")
	if code != exitCommandError || out != "" {
		t.Errorf("unknown option should fail before output, got %d %q", code, out)
	}

	code, _, _ = run(RunDecode, "dongle", "qos", "wifi_blacklist", "zz")
	if code != exitCommandError {
		t.Errorf("bad hex should be a command error, got %d", code)
	}
}

func TestRunCatalog(t *testing.T) {
	code, out, _ := run(RunCatalog)
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	c, err := catalog.Parse([]byte(out))
	if err != nil {
		t.Fatalf("exported catalog does not parse: %v", err)
	}
	if len(c.Devices()) != 5 {
		t.Errorf("expected 5 devices, got %d", len(c.Devices()))
	}

	path := filepath.Join(t.TempDir(), "devices.yaml")
	if code, _, errOut := run(RunCatalog, "-o", path); code != exitSuccess {
		t.Fatalf("export to file: %d %s", code, errOut)
	}
	code, out, _ = run(RunCatalog, "-check", "-catalog", path)
	if code != exitSuccess || !strings.Contains(out, "OK: 5 devices, 5 modules") {
		t.Errorf("check: %d %q", code, out)
	}

	code, out, _ = run(RunLookup, "-catalog", path, "0x52DB")
	if code != exitSuccess || out != "desktop_mouse_nrf52810\n" {
		t.Errorf("lookup with exported catalog: %d %q", code, out)
	}

	if code, _, _ := run(RunCatalog, "-check", "-catalog", "missing.yaml"); code != exitValidation {
		t.Errorf("missing catalog should fail validation, got %d", code)
	}
}

func TestRunLog(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "session.clog")

	if code, _, errOut := run(RunEncode, "-capture", capture, "gaming_mouse", "sensor", "cpi", "1200"); code != exitSuccess {
		t.Fatalf("encode: %d %s", code, errOut)
	}
	if code, _, _ := run(RunEncode, "-capture", capture, "gaming_mouse", "sensor", "cpi", "1"); code != exitValidation {
		t.Fatalf("expected validation failure, got %d", code)
	}
	if _, err := os.Stat(capture); err != nil {
		t.Fatalf("capture not written: %v", err)
	}

	code, out, _ := run(RunLog, capture)
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"OUT", "gaming_mouse/sensor/cpi", "Data: b0040000", "cpi = 1200", "Error (encode)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	code, out, _ = run(RunLog, "-category", "error", "-format", "csv", capture)
	if code != exitSuccess {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "timestamp,request_id") {
		t.Errorf("expected header plus one error row, got:\n%s", out)
	}

	code, _, _ = run(RunLog, "-direction", "sideways", capture)
	if code != exitCommandError {
		t.Errorf("bad direction should fail, got %d", code)
	}
}

func TestShell(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(codec.New(nil), &out)

	if sh.Prompt() != "hidconf> " {
		t.Errorf("unexpected prompt %q", sh.Prompt())
	}

	steps := []struct {
		line string
		want string
	}{
		{"encode cpi 100", "no module selected"},
		{"use dongle qos", ""},
		{"encode wifi_blacklist 1,6,11", "blacklist: 42 08"},
		{"decode wifi_blacklist 42 08", "wifi_blacklist = 1, 6, 11"},
		{"encode -raw channel_map 0102030405", "chmap: 01 02 03 04 05"},
		{"decode channel_map 0102030405", "0x0504030201"},
		{"encode channel_map 0x0504030201", "converter has no encoder"},
		{"encode -raw channel_map", "usage: encode"},
		{"encode min_channel_count 99", "Error:"},
		{"lookup 0x52DA", "desktop_mouse_nrf52832"},
		{"frobnicate", "Unknown command"},
	}
	for _, s := range steps {
		out.Reset()
		if !sh.Exec(s.line) {
			t.Fatalf("%q ended the session", s.line)
		}
		if s.want != "" && !strings.Contains(out.String(), s.want) {
			t.Errorf("%q: expected %q in %q", s.line, s.want, out.String())
		}
	}

	if sh.Prompt() != "hidconf[dongle/qos]> " {
		t.Errorf("unexpected prompt %q", sh.Prompt())
	}
	if sh.Exec("quit") {
		t.Error("quit should end the session")
	}
}

func TestExitFor(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, exitSuccess},
		{fmt.Errorf("x: %w", option.ErrRange), exitValidation},
		{fmt.Errorf("x: %w", layout.ErrLayoutSize), exitValidation},
		{fmt.Errorf("x: %w", catalog.ErrUnknownDevice), exitCommandError},
	}
	for _, tt := range tests {
		if got := exitFor(tt.err); got != tt.code {
			t.Errorf("exitFor(%v) = %d, want %d", tt.err, got, tt.code)
		}
	}
}
