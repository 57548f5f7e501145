package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// DeviceOutput describes one device profile.
type DeviceOutput struct {
	Type           string   `json:"type" yaml:"type"`
	VID            string   `json:"vid" yaml:"vid"`
	PID            string   `json:"pid" yaml:"pid"`
	StreamLEDCount int      `json:"stream_led_cnt" yaml:"stream_led_cnt"`
	Modules        []string `json:"modules" yaml:"modules"`
}

// RunDevices lists the devices of the catalog.
func RunDevices(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("devices", "List supported device types", stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "text", "Output format (text, json, yaml)")
	if _, err := parseFlags(fs, args); err != nil {
		return flagExit(err)
	}

	cat, err := common.loadCatalog()
	if err != nil {
		return fail(stderr, err)
	}

	var out []DeviceOutput
	for _, d := range cat.Devices() {
		out = append(out, DeviceOutput{
			Type:           d.Type,
			VID:            fmt.Sprintf("0x%04X", d.VID),
			PID:            fmt.Sprintf("0x%04X", d.PID),
			StreamLEDCount: d.StreamLEDCount,
			Modules:        d.ModuleNames(),
		})
	}

	done, err := writeStructured(stdout, *format, out)
	if err != nil {
		return fail(stderr, err)
	}
	if done {
		return exitSuccess
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tVID\tPID\tLEDS\tMODULES")
	for _, d := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", d.Type, d.VID, d.PID, d.StreamLEDCount, strings.Join(d.Modules, ", "))
	}
	tw.Flush()
	return exitSuccess
}

// RunModules lists the modules of one device.
func RunModules(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("modules", "List the modules of a device", stderr)
	var common commonFlags
	common.register(fs)
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 1 {
		fmt.Fprintln(stderr, "Error: device type required")
		fs.Usage()
		return exitCommandError
	}

	cat, err := common.loadCatalog()
	if err != nil {
		return fail(stderr, err)
	}
	mods, err := cat.ModulesFor(pos[0])
	if err != nil {
		return fail(stderr, err)
	}
	for _, m := range mods {
		fmt.Fprintln(stdout, m)
	}
	return exitSuccess
}
