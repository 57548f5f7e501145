package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// OptionOutput describes one option of a module.
type OptionOutput struct {
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind" yaml:"kind"`
	Range       string `json:"range" yaml:"range"`
	Tag         string `json:"tag" yaml:"tag"`
	Layout      string `json:"layout,omitempty" yaml:"layout,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RunOptions prints the options of a device module with their ranges.
func RunOptions(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("options", "Describe the options of a device module", stderr)
	var common commonFlags
	common.register(fs)
	format := fs.String("format", "text", "Output format (text, json, yaml)")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 2 {
		fmt.Fprintln(stderr, "Error: device type and module required")
		fs.Usage()
		return exitCommandError
	}

	cat, err := common.loadCatalog()
	if err != nil {
		return fail(stderr, err)
	}
	m, err := cat.Module(pos[0], pos[1])
	if err != nil {
		return fail(stderr, err)
	}

	var out []OptionOutput
	for _, d := range m.Options.All() {
		o := OptionOutput{
			Name:        d.Name,
			Kind:        d.Kind.String(),
			Range:       d.Range.String(),
			Tag:         d.WireTag,
			Description: d.Description,
		}
		if _, l, err := m.LayoutFor(d.Name); err == nil && l.Size() > 0 {
			o.Layout = l.Format()
		}
		out = append(out, o)
	}

	done, err := writeStructured(stdout, *format, out)
	if err != nil {
		return fail(stderr, err)
	}
	if done {
		return exitSuccess
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tKIND\tRANGE\tTAG\tDESCRIPTION")
	for _, o := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.Name, o.Kind, o.Range, o.Tag, o.Description)
	}
	tw.Flush()
	return exitSuccess
}
