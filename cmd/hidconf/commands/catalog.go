package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/hidconf/hidconf-go/pkg/catalog"
	"github.com/hidconf/hidconf-go/pkg/version"
)

// RunCatalog exports the catalog as YAML (loadable with -catalog) or
// validates a catalog file with -check.
func RunCatalog(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("catalog", "Export or check a device catalog", stderr)
	var common commonFlags
	common.register(fs)
	output := fs.String("o", "", "Output file (default: stdout)")
	check := fs.Bool("check", false, "Only validate the catalog and print a summary")
	if _, err := parseFlags(fs, args); err != nil {
		return flagExit(err)
	}

	cat, err := common.loadCatalog()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitValidation
	}

	if *check {
		fmt.Fprintf(stdout, "OK: %d devices, %d modules (schema %s)\n",
			len(cat.Devices()), len(cat.Modules()), version.Current)
		return exitSuccess
	}

	data, err := catalog.Marshal(cat)
	if err != nil {
		return fail(stderr, err)
	}
	if *output == "" {
		_, err = stdout.Write(data)
	} else {
		err = os.WriteFile(*output, data, 0o644)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}
