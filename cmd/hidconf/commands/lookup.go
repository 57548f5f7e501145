package commands

import (
	"fmt"
	"io"

	"github.com/hidconf/hidconf-go/pkg/option"
)

// RunLookup resolves a product ID (and optionally a vendor ID) to a
// device type.
func RunLookup(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("lookup", "Find the device type of a USB product ID", stderr)
	var common commonFlags
	common.register(fs)
	vidFlag := fs.String("vid", "", "Also match the vendor ID")
	pos, err := parseFlags(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 1 {
		fmt.Fprintln(stderr, "Error: product ID required")
		fs.Usage()
		return exitCommandError
	}

	pid, err := parseID(pos[0])
	if err != nil {
		return fail(stderr, err)
	}
	cat, err := common.loadCatalog()
	if err != nil {
		return fail(stderr, err)
	}

	var dt string
	if *vidFlag != "" {
		vid, err := parseID(*vidFlag)
		if err != nil {
			return fail(stderr, err)
		}
		dt, err = cat.LookupByID(vid, pid)
		if err != nil {
			return fail(stderr, err)
		}
	} else {
		dt, err = cat.LookupByPID(pid)
		if err != nil {
			return fail(stderr, err)
		}
	}
	fmt.Fprintln(stdout, dt)
	return exitSuccess
}

func parseID(s string) (uint16, error) {
	n, err := option.ParseInt(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xFFFF {
		return 0, fmt.Errorf("id %s out of range", s)
	}
	return uint16(n), nil
}
