// hidconf inspects the nRF Desktop device catalog and translates option
// values to and from the binary records exchanged with HID peripherals.
package main

import (
	"fmt"
	"os"

	"github.com/hidconf/hidconf-go/cmd/hidconf/commands"
	"github.com/hidconf/hidconf-go/pkg/version"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "devices":
		exitCode = commands.RunDevices(args, os.Stdout, os.Stderr)
	case "modules":
		exitCode = commands.RunModules(args, os.Stdout, os.Stderr)
	case "options":
		exitCode = commands.RunOptions(args, os.Stdout, os.Stderr)
	case "lookup":
		exitCode = commands.RunLookup(args, os.Stdout, os.Stderr)
	case "encode":
		exitCode = commands.RunEncode(args, os.Stdout, os.Stderr)
	case "decode":
		exitCode = commands.RunDecode(args, os.Stdout, os.Stderr)
	case "catalog":
		exitCode = commands.RunCatalog(args, os.Stdout, os.Stderr)
	case "log":
		exitCode = commands.RunLog(args, os.Stdout, os.Stderr)
	case "shell":
		exitCode = commands.RunShell(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Printf("hidconf version %s (catalog schema %s)\n", version.Tool, version.Current)
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`hidconf - HID device configuration codec

Usage:
  hidconf <command> [options] [arguments]

Commands:
  devices    List supported device types
  modules    List the modules of a device
  options    Describe the options of a device module
  lookup     Find the device type of a USB product ID
  encode     Pack option values into a wire record
  decode     Unpack a wire record into option values
  catalog    Export or check a device catalog
  log        View a codec capture file (.clog)
  shell      Interactive encode/decode session

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  hidconf options gaming_mouse sensor
  hidconf encode gaming_mouse sensor cpi 1200
  hidconf decode dongle qos wifi_blacklist 4208
  hidconf encode -tag param_wifi dongle qos wifi_rating_inc=100 wifi_present_threshold=200 wifi_active_threshold=300
  hidconf catalog -o my_devices.yaml

For command-specific help, run:
  hidconf <command> -h`)
}
