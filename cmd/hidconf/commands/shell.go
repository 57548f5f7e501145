package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hidconf/hidconf-go/pkg/codec"
)

// Shell is an interactive session that keeps a selected device and module
// between commands.
type Shell struct {
	codec  *codec.Codec
	out    io.Writer
	device string
	module string
}

// NewShell creates a shell writing to out.
func NewShell(cdc *codec.Codec, out io.Writer) *Shell {
	return &Shell{codec: cdc, out: out}
}

// Prompt returns the prompt for the current selection.
func (s *Shell) Prompt() string {
	switch {
	case s.device == "":
		return "hidconf> "
	case s.module == "":
		return fmt.Sprintf("hidconf[%s]> ", s.device)
	default:
		return fmt.Sprintf("hidconf[%s/%s]> ", s.device, s.module)
	}
}

// Exec runs one command line. It returns false when the session should end.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "devices", "ls":
		for _, d := range s.codec.Catalog().Devices() {
			fmt.Fprintf(s.out, "%-24s 0x%04X:0x%04X\n", d.Type, d.VID, d.PID)
		}
	case "use":
		err = s.cmdUse(args)
	case "modules":
		err = s.cmdModules()
	case "options", "opts":
		err = s.cmdOptions()
	case "encode", "e":
		err = s.cmdEncode(args)
	case "decode", "d":
		err = s.cmdDecode(args)
	case "lookup":
		err = s.cmdLookup(args)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  devices                         - List device types
  use <device> [module]           - Select a device and module
  modules                         - List modules of the selected device
  options                         - Describe options of the selected module
  encode [-raw] <option> [value]  - Pack a value (-raw: hex bytes in wire order)
  decode <option> <hex>           - Unpack a record and show the option value
  lookup <pid>                    - Find the device type of a product ID
  quit                            - Leave the shell`)
}

func (s *Shell) cmdUse(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: use <device> [module]")
	}
	cat := s.codec.Catalog()
	if _, err := cat.Device(args[0]); err != nil {
		return err
	}
	s.device, s.module = args[0], ""
	if len(args) == 2 {
		if _, err := cat.Module(args[0], args[1]); err != nil {
			return err
		}
		s.module = args[1]
	}
	return nil
}

func (s *Shell) cmdModules() error {
	if s.device == "" {
		return errors.New("no device selected (use <device>)")
	}
	mods, err := s.codec.Catalog().ModulesFor(s.device)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, strings.Join(mods, "\n"))
	return nil
}

func (s *Shell) cmdOptions() error {
	if s.module == "" {
		return errors.New("no module selected (use <device> <module>)")
	}
	m, err := s.codec.Catalog().Module(s.device, s.module)
	if err != nil {
		return err
	}
	for _, d := range m.Options.All() {
		fmt.Fprintf(s.out, "%-24s %-4s %-24s %s\n", d.Name, d.Kind, d.Range, d.Description)
	}
	return nil
}

func (s *Shell) ref(name string) (codec.Ref, error) {
	if s.module == "" {
		return codec.Ref{}, errors.New("no module selected (use <device> <module>)")
	}
	return codec.Ref{Device: s.device, Module: s.module, Option: name}, nil
}

func (s *Shell) cmdEncode(args []string) error {
	raw := len(args) > 0 && args[0] == "-raw"
	if raw {
		args = args[1:]
	}
	if len(args) == 0 || len(args) > 2 || (raw && len(args) != 2) {
		return errors.New("usage: encode [-raw] <option> [value]")
	}
	ref, err := s.ref(args[0])
	if err != nil {
		return err
	}
	_, d, _, err := s.codec.Resolve(ref)
	if err != nil {
		return err
	}

	text := ""
	if len(args) == 2 {
		text = args[1]
	}
	v, err := parseArg(d, text, raw)
	if err != nil {
		return err
	}

	rec, err := s.codec.Encode(ref, v, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: % X\n", rec.Tag, rec.Payload)
	return nil
}

func (s *Shell) cmdDecode(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: decode <option> <hex>")
	}
	ref, err := s.ref(args[0])
	if err != nil {
		return err
	}
	raw, err := parseHex(strings.Join(args[1:], ""))
	if err != nil {
		return err
	}
	v, err := s.codec.Decode(ref, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s = %s\n", args[0], v)
	return nil
}

func (s *Shell) cmdLookup(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lookup <pid>")
	}
	pid, err := parseID(args[0])
	if err != nil {
		return err
	}
	dt, err := s.codec.Catalog().LookupByPID(pid)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, dt)
	return nil
}

// RunShell starts an interactive session.
func RunShell(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("shell", "Interactive encode/decode session", stderr)
	var common commonFlags
	common.register(fs)
	device := fs.String("device", "", "Preselect a device type")
	module := fs.String("module", "", "Preselect a module")
	if _, err := parseFlags(fs, args); err != nil {
		return flagExit(err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hidconf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return fail(stderr, fmt.Errorf("failed to create readline: %w", err))
	}
	defer rl.Close()

	// Codec events go through readline so they do not break the prompt.
	cdc, closeFn, err := common.newCodec(rl.Stderr())
	if err != nil {
		return fail(stderr, err)
	}
	defer closeFn()

	sh := NewShell(cdc, rl.Stdout())
	if *device != "" {
		use := []string{*device}
		if *module != "" {
			use = append(use, *module)
		}
		if err := sh.cmdUse(use); err != nil {
			return fail(stderr, err)
		}
	}
	sh.printHelp()

	for {
		rl.SetPrompt(sh.Prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return exitSuccess
		}
		if !sh.Exec(line) {
			return exitSuccess
		}
	}
}
