package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"famicore/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Run a program image
	checkMode               // Run test images
	disasmMode              // Disassemble a program image
	opcodesMode             // Show the opcode table
	inspectMode             // Print a state dump
	versionMode             // Show version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a program image."`
		Check   Check   `cmd:"" help:"Run test images and report their status."`
		Disasm  Disasm  `cmd:"" help:"Disassemble a program image."`
		Opcodes Opcodes `cmd:"" help:"Show the opcode table."`
		Inspect Inspect `cmd:"" help:"Print a machine state dump."`
		Version Version `cmd:"" help:"Show famicore version."`

		Config string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" type:"existingfile"`

		Frames      int      `name:"frames" help:"Number of frames to run, 0 runs forever." default:"-1"`
		Trace       *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		TraceFormat string   `name:"trace-format" help:"Trace log format, text or json (default from config)."`
		DumpState   string   `name:"dump-state" help:"Write machine state as JSON to file on exit." type:"path"`
		CPUProfile  string   `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
		Debug       string   `name:"debug" help:"${debug_help}" placeholder:"HOST:PORT"`
		Pause       bool     `name:"pause" help:"Start paused, requires --debug."`
	}

	Check struct {
		Images []string `arg:"" name:"/path/to/image" help:"Test images." type:"existingfile"`

		MaxFrames int  `name:"max-frames" help:"Give up after that many frames (default from config)."`
		Jobs      int  `name:"jobs" short:"j" help:"Number of images run in parallel, 0 for one per CPU."`
		Verbose   bool `name:"verbose" short:"v" help:"Show the text of passing tests."`
	}

	Disasm struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" type:"existingfile"`

		Start string `name:"start" help:"First address (default: reset vector)." placeholder:"ADDR"`
		Count int    `name:"count" short:"n" help:"Number of instructions." default:"32"`
	}

	Opcodes struct {
		JSON bool `name:"json" help:"Output JSON."`
	}

	Inspect struct {
		DumpPath string `arg:"" name:"/path/to/dump" help:"State dump written by run --dump-state." type:"existingfile"`

		RAM bool `name:"ram" help:"Also print the internal RAM."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"image_help":      "Program image, either an NROM iNES file or a raw binary.",
	"config_help":     "Configuration file (TOML).",
	"cpuprofile_help": "Write CPU profile to file.",
	"debug_help":      "Serve emulator control and debugger over RPC.",
	"log_help":        "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	cli, err := parseArgsE(args)
	checkf(err, "failed to parse command line")
	return cli
}

func parseArgsE(args []string, opts ...kong.Option) (CLI, error) {
	var cfg CLI
	opts = append([]kong.Option{
		kong.Name("famicore"),
		kong.Description("NES CPU core emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars,
	}, opts...)
	parser, err := kong.New(&cfg, opts...)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return cfg, err
	}
	if ctx.Error != nil {
		return cfg, ctx.Error
	}

	cmd, _, _ := strings.Cut(ctx.Command(), " ")
	switch cmd {
	case "check":
		cfg.mode = checkMode
	case "disasm":
		cfg.mode = disasmMode
	case "opcodes":
		cfg.mode = opcodesMode
	case "inspect":
		cfg.mode = inspectMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg, nil
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("log", &s); err != nil {
		return err
	}

	names := strings.Split(s, ",")
	for _, name := range names {
		if name == "no" && len(names) > 1 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
	}
	if s == "no" {
		log.Disable()
		return nil
	}

	mask, ok := log.ParseModuleMask(s)
	if !ok {
		return fmt.Errorf("unknown log module in %q", s)
	}
	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}

// parseAddr parses a 16-bit address, accepting the $C000, 0xC000 and C000
// forms.
func parseAddr(s string) (uint16, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	v, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
