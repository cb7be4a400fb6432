// Command bfsim compiles and runs tape programs.
//
// Usage:
//
//	bfsim [flags] [file]
//
// The program is read from file, or given inline with -r.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
	"github.com/sarchlab/bfsim/verify"
)

const verifyStepLimit = 10_000_000

var errUsage = errors.New("usage")

type options struct {
	raw        string
	file       string
	configPath string
	noOptimize bool
	cellSize   int
	tapeSize   int
	dump       bool
	compileOut string
	image      bool
	simulate   bool
	freqGHz    float64
	monitor    bool
	verify     bool
	stats      bool
	verbose    bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("bfsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.raw, "r", "", "program text (shorthand)")
	fs.StringVar(&o.raw, "raw", "", "program text instead of a file")
	fs.StringVar(&o.configPath, "config", "", "run configuration (.yaml, .yml or .toml)")
	fs.BoolVar(&o.noOptimize, "no-optimize", false, "disable the optimizer")
	fs.IntVar(&o.cellSize, "s", 8, "cell size in bits (shorthand)")
	fs.IntVar(&o.cellSize, "cell-size", 8, "cell size in bits: 8, 16, 32 or 64")
	fs.IntVar(&o.tapeSize, "t", core.DefaultTapeLength, "maximum tape length (shorthand)")
	fs.IntVar(&o.tapeSize, "tape-size", core.DefaultTapeLength, "maximum tape length")
	fs.BoolVar(&o.dump, "dump", false, "print the compiled program and exit")
	fs.StringVar(&o.compileOut, "compile", "", "write a compiled image to this file and exit")
	fs.BoolVar(&o.image, "image", false, "treat the file as a compiled image")
	fs.BoolVar(&o.simulate, "simulate", false, "run on the akita engine, one instruction per cycle")
	fs.Float64Var(&o.freqGHz, "freq", 1, "simulated frequency in GHz")
	fs.BoolVar(&o.monitor, "monitor", false, "serve the akita monitor during -simulate")
	fs.BoolVar(&o.verify, "verify", false, "lint and cross check the program, print a report")
	fs.BoolVar(&o.stats, "stats", false, "print optimizer statistics")
	fs.BoolVar(&o.verbose, "v", false, "trace logging to stderr")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})

	switch {
	case fs.NArg() > 1:
		return o, fmt.Errorf("%w: at most one file", errUsage)
	case fs.NArg() == 1 && o.raw != "":
		return o, fmt.Errorf("%w: both a file and -r given", errUsage)
	case fs.NArg() == 1:
		o.file = fs.Arg(0)
	case !o.set["r"] && !o.set["raw"]:
		return o, fmt.Errorf("%w: no program given", errUsage)
	}

	if o.image && o.file == "" {
		return o, fmt.Errorf("%w: -image needs a file", errUsage)
	}

	return o, nil
}

// runConfig layers flags that were given over the config file over the
// defaults.
func (o options) runConfig() (config.RunConfig, error) {
	cfg := config.Default()

	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	if o.set["s"] || o.set["cell-size"] {
		cfg = cfg.WithCellWidth(o.cellSize)
	}

	if o.set["t"] || o.set["tape-size"] {
		cfg = cfg.WithTapeLength(o.tapeSize)
	}

	if o.noOptimize {
		cfg = cfg.WithOptimize(false)
	}

	if o.dump {
		cfg = cfg.WithDump(true)
	}

	return cfg, cfg.Validate()
}

func setupLogging(verbose bool, stderr io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = core.LevelTrace
	}

	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

func readSource(o options) (string, error) {
	if o.file == "" {
		return o.raw, nil
	}

	data, err := os.ReadFile(o.file)
	if err != nil {
		return "", &core.IOError{Op: "read " + o.file, Err: err}
	}

	return string(data), nil
}

func loadProgram(o options, d api.Driver) (*program.Program, string, error) {
	if o.image {
		f, err := os.Open(o.file)
		if err != nil {
			return nil, "", &core.IOError{Op: "open " + o.file, Err: err}
		}
		defer f.Close()

		p, err := program.ReadImage(f)

		return p, "", err
	}

	src, err := readSource(o)
	if err != nil {
		return nil, "", err
	}

	p, err := d.Compile(src)

	return p, src, err
}

func writeImage(path string, p *program.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return &core.IOError{Op: "create " + path, Err: err}
	}

	if err := program.WriteImage(f, p); err != nil {
		f.Close()
		return &core.IOError{Op: "write " + path, Err: err}
	}

	return f.Close()
}

func run(o options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := o.runConfig()
	if err != nil {
		return err
	}

	b := api.NewDriverBuilder().WithConfig(cfg)

	if o.simulate {
		b = b.WithSimulation(sim.Freq(o.freqGHz) * sim.GHz)

		if o.monitor {
			monitor := monitoring.NewMonitor()
			b = b.WithMonitor(monitor)
			monitor.StartServer()
		}
	}

	d, err := b.Build()
	if err != nil {
		return err
	}

	p, src, err := loadProgram(o, d)
	if err != nil {
		return err
	}

	if o.stats && p.Stats != nil {
		fmt.Fprintln(stderr, p.Stats.Table())
	}

	if o.compileOut != "" {
		return writeImage(o.compileOut, p)
	}

	if o.verify {
		return runVerify(o, src, cfg, stdout)
	}

	r, err := d.Run(p, stdin, stdout)
	if err != nil {
		return err
	}

	if r.Simulated {
		fmt.Fprintf(stderr, "%d instructions in %.9fs simulated time\n",
			r.Steps, float64(r.Elapsed))
	}

	slog.Debug("RunDone", "steps", r.Steps, "pointer", r.Pointer)

	return nil
}

func runVerify(o options, src string, cfg config.RunConfig, stdout io.Writer) error {
	if o.image {
		return fmt.Errorf("%w: -verify needs source text", errUsage)
	}

	name := o.file
	if name == "" {
		name = "inline"
	}

	report, err := verify.GenerateReport(name, src, nil, cfg, verifyStepLimit)
	if err != nil {
		return err
	}

	if err := report.WriteReport(stdout); err != nil {
		return err
	}

	if !report.Passed() {
		return errors.New("verification failed")
	}

	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		atexit.Exit(1)
	}

	setupLogging(o.verbose, os.Stderr)

	if err := run(o, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "bfsim:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
