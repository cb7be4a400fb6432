// Package api defines the driver API for running programs.
package api

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/instr"
	"github.com/sarchlab/bfsim/program"
)

// Driver compiles and runs programs under one run configuration.
type Driver interface {
	// Config returns the run configuration of the driver.
	Config() config.RunConfig

	// Compile turns source text into a linked program, optimized when the
	// configuration asks for it.
	Compile(src string) (*program.Program, error)

	// Run executes a linked program, reading input from in and writing
	// output to out. When the configuration enables the dump, the program
	// is written to out in the dump format and not executed.
	Run(p *program.Program, in io.Reader, out io.Writer) (Result, error)

	// Execute compiles and runs src.
	Execute(src string, in io.Reader, out io.Writer) (Result, error)
}

// Result describes a finished run.
type Result struct {
	Width   core.Width
	Steps   uint64
	Pointer int
	Halted  bool
	// Tape holds the allocated cells at the end of the run.
	Tape []uint64
	// Dumped is set when the program was dumped instead of executed.
	Dumped bool
	// Simulated is set when the run was driven by an akita engine. Elapsed
	// is the virtual time of the run.
	Simulated bool
	Elapsed   sim.VTimeInSec
}

type driverImpl struct {
	cfg       config.RunConfig
	width     core.Width
	simulate  bool
	freq      sim.Freq
	stepLimit uint64
	monitor   *monitoring.Monitor
}

func (d *driverImpl) Config() config.RunConfig {
	return d.cfg
}

func (d *driverImpl) Compile(src string) (*program.Program, error) {
	return program.Compile(src, program.Options{Optimize: d.cfg.Optimize})
}

func (d *driverImpl) Execute(src string, in io.Reader, out io.Writer) (Result, error) {
	p, err := d.Compile(src)
	if err != nil {
		return Result{Width: d.width}, err
	}

	return d.Run(p, in, out)
}

func (d *driverImpl) Run(p *program.Program, in io.Reader, out io.Writer) (Result, error) {
	if d.cfg.Dump {
		if err := instr.WriteDump(out, p.Code); err != nil {
			return Result{Width: d.width}, &core.IOError{Op: "write dump", Err: err}
		}

		return Result{Width: d.width, Dumped: true}, nil
	}

	console := core.NewConsole(in, out)

	switch d.width {
	case core.Width8:
		return runWidth[uint8](d, p.Code, console)
	case core.Width16:
		return runWidth[uint16](d, p.Code, console)
	case core.Width32:
		return runWidth[uint32](d, p.Code, console)
	case core.Width64:
		return runWidth[uint64](d, p.Code, console)
	default:
		return Result{}, &core.ConfigError{
			Field: "cell width",
			Value: int(d.width),
			Err:   core.ErrInvalidCellWidth,
		}
	}
}

func runWidth[T core.Cell](
	d *driverImpl,
	code instr.Sequence,
	console core.Console,
) (Result, error) {
	b := core.NewBuilder[T]().
		WithTapeLength(d.cfg.TapeLength).
		WithConsole(console).
		WithStepLimit(d.stepLimit)

	if d.simulate {
		return simulate(b, d.freq, d.monitor, code)
	}

	m, err := b.Build(code)
	if err != nil {
		return Result{Width: d.width}, err
	}

	err = m.Run()

	return resultOf(m), err
}

func simulate[T core.Cell](
	b core.Builder[T],
	freq sim.Freq,
	monitor *monitoring.Monitor,
	code instr.Sequence,
) (Result, error) {
	engine := sim.NewSerialEngine()
	if monitor != nil {
		monitor.RegisterEngine(engine)
	}

	c, err := b.WithEngine(engine).
		WithFreq(freq).
		BuildCore("BFSim.Core", code)
	if err != nil {
		return Result{Width: core.WidthOf[T]()}, err
	}

	if monitor != nil {
		monitor.RegisterComponent(c)
	}

	c.Start()

	if err := engine.Run(); err != nil {
		return resultOf(c.Machine()), fmt.Errorf("engine: %w", err)
	}

	r := resultOf(c.Machine())
	r.Simulated = true
	r.Elapsed = engine.CurrentTime()

	core.Trace("SimulationDone",
		"Time", float64(r.Elapsed*1e9),
		"Steps", r.Steps,
	)

	return r, c.Err()
}

func resultOf[T core.Cell](m *core.Machine[T]) Result {
	cells := m.Tape().Cells()
	tape := make([]uint64, len(cells))
	for i, v := range cells {
		tape[i] = uint64(v)
	}

	return Result{
		Width:   m.Width(),
		Steps:   m.Steps(),
		Pointer: m.Pointer(),
		Halted:  m.Halted(),
		Tape:    tape,
	}
}
