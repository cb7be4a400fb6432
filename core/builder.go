package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bfsim/instr"
)

// DefaultTapeLength is the tape limit used when none is configured.
const DefaultTapeLength = 30000

// Builder can create new machines and cores.
type Builder[T Cell] struct {
	engine     sim.Engine
	freq       sim.Freq
	tapeLength int
	console    Console
	stepLimit  uint64
}

// NewBuilder creates a builder with the default tape length, an empty input
// and discarded output.
func NewBuilder[T Cell]() Builder[T] {
	return Builder[T]{
		freq:       1 * sim.GHz,
		tapeLength: DefaultTapeLength,
	}
}

// WithEngine sets the engine.
func (b Builder[T]) WithEngine(engine sim.Engine) Builder[T] {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder[T]) WithFreq(freq sim.Freq) Builder[T] {
	b.freq = freq
	return b
}

// WithTapeLength sets the maximum number of cells.
func (b Builder[T]) WithTapeLength(n int) Builder[T] {
	b.tapeLength = n
	return b
}

// WithConsole sets the input and output of the machine.
func (b Builder[T]) WithConsole(c Console) Builder[T] {
	b.console = c
	return b
}

// WithStepLimit stops the machine with ErrStepLimit after n steps. Zero means
// no limit.
func (b Builder[T]) WithStepLimit(n uint64) Builder[T] {
	b.stepLimit = n
	return b
}

// Build creates a machine for linked code. Loop instructions must point to
// each other and counted instructions must carry a count of at least 1.
func (b Builder[T]) Build(code instr.Sequence) (*Machine[T], error) {
	if len(code) == 0 || code[len(code)-1].Kind != instr.End {
		return nil, ErrMissingEnd
	}

	if err := checkCode(code); err != nil {
		return nil, err
	}

	tape, err := NewTape[T](b.tapeLength)
	if err != nil {
		return nil, err
	}

	console := b.console
	if console == nil {
		console = NewConsole(nil, nil)
	}

	m := &Machine[T]{
		state: machineState[T]{
			Tape: tape,
			Code: code,
		},
		emu:   instEmulator[T]{console: console},
		limit: b.stepLimit,
	}

	return m, nil
}

// BuildCore creates a machine and wraps it in a ticking component that runs
// one instruction per cycle.
func (b Builder[T]) BuildCore(name string, code instr.Sequence) (*Core[T], error) {
	if b.engine == nil {
		return nil, fmt.Errorf("core %s: no engine", name)
	}

	m, err := b.Build(code)
	if err != nil {
		return nil, err
	}

	c := &Core[T]{machine: m}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c, nil
}

func checkCode(code instr.Sequence) error {
	for i, inst := range code {
		switch {
		case inst.Kind.Collapsible() && inst.Value < 1:
			return fmt.Errorf("%w %s at %d: count below 1", ErrBadInstruction, inst, i)
		case inst.Kind == instr.LoopStart:
			if !linked(code, i, instr.LoopEnd, inst.Value > i) {
				return fmt.Errorf("%w %s at %d: no matching LoopEnd at %d",
					ErrBadInstruction, inst, i, inst.Value)
			}
		case inst.Kind == instr.LoopEnd:
			if !linked(code, i, instr.LoopStart, inst.Value < i) {
				return fmt.Errorf("%w %s at %d: no matching LoopStart at %d",
					ErrBadInstruction, inst, i, inst.Value)
			}
		}
	}

	return nil
}

// linked reports whether the loop instruction at i and the one it points to
// are partners of each other.
func linked(code instr.Sequence, i int, partner instr.Kind, ordered bool) bool {
	j := code[i].Value
	if !ordered || j < 0 || j >= len(code) {
		return false
	}

	return code[j].Kind == partner && code[j].Value == i
}
