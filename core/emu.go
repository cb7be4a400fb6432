package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/bfsim/instr"
)

type machineState[T Cell] struct {
	IP      int
	Pointer int
	Steps   uint64
	Halted  bool
	Tape    *Tape[T]
	Code    instr.Sequence
}

type instEmulator[T Cell] struct {
	console Console
}

// RunInst executes the instruction at state.IP and advances the IP.
func (i instEmulator[T]) RunInst(state *machineState[T]) error {
	inst := state.Code[state.IP]

	var err error

	switch inst.Kind {
	case instr.Add:
		i.runAdd(inst, state)
	case instr.Sub:
		i.runSub(inst, state)
	case instr.Left:
		err = i.runLeft(inst, state)
	case instr.Right:
		err = i.runRight(inst, state)
	case instr.In:
		err = i.runIn(state)
	case instr.Out:
		err = i.runOut(state)
	case instr.LoopStart:
		i.runLoopStart(inst, state)
		return nil
	case instr.LoopEnd:
		i.runLoopEnd(inst, state)
		return nil
	case instr.Set:
		i.runSet(inst, state)
	case instr.Move:
		err = i.runMove(inst, state)
	case instr.End:
		state.Halted = true
		return nil
	default:
		return fmt.Errorf("%w %s at %d", ErrBadInstruction, inst, state.IP)
	}

	if err != nil {
		return err
	}

	state.IP++

	return nil
}

func (i instEmulator[T]) cell(state *machineState[T]) *T {
	return &state.Tape.cells[state.Pointer]
}

func (i instEmulator[T]) runAdd(inst instr.Instruction, state *machineState[T]) {
	*i.cell(state) += T(inst.Value)
}

func (i instEmulator[T]) runSub(inst instr.Instruction, state *machineState[T]) {
	*i.cell(state) -= T(inst.Value)
}

func (i instEmulator[T]) runLeft(inst instr.Instruction, state *machineState[T]) error {
	if state.Pointer < inst.Value {
		return &BoundsError{
			Side:    SideLeft,
			Pointer: state.Pointer,
			Offset:  -inst.Value,
			Limit:   state.Tape.Max(),
		}
	}

	state.Pointer -= inst.Value

	return nil
}

func (i instEmulator[T]) runRight(inst instr.Instruction, state *machineState[T]) error {
	target := state.Pointer + inst.Value
	if !state.Tape.Reserve(target) {
		return &BoundsError{
			Side:    SideRight,
			Pointer: state.Pointer,
			Offset:  inst.Value,
			Limit:   state.Tape.Max(),
		}
	}

	state.Pointer = target

	return nil
}

func (i instEmulator[T]) runIn(state *machineState[T]) error {
	b, err := i.console.ReadByte()
	if errors.Is(err, io.EOF) {
		*i.cell(state) = 0
		return nil
	}

	if err != nil {
		return &IOError{Op: "read input", Err: err}
	}

	*i.cell(state) = T(b)

	return nil
}

func (i instEmulator[T]) runOut(state *machineState[T]) error {
	if err := i.console.WriteByte(byte(*i.cell(state))); err != nil {
		return &IOError{Op: "write output", Err: err}
	}

	if err := i.console.Flush(); err != nil {
		return &IOError{Op: "flush output", Err: err}
	}

	return nil
}

func (i instEmulator[T]) runLoopStart(inst instr.Instruction, state *machineState[T]) {
	if *i.cell(state) == 0 {
		state.IP = inst.Value + 1
		return
	}

	state.IP++
}

func (i instEmulator[T]) runLoopEnd(inst instr.Instruction, state *machineState[T]) {
	if *i.cell(state) != 0 {
		state.IP = inst.Value + 1
		return
	}

	state.IP++
}

func (i instEmulator[T]) runSet(inst instr.Instruction, state *machineState[T]) {
	*i.cell(state) = T(inst.Value)
}

func (i instEmulator[T]) runMove(inst instr.Instruction, state *machineState[T]) error {
	src := i.cell(state)
	if *src == 0 {
		return nil
	}

	dst := state.Pointer + inst.Value
	if dst < 0 {
		return &BoundsError{
			Side:    SideLeft,
			Pointer: state.Pointer,
			Offset:  inst.Value,
			Limit:   state.Tape.Max(),
		}
	}

	if !state.Tape.Reserve(dst) {
		return &BoundsError{
			Side:    SideRight,
			Pointer: state.Pointer,
			Offset:  inst.Value,
			Limit:   state.Tape.Max(),
		}
	}

	// Reserve may have reallocated the tape.
	src = i.cell(state)
	state.Tape.cells[dst] += *src
	*src = 0

	return nil
}

// Machine executes a linked instruction sequence over a tape of T cells.
type Machine[T Cell] struct {
	state machineState[T]
	emu   instEmulator[T]
	limit uint64
}

// Step executes one instruction. It returns ErrStepLimit once the machine
// has used up its step limit, and nil without doing anything once the machine
// has halted.
func (m *Machine[T]) Step() error {
	if m.state.Halted {
		return nil
	}

	if m.limit > 0 && m.state.Steps >= m.limit {
		return fmt.Errorf("%w after %d steps", ErrStepLimit, m.state.Steps)
	}

	if err := m.emu.RunInst(&m.state); err != nil {
		return err
	}

	m.state.Steps++

	return nil
}

// Run executes instructions until End or the first error.
func (m *Machine[T]) Run() error {
	for !m.state.Halted {
		if err := m.Step(); err != nil {
			LogState(m)
			return err
		}
	}

	Trace("MachineHalted", "steps", m.state.Steps, "tape", m.state.Tape.Len())

	return nil
}

// Steps returns the number of instructions executed so far, End included.
func (m *Machine[T]) Steps() uint64 {
	return m.state.Steps
}

// Pointer returns the data pointer.
func (m *Machine[T]) Pointer() int {
	return m.state.Pointer
}

// IP returns the index of the next instruction.
func (m *Machine[T]) IP() int {
	return m.state.IP
}

// Halted reports whether End has been executed.
func (m *Machine[T]) Halted() bool {
	return m.state.Halted
}

// Cell returns the value of cell i.
func (m *Machine[T]) Cell(i int) T {
	return m.state.Tape.Get(i)
}

// Tape returns the machine's tape.
func (m *Machine[T]) Tape() *Tape[T] {
	return m.state.Tape
}

// Width returns the cell width of the machine.
func (m *Machine[T]) Width() Width {
	return WidthOf[T]()
}
