package program

import "github.com/sarchlab/bfsim/instr"

// ISA maps source characters to the instructions they produce.
type ISA struct {
	name     string
	commands map[rune]instr.Instruction
}

// NewISA creates an empty instruction set.
func NewISA(name string) *ISA {
	return &ISA{
		name:     name,
		commands: make(map[rune]instr.Instruction),
	}
}

// Name returns the name of the instruction set.
func (isa *ISA) Name() string {
	return isa.name
}

func (isa *ISA) register(c rune, inst instr.Instruction) {
	isa.commands[c] = inst
}

// Lookup returns the instruction a character produces. Characters outside the
// set are comments.
func (isa *ISA) Lookup(c rune) (instr.Instruction, bool) {
	inst, ok := isa.commands[c]
	return inst, ok
}

// DefaultISA is the eight-command tape language.
var DefaultISA = newDefaultISA()

func newDefaultISA() *ISA {
	isa := NewISA("tape-8")

	isa.register('+', instr.New(instr.Add, 1))
	isa.register('-', instr.New(instr.Sub, 1))
	isa.register('<', instr.New(instr.Left, 1))
	isa.register('>', instr.New(instr.Right, 1))
	isa.register('.', instr.New(instr.Out, 0))
	isa.register(',', instr.New(instr.In, 0))
	isa.register('[', instr.New(instr.LoopStart, instr.Unlinked))
	isa.register(']', instr.New(instr.LoopEnd, instr.Unlinked))

	return isa
}
