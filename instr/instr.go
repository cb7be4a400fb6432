// Package instr defines the instruction sequence shared by the tokenizer,
// the optimizer, the loop linker and the execution engine.
package instr

import (
	"fmt"
	"strconv"
)

// Kind is the tag of an Instruction.
type Kind uint8

const (
	// Invalid never appears in a finished sequence. Passes use it as a
	// "no match" marker.
	Invalid Kind = iota
	End
	Add
	Sub
	Left
	Right
	Out
	In
	LoopStart
	LoopEnd
	// Set assigns Value to the current cell.
	Set
	// Move adds the current cell into the cell Value steps away and zeroes
	// the current cell.
	Move
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	End:       "End",
	Add:       "Add",
	Sub:       "Sub",
	Left:      "Left",
	Right:     "Right",
	Out:       "Out",
	In:        "In",
	LoopStart: "LoopStart",
	LoopEnd:   "LoopEnd",
	Set:       "Set",
	Move:      "Move",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Collapsible reports whether consecutive instructions of this kind can be
// folded into one counted instruction.
func (k Kind) Collapsible() bool {
	switch k {
	case Add, Sub, Left, Right:
		return true
	default:
		return false
	}
}

// Opposite returns the reverse pointer direction for Left and Right, and
// Invalid for every other kind.
func (k Kind) Opposite() Kind {
	switch k {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Invalid
	}
}

// Unlinked is the value a loop instruction carries before linking.
const Unlinked = -1

// Instruction is a tagged instruction with a signed payload.
//
//   - Add, Sub: magnitude
//   - Left, Right: step count
//   - LoopStart, LoopEnd: index of the partner, Unlinked before linking
//   - Set: value to assign
//   - Move: signed offset of the destination cell
type Instruction struct {
	Kind  Kind `cbor:"1,keyasint"`
	Value int  `cbor:"2,keyasint"`
}

// New creates an instruction.
func New(kind Kind, value int) Instruction {
	return Instruction{Kind: kind, Value: value}
}

// String renders the instruction as a dump token.
func (i Instruction) String() string {
	switch i.Kind {
	case Add:
		return counted("+", i.Value)
	case Sub:
		return counted("-", i.Value)
	case Left:
		return counted("<", i.Value)
	case Right:
		return counted(">", i.Value)
	case In:
		return ","
	case Out:
		return "."
	case LoopStart:
		return "["
	case LoopEnd:
		return "]"
	case Set:
		return "S" + strconv.Itoa(i.Value)
	case Move:
		return "M" + strconv.Itoa(i.Value)
	case End:
		return ":"
	default:
		return "INVALID"
	}
}

func counted(symbol string, n int) string {
	if n == 1 {
		return symbol
	}

	return symbol + strconv.Itoa(n)
}

// Sequence is an ordered list of instructions terminated by one End.
type Sequence []Instruction

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)

	return out
}

// Count returns how many instructions of the given kind the sequence holds.
func (s Sequence) Count(kind Kind) int {
	n := 0
	for _, inst := range s {
		if inst.Kind == kind {
			n++
		}
	}

	return n
}

// Replacement replaces the half-open range [Start, End) with a single
// instruction.
type Replacement struct {
	Start int
	End   int
	With  Instruction
}

func (r Replacement) String() string {
	return fmt.Sprintf("[%d,%d)->%s", r.Start, r.End, r.With)
}

// Replace applies a batch of replacements and returns the new sequence.
// The batch must be sorted by ascending Start and must not overlap. Edits are
// applied from the highest Start down so that indices of pending edits stay
// valid.
func (s Sequence) Replace(batch []Replacement) (Sequence, error) {
	prevEnd := 0
	for n, r := range batch {
		if r.Start < prevEnd || r.Start >= r.End || r.End > len(s) {
			return s, fmt.Errorf("instr: replacement %d %s is out of order or out of range", n, r)
		}
		prevEnd = r.End
	}

	for n := len(batch) - 1; n >= 0; n-- {
		r := batch[n]
		s[r.Start] = r.With
		s = append(s[:r.Start+1], s[r.End:]...)
	}

	return s, nil
}
