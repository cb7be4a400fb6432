package optimize

import "github.com/sarchlab/bfsim/instr"

// ZeroCell replaces a loop whose only body is an Add or Sub with an odd value
// by Set(0).
//
// Repeatedly adding k to a cell modulo 2^w reaches zero from every start value
// only when k is coprime with 2^w, that is when k is odd. Loops with an even
// step may never terminate and are left alone.
type ZeroCell struct{}

// Name returns the name of the pass.
func (ZeroCell) Name() string {
	return "zero-cell"
}

// Find returns one replacement per matched three-instruction loop.
func (ZeroCell) Find(code instr.Sequence) []instr.Replacement {
	var batch []instr.Replacement

	for i := 0; i+2 < len(code); i++ {
		if code[i].Kind != instr.LoopStart || code[i+2].Kind != instr.LoopEnd {
			continue
		}

		body := code[i+1]
		if body.Kind != instr.Add && body.Kind != instr.Sub {
			continue
		}

		if body.Value%2 == 0 {
			continue
		}

		batch = append(batch, instr.Replacement{
			Start: i,
			End:   i + 3,
			With:  instr.New(instr.Set, 0),
		})
		i += 2
	}

	return batch
}
