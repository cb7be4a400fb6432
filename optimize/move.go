package optimize

import "github.com/sarchlab/bfsim/instr"

// moveWindow is the length of the transfer loop pattern.
const moveWindow = 6

// MoveValue replaces the transfer loop
//
//	[ -1 <n +1 >n ]   or   [ -1 >n +1 <n ]
//
// by Move(-n) or Move(+n). The loop adds the current cell into the cell n steps
// away and leaves the current cell at zero. The decrement must come first;
// [>+<-] is not matched.
type MoveValue struct{}

// Name returns the name of the pass.
func (MoveValue) Name() string {
	return "move-value"
}

// Find returns one replacement per matched transfer loop.
func (MoveValue) Find(code instr.Sequence) []instr.Replacement {
	var batch []instr.Replacement

	for i := 0; i+moveWindow <= len(code); i++ {
		offset, ok := matchMove(code[i : i+moveWindow])
		if !ok {
			continue
		}

		batch = append(batch, instr.Replacement{
			Start: i,
			End:   i + moveWindow,
			With:  instr.New(instr.Move, offset),
		})
		i += moveWindow - 1
	}

	return batch
}

func matchMove(w instr.Sequence) (offset int, ok bool) {
	if w[0].Kind != instr.LoopStart || w[5].Kind != instr.LoopEnd {
		return 0, false
	}

	if w[1] != instr.New(instr.Sub, 1) || w[3] != instr.New(instr.Add, 1) {
		return 0, false
	}

	there, back := w[2], w[4]
	if there.Kind != instr.Left && there.Kind != instr.Right {
		return 0, false
	}

	if back.Kind != there.Kind.Opposite() || back.Value != there.Value || there.Value < 1 {
		return 0, false
	}

	if there.Kind == instr.Left {
		return -there.Value, true
	}

	return there.Value, true
}
