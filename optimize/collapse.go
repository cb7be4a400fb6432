package optimize

import "github.com/sarchlab/bfsim/instr"

// CollapseDuplicates replaces each maximal run of two or more instructions of
// the same collapsible kind with one instruction carrying the summed value.
// "------" becomes Sub(6).
type CollapseDuplicates struct{}

// Name returns the name of the pass.
func (CollapseDuplicates) Name() string {
	return "collapse-duplicates"
}

// Find returns one replacement per run of length two or more.
func (CollapseDuplicates) Find(code instr.Sequence) []instr.Replacement {
	var batch []instr.Replacement

	start := 0
	for start < len(code) {
		kind := code[start].Kind
		end := start + 1

		if !kind.Collapsible() {
			start = end
			continue
		}

		total := code[start].Value
		for end < len(code) && code[end].Kind == kind {
			total += code[end].Value
			end++
		}

		if end-start > 1 {
			batch = append(batch, instr.Replacement{
				Start: start,
				End:   end,
				With:  instr.New(kind, total),
			})
		}

		start = end
	}

	return batch
}
