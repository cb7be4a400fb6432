package program

import "github.com/sarchlab/bfsim/instr"

// Tokenize converts source text into an instruction sequence using the
// default instruction set. Unknown characters are comments. The result always
// ends with End. Brackets are not checked here; Link reports unmatched ones.
func Tokenize(src string) instr.Sequence {
	return DefaultISA.Tokenize(src)
}

// Tokenize converts source text into an instruction sequence.
func (isa *ISA) Tokenize(src string) instr.Sequence {
	code := make(instr.Sequence, 0, len(src)+1)

	for _, c := range src {
		if inst, ok := isa.Lookup(c); ok {
			code = append(code, inst)
		}
	}

	return append(code, instr.New(instr.End, 0))
}
