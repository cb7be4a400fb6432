package instr_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/instr"
)

var _ = Describe("Dump", func() {
	It("should indent loop bodies and put brackets on their own line", func() {
		seq := instr.Sequence{
			instr.New(instr.Add, 5),
			instr.New(instr.Right, 1),
			instr.New(instr.LoopStart, 5),
			instr.New(instr.Sub, 1),
			instr.New(instr.LoopStart, 7),
			instr.New(instr.Move, -2),
			instr.New(instr.LoopEnd, 4),
			instr.New(instr.LoopEnd, 2),
			instr.New(instr.Out, 0),
			instr.New(instr.End, 0),
		}

		Expect(instr.Dump(seq)).To(Equal(
			"+5 > \n" +
				"[ \n" +
				"  - \n" +
				"  [ \n" +
				"    M-2 \n" +
				"  ] \n" +
				"  \n" +
				"] \n"))
	})

	It("should write the pending line before every bracket", func() {
		seq := instr.Sequence{
			instr.New(instr.Add, 1),
			instr.New(instr.LoopStart, 3),
			instr.New(instr.Sub, 1),
			instr.New(instr.LoopEnd, 1),
			instr.New(instr.Right, 1),
			instr.New(instr.End, 0),
		}

		Expect(instr.Dump(seq)).To(Equal("+ \n[ \n  - \n] \n"))
	})

	It("should write an empty line between adjacent brackets", func() {
		seq := instr.Sequence{
			instr.New(instr.LoopStart, 1),
			instr.New(instr.LoopEnd, 0),
			instr.New(instr.End, 0),
		}

		Expect(instr.Dump(seq)).To(Equal("\n[ \n  \n] \n"))
	})

	It("should wrap once the line with trailing spaces reaches the width", func() {
		var seq instr.Sequence
		for i := 0; i < 45; i++ {
			seq = append(seq, instr.New(instr.Out, 0))
		}
		seq = append(seq, instr.New(instr.End, 0))

		Expect(instr.Dump(seq)).To(Equal(strings.Repeat(". ", 40) + "\n"))
	})

	It("should count the trailing space of counted tokens", func() {
		var seq instr.Sequence
		for i := 0; i < 27; i++ {
			seq = append(seq, instr.New(instr.Add, 10))
		}
		seq = append(seq, instr.New(instr.End, 0))

		Expect(instr.Dump(seq)).To(Equal(strings.Repeat("+10 ", 20) + "\n"))
	})

	It("should not write a short last line", func() {
		seq := instr.Sequence{instr.New(instr.Set, 0), instr.New(instr.End, 0)}

		Expect(instr.Dump(seq)).To(BeEmpty())
	})

	It("should write to a writer", func() {
		var buf bytes.Buffer
		seq := instr.Sequence{
			instr.New(instr.In, 0),
			instr.New(instr.LoopStart, 3),
			instr.New(instr.Out, 0),
			instr.New(instr.LoopEnd, 1),
			instr.New(instr.End, 0),
		}

		Expect(instr.WriteDump(&buf, seq)).To(Succeed())
		Expect(buf.String()).To(Equal(", \n[ \n  . \n] \n"))
	})
})
