package program_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/instr"
	"github.com/sarchlab/bfsim/program"
)

var _ = Describe("Link", func() {
	It("should point partners at each other", func() {
		code := program.Tokenize("+[>[-]<]")

		Expect(program.Link(code)).To(Succeed())
		Expect(code[1]).To(Equal(instr.New(instr.LoopStart, 7)))
		Expect(code[3]).To(Equal(instr.New(instr.LoopStart, 5)))
		Expect(code[5]).To(Equal(instr.New(instr.LoopEnd, 3)))
		Expect(code[7]).To(Equal(instr.New(instr.LoopEnd, 1)))
	})

	It("should report an unmatched ]", func() {
		err := program.Link(program.Tokenize("+]"))

		var perr *program.ParseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Index).To(Equal(1))
		Expect(err).To(MatchError(program.ErrUnmatchedLoopEnd))
	})

	It("should report an unmatched [", func() {
		err := program.Link(program.Tokenize("[[]"))

		var perr *program.ParseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Index).To(Equal(0))
		Expect(err).To(MatchError(program.ErrUnmatchedLoopStart))
	})

	It("should accept code without loops", func() {
		Expect(program.Link(program.Tokenize("+++."))).To(Succeed())
	})
})
