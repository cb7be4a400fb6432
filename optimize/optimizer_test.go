package optimize_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/instr"
	"github.com/sarchlab/bfsim/optimize"
	"github.com/sarchlab/bfsim/program"
)

type brokenPass struct{}

func (brokenPass) Name() string { return "broken" }

func (brokenPass) Find(code instr.Sequence) []instr.Replacement {
	return []instr.Replacement{
		{Start: 1, End: 3, With: instr.New(instr.Set, 0)},
		{Start: 0, End: 1, With: instr.New(instr.Set, 0)},
	}
}

var _ = Describe("Optimizer", func() {
	It("should run the passes in order", func() {
		var names []string
		for _, p := range optimize.NewOptimizer().Passes() {
			names = append(names, p.Name())
		}

		Expect(names).To(Equal([]string{"collapse-duplicates", "zero-cell", "move-value"}))
	})

	It("should combine all three passes", func() {
		code, stats, err := optimize.Optimize(program.Tokenize("+++++[-]>++[->+<]<[-->+<]"))

		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(instr.Sequence{
			instr.New(instr.Add, 5),
			instr.New(instr.Set, 0),
			instr.New(instr.Right, 1),
			instr.New(instr.Add, 2),
			instr.New(instr.Move, 1),
			instr.New(instr.Left, 1),
			instr.New(instr.LoopStart, instr.Unlinked),
			instr.New(instr.Sub, 2),
			instr.New(instr.Right, 1),
			instr.New(instr.Add, 1),
			instr.New(instr.Left, 1),
			instr.New(instr.LoopEnd, instr.Unlinked),
			instr.New(instr.End, 0),
		}))

		Expect(stats.Passes).To(HaveLen(3))
		Expect(stats.Passes[0].Matches).To(Equal(3))
		Expect(stats.Passes[1].Matches).To(Equal(1))
		Expect(stats.Passes[2].Matches).To(Equal(1))
		Expect(stats.Before).To(Equal(26))
		Expect(stats.After).To(Equal(13))
		Expect(stats.Removed()).To(Equal(13))
	})

	It("should render its statistics", func() {
		_, stats, err := optimize.Optimize(program.Tokenize("[-]"))

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Table()).To(ContainSubstring("zero-cell"))
		Expect(stats.String()).To(Equal("4 -> 2 instructions (2 removed)"))
	})

	It("should report passes that emit a bad batch", func() {
		o := optimize.NewOptimizerWithPasses(brokenPass{})

		_, _, err := o.Optimize(program.Tokenize("+++"))

		Expect(err).To(MatchError(ContainSubstring("pass broken")))
	})
})
