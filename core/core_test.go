package core

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bfsim/instr"
)

var _ = Describe("Core", func() {
	var engine sim.Engine

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
	})

	It("should run one instruction per cycle", func() {
		var out bytes.Buffer

		c, err := NewBuilder[uint8]().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithConsole(NewConsole(nil, &out)).
			BuildCore("Core", compile("+++.", false))
		Expect(err).NotTo(HaveOccurred())

		c.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(c.Err()).NotTo(HaveOccurred())
		Expect(c.Machine().Halted()).To(BeTrue())
		Expect([]byte(out.Bytes())).To(Equal([]byte{3}))

		steps := float64(c.Machine().Steps())
		Expect(float64(engine.CurrentTime())).To(BeNumerically("~", steps*1e-9, 2e-9))
	})

	It("should stop on error", func() {
		c, err := NewBuilder[uint8]().
			WithEngine(engine).
			BuildCore("Core", compile("+<", false))
		Expect(err).NotTo(HaveOccurred())

		c.Start()
		Expect(engine.Run()).To(Succeed())

		Expect(errors.Is(c.Err(), ErrOutOfBounds)).To(BeTrue())
		Expect(c.Machine().Halted()).To(BeFalse())
	})

	It("should reject badly linked code", func() {
		_, err := NewBuilder[uint8]().
			WithEngine(engine).
			BuildCore("Core", instr.Sequence{
				instr.New(instr.LoopStart, 7),
				instr.New(instr.LoopEnd, 0),
				instr.New(instr.End, 0),
			})
		Expect(errors.Is(err, ErrBadInstruction)).To(BeTrue())
	})

	It("should need an engine", func() {
		_, err := NewBuilder[uint8]().BuildCore("Core", compile("", false))
		Expect(err).To(HaveOccurred())
	})
})
