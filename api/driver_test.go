package api_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

const hello = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func build(b api.DriverBuilder) api.Driver {
	d, err := b.Build()
	Expect(err).NotTo(HaveOccurred())

	return d
}

var _ = Describe("Driver", func() {
	It("should print hello world", func() {
		var out bytes.Buffer

		d := build(api.NewDriverBuilder())
		r, err := d.Execute(hello, nil, &out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("Hello World!\n"))
		Expect(r.Halted).To(BeTrue())
		Expect(r.Width).To(Equal(core.Width8))
		Expect(r.Simulated).To(BeFalse())
	})

	It("should take fewer steps when optimized", func() {
		plain := build(api.NewDriverBuilder().
			WithConfig(config.Default().WithOptimize(false)))
		fast := build(api.NewDriverBuilder())

		r1, err := plain.Execute(hello, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		r2, err := fast.Execute(hello, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(r2.Steps).To(BeNumerically("<", r1.Steps))
		Expect(r2.Tape).To(Equal(r1.Tape))
	})

	DescribeTable("cell widths",
		func(bits int, want uint64) {
			d := build(api.NewDriverBuilder().
				WithConfig(config.Default().WithCellWidth(bits)))

			r, err := d.Execute("-", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Tape[0]).To(Equal(want))
			Expect(int(r.Width)).To(Equal(bits))
		},
		Entry("8", 8, uint64(0xff)),
		Entry("16", 16, uint64(0xffff)),
		Entry("32", 32, uint64(0xffffffff)),
		Entry("64", 64, ^uint64(0)),
	)

	It("should echo input", func() {
		var out bytes.Buffer

		d := build(api.NewDriverBuilder())
		_, err := d.Execute(",[.,]", strings.NewReader("abc"), &out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("abc"))
	})

	It("should dump instead of running", func() {
		var out bytes.Buffer

		d := build(api.NewDriverBuilder().
			WithConfig(config.Default().WithDump(true)))
		r, err := d.Execute("+++[>+<-].", nil, &out)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Dumped).To(BeTrue())
		Expect(out.String()).To(Equal("+3 \n[ \n  > + < - \n] \n"))
	})

	It("should report parse errors", func() {
		d := build(api.NewDriverBuilder())
		_, err := d.Execute("[[]", nil, nil)

		var pe *program.ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
	})

	It("should report bounds errors", func() {
		d := build(api.NewDriverBuilder().
			WithConfig(config.Default().WithTapeLength(3)))
		_, err := d.Execute(">>>", nil, nil)
		Expect(errors.Is(err, core.ErrOutOfBounds)).To(BeTrue())
	})

	It("should reject invalid configurations", func() {
		_, err := api.NewDriverBuilder().
			WithConfig(config.Default().WithCellWidth(7)).
			Build()
		Expect(errors.Is(err, core.ErrInvalidCellWidth)).To(BeTrue())
	})

	It("should honor the step limit", func() {
		d := build(api.NewDriverBuilder().WithStepLimit(50))
		_, err := d.Execute("+[]", nil, nil)
		Expect(errors.Is(err, core.ErrStepLimit)).To(BeTrue())
	})

	Context("simulated", func() {
		It("should match the direct run", func() {
			var direct, simulated bytes.Buffer

			r1, err := build(api.NewDriverBuilder()).Execute(hello, nil, &direct)
			Expect(err).NotTo(HaveOccurred())

			d := build(api.NewDriverBuilder().WithSimulation(1 * sim.GHz))
			r2, err := d.Execute(hello, nil, &simulated)
			Expect(err).NotTo(HaveOccurred())

			Expect(simulated.String()).To(Equal(direct.String()))
			Expect(r2.Simulated).To(BeTrue())
			Expect(r2.Steps).To(Equal(r1.Steps))
			Expect(float64(r2.Elapsed)).To(
				BeNumerically("~", float64(r2.Steps)*1e-9, 2e-9))
		})

		It("should scale with the frequency", func() {
			d := build(api.NewDriverBuilder().WithSimulation(1 * sim.MHz))
			r, err := d.Execute("+++", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(float64(r.Elapsed)).To(
				BeNumerically("~", float64(r.Steps)*1e-6, 2e-6))
		})

		It("should run with a monitor attached", func() {
			var out bytes.Buffer

			d := build(api.NewDriverBuilder().
				WithSimulation(1 * sim.GHz).
				WithMonitor(monitoring.NewMonitor()))
			_, err := d.Execute("++++++++[>++++++++<-]>+.", nil, &out)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(Equal("A"))
		})

		It("should surface machine errors", func() {
			d := build(api.NewDriverBuilder().WithSimulation(1 * sim.GHz))
			_, err := d.Execute("<", nil, nil)
			Expect(errors.Is(err, core.ErrOutOfBounds)).To(BeTrue())
		})
	})
})
