package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/core"
)

var _ = Describe("bfsim", func() {
	var (
		dir            string
		stdout, stderr bytes.Buffer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		stdout.Reset()
		stderr.Reset()
	})

	parse := func(args ...string) options {
		o, err := parseFlags(args, &stderr)
		Expect(err).NotTo(HaveOccurred())

		return o
	}

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		return path
	}

	It("should run inline source", func() {
		o := parse("-r", "++++++++[>++++++++<-]>+.")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.String()).To(Equal("A"))
	})

	It("should run a file with input", func() {
		path := write("echo.bf", ",[.,]")
		o := parse(path)
		Expect(run(o, strings.NewReader("hi"), &stdout, &stderr)).To(Succeed())
		Expect(stdout.String()).To(Equal("hi"))
	})

	It("should require a program", func() {
		_, err := parseFlags(nil, &stderr)
		Expect(errors.Is(err, errUsage)).To(BeTrue())
	})

	It("should dump the program", func() {
		o := parse("-dump", "-r", "++[>+<-]>.")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.String()).To(Equal("+2 \n[ \n  > + < - \n] \n"))
	})

	It("should dump without optimizing", func() {
		o := parse("-dump", "-no-optimize", "-r", "+[-]")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.String()).To(Equal("+ \n[ \n  - \n] \n"))
	})

	It("should let flags override the config file", func() {
		path := write("run.yaml", "cell_width: 16\ntape_length: 5\n")

		o := parse("-config", path, "-t", "100", "-r", "")
		cfg, err := o.runConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.CellWidth).To(Equal(16))
		Expect(cfg.TapeLength).To(Equal(100))
	})

	It("should reject a bad cell size", func() {
		o := parse("-s", "24", "-r", "+")
		err := run(o, nil, &stdout, &stderr)
		Expect(errors.Is(err, core.ErrInvalidCellWidth)).To(BeTrue())
	})

	It("should compile an image and run it", func() {
		img := filepath.Join(dir, "a.bfc")

		o := parse("-compile", img, "-r", "+++[->++<]>.")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.Len()).To(BeZero())

		o = parse("-image", img)
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.Bytes()).To(Equal([]byte{6}))
	})

	It("should report the simulated time", func() {
		o := parse("-simulate", "-freq", "2", "-r", "+.")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("simulated time"))
	})

	It("should print a verification report", func() {
		o := parse("-verify", "-r", "+++[-]>++[-<+>]<.")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("PASSED"))
	})

	It("should print optimizer statistics", func() {
		o := parse("-stats", "-r", "+++")
		Expect(run(o, nil, &stdout, &stderr)).To(Succeed())
		Expect(stderr.String()).To(ContainSubstring("collapse-duplicates"))
	})

	It("should surface runtime errors", func() {
		o := parse("-r", "<")
		err := run(o, nil, &stdout, &stderr)
		Expect(errors.Is(err, core.ErrOutOfBounds)).To(BeTrue())
	})
})
