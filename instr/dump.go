package instr

import (
	"io"
	"strings"
)

// DumpLineWidth is the length at which a dump line is flushed.
const DumpLineWidth = 80

// Dump renders the sequence as indented text. Every token is followed by one
// space. Loop brackets sit on their own line, one indentation level of two
// spaces per nesting depth, and the pending line is written out before each
// bracket even when it is empty. Other tokens share a line until it reaches
// DumpLineWidth characters. A last line shorter than that is not written.
func Dump(s Sequence) string {
	var out strings.Builder

	d := dumper{out: &out}
	for _, inst := range s {
		d.add(inst)
	}

	return out.String()
}

// WriteDump writes the dump of s to w.
func WriteDump(w io.Writer, s Sequence) error {
	_, err := io.WriteString(w, Dump(s))
	return err
}

type dumper struct {
	out   *strings.Builder
	line  strings.Builder
	depth int
}

func (d *dumper) add(inst Instruction) {
	part := inst.String() + " "
	bracket := inst.Kind == LoopStart || inst.Kind == LoopEnd

	if !bracket {
		d.line.WriteString(part)
	}

	if d.line.Len() >= DumpLineWidth || bracket {
		d.writeLine(d.line.String())
		d.line.Reset()
	}

	if inst.Kind == LoopEnd && d.depth > 0 {
		d.depth--
	}

	if bracket {
		d.writeLine(part)
	}

	if inst.Kind == LoopStart {
		d.depth++
	}
}

func (d *dumper) writeLine(text string) {
	d.out.WriteString(strings.Repeat("  ", d.depth))
	d.out.WriteString(text)
	d.out.WriteByte('\n')
}
