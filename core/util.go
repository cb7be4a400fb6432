package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const LevelTrace slog.Level = slog.LevelDebug - 4

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// RenderState renders the cells around the data pointer as a table. window is
// the number of cells shown on each side of the pointer.
func RenderState[T Cell](m *Machine[T], window int) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Machine (%s) ip=%d ptr=%d steps=%d",
		m.Width(), m.IP(), m.Pointer(), m.Steps()))
	t.AppendHeader(table.Row{"Cell", "Value", ""})

	lo := max(m.Pointer()-window, 0)
	hi := min(m.Pointer()+window, m.Tape().Len()-1)

	for i := lo; i <= hi; i++ {
		mark := ""
		if i == m.Pointer() {
			mark = "<"
		}
		t.AppendRow(table.Row{i, uint64(m.Cell(i)), mark})
	}

	return t.Render()
}

func LogState[T Cell](m *Machine[T]) {
	slog.Debug("MachineState",
		"IP", m.IP(),
		"Pointer", m.Pointer(),
		"Steps", m.Steps(),
		"TapeLen", m.Tape().Len(),
		"Cell", uint64(m.Cell(m.Pointer())),
	)
}
