package optimize

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PassStats records what one pass did.
type PassStats struct {
	Name    string
	Matches int
	Before  int
	After   int
}

// Removed returns how many instructions the pass removed.
func (p PassStats) Removed() int {
	return p.Before - p.After
}

// Stats records what an Optimize call did.
type Stats struct {
	Before int
	After  int
	Passes []PassStats
}

// Removed returns how many instructions the optimizer removed in total.
func (s *Stats) Removed() int {
	return s.Before - s.After
}

// Table renders the statistics as a text table.
func (s *Stats) Table() string {
	t := table.NewWriter()
	t.SetTitle("Optimizer")
	t.AppendHeader(table.Row{"Pass", "Matches", "Before", "After", "Removed"})

	for _, p := range s.Passes {
		t.AppendRow(table.Row{p.Name, p.Matches, p.Before, p.After, p.Removed()})
	}

	t.AppendFooter(table.Row{"total", "", s.Before, s.After, s.Removed()})

	return t.Render()
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d -> %d instructions (%d removed)", s.Before, s.After, s.Removed())
}
