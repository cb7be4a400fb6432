package verify

import (
	"fmt"

	"github.com/sarchlab/bfsim/instr"
)

// RunLint performs static lint checks on a linked instruction sequence.
// Returns a list of issues found, or empty list if no issues.
func RunLint(code instr.Sequence) []Issue {
	var issues []Issue

	// STRUCT: the sequence ends with exactly one End
	if len(code) == 0 || code[len(code)-1].Kind != instr.End {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Index:   -1,
			Message: "sequence does not end with End",
		})
	}

	for i, inst := range code {
		switch {
		case inst.Kind == instr.End && i != len(code)-1:
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   i,
				Message: "End before the last instruction",
			})
		case inst.Kind == instr.Invalid || inst.Kind > instr.Move:
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   i,
				Message: fmt.Sprintf("unexecutable instruction kind %s", inst.Kind),
			})
		}

		// VALUE: payloads
		if inst.Kind.Collapsible() && inst.Value < 1 {
			issues = append(issues, Issue{
				Type:    IssueValue,
				Index:   i,
				Message: fmt.Sprintf("%s with count %d", inst.Kind, inst.Value),
				Details: map[string]interface{}{"value": inst.Value},
			})
		}

		if inst.Kind == instr.Move && inst.Value == 0 {
			issues = append(issues, Issue{
				Type:    IssueValue,
				Index:   i,
				Message: "Move onto the current cell",
			})
		}
	}

	return append(issues, lintLoops(code)...)
}

// lintLoops matches brackets by nesting and checks every bracket points to
// its partner.
func lintLoops(code instr.Sequence) []Issue {
	var (
		issues []Issue
		stack  []int
	)

	partner := make(map[int]int)

	for i, inst := range code {
		switch inst.Kind {
		case instr.LoopStart:
			stack = append(stack, i)
		case instr.LoopEnd:
			if len(stack) == 0 {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					Index:   i,
					Message: "LoopEnd without LoopStart",
				})

				continue
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			partner[open] = i
			partner[i] = open
		}
	}

	for _, open := range stack {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Index:   open,
			Message: "LoopStart without LoopEnd",
		})
	}

	for i, inst := range code {
		want, ok := partner[i]
		if !ok {
			continue
		}

		switch inst.Value {
		case want:
		case instr.Unlinked:
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   i,
				Message: fmt.Sprintf("unlinked %s", inst.Kind),
			})
		default:
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   i,
				Message: fmt.Sprintf("%s points to %d, partner is %d", inst.Kind, inst.Value, want),
				Details: map[string]interface{}{"target": inst.Value, "partner": want},
			})
		}
	}

	return issues
}
