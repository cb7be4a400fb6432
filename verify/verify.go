// Package verify provides debugging tools for checking compiled programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): structural and payload checks on a linked
// instruction sequence
//   - STRUCT checks: trailing End, unknown kinds, loop partner consistency
//   - VALUE checks: counted instructions with a count below 1, Move with a
//     zero offset
//
// 2. Cross check (crosscheck.go): runs a program with and without the
// optimizer on the same input and compares what both runs did
//   - output bytes, final status, data pointer and tape contents
//   - a run that hits the step limit makes the check inconclusive
//
// # Usage Example
//
//	p, _ := program.Compile(src, program.Options{Optimize: true})
//	issues := verify.RunLint(p.Code)
//	for _, issue := range issues {
//	    log.Printf("[%s] @%d: %s", issue.Type, issue.Index, issue.Message)
//	}
//
//	check := verify.CrossCheck(src, input, config.Default(), 1_000_000)
//	if !check.Agree {
//	    log.Fatal(check.Mismatch)
//	}
//
// GenerateReport runs both stages and WriteReport prints the result as
// tables.
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Broken sequence structure (End, kinds, loop links)
	IssueValue  IssueType = "VALUE"  // Payload that the engine cannot execute sensibly
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Index   int // instruction index, -1 for the whole sequence
	Message string
	Details map[string]interface{}
}
