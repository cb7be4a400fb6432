package program

import (
	"errors"
	"fmt"

	"github.com/sarchlab/bfsim/instr"
)

var (
	// ErrUnmatchedLoopEnd is reported for a ] with no open [.
	ErrUnmatchedLoopEnd = errors.New("unmatched ]")
	// ErrUnmatchedLoopStart is reported for a [ that is never closed.
	ErrUnmatchedLoopStart = errors.New("unmatched [")
)

// ParseError reports malformed source.
type ParseError struct {
	// Index is the position of the offending instruction in the sequence.
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at instruction %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Link stores in every loop instruction the index of its partner. It must run
// after optimization, since passes remove loops and shift indices.
func Link(code instr.Sequence) error {
	var open []int

	for i, inst := range code {
		switch inst.Kind {
		case instr.LoopStart:
			open = append(open, i)
		case instr.LoopEnd:
			if len(open) == 0 {
				return &ParseError{Index: i, Err: ErrUnmatchedLoopEnd}
			}

			start := open[len(open)-1]
			open = open[:len(open)-1]

			code[i].Value = start
			code[start].Value = i
		}
	}

	if len(open) > 0 {
		return &ParseError{Index: open[len(open)-1], Err: ErrUnmatchedLoopStart}
	}

	return nil
}
