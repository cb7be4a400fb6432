// Package optimize rewrites instruction sequences with peephole passes.
//
// Three passes run in a fixed order:
//
//  1. CollapseDuplicates folds runs of +, -, < and > into counted instructions.
//  2. ZeroCell turns [-] and [+] style loops with an odd step into Set(0).
//  3. MoveValue turns [->+<] style transfer loops into a single Move.
//
// ZeroCell and MoveValue match counted instructions, so they depend on
// CollapseDuplicates having run first.
package optimize

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/bfsim/instr"
)

// Pass is a single peephole rewrite. Find scans the sequence and returns
// non-overlapping replacements in ascending order; the Optimizer applies
// them as one batch.
type Pass interface {
	Name() string
	Find(code instr.Sequence) []instr.Replacement
}

// Optimizer runs passes over a sequence in order.
type Optimizer struct {
	passes []Pass
}

// DefaultPasses returns the passes in the order they must run.
func DefaultPasses() []Pass {
	return []Pass{
		CollapseDuplicates{},
		ZeroCell{},
		MoveValue{},
	}
}

// NewOptimizer creates an optimizer with the default passes.
func NewOptimizer() *Optimizer {
	return &Optimizer{passes: DefaultPasses()}
}

// NewOptimizerWithPasses creates an optimizer that runs the given passes.
func NewOptimizerWithPasses(passes ...Pass) *Optimizer {
	return &Optimizer{passes: passes}
}

// Passes returns the passes in run order.
func (o *Optimizer) Passes() []Pass {
	return o.passes
}

// Optimize runs every pass once and returns the rewritten sequence. The
// input sequence is reused as backing storage.
func (o *Optimizer) Optimize(code instr.Sequence) (instr.Sequence, *Stats, error) {
	stats := &Stats{Before: len(code)}

	for _, p := range o.passes {
		var err error

		before := len(code)
		batch := p.Find(code)

		code, err = code.Replace(batch)
		if err != nil {
			return code, stats, fmt.Errorf("pass %s: %w", p.Name(), err)
		}

		stats.Passes = append(stats.Passes, PassStats{
			Name:    p.Name(),
			Matches: len(batch),
			Before:  before,
			After:   len(code),
		})

		slog.Debug("OptimizerPass",
			"Pass", p.Name(),
			"Matches", len(batch),
			"Before", before,
			"After", len(code),
		)
	}

	stats.After = len(code)

	return code, stats, nil
}

// Optimize runs the default passes over code.
func Optimize(code instr.Sequence) (instr.Sequence, *Stats, error) {
	return NewOptimizer().Optimize(code)
}
