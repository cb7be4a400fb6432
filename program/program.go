// Package program turns source text into a linked instruction sequence.
//
// The pipeline is Tokenize, then the optimizer passes (optional), then Link.
// A linked Program can be stored as a CBOR image and loaded again without
// re-parsing.
package program

import (
	"fmt"

	"github.com/sarchlab/bfsim/instr"
	"github.com/sarchlab/bfsim/optimize"
)

// Options controls Compile.
type Options struct {
	// Optimize enables the peephole passes.
	Optimize bool
	// Optimizer overrides the default pass list when Optimize is set.
	Optimizer *optimize.Optimizer
}

// Program is a linked instruction sequence ready to execute.
type Program struct {
	Code      instr.Sequence
	Optimized bool
	// Stats is nil when the program was not optimized.
	Stats *optimize.Stats
}

// Compile tokenizes, optionally optimizes, and links src.
func Compile(src string, opts Options) (*Program, error) {
	p := &Program{Code: Tokenize(src)}

	if opts.Optimize {
		o := opts.Optimizer
		if o == nil {
			o = optimize.NewOptimizer()
		}

		code, stats, err := o.Optimize(p.Code)
		if err != nil {
			return nil, fmt.Errorf("optimize: %w", err)
		}

		p.Code = code
		p.Stats = stats
		p.Optimized = true
	}

	if err := Link(p.Code); err != nil {
		return nil, err
	}

	return p, nil
}

// Len returns the number of instructions, including the trailing End.
func (p *Program) Len() int {
	return len(p.Code)
}

// Dump renders the program in the debug dump format.
func (p *Program) Dump() string {
	return instr.Dump(p.Code)
}
