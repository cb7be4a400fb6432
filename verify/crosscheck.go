package verify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

// Outcome is what one run of a program did.
type Outcome struct {
	Output []byte
	Result api.Result
	Err    error
}

// CrossCheckResult compares a run without the optimizer against a run with
// it.
type CrossCheckResult struct {
	Plain     Outcome
	Optimized Outcome
	// Agree is set when both runs produced the same observable behavior.
	Agree bool
	// Inconclusive is set when a run hit the step limit.
	Inconclusive bool
	// Mismatch describes the first difference found.
	Mismatch string
}

// CrossCheck runs src twice on the same input, once without and once with
// the optimizer, under cfg. Each run stops after maxSteps instructions; zero
// means no limit.
func CrossCheck(src string, input []byte, cfg config.RunConfig, maxSteps uint64) CrossCheckResult {
	cfg.Dump = false

	r := CrossCheckResult{
		Plain:     runOnce(src, input, cfg.WithOptimize(false), maxSteps),
		Optimized: runOnce(src, input, cfg.WithOptimize(true), maxSteps),
	}

	if errors.Is(r.Plain.Err, core.ErrStepLimit) || errors.Is(r.Optimized.Err, core.ErrStepLimit) {
		r.Inconclusive = true
		r.Mismatch = "step limit reached"

		return r
	}

	r.Mismatch = compareOutcomes(r.Plain, r.Optimized)
	r.Agree = r.Mismatch == ""

	return r
}

func runOnce(src string, input []byte, cfg config.RunConfig, maxSteps uint64) Outcome {
	d, err := api.NewDriverBuilder().
		WithConfig(cfg).
		WithStepLimit(maxSteps).
		Build()
	if err != nil {
		return Outcome{Err: err}
	}

	var out bytes.Buffer

	res, err := d.Execute(src, bytes.NewReader(input), &out)

	return Outcome{Output: out.Bytes(), Result: res, Err: err}
}

func compareOutcomes(a, b Outcome) string {
	if !bytes.Equal(a.Output, b.Output) {
		return fmt.Sprintf("output differs: %q vs %q", a.Output, b.Output)
	}

	if errorClass(a.Err) != errorClass(b.Err) {
		return fmt.Sprintf("status differs: %v vs %v", a.Err, b.Err)
	}

	// A failing run stops at different points once moves are folded, so
	// only halted runs are compared cell by cell.
	if !a.Result.Halted || !b.Result.Halted {
		return ""
	}

	if a.Result.Pointer != b.Result.Pointer {
		return fmt.Sprintf("pointer differs: %d vs %d", a.Result.Pointer, b.Result.Pointer)
	}

	if i, ok := firstTapeDifference(a.Result.Tape, b.Result.Tape); ok {
		return fmt.Sprintf("cell %d differs: %d vs %d",
			i, cellAt(a.Result.Tape, i), cellAt(b.Result.Tape, i))
	}

	return ""
}

func errorClass(err error) string {
	var (
		parseErr  *program.ParseError
		boundsErr *core.BoundsError
		ioErr     *core.IOError
	)

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &parseErr):
		// Indices differ between the two sequences.
		return "parse " + parseErr.Err.Error()
	case errors.As(err, &boundsErr):
		return "bounds " + boundsErr.Side.String()
	case errors.As(err, &ioErr):
		return "io " + ioErr.Op
	default:
		return "error " + err.Error()
	}
}

func cellAt(tape []uint64, i int) uint64 {
	if i < len(tape) {
		return tape[i]
	}

	return 0
}

// firstTapeDifference compares two tapes, treating cells past the end of the
// shorter one as zero.
func firstTapeDifference(a, b []uint64) (int, bool) {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		if cellAt(a, i) != cellAt(b, i) {
			return i, true
		}
	}

	return 0, false
}
