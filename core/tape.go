package core

const (
	// BaseTapeLength is the number of cells a tape starts with.
	BaseTapeLength = 1000
	// TapeGrowth is the number of spare cells added whenever the tape grows.
	TapeGrowth = 1000
)

// Tape is a growable array of cells with a hard upper length.
type Tape[T Cell] struct {
	cells []T
	max   int
}

// NewTape creates a zeroed tape that can grow up to limit cells.
func NewTape[T Cell](limit int) (*Tape[T], error) {
	if limit < 1 {
		return nil, &ConfigError{Field: "tape length", Value: limit, Err: ErrInvalidTapeLength}
	}

	return &Tape[T]{
		cells: make([]T, min(BaseTapeLength, limit)),
		max:   limit,
	}, nil
}

// Len returns the number of allocated cells.
func (t *Tape[T]) Len() int {
	return len(t.cells)
}

// Max returns the configured maximum tape length.
func (t *Tape[T]) Max() int {
	return t.max
}

// Get returns the value of cell i. Cells past the allocated length read as
// zero.
func (t *Tape[T]) Get(i int) T {
	if i < 0 || i >= len(t.cells) {
		return 0
	}

	return t.cells[i]
}

// Reserve makes cell i addressable, growing the tape by the deficit plus
// TapeGrowth cells, capped at Max. It returns false when i is outside
// [0, Max).
func (t *Tape[T]) Reserve(i int) bool {
	if i < 0 || i >= t.max {
		return false
	}

	if i < len(t.cells) {
		return true
	}

	n := min(i+1+TapeGrowth, t.max)
	grown := make([]T, n)
	copy(grown, t.cells)
	t.cells = grown

	return true
}

// Cells returns the allocated cells. The slice is shared with the tape.
func (t *Tape[T]) Cells() []T {
	return t.cells
}
