package core

import (
	"fmt"
	"math/bits"
)

// Cell is the set of supported cell types. Arithmetic on them wraps modulo
// 2^width.
type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width is a cell width in bits.
type Width int

// Supported cell widths.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// ParseWidth validates a cell width given in bits.
func ParseWidth(b int) (Width, error) {
	w := Width(b)
	if !w.Valid() {
		return 0, &ConfigError{Field: "cell width", Value: b, Err: ErrInvalidCellWidth}
	}

	return w, nil
}

// Valid reports whether the width is supported.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	default:
		return false
	}
}

// Max returns the largest value a cell of this width holds.
func (w Width) Max() uint64 {
	if w >= Width64 {
		return ^uint64(0)
	}

	return 1<<uint(w) - 1
}

func (w Width) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}

// WidthOf returns the width of a cell type.
func WidthOf[T Cell]() Width {
	return Width(bits.Len64(uint64(^T(0))))
}
