package core

import (
	"bufio"
	"io"
)

// Console is the byte channel a machine reads input from and writes output
// to.
type Console interface {
	// ReadByte returns the next input byte or io.EOF.
	ReadByte() (byte, error)
	WriteByte(c byte) error
	Flush() error
}

type streamConsole struct {
	in  *bufio.Reader
	out *bufio.Writer
}

// NewConsole creates a console over a reader and a writer. A nil reader is
// an empty input and a nil writer discards output.
func NewConsole(r io.Reader, w io.Writer) Console {
	if r == nil {
		r = eofReader{}
	}

	if w == nil {
		w = io.Discard
	}

	return &streamConsole{
		in:  bufio.NewReader(r),
		out: bufio.NewWriter(w),
	}
}

func (c *streamConsole) ReadByte() (byte, error) {
	return c.in.ReadByte()
}

func (c *streamConsole) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

func (c *streamConsole) Flush() error {
	return c.out.Flush()
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
