package program

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/sarchlab/bfsim/instr"
)

const (
	imageMagic   = "BFSI"
	imageVersion = 1
)

// ErrBadImage is reported for images that cannot be executed.
var ErrBadImage = errors.New("bad program image")

// Image is the serialized form of a linked Program.
type Image struct {
	Magic     string         `cbor:"1,keyasint"`
	Version   int            `cbor:"2,keyasint"`
	Optimized bool           `cbor:"3,keyasint"`
	Code      instr.Sequence `cbor:"4,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("program: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalImage serializes a program to CBOR bytes.
func MarshalImage(p *Program) ([]byte, error) {
	return cborEncMode.Marshal(Image{
		Magic:     imageMagic,
		Version:   imageVersion,
		Optimized: p.Optimized,
		Code:      p.Code,
	})
}

// UnmarshalImage deserializes a program and relinks it, so stale or forged
// jump targets are never trusted.
func UnmarshalImage(data []byte) (*Program, error) {
	var img Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("program: unmarshal image: %w", err)
	}

	if img.Magic != imageMagic || img.Version != imageVersion {
		return nil, fmt.Errorf("%w: magic %q version %d", ErrBadImage, img.Magic, img.Version)
	}

	if err := checkImageCode(img.Code); err != nil {
		return nil, err
	}

	if err := Link(img.Code); err != nil {
		return nil, err
	}

	return &Program{Code: img.Code, Optimized: img.Optimized}, nil
}

func checkImageCode(code instr.Sequence) error {
	if len(code) == 0 || code[len(code)-1].Kind != instr.End {
		return fmt.Errorf("%w: missing trailing End", ErrBadImage)
	}

	for i, inst := range code {
		if inst.Kind == instr.Invalid || inst.Kind > instr.Move {
			return fmt.Errorf("%w: instruction %d has kind %s", ErrBadImage, i, inst.Kind)
		}

		if inst.Kind.Collapsible() && inst.Value < 1 {
			return fmt.Errorf("%w: instruction %d is %s with value %d", ErrBadImage, i, inst.Kind, inst.Value)
		}

		if inst.Kind == instr.End && i != len(code)-1 {
			return fmt.Errorf("%w: End at %d before the last instruction", ErrBadImage, i)
		}
	}

	return nil
}

// WriteImage writes the serialized program to w.
func WriteImage(w io.Writer, p *Program) error {
	data, err := MarshalImage(p)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// ReadImage reads a serialized program from r.
func ReadImage(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return UnmarshalImage(data)
}
