package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	// ImageMagic identifies a serialized program image.
	ImageMagic = "BFDB"

	// ImageVersion is the current image format version.
	ImageVersion uint16 = 1
)

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
}

// ImageError reports a malformed or incompatible program image.
type ImageError struct {
	Reason string
}

// Error implements the error interface.
func (e *ImageError) Error() string {
	return "bad program image: " + e.Reason
}

// image is the wire form of a Program. Operators and operands travel as
// parallel arrays so the encoding stays compact.
type image struct {
	Magic   string   `cbor:"magic"`
	Version uint16   `cbor:"version"`
	Ops     []uint8  `cbor:"ops"`
	Args    []uint16 `cbor:"args"`
}

// MarshalImage serializes a program to its canonical CBOR image.
func MarshalImage(p *Program) ([]byte, error) {
	img := image{
		Magic:   ImageMagic,
		Version: ImageVersion,
		Ops:     make([]uint8, p.Len()),
		Args:    make([]uint16, p.Len()),
	}
	for i, inst := range p.Instructions {
		img.Ops[i] = uint8(inst.Op)
		img.Args[i] = inst.Arg
	}

	data, err := cborEncMode.Marshal(&img)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal program image: %w", err)
	}
	return data, nil
}

// UnmarshalImage deserializes a program image, rejecting anything that is
// not a structurally valid program.
func UnmarshalImage(data []byte) (*Program, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("failed to unmarshal program image: %w", err)
	}

	if img.Magic != ImageMagic {
		return nil, &ImageError{Reason: fmt.Sprintf("bad magic %q", img.Magic)}
	}
	if img.Version > ImageVersion {
		return nil, &ImageError{Reason: fmt.Sprintf("image version %d is newer than supported version %d", img.Version, ImageVersion)}
	}
	if len(img.Ops) != len(img.Args) {
		return nil, &ImageError{Reason: fmt.Sprintf("%d operators but %d operands", len(img.Ops), len(img.Args))}
	}

	prog := &Program{Instructions: make([]Instruction, len(img.Ops))}
	for i := range img.Ops {
		prog.Instructions[i] = Instruction{Op: Operator(img.Ops[i]), Arg: img.Args[i]}
	}
	if err := prog.Validate(); err != nil {
		return nil, &ImageError{Reason: err.Error()}
	}
	return prog, nil
}
