package acir

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	acvm "github.com/consensys/acvm"
	"github.com/consensys/acvm/field"
	"github.com/consensys/acvm/internal/ioutils"
)

// Binary layout:
//
//	uint64(len) | cbor(header) | uint64(len) | cbor(opcode envelopes) | index streams
//
// The index streams hold the public parameter and return value witness
// indices, intcomp-compressed. The header pins the format version and the
// field size so a circuit compiled against another field is rejected early.

var errInvalidField = errors.New("circuit was serialized for another field")

type header struct {
	Version      string `cbor:"v"`
	FieldBytes   uint32 `cbor:"f"`
	WitnessCount uint32 `cbor:"w"`
}

type opcodeKind uint8

const (
	kindAssertZero opcodeKind = iota
	kindBlackBoxCall
	kindDirectiveInvert
	kindDirectiveQuotient
	kindDirectiveToLeRadix
	kindMemoryInit
	kindMemoryOp
	kindBrilligCall
)

// opcodeEnvelope is the serialized form of the Opcode sum type: a kind tag
// and exactly one populated variant.
type opcodeEnvelope struct {
	Kind       opcodeKind          `cbor:"k"`
	AssertZero *AssertZero         `cbor:"a,omitempty"`
	BlackBox   *BlackBoxCall       `cbor:"b,omitempty"`
	Invert     *DirectiveInvert    `cbor:"i,omitempty"`
	Quotient   *DirectiveQuotient  `cbor:"q,omitempty"`
	ToLeRadix  *DirectiveToLeRadix `cbor:"t,omitempty"`
	MemoryInit *MemoryInit         `cbor:"m,omitempty"`
	MemoryOp   *MemoryOp           `cbor:"o,omitempty"`
	Brillig    *BrilligCall        `cbor:"g,omitempty"`
}

func envelope(op Opcode) (opcodeEnvelope, error) {
	switch o := op.(type) {
	case AssertZero:
		return opcodeEnvelope{Kind: kindAssertZero, AssertZero: &o}, nil
	case BlackBoxCall:
		return opcodeEnvelope{Kind: kindBlackBoxCall, BlackBox: &o}, nil
	case DirectiveInvert:
		return opcodeEnvelope{Kind: kindDirectiveInvert, Invert: &o}, nil
	case DirectiveQuotient:
		return opcodeEnvelope{Kind: kindDirectiveQuotient, Quotient: &o}, nil
	case DirectiveToLeRadix:
		return opcodeEnvelope{Kind: kindDirectiveToLeRadix, ToLeRadix: &o}, nil
	case MemoryInit:
		return opcodeEnvelope{Kind: kindMemoryInit, MemoryInit: &o}, nil
	case MemoryOp:
		return opcodeEnvelope{Kind: kindMemoryOp, MemoryOp: &o}, nil
	case BrilligCall:
		return opcodeEnvelope{Kind: kindBrilligCall, Brillig: &o}, nil
	default:
		return opcodeEnvelope{}, fmt.Errorf("unknown opcode type %T", op)
	}
}

func (e *opcodeEnvelope) opcode() (Opcode, error) {
	switch e.Kind {
	case kindAssertZero:
		if e.AssertZero != nil {
			return *e.AssertZero, nil
		}
	case kindBlackBoxCall:
		if e.BlackBox != nil {
			return *e.BlackBox, nil
		}
	case kindDirectiveInvert:
		if e.Invert != nil {
			return *e.Invert, nil
		}
	case kindDirectiveQuotient:
		if e.Quotient != nil {
			return *e.Quotient, nil
		}
	case kindDirectiveToLeRadix:
		if e.ToLeRadix != nil {
			return *e.ToLeRadix, nil
		}
	case kindMemoryInit:
		if e.MemoryInit != nil {
			return *e.MemoryInit, nil
		}
	case kindMemoryOp:
		if e.MemoryOp != nil {
			return *e.MemoryOp, nil
		}
	case kindBrilligCall:
		if e.Brillig != nil {
			return *e.Brillig, nil
		}
	}
	return nil, fmt.Errorf("malformed opcode envelope (kind %d)", e.Kind)
}

// ToBytes serializes the circuit.
func (c *Circuit) ToBytes() ([]byte, error) {
	var opcodes, indices []byte

	var g errgroup.Group
	g.Go(func() error {
		var err error
		opcodes, err = c.opcodesToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		indices, err = c.indicesToBytes()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h, err := cbor.Marshal(header{
		Version:      acvm.Version.String(),
		FieldBytes:   field.Bytes,
		WitnessCount: c.CurrentWitnessIndex,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, block := range [][]byte{h, opcodes} {
		if err := binary.Write(&buf, binary.LittleEndian, uint64(len(block))); err != nil {
			return nil, err
		}
		buf.Write(block)
	}
	buf.Write(indices)
	return buf.Bytes(), nil
}

// FromBytes deserializes the circuit from data.
func FromBytes(data []byte) (*Circuit, error) {
	r := bytes.NewReader(data)

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.FieldBytes != field.Bytes {
		return nil, errInvalidField
	}
	v, err := semver.Parse(h.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid circuit format version %q: %w", h.Version, err)
	}
	if v.Major != acvm.Version.Major {
		return nil, fmt.Errorf("incompatible circuit format version %s (reader %s)", v, acvm.Version)
	}

	c := &Circuit{CurrentWitnessIndex: h.WitnessCount}

	if c.Opcodes, err = readOpcodes(r); err != nil {
		return nil, err
	}
	if c.PublicParameters, err = readIndices(r); err != nil {
		return nil, err
	}
	if c.ReturnValues, err = readIndices(r); err != nil {
		return nil, err
	}
	return c, nil
}

// Write serializes the circuit into w.
func (c *Circuit) Write(w io.Writer) error {
	data, err := c.ToBytes()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read deserializes a circuit from r.
func Read(r io.Reader) (*Circuit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

func (c *Circuit) opcodesToBytes() ([]byte, error) {
	envelopes := make([]opcodeEnvelope, len(c.Opcodes))
	for i, op := range c.Opcodes {
		var err error
		if envelopes[i], err = envelope(op); err != nil {
			return nil, err
		}
	}
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(envelopes)
}

func (c *Circuit) indicesToBytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, set := range []PublicInputs{c.PublicParameters, c.ReturnValues} {
		indices := make([]uint32, len(set))
		for i, w := range set {
			indices[i] = w.Index()
		}
		if err := ioutils.CompressAndWriteUints32(&buf, indices); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func readBlock(r *bytes.Reader) ([]byte, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length > uint64(r.Len()) {
		return nil, fmt.Errorf("corrupt block: %d bytes declared, %d available", length, r.Len())
	}
	block := make([]byte, length)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, err
	}
	return block, nil
}

func readHeader(r *bytes.Reader) (header, error) {
	var h header
	block, err := readBlock(r)
	if err != nil {
		return h, err
	}
	err = cbor.Unmarshal(block, &h)
	return h, err
}

func readOpcodes(r *bytes.Reader) ([]Opcode, error) {
	block, err := readBlock(r)
	if err != nil {
		return nil, err
	}
	var envelopes []opcodeEnvelope
	if err := cbor.Unmarshal(block, &envelopes); err != nil {
		return nil, err
	}
	opcodes := make([]Opcode, len(envelopes))
	for i := range envelopes {
		if opcodes[i], err = envelopes[i].opcode(); err != nil {
			return nil, err
		}
	}
	return opcodes, nil
}

func readIndices(r *bytes.Reader) (PublicInputs, error) {
	_, indices, err := ioutils.ReadAndDecompressUints32(r)
	if err != nil {
		return nil, err
	}
	res := make(PublicInputs, len(indices))
	for i, idx := range indices {
		res[i] = Witness(idx)
	}
	return res, nil
}
