// Package ioutils provides compressed integer stream helpers for the circuit
// wire format.
package ioutils

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ronanh/intcomp"
)

// CompressAndWriteUints32 compresses a slice of uint32 and writes it to w.
func CompressAndWriteUints32(w io.Writer, input []uint32) error {
	buffer := intcomp.CompressUint32(input, nil)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, buffer)
}

// ReadAndDecompressUints32 reads a compressed slice of uint32 from r and
// decompresses it. It returns the number of bytes read, the decompressed
// slice and an error.
func ReadAndDecompressUints32(r io.Reader) (int, []uint32, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return 0, nil, err
	}
	if length > 1<<30 {
		return 8, nil, fmt.Errorf("corrupt compressed stream: %d words declared", length)
	}
	buffer := make([]uint32, length)
	if err := binary.Read(r, binary.LittleEndian, buffer); err != nil {
		return 8, nil, err
	}
	return 8 + 4*int(length), intcomp.UncompressUint32(buffer, nil), nil
}
