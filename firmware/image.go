package firmware

import (
	"encoding/binary"
)

// WordSize is the transfer granularity in bytes. System Bus Access is
// configured for 32-bit transactions, so images are padded to this boundary.
const WordSize = 4

// Image represents a firmware image anchored at a target base address.
// The data is zero-padded to a full word at construction and never mutated.
type Image struct {
	// Base is the target address of the first byte
	Base uint64

	data []byte
}

// New builds an Image from raw bytes, padding the final partial word (if
// any) with zeros. The input slice is copied.
func New(base uint64, data []byte) *Image {
	padded := len(data)
	if rem := len(data) % WordSize; rem != 0 {
		padded += WordSize - rem
	}

	buf := make([]byte, padded)
	copy(buf, data)

	return &Image{Base: base, data: buf}
}

// Size returns the padded image size in bytes.
func (img *Image) Size() int {
	return len(img.data)
}

// NumWords returns the number of 32-bit words in the padded image.
func (img *Image) NumWords() int {
	return len(img.data) / WordSize
}

// Word returns the i-th 32-bit word, decoded little-endian.
func (img *Image) Word(i int) uint32 {
	return binary.LittleEndian.Uint32(img.data[i*WordSize:])
}

// Addr returns the absolute target address of the i-th word.
func (img *Image) Addr(i int) uint64 {
	return img.Base + uint64(i)*WordSize
}

// End returns the first target address past the image.
func (img *Image) End() uint64 {
	return img.Base + uint64(len(img.data))
}

// Bytes returns the padded image contents. The slice must not be modified.
func (img *Image) Bytes() []byte {
	return img.data
}
