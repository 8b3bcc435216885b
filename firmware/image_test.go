package firmware

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestNewPadding(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		wantSize int
	}{
		{name: "empty", length: 0, wantSize: 0},
		{name: "single byte", length: 1, wantSize: 4},
		{name: "three bytes", length: 3, wantSize: 4},
		{name: "exact word", length: 4, wantSize: 4},
		{name: "word and a half", length: 6, wantSize: 8},
		{name: "many words minus one", length: 1023, wantSize: 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xFF}, tt.length)
			img := New(0x80000000, data)

			if img.Size() != tt.wantSize {
				t.Fatalf("Size() = %d, want %d", img.Size(), tt.wantSize)
			}
			if img.NumWords() != tt.wantSize/4 {
				t.Errorf("NumWords() = %d, want %d", img.NumWords(), tt.wantSize/4)
			}

			// Bytes beyond the original length must be zero.
			for i, b := range img.Bytes() {
				if i < tt.length && b != 0xFF {
					t.Fatalf("byte %d = 0x%02X, want 0xFF", i, b)
				}
				if i >= tt.length && b != 0 {
					t.Fatalf("pad byte %d = 0x%02X, want 0x00", i, b)
				}
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	img := New(0, data)

	data[0] = 0xEE
	if img.Word(0) != 0x04030201 {
		t.Errorf("image shares storage with caller slice: word = 0x%08X", img.Word(0))
	}
}

func TestWordDecoding(t *testing.T) {
	// Little-endian decode then re-encode must reproduce the input bytes.
	raw := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x12, 0x34, 0x56, 0x78}
	img := New(0x80000000, raw)

	for i := 0; i < img.NumWords(); i++ {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], img.Word(i))
		if !bytes.Equal(buf[:], raw[i*4:i*4+4]) {
			t.Errorf("word %d round-trip = % X, want % X", i, buf, raw[i*4:i*4+4])
		}
	}

	if img.Word(0) != 0xDDCCBBAA {
		t.Errorf("Word(0) = 0x%08X, want 0xDDCCBBAA", img.Word(0))
	}
}

func TestAddrMonotonicity(t *testing.T) {
	img := New(0x80000000, make([]byte, 64))

	prev := img.Addr(0)
	if prev != 0x80000000 {
		t.Fatalf("Addr(0) = 0x%X, want base", prev)
	}
	for i := 1; i < img.NumWords(); i++ {
		addr := img.Addr(i)
		if addr != prev+4 {
			t.Fatalf("Addr(%d) = 0x%X, want 0x%X", i, addr, prev+4)
		}
		prev = addr
	}

	if img.End() != 0x80000040 {
		t.Errorf("End() = 0x%X, want 0x80000040", img.End())
	}
}

func TestSixByteScenario(t *testing.T) {
	// 6 input bytes become two words: the second padded with zeros.
	img := New(0x80000000, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})

	if img.NumWords() != 2 {
		t.Fatalf("NumWords() = %d, want 2", img.NumWords())
	}
	if img.Word(0) != 0xDDCCBBAA {
		t.Errorf("Word(0) = 0x%08X, want 0xDDCCBBAA", img.Word(0))
	}
	if img.Word(1) != 0x0000FFEE {
		t.Errorf("Word(1) = 0x%08X, want 0x0000FFEE", img.Word(1))
	}
	if img.Addr(0) != 0x80000000 || img.Addr(1) != 0x80000004 {
		t.Errorf("addresses = 0x%X, 0x%X, want 0x80000000, 0x80000004", img.Addr(0), img.Addr(1))
	}
}
