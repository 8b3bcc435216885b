package firmware

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"
)

// Load reads a firmware image from the given path. Files ending in .hex or
// .ihex are parsed as Intel HEX and carry their own addresses; everything
// else is treated as a raw binary placed at base.
func Load(path string, base uint64) (*Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex":
		return LoadHex(path)
	default:
		return LoadBin(path, base)
	}
}

// LoadBin reads a raw binary file and anchors it at base.
// Returns an error for empty files: loading zero words is always an
// operator mistake, not a transfer.
func LoadBin(path string, base uint64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	return New(base, data), nil
}

// LoadHex reads an Intel HEX file. The image base is the lowest data
// segment address; gaps between segments are zero-filled.
func LoadHex(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := ParseHex(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return img, nil
}

// ParseHex parses Intel HEX records from any io.Reader.
// This is useful for testing and reading from non-file sources.
func ParseHex(r io.Reader) (*Image, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("intel hex: %w", err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return nil, fmt.Errorf("intel hex: no data records")
	}

	start := segments[0].Address
	end := segments[0].Address + uint32(len(segments[0].Data))
	for _, seg := range segments[1:] {
		if seg.Address < start {
			start = seg.Address
		}
		if segEnd := seg.Address + uint32(len(seg.Data)); segEnd > end {
			end = segEnd
		}
	}

	data := mem.ToBinary(start, end-start, 0x00)
	return New(uint64(start), data), nil
}
