// Package firmware models the image to be loaded into target memory and
// parses it from raw binary or Intel HEX files.
//
// # Overview
//
// An Image is an ordered byte sequence anchored at a 64-bit base address,
// zero-padded to a 4-byte boundary and viewed as little-endian 32-bit words.
// The loader consumes it word by word:
//
//	img, err := firmware.Load("app.bin", 0x80000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := 0; i < img.NumWords(); i++ {
//	    write(img.Addr(i), img.Word(i))
//	}
//
// # File formats
//
// Load dispatches on the file extension: .hex and .ihex are parsed as Intel
// HEX, where the record addresses fix the image base and gaps between data
// segments are zero-filled; anything else is read as a raw binary placed at
// the caller's base address.
package firmware
