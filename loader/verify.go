package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/rvdebug/go-sbaload/dmi"
	"github.com/rvdebug/go-sbaload/firmware"
)

// VerifyResult records the read-back outcome for a single word.
type VerifyResult struct {
	// Addr is the absolute target address of the word
	Addr uint64

	// Expected is the word value from the image
	Expected uint32

	// Actual is the value read back. Only meaningful when Read is true.
	Actual uint32

	// Read is false when no value could be parsed out of the reply
	Read bool

	// OK is true when the read-back value matches Expected
	OK bool
}

// Verify reads back the first VerifyWords words of the image and compares
// them against the expected values. Each word is checked independently:
// mismatches and unreadable values are recorded and the pass continues.
//
// The address write triggers the bus read (read-on-address-write is armed
// by Configure), so each check is an address-pair write, a settle wait
// longer than the transfer delay, and an explicit data-register read.
//
// A connection write failure or context cancellation stops the pass; the
// results gathered so far are returned alongside the error.
func (l *Loader) Verify(ctx context.Context, img *firmware.Image) ([]VerifyResult, error) {
	n := l.config.VerifyWords
	if n > img.NumWords() {
		n = img.NumWords()
	}

	results := make([]VerifyResult, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("cancelled during verification: %w", err)
		}

		addr := img.Addr(i)
		if err := l.setAddress(addr); err != nil {
			return results, fmt.Errorf("set verify address 0x%08X: %w", addr, err)
		}

		// The read path through the system bus needs longer than the
		// per-word transfer settle.
		time.Sleep(l.config.VerifySettleDelay)

		res := VerifyResult{
			Addr:     addr,
			Expected: img.Word(i),
		}

		actual, err := l.readRegister(dmi.RegSBData0)
		if err != nil {
			l.logWarn("verify read failed",
				"addr", fmt.Sprintf("0x%08X", addr),
				"err", err.Error(),
			)
		} else {
			res.Read = true
			res.Actual = actual
			res.OK = actual == res.Expected
			if !res.OK {
				l.logWarn("verify mismatch",
					"addr", fmt.Sprintf("0x%08X", addr),
					"expected", fmt.Sprintf("0x%08X", res.Expected),
					"actual", fmt.Sprintf("0x%08X", actual),
				)
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// Report summarizes a completed run.
type Report struct {
	// Verify holds one result per checked word, in address order
	Verify []VerifyResult

	// SBCS is the status register snapshot taken after the transfer
	SBCS uint32

	// SBError is the 3-bit sberror field from SBCS; zero means no bus error
	SBError uint8

	// StatusErr is set when the status register itself could not be read
	StatusErr error
}

// OK reports whether every checked word matched and the status register
// was read back clean.
func (r *Report) OK() bool {
	for _, v := range r.Verify {
		if !v.Read || !v.OK {
			return false
		}
	}
	return r.StatusErr == nil && r.SBError == 0
}

// BusError returns a typed error describing the sberror field, or nil
// when the status was clean or unreadable.
func (r *Report) BusError() error {
	if r.StatusErr != nil || r.SBError == 0 {
		return nil
	}
	return &BusError{Code: r.SBError}
}
