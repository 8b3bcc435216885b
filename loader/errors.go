package loader

import (
	"errors"
	"fmt"
)

// BusError indicates that the SBCS register reported a nonzero sberror
// field after the transfer. The hardware offers no rollback or retry; the
// error is diagnostic.
type BusError struct {
	// Code is the 3-bit sberror value
	Code uint8
}

func (e *BusError) Error() string {
	return fmt.Sprintf("system bus error: %s (sberror=%d)", sbErrorName(e.Code), e.Code)
}

// IsBusError returns true if the error is a *BusError.
func IsBusError(err error) bool {
	var be *BusError
	return errors.As(err, &be)
}

// sbErrorName maps an sberror code to its meaning in the debug spec.
func sbErrorName(code uint8) string {
	switch code {
	case 0:
		return "none"
	case 1:
		return "timeout"
	case 2:
		return "bad address"
	case 3:
		return "alignment fault"
	case 4:
		return "unsupported access size"
	case 7:
		return "other"
	default:
		return fmt.Sprintf("reserved code %d", code)
	}
}
