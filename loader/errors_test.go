package loader

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestBusErrorMessages(t *testing.T) {
	tests := []struct {
		code uint8
		want string
	}{
		{code: 1, want: "timeout"},
		{code: 2, want: "bad address"},
		{code: 3, want: "alignment fault"},
		{code: 4, want: "unsupported access size"},
		{code: 7, want: "other"},
		{code: 5, want: "reserved"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("sberror_%d", tt.code), func(t *testing.T) {
			err := &BusError{Code: tt.code}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}

func TestIsBusError(t *testing.T) {
	if !IsBusError(&BusError{Code: 1}) {
		t.Error("BusError not recognized")
	}
	if !IsBusError(fmt.Errorf("status: %w", &BusError{Code: 1})) {
		t.Error("wrapped BusError not recognized")
	}
	if IsBusError(errors.New("plain")) {
		t.Error("plain error misclassified")
	}
}
