package dmi

import (
	"fmt"
)

// BuildWriteCmd constructs a dmi_write command line for the console.
//
// Line format:
//
//	riscv dmi_write 0x<addr:2-hex> 0x<data:8-hex>\n
//
// Returns the complete line ready to send, or an error if the register
// address does not fit the 7-bit DMI address field.
func BuildWriteCmd(addr uint8, value uint32) (string, error) {
	if addr > MaxRegAddr {
		return "", fmt.Errorf("register address 0x%02X exceeds 7-bit DMI field (max 0x%02X)", addr, MaxRegAddr)
	}

	return fmt.Sprintf("riscv dmi_write 0x%02x 0x%08x\n", addr, value), nil
}

// BuildReadCmd constructs a dmi_read command line for the console.
//
// Line format:
//
//	riscv dmi_read 0x<addr:2-hex>\n
func BuildReadCmd(addr uint8) (string, error) {
	if addr > MaxRegAddr {
		return "", fmt.Errorf("register address 0x%02X exceeds 7-bit DMI field (max 0x%02X)", addr, MaxRegAddr)
	}

	return fmt.Sprintf("riscv dmi_read 0x%02x\n", addr), nil
}
