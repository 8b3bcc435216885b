package dmi

// DMI register addresses for System Bus Access, per the RISC-V Debug
// Specification. Addresses are a 7-bit field on the wire.
const (
	// RegSBCS is the System Bus Access Control and Status register
	RegSBCS = 0x38

	// RegSBAddress0 holds the low 32 bits of the target address
	RegSBAddress0 = 0x39

	// RegSBAddress1 holds the high 32 bits of the target address
	RegSBAddress1 = 0x3A

	// RegSBData0 is the 32-bit system bus data port
	RegSBData0 = 0x3C
)

// MaxRegAddr is the largest encodable DMI register address (7-bit field).
const MaxRegAddr = 0x7F

// SBCS bit fields. Positions follow the register layout the hardware
// implements: sbreadonaddr at bit 20, the access-size selector in bits
// 19:17, and the write-ones-to-clear sberror field in bits 14:12.
const (
	// SBCSReadOnAddr makes a write to SBAddress0 trigger a bus read
	SBCSReadOnAddr uint32 = 1 << 20

	// SBCSAccess32 selects 32-bit bus transactions (sbaccess = 2)
	SBCSAccess32 uint32 = 2 << 17

	// SBCSErrorClear writes ones to the sberror field to clear it
	SBCSErrorClear uint32 = 0x7 << 12
)

// SBCSConfig is the one-shot configuration written before a transfer:
// read-on-address-write enabled, 32-bit accesses, sberror cleared.
//
// Address auto-increment is deliberately left off; the loader rewrites the
// address registers for every word, which stays correct on bridges and
// arbiters without reliable auto-increment support.
const SBCSConfig = SBCSReadOnAddr | SBCSAccess32 | SBCSErrorClear // 0x00147000

// SBError extracts the 3-bit sberror field from an SBCS read-back.
// Zero means no bus error occurred.
func SBError(sbcs uint32) uint8 {
	return uint8(sbcs>>12) & 0x7
}
