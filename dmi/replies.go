package dmi

import (
	"regexp"
	"strconv"
	"strings"
)

// hexLine matches a reply line that is nothing but a hex literal.
var hexLine = regexp.MustCompile(`^0x([0-9a-fA-F]+)$`)

// ParseReply extracts a 32-bit register value from raw console reply text.
//
// The console echoes commands and prompts back interleaved with the value,
// so classification works line by line:
//   - lines containing dmi_read or dmi_write are command echoes, skipped
//   - a bare ">" prompt line is skipped
//   - the first remaining line of the form 0x<hex> is the value
//
// If no line qualifies, ParseReply returns a *ParseError wrapping the raw
// reply. Values wider than 32 bits are treated as unparseable rather than
// truncated.
func ParseReply(reply string) (uint32, error) {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)

		if strings.Contains(line, "dmi_read") || strings.Contains(line, "dmi_write") {
			continue
		}
		if line == ">" {
			continue
		}

		m := hexLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		value, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil {
			continue
		}
		return uint32(value), nil
	}

	return 0, &ParseError{Reply: reply}
}
