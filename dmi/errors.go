package dmi

import (
	"errors"
	"strings"
)

// ParseError indicates that a console reply contained no recognizable hex
// value. The raw reply is retained so callers can log what the bridge
// actually sent.
type ParseError struct {
	// Reply is the raw reply text that failed classification
	Reply string
}

func (e *ParseError) Error() string {
	trimmed := strings.TrimSpace(e.Reply)
	if trimmed == "" {
		return "no hex value found in reply: bridge sent nothing"
	}
	return "no hex value found in reply: " + quoteReply(trimmed)
}

// IsParseError returns true if the error is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// quoteReply quotes a reply for a one-line error message, flattening newlines.
func quoteReply(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " | ")
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return "\"" + s + "\""
}
