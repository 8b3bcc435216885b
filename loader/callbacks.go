package loader

import "time"

// Load phases reported through Progress.
const (
	// PhaseConfiguring covers banner discard and SBA register setup
	PhaseConfiguring = "configuring"

	// PhaseWriting covers the word-by-word transfer
	PhaseWriting = "writing"

	// PhaseVerifying covers the read-back pass and status check
	PhaseVerifying = "verifying"

	// PhaseComplete means the run finished (the Report still carries
	// any mismatches or bus errors found along the way)
	PhaseComplete = "complete"
)

// Progress contains information about the current state of a load.
// Passed to ProgressCallback during Run.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// CurrentWord is the number of words written so far
	CurrentWord int

	// TotalWords is the total number of words in the image
	TotalWords int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the number of image bytes written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since Run started
	ElapsedTime time.Duration
}

// ProgressCallback is called at phase transitions and at a fixed word
// interval during the transfer. Implementations should return quickly;
// the transfer is strictly sequential and waits for the callback.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the
// loader. This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
