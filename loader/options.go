package loader

import "time"

// Config holds the loader configuration.
type Config struct {
	// ProgressCallback is called during the transfer to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// SettleDelay is the wait between sending a dmi_read command and
	// consuming its reply, giving the bridge time to complete the DMI
	// transaction. The console offers no synchronous acknowledgment.
	SettleDelay time.Duration

	// VerifySettleDelay is the wait after setting the address during
	// verification, before reading the data register. The read path
	// through the system bus needs longer than a plain register read.
	VerifySettleDelay time.Duration

	// DrainTimeout bounds the best-effort reply drain after each write.
	// Expiry without data is the normal case, not an error.
	DrainTimeout time.Duration

	// ReadTimeout bounds the blocking read used for actual value retrieval
	ReadTimeout time.Duration

	// ProgressInterval is the word count between progress reports
	ProgressInterval int

	// VerifyWords is how many leading words the verification pass reads
	// back. Zero disables verification.
	VerifyWords int
}

// defaultConfig returns the default configuration. The delays match the
// timings the bridge was observed to need.
func defaultConfig() Config {
	return Config{
		SettleDelay:       100 * time.Millisecond,
		VerifySettleDelay: 200 * time.Millisecond,
		DrainTimeout:      100 * time.Millisecond,
		ReadTimeout:       2 * time.Second,
		ProgressInterval:  100,
		VerifyWords:       4,
	}
}

// Option is a functional option for configuring the Loader.
type Option func(*Config)

// WithProgressCallback sets a callback function to track load progress.
//
// Example:
//
//	ld := loader.New(conn,
//	    loader.WithProgressCallback(func(p loader.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the loader operations.
//
// Example:
//
//	ld := loader.New(conn, loader.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSettleDelay sets the wait between a dmi_read command and its reply.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleDelay = d
		}
	}
}

// WithVerifySettleDelay sets the wait between an address write and the
// data-register read during verification.
func WithVerifySettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.VerifySettleDelay = d
		}
	}
}

// WithDrainTimeout sets the bound on the best-effort drain after writes.
func WithDrainTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.DrainTimeout = d
		}
	}
}

// WithReadTimeout sets the bound on blocking reply reads.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ReadTimeout = d
		}
	}
}

// WithProgressInterval sets the word count between progress reports.
// Default is 100.
func WithProgressInterval(words int) Option {
	return func(c *Config) {
		if words > 0 {
			c.ProgressInterval = words
		}
	}
}

// WithVerifyWords sets how many leading words are read back after the
// transfer. Zero disables the verification pass. Default is 4.
func WithVerifyWords(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.VerifyWords = n
		}
	}
}
