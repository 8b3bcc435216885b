package loader

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rvdebug/go-sbaload/dmi"
	"github.com/rvdebug/go-sbaload/firmware"
)

// replyBufferSize is the read chunk for console replies. A single reply is
// a handful of short lines; this matches the console's own buffering.
const replyBufferSize = 4096

// Conn is the transport to the debug bridge: a bidirectional byte stream
// with read deadlines. net.Conn satisfies it.
type Conn interface {
	io.ReadWriter

	// SetReadDeadline sets the deadline for future Read calls.
	// A zero value means reads do not time out.
	SetReadDeadline(t time.Time) error
}

// Loader streams a firmware image into target SRAM over a debug bridge's
// System Bus Access interface. It owns no connection lifecycle: the caller
// opens the session, hands it in, and closes it when done.
//
// A Loader is not safe for concurrent use; the underlying console session
// is a single exclusively-owned resource.
type Loader struct {
	conn    Conn
	config  Config
	scratch []byte
}

// New creates a Loader over the given connection.
//
// Example:
//
//	conn, _ := net.Dial("tcp", "localhost:4444")
//	ld := loader.New(conn,
//	    loader.WithVerifyWords(8),
//	    loader.WithSettleDelay(50*time.Millisecond),
//	)
func New(conn Conn, opts ...Option) *Loader {
	if conn == nil {
		panic("conn cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Loader{
		conn:    conn,
		config:  cfg,
		scratch: make([]byte, replyBufferSize),
	}
}

// Run performs the complete load sequence: banner discard, SBA
// configuration, word-by-word transfer, read-back verification, status
// check. The returned Report carries verification results and the SBCS
// error field; mismatches and unreadable values are recorded there rather
// than returned as errors.
//
// Connection write failures and context cancellation abort the run.
func (l *Loader) Run(ctx context.Context, img *firmware.Image) (*Report, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if img.NumWords() == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	if img.End() < img.Base {
		return nil, fmt.Errorf("image wraps the 64-bit address space: base 0x%X size %d", img.Base, img.Size())
	}

	startTime := time.Now()
	total := img.NumWords()

	l.reportProgress(Progress{
		Phase:      PhaseConfiguring,
		TotalWords: total,
	})

	// The console greets every session with a banner; it must be gone
	// before the first command's reply is interpreted.
	l.ReadBanner()

	if err := l.Configure(img.Base); err != nil {
		return nil, fmt.Errorf("configure system bus access: %w", err)
	}

	l.logDebug("system bus access armed",
		"sbcs", fmt.Sprintf("0x%08X", dmi.SBCSConfig),
		"base", fmt.Sprintf("0x%08X", img.Base),
	)

	if err := l.WriteImage(ctx, img); err != nil {
		return nil, err
	}

	// Flush the backlog of write echoes before switching to reads.
	l.drain(l.config.DrainTimeout)

	report := &Report{}

	l.reportProgress(Progress{
		Phase:        PhaseVerifying,
		CurrentWord:  total,
		TotalWords:   total,
		Percentage:   95,
		BytesWritten: img.Size(),
		ElapsedTime:  time.Since(startTime),
	})

	if l.config.VerifyWords > 0 {
		results, err := l.Verify(ctx, img)
		report.Verify = results
		if err != nil {
			return report, err
		}
	}

	sbcs, err := l.readRegister(dmi.RegSBCS)
	if err != nil {
		l.logWarn("status register read failed", "err", err.Error())
		report.StatusErr = err
	} else {
		report.SBCS = sbcs
		report.SBError = dmi.SBError(sbcs)
		if report.SBError != 0 {
			l.logWarn("bus error reported", "err", (&BusError{Code: report.SBError}).Error())
		}
	}

	l.reportProgress(Progress{
		Phase:        PhaseComplete,
		CurrentWord:  total,
		TotalWords:   total,
		Percentage:   100,
		BytesWritten: img.Size(),
		ElapsedTime:  time.Since(startTime),
	})

	l.logInfo("load complete",
		"words", total,
		"bytes", img.Size(),
		"elapsed", time.Since(startTime).String(),
	)

	return report, nil
}

// ReadBanner discards the welcome banner the console sends on connect.
// Best effort: a quiet console is tolerated.
func (l *Loader) ReadBanner() {
	l.drain(l.config.DrainTimeout)
}

// Configure arms System Bus Access for 32-bit, address-triggered
// transactions and establishes the starting address cursor.
func (l *Loader) Configure(base uint64) error {
	if err := l.writeRegister(dmi.RegSBCS, dmi.SBCSConfig); err != nil {
		return err
	}
	return l.setAddress(base)
}

// WriteImage transfers every word of the image. Each word is one explicit
// address-pair write followed by one data write; the address registers are
// rewritten per word rather than trusting auto-increment. There is no
// batching and no retry: the console gives writes no confirmed reply to
// retry on.
func (l *Loader) WriteImage(ctx context.Context, img *firmware.Image) error {
	startTime := time.Now()
	total := img.NumWords()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled at word %d/%d: %w", i, total, err)
		}

		addr := img.Addr(i)
		if err := l.setAddress(addr); err != nil {
			return fmt.Errorf("set address 0x%08X: %w", addr, err)
		}
		if err := l.writeRegister(dmi.RegSBData0, img.Word(i)); err != nil {
			return fmt.Errorf("write word %d at 0x%08X: %w", i, addr, err)
		}

		if i%l.config.ProgressInterval == 0 {
			l.reportProgress(Progress{
				Phase:        PhaseWriting,
				CurrentWord:  i,
				TotalWords:   total,
				Percentage:   float64(i) / float64(total) * 90,
				BytesWritten: i * firmware.WordSize,
				ElapsedTime:  time.Since(startTime),
			})
		}
	}

	return nil
}

// setAddress writes the 64-bit target address into the address register
// pair, low half first. With read-on-address-write armed this also
// triggers the pending bus transaction.
func (l *Loader) setAddress(addr uint64) error {
	if err := l.writeRegister(dmi.RegSBAddress0, uint32(addr)); err != nil {
		return err
	}
	return l.writeRegister(dmi.RegSBAddress1, uint32(addr>>32))
}

// writeRegister sends a dmi_write and drains whatever reply the console
// produces. Writes have no value reply by construction; the drain only
// keeps the session's read side clean.
func (l *Loader) writeRegister(addr uint8, value uint32) error {
	cmd, err := dmi.BuildWriteCmd(addr, value)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(l.conn, cmd); err != nil {
		return fmt.Errorf("send dmi_write 0x%02X: %w", addr, err)
	}

	l.drain(l.config.DrainTimeout)
	return nil
}

// readRegister sends a dmi_read, waits the settle interval, then consumes
// and parses the pending reply. This is the blocking read primitive; the
// post-write drain is deliberately a separate path.
func (l *Loader) readRegister(addr uint8) (uint32, error) {
	cmd, err := dmi.BuildReadCmd(addr)
	if err != nil {
		return 0, err
	}

	if _, err := io.WriteString(l.conn, cmd); err != nil {
		return 0, fmt.Errorf("send dmi_read 0x%02X: %w", addr, err)
	}

	// No acknowledgment exists; the reply is assumed complete after the
	// settle interval.
	time.Sleep(l.config.SettleDelay)

	_ = l.conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
	defer func() { _ = l.conn.SetReadDeadline(time.Time{}) }()

	n, err := l.conn.Read(l.scratch)
	if err != nil {
		return 0, fmt.Errorf("read reply for 0x%02X: %w", addr, err)
	}

	return dmi.ParseReply(string(l.scratch[:n]))
}

// drain consumes and discards pending console output for at most bound.
// Deadline expiry is the normal outcome and every error ends the drain
// silently.
func (l *Loader) drain(bound time.Duration) {
	_ = l.conn.SetReadDeadline(time.Now().Add(bound))
	defer func() { _ = l.conn.SetReadDeadline(time.Time{}) }()

	for {
		if _, err := l.conn.Read(l.scratch); err != nil {
			return
		}
	}
}

// reportProgress calls the progress callback if configured.
func (l *Loader) reportProgress(progress Progress) {
	if l.config.ProgressCallback != nil {
		l.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (l *Loader) logDebug(msg string, keysAndValues ...interface{}) {
	if l.config.Logger != nil {
		l.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (l *Loader) logInfo(msg string, keysAndValues ...interface{}) {
	if l.config.Logger != nil {
		l.config.Logger.Info(msg, keysAndValues...)
	}
}

// logWarn logs a warning if a logger is configured.
func (l *Loader) logWarn(msg string, keysAndValues ...interface{}) {
	if l.config.Logger != nil {
		l.config.Logger.Warn(msg, keysAndValues...)
	}
}
