// Command sbaload loads a binary image into target SRAM through an
// OpenOCD console, using raw DMI register writes to drive System Bus
// Access. It assumes an already-running bridge; connect OpenOCD to the
// target first, then:
//
//	sbaload app.bin
//	sbaload app.bin 90000000
//	sbaload app.hex --addr localhost:4444 --verify 8
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/rvdebug/go-sbaload/firmware"
	"github.com/rvdebug/go-sbaload/loader"
)

// defaultBase is where RISC-V SRAM images conventionally start.
const defaultBase uint64 = 0x80000000

var log = logrus.New()

var (
	flagAddr         string
	flagVerifyWords  int
	flagNoVerify     bool
	flagSettle       time.Duration
	flagVerifySettle time.Duration
	flagDrain        time.Duration
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "sbaload <image> [base]",
	Short: "Load a binary image into target SRAM via System Bus Access",
	Long: `sbaload streams a raw binary or Intel HEX image into target SRAM through
an OpenOCD telnet console, word by word over the debug module's System Bus
Access interface. The first few words are read back and compared, and the
SBCS error field is checked at the end.

The optional base argument is a hexadecimal address (with or without 0x);
it defaults to 0x80000000 and is ignored for Intel HEX input, which
carries its own addresses.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagAddr, "addr", "a", "localhost:4444", "OpenOCD telnet console address")
	rootCmd.Flags().IntVar(&flagVerifyWords, "verify", 4, "number of leading words to read back")
	rootCmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "skip the read-back pass")
	rootCmd.Flags().DurationVar(&flagSettle, "settle", 100*time.Millisecond, "settle delay before consuming a read reply")
	rootCmd.Flags().DurationVar(&flagVerifySettle, "verify-settle", 200*time.Millisecond, "settle delay before each verification read")
	rootCmd.Flags().DurationVar(&flagDrain, "drain-timeout", 100*time.Millisecond, "bound on the best-effort drain after writes")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	log.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Arguments are valid past this point; later failures are operational
	// and should not trigger the usage text.
	cmd.SilenceUsage = true

	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	base := defaultBase
	if len(args) == 2 {
		b, err := parseBase(args[1])
		if err != nil {
			return fmt.Errorf("invalid base address %q: %w", args[1], err)
		}
		base = b
	}

	img, err := firmware.Load(args[0], base)
	if err != nil {
		return err
	}

	log.Infof("loading %s to 0x%08X via SBA (%d words, %d bytes)",
		args[0], img.Base, img.NumWords(), img.Size())

	conn, err := net.Dial("tcp", flagAddr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", flagAddr, err)
	}
	defer func() { _ = conn.Close() }()

	verifyWords := flagVerifyWords
	if flagNoVerify {
		verifyWords = 0
	}

	ld := loader.New(conn,
		loader.WithLogger(logrusAdapter{log}),
		loader.WithProgressCallback(printProgress),
		loader.WithSettleDelay(flagSettle),
		loader.WithVerifySettleDelay(flagVerifySettle),
		loader.WithDrainTimeout(flagDrain),
		loader.WithVerifyWords(verifyWords),
	)

	report, err := ld.Run(cmd.Context(), img)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

// parseBase accepts a hexadecimal address with or without a 0x prefix.
func parseBase(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strconv.ParseUint(s, 16, 64)
}

func printProgress(p loader.Progress) {
	switch p.Phase {
	case loader.PhaseConfiguring:
		log.Info("configuring system bus access")
	case loader.PhaseWriting:
		log.Infof("  progress: %d/%d words", p.CurrentWord, p.TotalWords)
	case loader.PhaseVerifying:
		log.Info("done writing, verifying")
	}
}

// printReport renders the verification results and the final bus error
// verdict. Mismatches are reported here, not as a process failure: a
// partial diagnosis is still a diagnosis.
func printReport(report *loader.Report) {
	for _, v := range report.Verify {
		if !v.Read {
			log.Warnf("  [0x%08X] expected 0x%08X, got no value  FAIL", v.Addr, v.Expected)
			continue
		}
		if v.OK {
			log.Infof("  [0x%08X] expected 0x%08X, got 0x%08X  ok", v.Addr, v.Expected, v.Actual)
		} else {
			log.Warnf("  [0x%08X] expected 0x%08X, got 0x%08X  FAIL", v.Addr, v.Expected, v.Actual)
		}
	}

	switch {
	case report.StatusErr != nil:
		log.Warnf("could not read SBCS status: %v", report.StatusErr)
	case report.SBError != 0:
		log.Warnf("%v", report.BusError())
	default:
		log.Info("no SBA errors")
	}

	if report.OK() {
		log.Info("image loaded successfully")
	}
	log.Info("now run in the OpenOCD console: reset run")
}

// logrusAdapter bridges the loader's Logger interface onto logrus,
// folding key-value pairs into structured fields.
type logrusAdapter struct {
	l *logrus.Logger
}

func (a logrusAdapter) fields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (a logrusAdapter) Debug(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Debug(msg)
}

func (a logrusAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Info(msg)
}

func (a logrusAdapter) Warn(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Warn(msg)
}

func (a logrusAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(a.fields(keysAndValues)).Error(msg)
}
