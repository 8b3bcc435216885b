// Package loader drives a binary image into target SRAM through a debug
// bridge's System Bus Access interface.
//
// # Overview
//
// The loader speaks to an already-running OpenOCD console over a single
// text-stream connection and performs the complete linear sequence:
//   - Discard the welcome banner
//   - Arm System Bus Access for 32-bit, address-triggered transactions
//   - Transfer the image word by word, rewriting the address registers
//     before every data write (no reliance on auto-increment)
//   - Read back the first few words and compare
//   - Read the SBCS status register and extract the bus error field
//
// # Basic Usage
//
//	conn, err := net.Dial("tcp", "localhost:4444")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	img, err := firmware.Load("app.bin", 0x80000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ld := loader.New(conn)
//	report, err := ld.Run(context.Background(), img)
//
// # Failure policy
//
// Connection and mid-transfer write failures are fatal: a silent partial
// load has no recovery path, so Run returns the error. Everything after the
// transfer is best effort: verification mismatches, unparseable read-backs
// and a nonzero sberror are recorded in the Report and logged, never
// escalated, matching the tool's role as an interactive diagnostic.
//
// # Timing
//
// The console protocol has no acknowledgment signal, so the loader settles
// on fixed delays: a bounded drain after each write (absence of a reply is
// the normal case) and a settle interval before each blocking read. Both
// are tunable through options; see WithSettleDelay and friends.
package loader
