// Package dmi implements the text-level Debug Module Interface commands
// understood by an OpenOCD console, and the parsing of their replies.
//
// # Overview
//
// OpenOCD's telnet console exposes raw DMI register access through two
// line-oriented commands:
//
//	riscv dmi_write 0x<addr> 0x<data>
//	riscv dmi_read 0x<addr>
//
// This package builds those command lines and classifies the free-form
// reply text the console sends back. It performs no I/O of its own, so the
// reply heuristics can be tested against synthetic console output; the
// loader package owns the socket.
//
// # Reply parsing
//
// Console replies interleave command echoes, the "> " prompt, and the value
// of interest. ParseReply discards echo and prompt lines and returns the
// first bare hexadecimal literal:
//
//	value, err := dmi.ParseReply("riscv dmi_read 0x3c\r\n0x00001297\r\n> ")
//	// value == 0x00001297
//
// When no such line exists the reply is reported as a *ParseError; the
// console gives no way to tell a silent bridge from a malformed reply or a
// still-pending transaction, so all three surface as the same error kind.
//
// # Register map
//
// The package also carries the System Bus Access register addresses and the
// SBCS bit layout used by the loader. See registers.go for the exact
// configuration word written before a transfer.
package dmi
