// Package utils provides shared helpers for the stegvault CLI.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: writes through a temp file and rename
//   - SamePath: reports whether two paths name the same file
//
// # System Utilities
//
//   - Identity: user@host recorded in audit entries
//
// # String Utilities
//
//   - FormatBytes: human-readable sizes
//   - IsPrintableText, HexDump: rendering extracted payloads
//
// # I/O and Terminal Utilities
//
//   - ReadStdin: reads piped payloads
//   - ReadHidden: prompts for a payload without echo
//   - IsTerminal: reports whether stdin is a terminal
package utils
